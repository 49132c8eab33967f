package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	CategoryAthletic = "athletic"
	CategoryCasual   = "casual"
	CategoryFormal   = "formal"
	CategoryBoots    = "boots"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryAthletic, CategoryCasual, CategoryFormal, CategoryBoots:
		return true
	}
	return false
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	Email           string    `gorm:"uniqueIndex;not null"           json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	Role            string    `gorm:"not null;default:customer"      json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"                 json:"id"`
	Name        string          `gorm:"not null"                             json:"name"`
	Description string          `gorm:"not null"                             json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"          json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `gorm:"not null"                             json:"category"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"  json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"            json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"  json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID"               json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Size and Color default to "" rather than NULL so the composite unique
// index treats two no-variant lines for the same product as the same row.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                          json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_line;not null"  json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_line;not null"  json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity > 0"         json:"quantity"`
	Size      string    `gorm:"uniqueIndex:idx_cart_line;not null;default:''" json:"size"`
	Color     string    `gorm:"uniqueIndex:idx_cart_line;not null;default:''" json:"color"`
	Product   *Product  `gorm:"foreignKey:ProductID"                          json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"        json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"    json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          string          `gorm:"not null;default:pending"    json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"          json:"items"`
	User            *User           `gorm:"foreignKey:UserID"           json:"user,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Price is the product price snapshotted at checkout and is never recomputed.
// Product is joined for display only and stays nil when the catalog row has
// since been deleted.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"        json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"    json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"          json:"product_id"`
	Quantity  int             `gorm:"not null"                    json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Size      string          `gorm:"not null;default:''"         json:"size"`
	Color     string          `gorm:"not null;default:''"         json:"color"`
	Product   *Product        `gorm:"foreignKey:ProductID"        json:"product,omitempty"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}
