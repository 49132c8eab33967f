package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/solekicks/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateCart inserts the cart row behind the user_id unique index with
// on-conflict-do-nothing, so two first requests racing for the same user
// converge on a single row.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	stub := models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&stub).Error; err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem inserts the (cart, product, size, color) line behind the
// composite unique index; on conflict the existing row's quantity is
// incremented in the same statement, so two concurrent first adds both merge.
func (r *GormRepo) AddCartItem(ctx context.Context, item *models.CartItem) error {
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "cart_id"}, {Name: "product_id"}, {Name: "size"}, {Name: "color"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("quantity + excluded.quantity"),
				"updated_at": time.Now(),
			}),
		}).
		Create(item).Error; err != nil {
		return err
	}

	// On the conflict path the generated id was discarded; reload the
	// surviving row into the caller's struct.
	var merged models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
			item.CartID, item.ProductID, item.Size, item.Color).
		First(&merged).Error; err != nil {
		return err
	}
	*item = merged
	return nil
}

func (r *GormRepo) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).First(&cart, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCartItem(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.CartItem, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetCartItem(ctx, id)
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.CartItem{}, "cart_id = ?", cartID).Error
}
