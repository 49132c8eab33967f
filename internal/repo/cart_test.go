package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/solekicks/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return NewGormRepo(db)
}

func seedCart(t *testing.T, r *GormRepo) (*models.Cart, *models.Product) {
	t.Helper()

	user := models.User{Email: "buyer@example.com", Role: models.RoleCustomer}
	require.NoError(t, r.DB.Create(&user).Error)

	product := models.Product{
		Name:     "Trail Runner",
		Price:    decimal.RequireFromString("89.99"),
		Category: models.CategoryAthletic,
		Stock:    10,
	}
	require.NoError(t, r.DB.Create(&product).Error)

	cart, err := r.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	return cart, &product
}

func TestAddCartItem_InsertsNewLine(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	cart, product := seedCart(t, r)

	item := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, Size: "9"}
	require.NoError(t, r.AddCartItem(ctx, &item))
	require.Equal(t, 2, item.Quantity)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

// A line for the same tuple can land between a request's existence check and
// its insert; the insert must merge into it rather than trip the unique index.
func TestAddCartItem_MergesIntoRowInsertedUnderneath(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	cart, product := seedCart(t, r)

	existing := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1, Size: "9"}
	require.NoError(t, r.DB.Create(&existing).Error)

	item := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, Size: "9"}
	require.NoError(t, r.AddCartItem(ctx, &item))

	require.Equal(t, existing.ID, item.ID)
	require.Equal(t, 3, item.Quantity)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAddCartItem_VariantTuplesStaySeparate(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	cart, product := seedCart(t, r)

	nine := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1, Size: "9"}
	require.NoError(t, r.AddCartItem(ctx, &nine))

	ten := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1, Size: "10"}
	require.NoError(t, r.AddCartItem(ctx, &ten))
	require.NotEqual(t, nine.ID, ten.ID)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}
