package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solekicks/storefront/internal/models"
)

func TestGetOrCreateCart_CreatesOnce(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)

	first, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.ID)
	require.Empty(t, first.Items)

	second, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, r.DB.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateCart_RequiresUser(t *testing.T) {
	svc := &CartService{Repo: newTestRepo(t)}

	_, err := svc.GetOrCreateCart(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddItem_MergesSameLine(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)

	first, err := svc.AddItem(context.Background(), cart.ID, product.ID, 2, "9", "Black")
	require.NoError(t, err)
	require.Equal(t, 2, first.Quantity)

	second, err := svc.AddItem(context.Background(), cart.ID, product.ID, 1, "9", "Black")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?", cart.ID, product.ID, "9", "Black").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItem_DifferentVariantIsNewLine(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)

	nine, err := svc.AddItem(context.Background(), cart.ID, product.ID, 1, "9", "Black")
	require.NoError(t, err)

	ten, err := svc.AddItem(context.Background(), cart.ID, product.ID, 1, "10", "Black")
	require.NoError(t, err)
	assert.NotEqual(t, nine.ID, ten.ID)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAddItem_NoVariantMatchesEmptyStrings(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Canvas Slip-On", "39.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)

	first, err := svc.AddItem(context.Background(), cart.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	second, err := svc.AddItem(context.Background(), cart.ID, product.ID, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)
}

func TestAddItem_QuantityDefaultsToOne(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)

	tests := []struct {
		name string
		qty  int
	}{
		{name: "zero", qty: 0},
		{name: "negative", qty: -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := svc.AddItem(context.Background(), cart.ID, product.ID, tt.qty, tt.name, "")
			require.NoError(t, err)
			assert.Equal(t, 1, item.Quantity)
		})
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), cart.ID, uuid.New(), 1, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItem_UnknownCart(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	_, err := svc.AddItem(context.Background(), uuid.New(), product.ID, 1, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	item, err := svc.AddItem(context.Background(), cart.ID, product.ID, 2, "9", "Black")
	require.NoError(t, err)

	updated, err := svc.UpdateItemQuantity(context.Background(), item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestUpdateItemQuantity_RejectsBelowOne(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	item, err := svc.AddItem(context.Background(), cart.ID, product.ID, 2, "9", "Black")
	require.NoError(t, err)

	for _, qty := range []int{0, -1} {
		_, err := svc.UpdateItemQuantity(context.Background(), item.ID, qty)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	}

	var stored models.CartItem
	require.NoError(t, r.DB.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 2, stored.Quantity)
}

func TestUpdateItemQuantity_UnknownItem(t *testing.T) {
	svc := &CartService{Repo: newTestRepo(t)}

	_, err := svc.UpdateItemQuantity(context.Background(), uuid.New(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	item, err := svc.AddItem(context.Background(), cart.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), item.ID))
	require.NoError(t, svc.RemoveItem(context.Background(), item.ID))
	require.NoError(t, svc.RemoveItem(context.Background(), uuid.New()))
}

func TestClearCart_KeepsCartRow(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := seedUser(t, r, "buyer@example.com", models.RoleCustomer)
	product := seedProduct(t, r, "Trail Runner", "89.99", 20)

	cart, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), cart.ID, product.ID, 3, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(context.Background(), cart.ID))

	refetched, err := svc.GetOrCreateCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, refetched.ID)
	assert.Empty(t, refetched.Items)
}
