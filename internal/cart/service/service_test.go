package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	carterrors "github.com/nstepura/matmarket/internal/cart/errors"
	cartstore "github.com/nstepura/matmarket/internal/cart/store"
	"github.com/nstepura/matmarket/internal/catalog/seed"
	catalogstore "github.com/nstepura/matmarket/internal/catalog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "u1"

func newCartService() *Service {
	products := catalogstore.NewMemoryStore(seed.Products(), seed.Vendors())
	return NewService(cartstore.NewMemoryStore(), products)
}

func Test_CartService_AddItem(t *testing.T) {
	ctx := context.Background()
	headphones := seed.ProductID(1) // active, stock 45, price 19999

	t.Run("Success - item added with totals", func(t *testing.T) {
		service := newCartService()
		updated, err := service.AddItem(ctx, testUser, headphones, 2)
		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, int32(2), updated.Items[0].Quantity)
		assert.Equal(t, int64(39998), updated.Items[0].LineTotal)
		assert.Equal(t, int32(2), updated.TotalItems)
		assert.Equal(t, int64(39998), updated.TotalPrice)
	})

	t.Run("Adding the same product merges quantities", func(t *testing.T) {
		service := newCartService()
		_, err := service.AddItem(ctx, testUser, headphones, 2)
		require.NoError(t, err)
		updated, err := service.AddItem(ctx, testUser, headphones, 3)
		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, int32(5), updated.Items[0].Quantity)
	})

	t.Run("Quantity is clamped to available stock", func(t *testing.T) {
		service := newCartService()
		watch := seed.ProductID(2) // active, stock 32
		updated, err := service.AddItem(ctx, testUser, watch, 100)
		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, int32(32), updated.Items[0].Quantity)
	})

	t.Run("Zero or negative request is clamped to one", func(t *testing.T) {
		service := newCartService()
		updated, err := service.AddItem(ctx, testUser, headphones, 0)
		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, int32(1), updated.Items[0].Quantity)
	})

	t.Run("Error - out-of-stock product cannot be added", func(t *testing.T) {
		service := newCartService()
		shoes := seed.ProductID(8) // active but stock 0
		updated, err := service.AddItem(ctx, testUser, shoes, 1)
		assert.ErrorIs(t, err, carterrors.ErrProductUnavailable)
		assert.Nil(t, updated)
	})

	t.Run("Error - inactive product cannot be added", func(t *testing.T) {
		service := newCartService()
		speaker := seed.ProductID(10) // inactive
		updated, err := service.AddItem(ctx, testUser, speaker, 1)
		assert.ErrorIs(t, err, carterrors.ErrProductUnavailable)
		assert.Nil(t, updated)
	})

	t.Run("Error - unknown product", func(t *testing.T) {
		service := newCartService()
		updated, err := service.AddItem(ctx, testUser, uuid.New(), 1)
		assert.Error(t, err)
		assert.Nil(t, updated)
	})
}

func Test_CartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	headphones := seed.ProductID(1)

	t.Run("Success - quantity replaced", func(t *testing.T) {
		service := newCartService()
		_, err := service.AddItem(ctx, testUser, headphones, 2)
		require.NoError(t, err)
		updated, err := service.UpdateQuantity(ctx, testUser, headphones, 7)
		require.NoError(t, err)
		assert.Equal(t, int32(7), updated.Items[0].Quantity)
	})

	t.Run("Quantity above stock is clamped", func(t *testing.T) {
		service := newCartService()
		_, err := service.AddItem(ctx, testUser, headphones, 2)
		require.NoError(t, err)
		updated, err := service.UpdateQuantity(ctx, testUser, headphones, 500)
		require.NoError(t, err)
		assert.Equal(t, int32(45), updated.Items[0].Quantity)
	})

	t.Run("Zero quantity removes the line", func(t *testing.T) {
		service := newCartService()
		_, err := service.AddItem(ctx, testUser, headphones, 2)
		require.NoError(t, err)
		updated, err := service.UpdateQuantity(ctx, testUser, headphones, 0)
		require.NoError(t, err)
		assert.Empty(t, updated.Items)
		assert.Equal(t, int32(0), updated.TotalItems)
	})

	t.Run("Error - line not found", func(t *testing.T) {
		service := newCartService()
		updated, err := service.UpdateQuantity(ctx, testUser, headphones, 3)
		assert.ErrorIs(t, err, carterrors.ErrItemNotFound)
		assert.Nil(t, updated)
	})
}

func Test_CartService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	headphones := seed.ProductID(1)
	watch := seed.ProductID(2)

	t.Run("Remove drops one line, the rest keep order", func(t *testing.T) {
		service := newCartService()
		_, err := service.AddItem(ctx, testUser, headphones, 1)
		require.NoError(t, err)
		_, err = service.AddItem(ctx, testUser, watch, 1)
		require.NoError(t, err)

		updated, err := service.RemoveItem(ctx, testUser, headphones)
		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, watch.String(), updated.Items[0].ProductID)
	})

	t.Run("Error - removing a missing line", func(t *testing.T) {
		service := newCartService()
		updated, err := service.RemoveItem(ctx, testUser, headphones)
		assert.ErrorIs(t, err, carterrors.ErrItemNotFound)
		assert.Nil(t, updated)
	})

	t.Run("Clear empties the cart", func(t *testing.T) {
		service := newCartService()
		_, err := service.AddItem(ctx, testUser, headphones, 1)
		require.NoError(t, err)
		updated, err := service.Clear(ctx, testUser)
		require.NoError(t, err)
		assert.Empty(t, updated.Items)

		cart, err := service.Get(ctx, testUser)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

// The cart snapshot is frozen at add time; later catalog edits do not
// change the stored line.
func Test_CartService_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	headphones := seed.ProductID(1)

	products := catalogstore.NewMemoryStore(seed.Products(), seed.Vendors())
	service := NewService(cartstore.NewMemoryStore(), products)

	_, err := service.AddItem(ctx, testUser, headphones, 2)
	require.NoError(t, err)

	newPrice := int64(25999)
	_, err = products.Update(ctx, headphones, catalogstore.UpdateParams{Price: &newPrice})
	require.NoError(t, err)

	cart, err := service.Get(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(19999), cart.Items[0].Price, "price was frozen when the line was created")
}

func Test_CartService_PerUserIsolation(t *testing.T) {
	ctx := context.Background()
	service := newCartService()

	_, err := service.AddItem(ctx, "u1", seed.ProductID(1), 1)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, "u2", seed.ProductID(2), 1)
	require.NoError(t, err)

	cart1, err := service.Get(ctx, "u1")
	require.NoError(t, err)
	cart2, err := service.Get(ctx, "u2")
	require.NoError(t, err)

	require.Len(t, cart1.Items, 1)
	require.Len(t, cart2.Items, 1)
	assert.NotEqual(t, cart1.Items[0].ProductID, cart2.Items[0].ProductID)
}
