package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartUC(t *testing.T) (*CartUseCase, *cart.MemoryStorage) {
	t.Helper()

	storage := cart.NewMemoryStorage()
	catalogUC := NewCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache(), 12, logger.NewNop())

	return NewCartUC(storage, catalogUC, "cart", logger.NewNop()), storage
}

func TestCartAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and merges", func(t *testing.T) {
		uc, storage := newCartUC(t)

		_, err := uc.AddItem(ctx, "s1", "1")
		require.NoError(t, err)
		view, err := uc.AddItem(ctx, "s1", "1")
		require.NoError(t, err)

		require.Len(t, view.Lines, 1)
		assert.Equal(t, 2, view.Lines[0].Quantity)
		assert.Equal(t, 2, view.TotalItems)
		assert.True(t, decimal.RequireFromString("25.98").Equal(view.TotalPrice))

		raw, found, err := storage.Get(ctx, "cart:s1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Contains(t, raw, `"quantity":2`)
	})

	t.Run("out of stock is rejected", func(t *testing.T) {
		uc, _ := newCartUC(t)

		_, err := uc.AddItem(ctx, "s1", "3")
		assert.ErrorIs(t, err, e.ErrProductOutOfStock)

		view, err := uc.GetCart(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, view.Lines)
	})

	t.Run("unknown product", func(t *testing.T) {
		uc, _ := newCartUC(t)

		_, err := uc.AddItem(ctx, "s1", "nope")
		assert.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("session required", func(t *testing.T) {
		uc, _ := newCartUC(t)

		_, err := uc.AddItem(ctx, " ", "1")
		assert.ErrorIs(t, err, e.ErrSessionRequired)
	})
}

func TestCartSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCartUC(t)

	_, err := uc.AddItem(ctx, "a", "1")
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "b", "2")
	require.NoError(t, err)

	a, err := uc.GetCart(ctx, "a")
	require.NoError(t, err)
	b, err := uc.GetCart(ctx, "b")
	require.NoError(t, err)

	require.Len(t, a.Lines, 1)
	require.Len(t, b.Lines, 1)
	assert.Equal(t, "1", a.Lines[0].ProductID)
	assert.Equal(t, "2", b.Lines[0].ProductID)
}

func TestCartConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCartUC(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AddItem(ctx, "shared", "2")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := uc.GetCart(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, n, view.Lines[0].Quantity)
}

func TestCartQuantityRemoveClear(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCartUC(t)

	_, err := uc.AddItem(ctx, "s", "1")
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "s", "2")
	require.NoError(t, err)

	view, err := uc.SetQuantity(ctx, "s", "2", 4)
	require.NoError(t, err)
	assert.Equal(t, 5, view.TotalItems)

	view, err = uc.SetQuantity(ctx, "s", "1", 0)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "2", view.Lines[0].ProductID)

	view, err = uc.RemoveItem(ctx, "s", "missing")
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)

	view, err = uc.Clear(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.TotalItems)
	assert.True(t, view.TotalPrice.IsZero())
}
