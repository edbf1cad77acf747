package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Producto " + id,
		Price:    decimal.RequireFromString(price),
		Category: domain.CategoryCandles,
		Stock:    5,
	}
}

func setup(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	store, err := Load(context.Background(), storage, "cart:test", logger.NewNop())
	require.NoError(t, err)
	return store, storage
}

func TestAddItemMergesSameProduct(t *testing.T) {
	store, _ := setup(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, store.AddItem(ctx, product("a", "10")))
	}

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, 4, store.Quantity("a"))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store, storage := setup(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("a", "10")))
	require.NoError(t, store.AddItem(ctx, product("b", "5")))

	require.NoError(t, store.RemoveItem(ctx, "a"))
	once := store.Lines()
	persistedOnce, _, _ := storage.Get(ctx, "cart:test")

	require.NoError(t, store.RemoveItem(ctx, "a"))
	persistedTwice, _, _ := storage.Get(ctx, "cart:test")

	assert.Equal(t, once, store.Lines())
	assert.Equal(t, persistedOnce, persistedTwice)
	assert.Equal(t, 0, store.Quantity("a"))
	assert.Equal(t, 1, store.Quantity("b"))
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero removes the line", func(t *testing.T) {
		store, _ := setup(t)
		require.NoError(t, store.AddItem(ctx, product("x", "3")))
		require.NoError(t, store.SetQuantity(ctx, "x", 0))
		assert.Equal(t, 0, store.Quantity("x"))
		assert.Empty(t, store.Lines())
	})

	t.Run("negative removes the line", func(t *testing.T) {
		store, _ := setup(t)
		require.NoError(t, store.AddItem(ctx, product("x", "3")))
		require.NoError(t, store.SetQuantity(ctx, "x", -5))
		assert.Empty(t, store.Lines())
	})

	t.Run("unknown id does not create a line", func(t *testing.T) {
		store, _ := setup(t)
		require.NoError(t, store.SetQuantity(ctx, "missing", 5))
		assert.Empty(t, store.Lines())
		assert.Equal(t, 0, store.Quantity("missing"))
	})

	t.Run("absolute set", func(t *testing.T) {
		store, _ := setup(t)
		require.NoError(t, store.AddItem(ctx, product("x", "3")))
		require.NoError(t, store.AddItem(ctx, product("x", "3")))
		require.NoError(t, store.SetQuantity(ctx, "x", 7))
		assert.Equal(t, 7, store.Quantity("x"))
	})
}

func TestTotalsAreRecomputed(t *testing.T) {
	store, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("a", "15.99")))
	require.NoError(t, store.AddItem(ctx, product("b", "8.50")))
	require.NoError(t, store.AddItem(ctx, product("a", "15.99")))
	require.NoError(t, store.SetQuantity(ctx, "b", 3))
	require.NoError(t, store.RemoveItem(ctx, "nope"))
	require.NoError(t, store.AddItem(ctx, product("c", "0.10")))
	require.NoError(t, store.SetQuantity(ctx, "c", 0))

	wantItems := 0
	wantPrice := decimal.Zero
	for _, line := range store.Lines() {
		wantItems += line.Quantity
		wantPrice = wantPrice.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	assert.Equal(t, wantItems, store.TotalItems())
	assert.True(t, wantPrice.Equal(store.TotalPrice()), "got %s want %s", store.TotalPrice(), wantPrice)
	assert.True(t, decimal.RequireFromString("57.48").Equal(store.TotalPrice()))
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, storage := setup(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("a", "10")))
	require.NoError(t, store.AddItem(ctx, product("b", "5.25")))
	require.NoError(t, store.AddItem(ctx, product("a", "10")))

	restored, err := Load(ctx, storage, "cart:test", logger.NewNop())
	require.NoError(t, err)

	original := store.Lines()
	got := restored.Lines()
	require.Len(t, got, len(original))
	for i := range original {
		assert.Equal(t, original[i].ProductID, got[i].ProductID)
		assert.Equal(t, original[i].Quantity, got[i].Quantity)
		assert.True(t, original[i].Price.Equal(got[i].Price))
	}
}

func TestEndToEndScenario(t *testing.T) {
	store, storage := setup(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("a", "10")))
	require.NoError(t, store.AddItem(ctx, product("a", "10")))
	require.NoError(t, store.AddItem(ctx, product("b", "5")))

	assert.Equal(t, 3, store.TotalItems())
	assert.True(t, decimal.NewFromInt(25).Equal(store.TotalPrice()))
	assert.Len(t, store.Lines(), 2)

	require.NoError(t, store.SetQuantity(ctx, "a", 1))
	assert.Equal(t, 2, store.TotalItems())
	assert.True(t, decimal.NewFromInt(15).Equal(store.TotalPrice()))

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.Lines())

	persisted, found, err := storage.Get(ctx, "cart:test")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "[]", persisted)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key gives empty cart", func(t *testing.T) {
		store, err := Load(ctx, NewMemoryStorage(), "cart:none", logger.NewNop())
		require.NoError(t, err)
		assert.Empty(t, store.Lines())
	})

	t.Run("corrupted data gives empty cart", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Set(ctx, "cart:bad", "{not json"))

		store, err := Load(ctx, storage, "cart:bad", logger.NewNop())
		require.NoError(t, err)
		assert.Empty(t, store.Lines())
	})

	t.Run("restores invariants", func(t *testing.T) {
		storage := NewMemoryStorage()
		raw := `[{"id":"1","price":15.99,"quantity":2},{"id":"2","price":"3","quantity":0},{"id":"1","price":15.99,"quantity":1}]`
		require.NoError(t, storage.Set(ctx, "cart:dup", raw))

		store, err := Load(ctx, storage, "cart:dup", logger.NewNop())
		require.NoError(t, err)
		lines := store.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "1", lines[0].ProductID)
		assert.Equal(t, 3, lines[0].Quantity)
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		_, err := Load(ctx, failingStorage{}, "cart:x", logger.NewNop())
		assert.ErrorIs(t, err, errStorageDown)
	})

	t.Run("empty key falls back to default", func(t *testing.T) {
		store, err := Load(ctx, NewMemoryStorage(), "", logger.NewNop())
		require.NoError(t, err)
		assert.Equal(t, DefaultKey, store.Key())
	})
}

func TestPersistFailureKeepsInMemoryChange(t *testing.T) {
	store := New(failingStorage{}, "cart:x", logger.NewNop())

	err := store.AddItem(context.Background(), product("a", "1"))

	assert.ErrorIs(t, err, errStorageDown)
	assert.Equal(t, 1, store.Quantity("a"))
}

var errStorageDown = errors.New("storage down")

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errStorageDown
}

func (failingStorage) Set(context.Context, string, string) error {
	return errStorageDown
}
