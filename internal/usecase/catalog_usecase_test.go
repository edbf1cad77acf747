package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogUC(source *fakeSource, cache *fakeCache) *CatalogUseCase {
	return NewCatalogUC(source, cache, 2, logger.NewNop())
}

func TestCatalogListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("filters and paginates", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		res, err := uc.ListProducts(ctx, &ListProductsReq{Page: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, res.TotalResults)
		assert.Equal(t, 2, res.TotalPages)
		require.Len(t, res.Products, 2)
		assert.Equal(t, "3", res.Products[0].ID)
		assert.Equal(t, "4", res.Products[1].ID)
	})

	t.Run("unset page means first page", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		res, err := uc.ListProducts(ctx, &ListProductsReq{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Len(t, res.Products, 2)
	})

	t.Run("category and search", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		res, err := uc.ListProducts(ctx, &ListProductsReq{SearchTerm: "CUARZO", Category: domain.CategoryCrystals, Page: 1})
		require.NoError(t, err)
		require.Len(t, res.Products, 1)
		assert.Equal(t, "3", res.Products[0].ID)
	})

	t.Run("featured first", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		res, err := uc.ListProducts(ctx, &ListProductsReq{Page: 1, PageSize: 4, FeaturedFirst: true})
		require.NoError(t, err)
		ids := make([]string, 0, len(res.Products))
		for _, p := range res.Products {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{"1", "3", "2", "4"}, ids)
	})

	t.Run("page beyond range is empty", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		res, err := uc.ListProducts(ctx, &ListProductsReq{Page: 9})
		require.NoError(t, err)
		assert.NotNil(t, res.Products)
		assert.Empty(t, res.Products)
		assert.Equal(t, 9, res.Page)
	})

	t.Run("source error", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{err: errBoom}, newFakeCache())

		_, err := uc.ListProducts(ctx, &ListProductsReq{Page: 1})
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestCatalogUsesCache(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{products: sampleProducts()}
	cache := newFakeCache()
	uc := newCatalogUC(source, cache)

	_, err := uc.ListProducts(ctx, &ListProductsReq{Page: 1})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		cached, err := cache.GetCatalog(ctx)
		return err == nil && len(cached) == 4
	}, time.Second, 10*time.Millisecond)

	_, err = uc.ListProducts(ctx, &ListProductsReq{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, source.Calls())
}

func TestCatalogFillSkippedAfterInvalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog", func(t *testing.T) {
		cache := newFakeCache()
		source := &fakeSource{products: sampleProducts()}
		// Товар изменён, пока читался источник.
		source.onFetch = func() { require.NoError(t, cache.DeleteCatalog(ctx)) }
		uc := newCatalogUC(source, cache)

		_, err := uc.ListProducts(ctx, &ListProductsReq{Page: 1})
		require.NoError(t, err)

		assert.Eventually(t, func() bool { return cache.StaleSets() == 1 }, time.Second, 10*time.Millisecond)
		_, err = cache.GetCatalog(ctx)
		assert.ErrorIs(t, err, e.ErrCacheMiss)
	})

	t.Run("single product", func(t *testing.T) {
		cache := newFakeCache()
		source := &fakeSource{products: sampleProducts()}
		source.onFetch = func() { require.NoError(t, cache.DeleteCatalog(ctx)) }
		uc := newCatalogUC(source, cache)

		_, err := uc.GetProduct(ctx, "2")
		require.NoError(t, err)

		// Промахи каталога и товара: обе фоновые записи отклонены.
		assert.Eventually(t, func() bool { return cache.StaleSets() == 2 }, time.Second, 10*time.Millisecond)
		_, err = cache.GetProducts(ctx, []string{"2"})
		assert.ErrorIs(t, err, e.ErrCacheMiss)
	})

	t.Run("fill after invalidation uses new generation", func(t *testing.T) {
		cache := newFakeCache()
		require.NoError(t, cache.DeleteCatalog(ctx))
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, cache)

		_, err := uc.ListProducts(ctx, &ListProductsReq{Page: 1})
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			cached, err := cache.GetCatalog(ctx)
			return err == nil && len(cached) == 4
		}, time.Second, 10*time.Millisecond)
		assert.Zero(t, cache.StaleSets())
	})
}

func TestCatalogGetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		p, err := uc.GetProduct(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "Incienso de sándalo", p.Name)
	})

	t.Run("served from product cache", func(t *testing.T) {
		cache := newFakeCache()
		require.NoError(t, cache.SetProducts(ctx, []domain.Product{testProduct("42", "Cached", "1.00", domain.CategoryCandles, 1, false)}, 0))
		source := &fakeSource{}
		uc := newCatalogUC(source, cache)

		p, err := uc.GetProduct(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "Cached", p.Name)
		assert.Zero(t, source.Calls())
	})

	t.Run("not found", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		_, err := uc.GetProduct(ctx, "missing")
		assert.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

		_, err := uc.GetProduct(ctx, "")
		assert.ErrorIs(t, err, e.ErrProductIDRequired)
	})
}

func TestCatalogFeaturedProducts(t *testing.T) {
	uc := newCatalogUC(&fakeSource{products: sampleProducts()}, newFakeCache())

	featured, err := uc.FeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "1", featured[0].ID)
	assert.Equal(t, "3", featured[1].ID)
}
