package catalogsource

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	products []domain.Product
	err      error
}

func (s stubLister) List(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func TestFetchProductsPrimary(t *testing.T) {
	primary := []domain.Product{{ID: "db-1", Name: "Vela"}}
	src := NewSource(stubLister{products: primary}, SampleProducts(), logger.NewNop())

	got, err := src.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, primary, got)
}

func TestFetchProductsFallback(t *testing.T) {
	src := NewSource(stubLister{err: errors.New("db down")}, SampleProducts(), logger.NewNop())

	got, err := src.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 12)
}

func TestFetchProductsNoFallback(t *testing.T) {
	boom := errors.New("db down")
	src := NewSource(stubLister{err: boom}, nil, logger.NewNop())

	_, err := src.FetchProducts(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSampleCatalogShape(t *testing.T) {
	products := SampleProducts()

	// 12 товаров: на странице по умолчанию помещается весь каталог
	res := catalog.Run(products, catalog.NewQueryState(0))
	assert.Equal(t, 1, res.TotalPages)

	for _, p := range products {
		assert.True(t, p.Category.Valid(), p.Name)
	}

	assert.Len(t, catalog.Filter(products, "", domain.CategoryCrystals), 3)
	assert.False(t, products[2].InStock())
	assert.Len(t, catalog.Featured(products), 3)
}
