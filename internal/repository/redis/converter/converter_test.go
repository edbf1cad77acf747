package converter

import (
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductConverterKeepsPrecision(t *testing.T) {
	conv := ProductConverter{}
	in := domain.Product{ID: "7", Name: "Ámbar", Price: decimal.RequireFromString("19.99"), Category: domain.CategoryIncense, Stock: 3}

	models := conv.ToArrRedisModel([]domain.Product{in})
	require.Len(t, models, 1)
	assert.Equal(t, "19.99", models[0].Price)

	out, err := conv.ToArrEntity(models)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, in.Price.Equal(out[0].Price))
	assert.Equal(t, in.Category, out[0].Category)
}

func TestProductConverterRejectsBadPrice(t *testing.T) {
	_, err := ProductConverter{}.ToEntity(&ProductRedisModel{ID: "1", Price: "free"})
	assert.Error(t, err)
}
