package converter

import (
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCents(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"0", 0},
		{"12.99", 1299},
		{"5.5", 550},
		{"1999", 199900},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.cents, ToCents(decimal.RequireFromString(tc.in)))
			assert.True(t, decimal.RequireFromString(tc.in).Equal(FromCents(tc.cents)))
		})
	}
}

func TestProductConverter(t *testing.T) {
	id := uuid.New()
	conv := ProductConverter{}

	model := &ProductModel{
		ID:         id,
		Name:       "Vela",
		PriceCents: 1299,
		Category:   "velas",
		Stock:      2,
	}

	entity := conv.ToEntity(model)
	assert.Equal(t, id.String(), entity.ID)
	assert.Equal(t, "12.99", entity.Price.StringFixed(2))
	assert.Equal(t, domain.CategoryCandles, entity.Category)
	assert.True(t, entity.InStock())

	back := conv.ToModel(entity)
	assert.Equal(t, model.ID, back.ID)
	assert.Equal(t, model.PriceCents, back.PriceCents)
}

func TestOrderConverterSplitsLines(t *testing.T) {
	order := domain.NewOrder(
		uuid.NewString(), "s", domain.Customer{Email: "a@b.c"}, "card",
		[]domain.CartLine{{ProductID: "1", Name: "Vela", Price: decimal.RequireFromString("2.50"), Quantity: 2}},
		2, decimal.RequireFromString("5.00"),
	)

	model, items := OrderConverter{}.ToModel(order)
	assert.Equal(t, int64(500), model.TotalCents)
	assert.Len(t, items, 1)
	assert.Equal(t, model.ID, items[0].OrderID)
	assert.Equal(t, int64(250), items[0].PriceCents)
}

func TestUserConverterKeepsProfile(t *testing.T) {
	id := uuid.New()
	user := &domain.User{
		ID:       id.String(),
		Email:    "luna@example.com",
		FullName: "Luna",
		Role:     domain.RoleUser,
		Profile: domain.Profile{
			ShippingAddress: "Calle Luna 3",
			Phone:           "+34 600 000 000",
			City:            "Sevilla",
			PostalCode:      "41001",
		},
	}

	model := UserConverter{}.ToModel(user)
	assert.Equal(t, id, model.ID)
	assert.Equal(t, "Sevilla", model.City)
	assert.Equal(t, "41001", model.PostalCode)

	back := UserConverter{}.ToEntity(model)
	assert.Equal(t, user.Profile, back.Profile)
	assert.Equal(t, domain.RoleUser, back.Role)
}
