package domain

import "github.com/shopspring/decimal"

// CartLine — позиция корзины: снимок товара и количество (всегда >= 1).
type CartLine struct {
	ProductID   string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    Category
	Stock       int
	Featured    bool
	Quantity    int
}

func NewCartLine(product Product, quantity int) CartLine {
	return CartLine{
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Image:       product.Image,
		Category:    product.Category,
		Stock:       product.Stock,
		Featured:    product.Featured,
		Quantity:    quantity,
	}
}

// Subtotal возвращает price * quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
