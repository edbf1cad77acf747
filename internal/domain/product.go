package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    Category
	Stock       int // Наличие хранится как остаток, InStock вычисляется
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(name, description string, price decimal.Decimal, image string, category Category, stock int, featured bool) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
		Category:    category,
		Stock:       stock,
		Featured:    featured,
	}
}

// InStock сообщает, доступен ли товар к покупке.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// StockFromAvailability переводит булев признак наличия в остаток для источников,
// которые не знают точного количества.
func StockFromAvailability(inStock bool) int {
	if inStock {
		return 1
	}

	return 0
}
