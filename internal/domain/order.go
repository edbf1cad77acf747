package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer — контактные данные и адрес доставки из формы оформления заказа
type Customer struct {
	Email      string
	FirstName  string
	LastName   string
	Address    string
	City       string
	PostalCode string
	Phone      string
}

// Order — подтверждённый заказ, созданный из содержимого корзины
type Order struct {
	ID            string
	SessionID     string
	Customer      Customer
	PaymentMethod string
	Lines         []CartLine
	TotalItems    int
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
}

func NewOrder(id, sessionID string, customer Customer, paymentMethod string, lines []CartLine, totalItems int, totalPrice decimal.Decimal) *Order {
	return &Order{
		ID:            id,
		SessionID:     sessionID,
		Customer:      customer,
		PaymentMethod: paymentMethod,
		Lines:         lines,
		TotalItems:    totalItems,
		TotalPrice:    totalPrice,
	}
}
