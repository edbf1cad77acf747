package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderPlaced OutboxEventType = "order.placed"
)

// OutboxEvent — событие, записанное в одной транзакции с заказом
// и позже отправленное в Kafka фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderPlacedPayload — тело события order.placed.
type OrderPlacedPayload struct {
	EventID    string             `json:"event_id"`
	OrderID    string             `json:"order_id"`
	Email      string             `json:"email"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Lines      []OrderPlacedLine  `json:"lines"`
	PlacedAt   int64              `json:"placed_at"`
	Customer   OrderPlacedAddress `json:"customer"`
}

type OrderPlacedLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type OrderPlacedAddress struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// NewOrderPlacedEvent строит pending-событие для подтверждённого заказа.
func NewOrderPlacedEvent(order *domain.Order) (*OutboxEvent, error) {
	eventID := uuid.NewString()
	now := time.Now().UTC()

	lines := make([]OrderPlacedLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, OrderPlacedLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}

	payload, err := json.Marshal(OrderPlacedPayload{
		EventID:    eventID,
		OrderID:    order.ID,
		Email:      order.Customer.Email,
		TotalItems: order.TotalItems,
		TotalPrice: order.TotalPrice,
		Lines:      lines,
		PlacedAt:   now.UnixNano(),
		Customer: OrderPlacedAddress{
			FirstName:  order.Customer.FirstName,
			LastName:   order.Customer.LastName,
			Address:    order.Customer.Address,
			City:       order.Customer.City,
			PostalCode: order.Customer.PostalCode,
			Phone:      order.Customer.Phone,
		},
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:     eventID,
		EventType:   OrderPlaced,
		AggregateID: order.ID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   now,
	}, nil
}
