package converter

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
// Цена хранится в центах.
type ProductModel struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	PriceCents  int64      `db:"price_cents"`
	Image       string     `db:"image"`
	Category    string     `db:"category"`
	Stock       int        `db:"stock"`
	Featured    bool       `db:"featured"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	IsArchived  bool       `db:"is_archived"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID              uuid.UUID `db:"id"`
	Email           string    `db:"email"`
	FullName        string    `db:"full_name"`
	Role            string    `db:"role"`
	PasswordHash    []byte    `db:"password_hash"`
	ShippingAddress string    `db:"shipping_address"`
	Phone           string    `db:"phone"`
	City            string    `db:"city"`
	PostalCode      string    `db:"postal_code"`
	CreatedAt       time.Time `db:"created_at"`
}

// ContactMessageModel представляет запись таблицы contact_messages в PostgreSQL.
type ContactMessageModel struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID            uuid.UUID `db:"id"`
	SessionID     string    `db:"session_id"`
	Email         string    `db:"email"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	Address       string    `db:"address"`
	City          string    `db:"city"`
	PostalCode    string    `db:"postal_code"`
	Phone         string    `db:"phone"`
	PaymentMethod string    `db:"payment_method"`
	TotalItems    int       `db:"total_items"`
	TotalCents    int64     `db:"total_cents"`
	CreatedAt     time.Time `db:"created_at"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	OrderID    uuid.UUID `db:"order_id"`
	ProductID  string    `db:"product_id"`
	Name       string    `db:"name"`
	PriceCents int64     `db:"price_cents"`
	Quantity   int       `db:"quantity"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID uuid.UUID  `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
