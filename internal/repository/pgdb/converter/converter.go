package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          parseUUID(entity.ID),
		Name:        entity.Name,
		Description: entity.Description,
		PriceCents:  ToCents(entity.Price),
		Image:       entity.Image,
		Category:    entity.Category.String(),
		Stock:       entity.Stock,
		Featured:    entity.Featured,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID.String(),
		Name:        model.Name,
		Description: model.Description,
		Price:       FromCents(model.PriceCents),
		Image:       model.Image,
		Category:    domain.Category(model.Category),
		Stock:       model.Stock,
		Featured:    model.Featured,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter struct{}

func (UserConverter) ToModel(entity *domain.User) *UserModel {
	return &UserModel{
		ID:              parseUUID(entity.ID),
		Email:           entity.Email,
		FullName:        entity.FullName,
		Role:            string(entity.Role),
		PasswordHash:    entity.PasswordHash,
		ShippingAddress: entity.Profile.ShippingAddress,
		Phone:           entity.Profile.Phone,
		City:            entity.Profile.City,
		PostalCode:      entity.Profile.PostalCode,
		CreatedAt:       entity.CreatedAt,
	}
}

func (UserConverter) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID.String(),
		Email:        model.Email,
		FullName:     model.FullName,
		Role:         domain.Role(model.Role),
		PasswordHash: model.PasswordHash,
		Profile: domain.Profile{
			ShippingAddress: model.ShippingAddress,
			Phone:           model.Phone,
			City:            model.City,
			PostalCode:      model.PostalCode,
		},
		CreatedAt: model.CreatedAt,
	}
}

type ContactMessageConverter struct{}

func (ContactMessageConverter) ToEntity(model *ContactMessageModel) *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        model.ID.String(),
		Name:      model.Name,
		Email:     model.Email,
		Message:   model.Message,
		Status:    domain.MessageStatus(model.Status),
		CreatedAt: model.CreatedAt,
	}
}

// OrderConverter раскладывает заказ на строку orders и строки order_items.
type OrderConverter struct{}

func (OrderConverter) ToModel(entity *domain.Order) (*OrderModel, []OrderItemModel) {
	id := parseUUID(entity.ID)

	items := make([]OrderItemModel, 0, len(entity.Lines))
	for _, l := range entity.Lines {
		items = append(items, OrderItemModel{
			OrderID:    id,
			ProductID:  l.ProductID,
			Name:       l.Name,
			PriceCents: ToCents(l.Price),
			Quantity:   l.Quantity,
		})
	}

	return &OrderModel{
		ID:            id,
		SessionID:     entity.SessionID,
		Email:         entity.Customer.Email,
		FirstName:     entity.Customer.FirstName,
		LastName:      entity.Customer.LastName,
		Address:       entity.Customer.Address,
		City:          entity.Customer.City,
		PostalCode:    entity.Customer.PostalCode,
		Phone:         entity.Customer.Phone,
		PaymentMethod: entity.PaymentMethod,
		TotalItems:    entity.TotalItems,
		TotalCents:    ToCents(entity.TotalPrice),
		CreatedAt:     entity.CreatedAt,
	}, items
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     parseUUID(entity.EventID),
		EventType:   string(entity.EventType),
		AggregateID: parseUUID(entity.AggregateID),
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID.String(),
		EventType:   usecase.OutboxEventType(model.EventType),
		AggregateID: model.AggregateID.String(),
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}

	return out
}

// ToCents переводит денежную сумму в целое число центов с банковским округлением.
func ToCents(d decimal.Decimal) int64 {
	return d.RoundBank(2).Shift(2).IntPart()
}

// FromCents переводит центы обратно в денежную сумму.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// parseUUID возвращает uuid.Nil для пустого или некорректного идентификатора.
func parseUUID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}

	return parsed
}
