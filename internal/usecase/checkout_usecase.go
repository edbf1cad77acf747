package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

const defaultPaymentMethod = "card"

// CheckoutUseCase превращает корзину сессии в заказ: оплата, запись заказа
// вместе с outbox-событием в одной транзакции, затем очистка корзины.
type CheckoutUseCase struct {
	carts      *CartUseCase
	payment    PaymentGateway
	orderRepo  OrderRepository
	outboxRepo OutboxRepository
	transactor Transactor
	logger     logger.Logger
}

func NewCheckoutUC(
	carts *CartUseCase,
	payment PaymentGateway,
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	transactor Transactor,
	logger logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:      carts,
		payment:    payment,
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		transactor: transactor,
		logger:     logger,
	}
}

// Checkout оформляет заказ из текущей корзины сессии.
func (c *CheckoutUseCase) Checkout(ctx context.Context, req *CheckoutReq) (*domain.Order, error) {
	const op = "CheckoutUseCase.Checkout"

	customer, err := c.validate(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	var order *domain.Order
	err = c.carts.WithCart(ctx, req.SessionID, func(ctx context.Context, store *cart.Store) error {
		if store.Len() == 0 {
			return e.ErrEmptyCart
		}

		order = domain.NewOrder(
			uuid.NewString(),
			req.SessionID,
			customer,
			paymentMethod,
			store.Lines(),
			store.TotalItems(),
			store.TotalPrice(),
		)
		order.CreatedAt = time.Now().UTC()

		if err := c.payment.Charge(ctx, order); err != nil {
			return fmt.Errorf("%w: %v", e.ErrPaymentFailed, err)
		}

		if err := c.transactor.WithinTx(ctx, func(ctx context.Context) error {
			return c.saveOrder(ctx, order)
		}); err != nil {
			return err
		}

		// Заказ уже записан: ошибка очистки корзины не отменяет его
		if err := store.Clear(ctx); err != nil {
			c.logger.Errorf(err, "Failed to clear cart after checkout. order_id: %s", order.ID)
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("Order placed. order_id: %s, items: %d, total: %s", order.ID, order.TotalItems, order.TotalPrice.StringFixed(2))

	return order, nil
}

func (c *CheckoutUseCase) saveOrder(ctx context.Context, order *domain.Order) error {
	const op = "CheckoutUseCase.saveOrder"

	if _, err := c.orderRepo.Create(ctx, order); err != nil {
		return e.Wrap(op, err)
	}

	event, err := NewOrderPlacedEvent(order)
	if err != nil {
		return e.Wrap(op, err)
	}

	if _, err := c.outboxRepo.Create(ctx, event); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *CheckoutUseCase) validate(req *CheckoutReq) (domain.Customer, error) {
	cust := domain.Customer{
		Email:      strings.TrimSpace(req.Customer.Email),
		FirstName:  strings.TrimSpace(req.Customer.FirstName),
		LastName:   strings.TrimSpace(req.Customer.LastName),
		Address:    strings.TrimSpace(req.Customer.Address),
		City:       strings.TrimSpace(req.Customer.City),
		PostalCode: strings.TrimSpace(req.Customer.PostalCode),
		Phone:      strings.TrimSpace(req.Customer.Phone),
	}

	if strings.TrimSpace(req.SessionID) == "" {
		return cust, e.ErrSessionRequired
	}

	if cust.Email == "" || cust.FirstName == "" || cust.LastName == "" || cust.Address == "" || cust.City == "" {
		return cust, e.ErrCheckoutFieldsRequired
	}

	if !validEmail(cust.Email) {
		return cust, e.ErrInvalidEmail
	}

	return cust, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
