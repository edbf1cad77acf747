// Package payment содержит платёжный шлюз витрины.
package payment

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// SimulatedGateway имитирует оплату: ждёт заданную задержку и всегда подтверждает платёж.
// Отмена контекста прерывает ожидание.
type SimulatedGateway struct {
	delay  time.Duration
	logger logger.Logger
}

func NewSimulatedGateway(delay time.Duration, logger logger.Logger) *SimulatedGateway {
	return &SimulatedGateway{delay: delay, logger: logger}
}

func (g *SimulatedGateway) Charge(ctx context.Context, order *domain.Order) error {
	const op = "SimulatedGateway.Charge"

	if g.delay > 0 {
		t := time.NewTimer(g.delay)
		defer t.Stop()

		select {
		case <-t.C:
		case <-ctx.Done():
			return e.Wrap(op, ctx.Err())
		}
	}

	g.logger.Debugf("%s: charged %s via %s for order %s", op, order.TotalPrice.StringFixed(2), order.PaymentMethod, order.ID)
	return nil
}
