// Package catalogsource поставляет полный список товаров для витрины.
package catalogsource

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// ProductLister — основной источник товаров (репозиторий PostgreSQL).
type ProductLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Source читает товары из основного источника, а при его ошибке
// отдаёт встроенный демонстрационный каталог.
type Source struct {
	primary  ProductLister
	fallback []domain.Product
	logger   logger.Logger
}

func NewSource(primary ProductLister, fallback []domain.Product, logger logger.Logger) *Source {
	return &Source{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *Source) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Source.FetchProducts"

	products, err := s.primary.List(ctx)
	if err == nil {
		return products, nil
	}

	if ctx.Err() != nil || len(s.fallback) == 0 {
		return nil, e.Wrap(op, err)
	}

	s.logger.Warnf("%s: primary product source failed, serving sample catalog: %v", op, err)

	out := make([]domain.Product, len(s.fallback))
	copy(out, s.fallback)
	return out, nil
}
