package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

const cacheFillTimeout = 500 * time.Millisecond

// CatalogUseCase отдаёт витрину: полный список товаров берётся из кэша или источника,
// а фильтрация и пагинация выполняются пайплайном каталога.
type CatalogUseCase struct {
	source          ProductSource
	cacheRepo       CacheRepository
	defaultPageSize int
	logger          logger.Logger
}

func NewCatalogUC(source ProductSource, cacheRepo CacheRepository, defaultPageSize int, logger logger.Logger) *CatalogUseCase {
	if defaultPageSize <= 0 {
		defaultPageSize = catalog.DefaultPageSize
	}

	return &CatalogUseCase{
		source:          source,
		cacheRepo:       cacheRepo,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// ListProducts возвращает видимую страницу каталога.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.products(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.FeaturedFirst {
		products = catalog.FeaturedFirst(products)
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = c.defaultPageSize
	}

	q := catalog.NewQueryState(pageSize)
	q.SetSearchTerm(req.SearchTerm)
	q.SetCategory(req.Category)
	if req.Page != 0 {
		q.SetPage(req.Page)
	}

	res := catalog.Run(products, q)

	return NewListProductsRes(res.Items, res.Page, res.PageSize, res.TotalPages, res.TotalResults), nil
}

// GetProduct возвращает товар по идентификатору.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	if id == "" {
		return nil, e.Wrap(op, e.ErrProductIDRequired)
	}

	gen, genErr := c.cacheRepo.CatalogGeneration(ctx)

	// Поиск в кэше отдельных товаров
	cached, err := c.cacheRepo.GetProducts(ctx, []string{id})
	if err == nil {
		if p, ok := cached[id]; ok {
			return &p, nil
		}
	} else if !errors.Is(err, e.ErrCacheMiss) {
		c.logger.Warnf("Failed to read product from cache: %v", e.Wrap(op, err))
	}

	products, err := c.products(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	for _, p := range products {
		if p.ID != id {
			continue
		}

		found := p
		if genErr == nil {
			c.fillInBackground(op, "product", func(ctx context.Context) error {
				return c.cacheRepo.SetProducts(ctx, []domain.Product{found}, gen)
			})
		}

		return &found, nil
	}

	return nil, e.Wrap(op, e.ErrProductNotFound)
}

// FeaturedProducts возвращает рекомендуемые товары в порядке каталога.
func (c *CatalogUseCase) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.FeaturedProducts"

	products, err := c.products(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return catalog.Featured(products), nil
}

// products возвращает полный список товаров: сначала кэш, затем источник
// с фоновым заполнением кэша.
func (c *CatalogUseCase) products(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.products"

	cached, err := c.cacheRepo.GetCatalog(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, e.ErrCacheMiss) {
		c.logger.Warnf("Failed to read catalog from cache: %v", e.Wrap(op, err))
	}

	// Поколение читается до источника: если товар изменят после чтения,
	// устаревший список не попадёт в кэш.
	gen, genErr := c.cacheRepo.CatalogGeneration(ctx)
	if genErr != nil {
		c.logger.Warnf("Failed to read cache generation, skipping cache fill: %v", e.Wrap(op, genErr))
	}

	products, err := c.source.FetchProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if genErr == nil {
		c.fillInBackground(op, "catalog", func(ctx context.Context) error {
			return c.cacheRepo.SetCatalog(ctx, products, gen)
		})
	}

	return products, nil
}

func (c *CatalogUseCase) fillInBackground(op, what string, fill func(ctx context.Context) error) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()

		err := fill(bgCtx)
		switch {
		case err == nil:
		case errors.Is(err, e.ErrStaleCache):
			c.logger.Debugf("Skipped %s cache fill: catalog changed during read", what)
		default:
			c.logger.Warnf("Failed to cache %s in background: %v", what, e.Wrap(op, err))
		}
	}()
}
