package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CartUseCase управляет корзинами сессий. Корзина каждой сессии живёт
// в хранилище под ключом "<prefix>:<sessionID>".
type CartUseCase struct {
	storage   cart.Storage
	catalog   CatalogUC
	keyPrefix string
	locks     *sessionLocks
	logger    logger.Logger
}

func NewCartUC(storage cart.Storage, catalog CatalogUC, keyPrefix string, logger logger.Logger) *CartUseCase {
	if keyPrefix == "" {
		keyPrefix = cart.DefaultKey
	}

	return &CartUseCase{
		storage:   storage,
		catalog:   catalog,
		keyPrefix: keyPrefix,
		locks:     &sessionLocks{},
		logger:    logger,
	}
}

// WithCart загружает корзину сессии и выполняет fn под блокировкой сессии.
func (c *CartUseCase) WithCart(ctx context.Context, sessionID string, fn func(ctx context.Context, store *cart.Store) error) error {
	const op = "CartUseCase.WithCart"

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return e.Wrap(op, e.ErrSessionRequired)
	}

	unlock := c.locks.lock(sessionID)
	defer unlock()

	store, err := cart.Load(ctx, c.storage, c.key(sessionID), c.logger)
	if err != nil {
		return e.Wrap(op, err)
	}

	return fn(ctx, store)
}

func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.GetCart"

	var view *CartView
	err := c.WithCart(ctx, sessionID, func(_ context.Context, store *cart.Store) error {
		view = NewCartView(sessionID, store)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// AddItem добавляет одну единицу товара. Товар должен существовать и быть в наличии.
func (c *CartUseCase) AddItem(ctx context.Context, sessionID string, productID string) (*CartView, error) {
	const op = "CartUseCase.AddItem"

	if productID == "" {
		return nil, e.Wrap(op, e.ErrProductIDRequired)
	}

	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !product.InStock() {
		return nil, e.Wrap(op, e.ErrProductOutOfStock)
	}

	return c.mutate(ctx, op, sessionID, func(ctx context.Context, store *cart.Store) error {
		return store.AddItem(ctx, *product)
	})
}

// SetQuantity задаёт количество позиции; значение <= 0 удаляет позицию.
func (c *CartUseCase) SetQuantity(ctx context.Context, sessionID string, productID string, quantity int) (*CartView, error) {
	const op = "CartUseCase.SetQuantity"

	if productID == "" {
		return nil, e.Wrap(op, e.ErrProductIDRequired)
	}

	return c.mutate(ctx, op, sessionID, func(ctx context.Context, store *cart.Store) error {
		return store.SetQuantity(ctx, productID, quantity)
	})
}

func (c *CartUseCase) RemoveItem(ctx context.Context, sessionID string, productID string) (*CartView, error) {
	const op = "CartUseCase.RemoveItem"

	if productID == "" {
		return nil, e.Wrap(op, e.ErrProductIDRequired)
	}

	return c.mutate(ctx, op, sessionID, func(ctx context.Context, store *cart.Store) error {
		return store.RemoveItem(ctx, productID)
	})
}

func (c *CartUseCase) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.Clear"

	return c.mutate(ctx, op, sessionID, func(ctx context.Context, store *cart.Store) error {
		return store.Clear(ctx)
	})
}

func (c *CartUseCase) mutate(ctx context.Context, op string, sessionID string, fn func(ctx context.Context, store *cart.Store) error) (*CartView, error) {
	var view *CartView
	err := c.WithCart(ctx, sessionID, func(ctx context.Context, store *cart.Store) error {
		if err := fn(ctx, store); err != nil {
			return err
		}

		view = NewCartView(sessionID, store)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

func (c *CartUseCase) key(sessionID string) string {
	return c.keyPrefix + ":" + sessionID
}
