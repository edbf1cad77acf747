// Package cart реализует корзину покупателя: позиции, вычисляемые итоги
// и сохранение в долговременное хранилище после каждого изменения.
package cart

import (
	"context"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultKey — ключ корзины в хранилище, если сессия не задаёт свой.
const DefaultKey = "cart"

// Storage — строковое key-value хранилище, в котором живёт сериализованная корзина.
// Get возвращает found=false, если ключа нет.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// Store — корзина одной сессии.
// Все изменяющие операции сначала применяются в памяти, затем целиком сохраняются
// в Storage под одним ключом. Возвращаемая ошибка — всегда ошибка сохранения;
// изменение в памяти при этом остаётся применённым.
type Store struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	storage Storage
	key     string
	logger  logger.Logger
}

// New создаёт пустую корзину без обращения к хранилищу.
func New(storage Storage, key string, logger logger.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}

	return &Store{
		storage: storage,
		key:     key,
		logger:  logger,
	}
}

// Load создаёт корзину и восстанавливает её из хранилища.
// Отсутствующий ключ или повреждённые данные дают пустую корзину (повреждение логируется).
// Ошибка возвращается только если само хранилище недоступно.
func Load(ctx context.Context, storage Storage, key string, logger logger.Logger) (*Store, error) {
	const op = "cart.Load"

	s := New(storage, key, logger)

	raw, found, err := storage.Get(ctx, s.key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !found || raw == "" {
		return s, nil
	}

	lines, err := Unmarshal([]byte(raw))
	if err != nil {
		logger.Warnf("%s: persisted cart %q is corrupted, starting empty: %v", op, s.key, err)
		return s, nil
	}

	s.lines = normalize(lines)
	return s, nil
}

// Key возвращает ключ, под которым корзина сохраняется.
func (s *Store) Key() string {
	return s.key
}

// AddItem увеличивает количество на 1 или добавляет позицию с количеством 1.
// Остатки на складе не проверяются.
func (s *Store) AddItem(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, domain.NewCartLine(product, 1))
	}

	return s.persist(ctx)
}

// RemoveItem удаляет позицию; отсутствие позиции не является ошибкой.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
	return s.persist(ctx)
}

// SetQuantity задаёт абсолютное количество. quantity <= 0 эквивалентно RemoveItem,
// для отсутствующей позиции ничего не происходит.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)
	} else if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity = quantity
	}

	return s.persist(ctx)
}

// Clear удаляет все позиции.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.persist(ctx)
}

// Quantity возвращает количество товара в корзине или 0.
func (s *Store) Quantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		return s.lines[i].Quantity
	}

	return 0
}

// Lines возвращает копию позиций в порядке добавления.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len возвращает число позиций.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.lines)
}

// TotalItems — сумма количеств по всем позициям.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}

	return total
}

// TotalPrice — сумма price * quantity по всем позициям.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}

	return total
}

func (s *Store) indexOf(productID string) int {
	for i, line := range s.lines {
		if line.ProductID == productID {
			return i
		}
	}

	return -1
}

func (s *Store) remove(productID string) {
	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// persist вызывается под s.mu.
func (s *Store) persist(ctx context.Context) error {
	const op = "cart.Store.persist"

	data, err := Marshal(s.lines)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Warnf("%s: failed to save cart %q: %v", op, s.key, err)
		return e.Wrap(op, err)
	}

	return nil
}

// normalize восстанавливает инварианты после чтения из хранилища:
// позиции с quantity <= 0 отбрасываются, дубликаты по id сливаются.
func normalize(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}

	return out
}
