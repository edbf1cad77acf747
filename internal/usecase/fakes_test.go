package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

func testProduct(id, name string, price string, category domain.Category, stock int, featured bool) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Category:    category,
		Stock:       stock,
		Featured:    featured,
	}
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		testProduct("1", "Vela de lavanda", "12.99", domain.CategoryCandles, 5, true),
		testProduct("2", "Incienso de sándalo", "5.50", domain.CategoryIncense, 10, false),
		testProduct("3", "Cuarzo rosa", "24.00", domain.CategoryCrystals, 0, true),
		testProduct("4", "Péndulo", "18.75", domain.CategoryAccessories, 3, false),
	}
}

// fakeSource — источник каталога с подсчётом обращений.
type fakeSource struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	calls    int
	// onFetch вызывается перед чтением, вне блокировки источника.
	onFetch func()
}

func (f *fakeSource) FetchProducts(context.Context) ([]domain.Product, error) {
	if f.onFetch != nil {
		f.onFetch()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCache struct {
	mu         sync.Mutex
	catalog    []domain.Product
	products   map[string]domain.Product
	deleted    []string
	generation int64
	staleSets  int
}

func (f *fakeCache) CatalogGeneration(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generation, nil
}

func (f *fakeCache) StaleSets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staleSets
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: make(map[string]domain.Product)}
}

func (f *fakeCache) GetCatalog(context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.catalog == nil {
		return nil, e.ErrCacheMiss
	}
	return f.catalog, nil
}

func (f *fakeCache) SetCatalog(_ context.Context, products []domain.Product, generation int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if generation != f.generation {
		f.staleSets++
		return e.ErrStaleCache
	}
	f.catalog = products
	return nil
}

func (f *fakeCache) DeleteCatalog(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.catalog = nil
	return nil
}

func (f *fakeCache) GetProducts(_ context.Context, ids []string) (map[string]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	if len(out) == 0 {
		return nil, e.ErrCacheMiss
	}
	return out, nil
}

func (f *fakeCache) SetProducts(_ context.Context, products []domain.Product, generation int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if generation != f.generation {
		f.staleSets++
		return e.ErrStaleCache
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return nil
}

func (f *fakeCache) DeleteProducts(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.products, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePayment struct {
	err   error
	calls int
}

func (f *fakePayment) Charge(context.Context, *domain.Order) error {
	f.calls++
	return f.err
}

type fakeOrderRepo struct {
	orders []*domain.Order
	err    error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.orders = append(f.orders, order)
	return order, nil
}

type fakeOutboxRepo struct {
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(context.Context, int64) error { return nil }

func (f *fakeOutboxRepo) MarkAsPending(context.Context, int64) error { return nil }

type fakeProductRepo struct {
	mu        sync.Mutex
	products  map[string]domain.Product
	createErr error
	seq       int
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (f *fakeProductRepo) List(context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	p := *product
	p.ID = "p-" + strconv.Itoa(f.seq)
	p.CreatedAt = time.Now()
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}
	f.products[product.ID] = *product
	p := *product
	return &p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeImages struct {
	keys    []string
	cleaned []string
}

func (f *fakeImages) UploadImages(_ context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	keys := make([]string, 0, len(req.Images))
	for i := range req.Images {
		keys = append(keys, "products/"+strconv.Itoa(i)+".jpg")
	}
	f.keys = append(f.keys, keys...)
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImages) CleanupImages(keys []string) {
	f.cleaned = append(f.cleaned, keys...)
}

func (f *fakeImages) PublicURL(key string) string {
	return "http://cdn.local/" + key
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, e.ErrEmailTaken
		}
	}
	f.seq++
	u := *user
	u.ID = "u-" + strconv.Itoa(f.seq)
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, e.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	u.Role = role
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, fullName string, profile domain.Profile) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	u.FullName = fullName
	u.Profile = profile
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return e.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]string)}
}

func (f *fakeSessionRepo) Create(_ context.Context, token string, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionRepo) GetUserID(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.sessions[token]
	if !ok {
		return "", e.ErrUnauthorized
	}
	return id, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

type fakeMessageRepo struct {
	messages map[string]domain.ContactMessage
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]domain.ContactMessage)}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	f.seq++
	m := *msg
	m.ID = "m-" + strconv.Itoa(f.seq)
	f.messages[m.ID] = m
	return &m, nil
}

func (f *fakeMessageRepo) List(context.Context) ([]domain.ContactMessage, error) {
	out := make([]domain.ContactMessage, 0, len(f.messages))
	for _, m := range f.messages {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMessageRepo) UpdateStatus(_ context.Context, id string, status domain.MessageStatus) (*domain.ContactMessage, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, e.ErrContactMessageNotFound
	}
	m.Status = status
	f.messages[id] = m
	return &m, nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.messages[id]; !ok {
		return e.ErrContactMessageNotFound
	}
	delete(f.messages, id)
	return nil
}

var errBoom = errors.New("boom")
