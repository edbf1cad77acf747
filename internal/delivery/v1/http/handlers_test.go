package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products []domain.Product
}

func (s *stubCatalog) ListProducts(_ context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error) {
	q := catalog.NewQueryState(req.PageSize)
	q.SetSearchTerm(req.SearchTerm)
	q.SetCategory(req.Category)
	q.SetPage(req.Page)

	res := catalog.Run(s.products, q)
	return usecase.NewListProductsRes(res.Items, res.Page, res.PageSize, res.TotalPages, res.TotalResults), nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (s *stubCatalog) FeaturedProducts(context.Context) ([]domain.Product, error) {
	return catalog.Featured(s.products), nil
}

type stubAuth struct {
	usecase.AuthUC
	users map[string]*domain.User
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, e.ErrUnauthorized
}

func (s *stubAuth) ListUsers(context.Context) ([]domain.User, error) {
	res := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		res = append(res, *u)
	}
	return res, nil
}

func (s *stubAuth) byID(id string) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, e.ErrUserNotFound
}

func (s *stubAuth) GetProfile(_ context.Context, userID string) (*domain.User, error) {
	return s.byID(userID)
}

func (s *stubAuth) UpdateProfile(_ context.Context, req *usecase.UpdateProfileReq) (*domain.User, error) {
	if len(req.City) > 200 {
		return nil, e.ErrProfileFieldTooLong
	}
	u, err := s.byID(req.UserID)
	if err != nil {
		return nil, err
	}
	u.FullName = req.FullName
	u.Profile = domain.Profile{
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		City:            req.City,
		PostalCode:      req.PostalCode,
	}
	return u, nil
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Vela de lavanda", Price: decimal.RequireFromString("25.99"), Category: domain.CategoryCandles, Stock: 3, Featured: true},
		{ID: "2", Name: "Palo Santo", Price: decimal.RequireFromString("15.99"), Category: domain.CategoryIncense, Stock: 1},
		{ID: "3", Name: "Selenita", Price: decimal.RequireFromString("29.99"), Category: domain.CategoryCrystals, Stock: 0},
	}
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	log := logger.NewNop()
	catalogUC := &stubCatalog{products: testProducts()}
	auth := &stubAuth{users: map[string]*domain.User{
		"admin-token": {ID: "u1", Email: "admin@example.com", Role: domain.RoleAdmin},
		"user-token":  {ID: "u2", Email: "user@example.com", Role: domain.RoleUser},
	}}

	mux := chi.NewRouter()
	NewRouter(mux, "/swagger/doc.json", log).Init(UseCases{
		Catalog: catalogUC,
		Cart:    usecase.NewCartUC(cart.NewMemoryStorage(), catalogUC, "cart", log),
		Auth:    auth,
	})
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/products?category=velas", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res ListProductsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Products, 1)
	assert.Equal(t, "25.99", res.Products[0].Price)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, catalog.DefaultPageSize, res.PageSize)
	assert.Equal(t, 1, res.TotalPages)

	for _, target := range []string{
		"/api/v1/products?page=0",
		"/api/v1/products?page=abc",
		"/api/v1/products?page_size=101",
		"/api/v1/products?page_size=0",
		"/api/v1/products?featured_first=maybe",
	} {
		rec := do(t, h, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetProduct(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/products/3", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.False(t, p.InStock)

	rec = do(t, h, http.MethodGet, "/api/v1/products/404", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, session)

	headers := map[string]string{SessionHeader: session}

	rec = do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var view CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, session, view.SessionID)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, "51.98", view.TotalPrice)

	rec = do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"3"}`, headers)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/cart/items/1", `{"quantity":5}`, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 5, view.TotalItems)

	rec = do(t, h, http.MethodPut, "/api/v1/cart/items/1", `{}`, headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/cart/items/1", "", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
	assert.Equal(t, "0.00", view.TotalPrice)

	// чужая сессия видит пустую корзину
	rec = do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"2"}`, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/v1/cart", "", map[string]string{SessionHeader: "other"})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/admin/users", "", map[string]string{"Authorization": "Bearer user-token"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/admin/users", "", map[string]string{"Authorization": "Bearer admin-token"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/auth/me", "", map[string]string{"Authorization": "bearer user-token"})
	require.Equal(t, http.StatusOK, rec.Code)

	var me UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "user@example.com", me.Email)
}

func TestProfileRoutes(t *testing.T) {
	h := newTestRouter(t)
	auth := map[string]string{"Authorization": "Bearer user-token"}

	rec := do(t, h, http.MethodGet, "/api/v1/auth/me/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/auth/me/profile",
		`{"full_name":"Luz","shipping_address":"Calle Mayor 1","phone":"600","city":"Madrid","postal_code":"28001"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/auth/me/profile", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile ProfileDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, ProfileDTO{
		Email:           "user@example.com",
		FullName:        "Luz",
		ShippingAddress: "Calle Mayor 1",
		Phone:           "600",
		City:            "Madrid",
		PostalCode:      "28001",
	}, profile)

	rec = do(t, h, http.MethodPut, "/api/v1/auth/me/profile", `{"city":"`+strings.Repeat("x", 201)+`"}`, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategories(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res CategoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"velas", "inciensos", "cristales", "accesorios"}, res.Categories)
}

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{e.Wrap("op", e.ErrInvalidPage), http.StatusBadRequest},
		{e.ErrCheckoutFieldsRequired, http.StatusBadRequest},
		{e.ErrInvalidCredentials, http.StatusUnauthorized},
		{e.ErrForbidden, http.StatusForbidden},
		{e.Wrap("op", e.ErrProductNotFound), http.StatusNotFound},
		{e.ErrEmptyCart, http.StatusConflict},
		{e.ErrProductOutOfStock, http.StatusConflict},
		{e.ErrPaymentFailed, http.StatusPaymentRequired},
		{errors.New("pgx: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, msg := ToHTTPResponse(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.NotContains(t, msg, "pgx")
	}
}

func TestParsePrice(t *testing.T) {
	p, err := parsePrice(" 25.99 ")
	require.NoError(t, err)
	assert.Equal(t, "25.99", p.StringFixed(2))

	_, err = parsePrice("")
	assert.ErrorIs(t, err, e.ErrMissingFields)
	_, err = parsePrice("abc")
	assert.ErrorIs(t, err, e.ErrInvalidPrice)
	_, err = parsePrice("-1")
	assert.ErrorIs(t, err, e.ErrNegativePrice)
	_, err = parsePrice("1.999")
	assert.ErrorIs(t, err, e.ErrPricePrecision)
	_, err = parsePrice("2000000000")
	assert.ErrorIs(t, err, e.ErrInvalidPrice)
}
