package http

import (
	_ "github.com/DRSN-tech/storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// UseCases — зависимости HTTP-слоя.
type UseCases struct {
	Catalog  usecase.CatalogUC
	Cart     usecase.CartUC
	Checkout usecase.CheckoutUC
	Products usecase.ProductAdminUC
	Contact  usecase.ContactUC
	Auth     usecase.AuthUC
}

type Router struct {
	router     *chi.Mux
	swaggerURL string
	logger     logger.Logger
}

func NewRouter(router *chi.Mux, swaggerURL string, logger logger.Logger) *Router {
	return &Router{router: router, swaggerURL: swaggerURL, logger: logger}
}

func (r *Router) Init(uc UseCases) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(r.swaggerURL), // ссылка на JSON
	))

	auth := NewAuthMiddleware(uc.Auth, r.logger)
	catalogHandler := NewCatalogHandler(uc.Catalog, r.logger)
	cartHandler := NewCartHandler(uc.Cart, r.logger)
	checkoutHandler := NewCheckoutHandler(uc.Checkout, r.logger)
	contactHandler := NewContactHandler(uc.Contact, r.logger)
	authHandler := NewAuthHandler(uc.Auth, r.logger)
	productHandler := NewProductHandler(uc.Products, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCatalogRoutes(v1, catalogHandler)
		registerCartRoutes(v1, cartHandler, checkoutHandler)
		v1.Post("/contact", contactHandler.submitMessage)
		registerAuthRoutes(v1, auth, authHandler)

		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(auth.RequireUser, auth.RequireAdmin)
			registerAdminRoutes(admin, productHandler, authHandler, contactHandler)
		})
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/categories", h.listCategories)
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/featured", h.featuredProducts)
		pr.Get("/{id}", h.getProduct)
	})
}

func registerCartRoutes(router chi.Router, cart *CartHandler, checkout *CheckoutHandler) {
	router.Group(func(s chi.Router) {
		s.Use(SessionMiddleware)

		s.Route("/cart", func(c chi.Router) {
			c.Get("/", cart.getCart)
			c.Delete("/", cart.clearCart)
			c.Post("/items", cart.addItem)
			c.Put("/items/{id}", cart.setQuantity)
			c.Delete("/items/{id}", cart.removeItem)
		})
		s.Post("/checkout", checkout.checkout)
	})
}

func registerAuthRoutes(router chi.Router, auth *AuthMiddleware, h *AuthHandler) {
	router.Route("/auth", func(a chi.Router) {
		a.Post("/signup", h.signUp)
		a.Post("/signin", h.signIn)
		a.With(auth.RequireUser).Post("/signout", h.signOut)
		a.Group(func(me chi.Router) {
			me.Use(auth.RequireUser)
			me.Get("/me", h.me)
			me.Get("/me/profile", h.getProfile)
			me.Put("/me/profile", h.updateProfile)
		})
	})
}

func registerAdminRoutes(router chi.Router, products *ProductHandler, users *AuthHandler, messages *ContactHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", products.createProduct)
		pr.Put("/{id}", products.updateProduct)
		pr.Delete("/{id}", products.deleteProduct)
	})
	router.Route("/users", func(u chi.Router) {
		u.Get("/", users.listUsers)
		u.Put("/{id}/role", users.updateRole)
		u.Delete("/{id}", users.deleteUser)
	})
	router.Route("/messages", func(m chi.Router) {
		m.Get("/", messages.listMessages)
		m.Put("/{id}/status", messages.updateStatus)
		m.Delete("/{id}", messages.deleteMessage)
	})
}
