package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	FeaturedProducts(ctx context.Context) ([]domain.Product, error)
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, productID string) (*CartView, error)
	SetQuantity(ctx context.Context, sessionID string, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID string, productID string) (*CartView, error)
	Clear(ctx context.Context, sessionID string) (*CartView, error)
}

type CheckoutUC interface {
	Checkout(ctx context.Context, req *CheckoutReq) (*domain.Order, error)
}

type ProductAdminUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ContactUC interface {
	SubmitMessage(ctx context.Context, req *SubmitMessageReq) (*domain.ContactMessage, error)
	ListMessages(ctx context.Context) ([]domain.ContactMessage, error)
	UpdateMessageStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error
}

type AuthUC interface {
	SignUp(ctx context.Context, req *SignUpReq) (*AuthRes, error)
	SignIn(ctx context.Context, req *SignInReq) (*AuthRes, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileReq) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
