package http

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
)

// CATALOG

type ProductDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price" example:"25.99"`
	Image       string `json:"image"`
	Category    string `json:"category" example:"velas"`
	InStock     bool   `json:"in_stock"`
	Stock       int    `json:"stock"`
	Featured    bool   `json:"featured"`
}

type ListProductsResponse struct {
	Products     []ProductDTO `json:"products"`
	Page         int          `json:"page"`
	PageSize     int          `json:"page_size"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// CART

type CartLineDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartResponse struct {
	SessionID  string        `json:"session_id"`
	Items      []CartLineDTO `json:"items"`
	TotalItems int           `json:"total_items"`
	TotalPrice string        `json:"total_price" example:"51.98"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// CHECKOUT

type CheckoutRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method" example:"card"`
}

type OrderResponse struct {
	ID            string        `json:"id"`
	Items         []CartLineDTO `json:"items"`
	TotalItems    int           `json:"total_items"`
	TotalPrice    string        `json:"total_price"`
	PaymentMethod string        `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CONTACT

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactMessageDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status" example:"new"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" example:"read"`
}

// AUTH

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileDTO — данные личного кабинета.
type ProfileDTO struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	ShippingAddress string `json:"shipping_address"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
}

type UpdateProfileRequest struct {
	FullName        string `json:"full_name"`
	ShippingAddress string `json:"shipping_address"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" example:"admin"`
}

// ADMIN PRODUCTS

type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Price       *string `json:"price"`
	Stock       *int    `json:"stock"`
	Featured    *bool   `json:"featured"`
	ImageURL    *string `json:"image"`
}

// MAPPERS

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
		Category:    p.Category.String(),
		InStock:     p.InStock(),
		Stock:       p.Stock,
		Featured:    p.Featured,
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	res := make([]ProductDTO, len(products))
	for i, p := range products {
		res[i] = toProductDTO(p)
	}

	return res
}

func toListProductsResponse(res *usecase.ListProductsRes) *ListProductsResponse {
	return &ListProductsResponse{
		Products:     toProductDTOs(res.Products),
		Page:         res.Page,
		PageSize:     res.PageSize,
		TotalPages:   res.TotalPages,
		TotalResults: res.TotalResults,
	}
}

func toCartLineDTOs(lines []domain.CartLine) []CartLineDTO {
	res := make([]CartLineDTO, len(lines))
	for i, l := range lines {
		res[i] = CartLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Image:     l.Image,
			Category:  l.Category.String(),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal().StringFixed(2),
		}
	}

	return res
}

func toCartResponse(view *usecase.CartView) *CartResponse {
	return &CartResponse{
		SessionID:  view.SessionID,
		Items:      toCartLineDTOs(view.Lines),
		TotalItems: view.TotalItems,
		TotalPrice: view.TotalPrice.StringFixed(2),
	}
}

func toOrderResponse(o *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:            o.ID,
		Items:         toCartLineDTOs(o.Lines),
		TotalItems:    o.TotalItems,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
}

func toContactMessageDTO(m domain.ContactMessage) ContactMessageDTO {
	return ContactMessageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toProfileDTO(u *domain.User) ProfileDTO {
	return ProfileDTO{
		Email:           u.Email,
		FullName:        u.FullName,
		ShippingAddress: u.Profile.ShippingAddress,
		Phone:           u.Profile.Phone,
		City:            u.Profile.City,
		PostalCode:      u.Profile.PostalCode,
	}
}

func (r CheckoutRequest) toCustomer() domain.Customer {
	return domain.Customer{
		Email:      r.Email,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
		Phone:      r.Phone,
	}
}
