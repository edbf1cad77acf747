package usecase

import (
	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// CATALOG USECASE

// ListProductsReq — параметры просмотра каталога.
type ListProductsReq struct {
	SearchTerm    string
	Category      domain.Category
	Page          int
	PageSize      int // 0 — размер страницы по умолчанию
	FeaturedFirst bool
}

// ListProductsRes — страница каталога с метаданными.
type ListProductsRes struct {
	Products     []domain.Product
	Page         int
	PageSize     int
	TotalPages   int
	TotalResults int
}

// CART USECASE

// CartView — снимок корзины для ответа клиенту.
type CartView struct {
	SessionID  string
	Lines      []domain.CartLine
	TotalItems int
	TotalPrice decimal.Decimal
}

// CHECKOUT USECASE

// CheckoutReq — данные формы оформления заказа.
type CheckoutReq struct {
	SessionID     string
	Customer      domain.Customer
	PaymentMethod string
}

// PRODUCT ADMIN USECASE

// CreateProductReq — запрос на добавление товара.
type CreateProductReq struct {
	Name        string
	Description string
	Category    domain.Category
	Price       decimal.Decimal
	Stock       int
	Featured    bool
	ImageURL    string         // используется, если Images пуст
	Images      []ProductImage // первое изображение становится обложкой
}

// UpdateProductReq — частичное обновление товара; nil-поля не меняются.
type UpdateProductReq struct {
	ID          string
	Name        *string
	Description *string
	Category    *domain.Category
	Price       *decimal.Decimal
	Stock       *int
	Featured    *bool
	ImageURL    *string
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// CONTACT USECASE

type SubmitMessageReq struct {
	Name    string
	Email   string
	Message string
}

// AUTH USECASE

type SignUpReq struct {
	Email    string
	Password string
	FullName string
}

type SignInReq struct {
	Email    string
	Password string
}

// UpdateProfileReq — новые данные личного кабинета. Пустые поля очищают значение.
type UpdateProfileReq struct {
	UserID          string
	FullName        string
	ShippingAddress string
	Phone           string
	City            string
	PostalCode      string
}

// AuthRes — выданный токен сессии и пользователь.
type AuthRes struct {
	Token string
	User  *domain.User
}

// INFRASTRUCTURE

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// WriteRawMessageReq — готовое сообщение для брокера.
type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// MAPPERS

func NewListProductsRes(products []domain.Product, page, pageSize, totalPages, totalResults int) *ListProductsRes {
	return &ListProductsRes{
		Products:     products,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		TotalResults: totalResults,
	}
}

func NewCartView(sessionID string, store *cart.Store) *CartView {
	return &CartView{
		SessionID:  sessionID,
		Lines:      store.Lines(),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
