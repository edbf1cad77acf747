package e

import "fmt"

var (
	// Внутренние ошибки
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
	ErrCacheMiss            = fmt.Errorf("cache miss")
	ErrStaleCache           = fmt.Errorf("cache generation changed")

	// 400 Bad Request
	ErrStatusBadRequest       = fmt.Errorf("bad request")
	ErrExpectedMultipart      = fmt.Errorf("expected multipart/form-data")
	ErrExpectedJSON           = fmt.Errorf("expected application/json body")
	ErrMissingFields          = fmt.Errorf("missing required fields")
	ErrInvalidPrice           = fmt.Errorf("invalid price")
	ErrPricePrecision         = fmt.Errorf("price must have at most 2 decimal places")
	ErrTooManyImages          = fmt.Errorf("too many images")
	ErrNoImages               = fmt.Errorf("no images provided")
	ErrFileTooLarge           = fmt.Errorf("file too large")
	ErrUnsupportedMediaType   = fmt.Errorf("unsupported media type")
	ErrProductNameRequired    = fmt.Errorf("product name is required")
	ErrNegativePrice          = fmt.Errorf("price cannot be negative")
	ErrNegativeStock          = fmt.Errorf("stock cannot be negative")
	ErrInvalidCategory        = fmt.Errorf("invalid category")
	ErrInvalidPage            = fmt.Errorf("page must be a positive integer")
	ErrInvalidPageSize        = fmt.Errorf("page size out of range")
	ErrInvalidQuantity        = fmt.Errorf("invalid quantity")
	ErrProductIDRequired      = fmt.Errorf("product id is required")
	ErrSessionRequired        = fmt.Errorf("session id is required")
	ErrCheckoutFieldsRequired = fmt.Errorf("email, first name, last name, address and city are required")
	ErrInvalidEmail           = fmt.Errorf("invalid email")
	ErrWeakPassword           = fmt.Errorf("password must be at least 6 characters")
	ErrInvalidRole            = fmt.Errorf("invalid role")
	ErrInvalidMessageStatus   = fmt.Errorf("invalid message status")
	ErrProfileFieldTooLong    = fmt.Errorf("profile field is too long")

	// 401 / 403
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrForbidden          = fmt.Errorf("forbidden")

	// 404 Not Found
	ErrProductNotFound        = fmt.Errorf("product not found")
	ErrUserNotFound           = fmt.Errorf("user not found")
	ErrContactMessageNotFound = fmt.Errorf("contact message not found")

	// 409 Conflict
	ErrProductOutOfStock = fmt.Errorf("product is out of stock")
	ErrEmptyCart         = fmt.Errorf("cart is empty")
	ErrEmailTaken        = fmt.Errorf("email already registered")

	// 402 Payment Required
	ErrPaymentFailed = fmt.Errorf("payment failed")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
