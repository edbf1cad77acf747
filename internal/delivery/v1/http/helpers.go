package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/storefront/internal/infrastructure"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

var badRequestErrors = []error{
	e.ErrStatusBadRequest,
	e.ErrExpectedMultipart,
	e.ErrExpectedJSON,
	e.ErrMissingFields,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrTooManyImages,
	e.ErrNoImages,
	e.ErrFileTooLarge,
	e.ErrUnsupportedMediaType,
	e.ErrProductNameRequired,
	e.ErrProfileFieldTooLong,
	e.ErrNegativePrice,
	e.ErrNegativeStock,
	e.ErrInvalidCategory,
	e.ErrInvalidPage,
	e.ErrInvalidPageSize,
	e.ErrInvalidQuantity,
	e.ErrProductIDRequired,
	e.ErrSessionRequired,
	e.ErrCheckoutFieldsRequired,
	e.ErrInvalidEmail,
	e.ErrWeakPassword,
	e.ErrInvalidRole,
	e.ErrInvalidMessageStatus,
}

var statusErrors = []struct {
	code int
	errs []error
}{
	{http.StatusBadRequest, badRequestErrors},
	{http.StatusUnauthorized, []error{e.ErrUnauthorized, e.ErrInvalidCredentials}},
	{http.StatusForbidden, []error{e.ErrForbidden}},
	{http.StatusNotFound, []error{e.ErrProductNotFound, e.ErrUserNotFound, e.ErrContactMessageNotFound}},
	{http.StatusConflict, []error{e.ErrProductOutOfStock, e.ErrEmptyCart, e.ErrEmailTaken}},
	{http.StatusPaymentRequired, []error{e.ErrPaymentFailed}},
}

// ToHTTPResponse переводит ошибку в HTTP-код и сообщение для клиента.
// Неизвестные ошибки скрываются за 500.
func ToHTTPResponse(err error) (int, string) {
	for _, group := range statusErrors {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.code, target.Error()
			}
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePrice разбирает строку вида "25.99" или "26".
// Отрицательные значения, больше двух знаков после точки и суммы больше 1e9 отклоняются.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, e.ErrMissingFields
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.IsNegative() {
		return decimal.Zero, e.ErrNegativePrice
	}

	if d.GreaterThan(decimal.NewFromInt(1_000_000_000)) {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return decimal.Zero, e.ErrPricePrecision
	}

	return d, nil
}

// parseIntParam читает целый query-параметр; пустое значение даёт def.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	return strconv.Atoi(raw)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	const maxBodySize = 1 << 20

	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedJSON)
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	if !infrastructure.IsSupportedImage(mimeType) {
		return nil, "", e.Wrap(fh.Filename, e.ErrUnsupportedMediaType)
	}

	return data, mimeType, nil
}
