package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// ProductHandler — администрирование каталога.
type ProductHandler struct {
	productUC usecase.ProductAdminUC
	logger    logger.Logger
}

func NewProductHandler(productUC usecase.ProductAdminUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUC: productUC, logger: logger}
}

// createProduct
//
//	@Summary		Добавление товара
//	@Description	Создаёт товар; первое загруженное изображение становится обложкой
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name		formData	string	true	"Название товара"
//	@Param			description	formData	string	false	"Описание"
//	@Param			category	formData	string	true	"Категория"
//	@Param			price		formData	number	true	"Цена"
//	@Param			stock		formData	int		false	"Остаток"
//	@Param			featured	formData	bool	false	"Рекомендуемый"
//	@Param			image		formData	string	false	"URL изображения, если файлы не переданы"
//	@Param			images		formData	file	false	"Изображения товара"
//	@Success		201			{object}	ProductDTO
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/admin/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	req, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil && !errors.Is(err, e.ErrNoImages) {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}
	req.Images = images

	product, err := p.productUC.CreateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductDTO(*product))
}

func parseProductForm(r *http.Request) (*usecase.CreateProductReq, error) {
	name := strings.TrimSpace(r.FormValue("name"))
	category := strings.TrimSpace(r.FormValue("category"))
	priceStr := r.FormValue("price")

	if name == "" || category == "" || strings.TrimSpace(priceStr) == "" {
		return nil, e.Wrap("name, category and price", e.ErrMissingFields)
	}

	price, err := parsePrice(priceStr)
	if err != nil {
		return nil, err
	}

	stock := 0
	if raw := strings.TrimSpace(r.FormValue("stock")); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil {
			return nil, e.Wrap("stock", e.ErrStatusBadRequest)
		}
	}

	featured := false
	if raw := strings.TrimSpace(r.FormValue("featured")); raw != "" {
		if featured, err = strconv.ParseBool(raw); err != nil {
			return nil, e.Wrap("featured", e.ErrStatusBadRequest)
		}
	}

	return &usecase.CreateProductReq{
		Name:        name,
		Description: r.FormValue("description"),
		Category:    domain.Category(category),
		Price:       price,
		Stock:       stock,
		Featured:    featured,
		ImageURL:    strings.TrimSpace(r.FormValue("image")),
	}, nil
}

// updateProduct
//
//	@Summary		Изменение товара
//	@Description	Меняет только переданные поля
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"ID товара"
//	@Param			body	body		UpdateProductRequest	true	"Изменяемые поля"
//	@Success		200		{object}	ProductDTO
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/admin/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var body UpdateProductRequest
	if err := decodeJSON(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	req := &usecase.UpdateProductReq{
		ID:          chi.URLParam(r, "id"),
		Name:        body.Name,
		Description: body.Description,
		Stock:       body.Stock,
		Featured:    body.Featured,
		ImageURL:    body.ImageURL,
	}
	if body.Category != nil {
		c := domain.Category(*body.Category)
		req.Category = &c
	}
	if body.Price != nil {
		price, err := parsePrice(*body.Price)
		if err != nil {
			WriteError(w, err)
			return
		}
		req.Price = &price
	}

	product, err := p.productUC.UpdateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("update product: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(*product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := p.productUC.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		p.logger.Warnf("delete product: %v", err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
