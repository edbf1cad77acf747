package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const maxPageSize = 100

type CatalogHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, logger: logger}
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Поиск по названию и описанию, фильтр по категории, постраничная выдача
//	@Tags			catalog
//	@Produce		json
//	@Param			search			query		string	false	"Строка поиска"
//	@Param			category		query		string	false	"Категория или all"
//	@Param			page			query		int		false	"Номер страницы, с 1"
//	@Param			page_size		query		int		false	"Размер страницы, 1..100"
//	@Param			featured_first	query		bool	false	"Рекомендуемые товары в начале"
//	@Success		200				{object}	ListProductsResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := parseListProductsReq(r)
	if err != nil {
		h.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	res, err := h.catalogUC.ListProducts(r.Context(), req)
	if err != nil {
		h.logger.Errorf(err, "failed to list products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toListProductsResponse(res))
}

func parseListProductsReq(r *http.Request) (*usecase.ListProductsReq, error) {
	q := r.URL.Query()

	page, err := parseIntParam(r, "page", 1)
	if err != nil || page < 1 {
		return nil, e.ErrInvalidPage
	}

	pageSize, err := parseIntParam(r, "page_size", catalog.DefaultPageSize)
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		return nil, e.ErrInvalidPageSize
	}

	featuredFirst := false
	if raw := q.Get("featured_first"); raw != "" {
		featuredFirst, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, e.Wrap("featured_first", e.ErrStatusBadRequest)
		}
	}

	return &usecase.ListProductsReq{
		SearchTerm:    q.Get("search"),
		Category:      domain.Category(q.Get("category")),
		Page:          page,
		PageSize:      pageSize,
		FeaturedFirst: featuredFirst,
	}, nil
}

// featuredProducts
//
//	@Summary	Рекомендуемые товары
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}		ProductDTO
//	@Failure	500	{object}	ErrorResponse
//	@Router		/products/featured [get]
func (h *CatalogHandler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.FeaturedProducts(r.Context())
	if err != nil {
		h.logger.Errorf(err, "failed to load featured products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTOs(products))
}

// getProduct
//
//	@Summary	Карточка товара
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ProductDTO
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUC.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("get product: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(*product))
}

// listCategories
//
//	@Summary	Категории каталога
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	CategoriesResponse
//	@Router		/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, _ *http.Request) {
	categories := make([]string, len(domain.KnownCategories))
	for i, c := range domain.KnownCategories {
		categories[i] = c.String()
	}

	WriteSuccess(w, http.StatusOK, &CategoriesResponse{Categories: categories})
}
