package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// CartHandler работает с корзиной сессии из заголовка X-Session-ID.
type CartHandler struct {
	cartUC usecase.CartUC
	logger logger.Logger
}

func NewCartHandler(cartUC usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUC: cartUC, logger: logger}
}

// getCart
//
//	@Summary		Корзина
//	@Description	Если X-Session-ID не передан, сервер выдаёт новый в ответном заголовке
//	@Tags			cart
//	@Produce		json
//	@Param			X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Success		200				{object}	CartResponse
//	@Router			/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartUC.GetCart(r.Context(), sessionFromCtx(r.Context()))
	h.respond(w, view, err)
}

// addItem
//
//	@Summary	Добавить товар в корзину
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		X-Session-ID	header		string				false	"Идентификатор сессии"
//	@Param		body			body		AddCartItemRequest	true	"Товар"
//	@Success	200				{object}	CartResponse
//	@Failure	404				{object}	ErrorResponse	"Товар не найден"
//	@Failure	409				{object}	ErrorResponse	"Нет в наличии"
//	@Router		/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.cartUC.AddItem(r.Context(), sessionFromCtx(r.Context()), req.ProductID)
	h.respond(w, view, err)
}

// setQuantity
//
//	@Summary		Изменить количество
//	@Description	Количество <= 0 удаляет позицию
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string				false	"Идентификатор сессии"
//	@Param			id				path		string				true	"ID товара"
//	@Param			body			body		SetQuantityRequest	true	"Количество"
//	@Success		200				{object}	CartResponse
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Quantity == nil {
		WriteError(w, e.ErrInvalidQuantity)
		return
	}

	view, err := h.cartUC.SetQuantity(r.Context(), sessionFromCtx(r.Context()), chi.URLParam(r, "id"), *req.Quantity)
	h.respond(w, view, err)
}

// removeItem
//
//	@Summary	Удалить позицию
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Param		id				path		string	true	"ID товара"
//	@Success	200				{object}	CartResponse
//	@Router		/cart/items/{id} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartUC.RemoveItem(r.Context(), sessionFromCtx(r.Context()), chi.URLParam(r, "id"))
	h.respond(w, view, err)
}

// clearCart
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Success	200				{object}	CartResponse
//	@Router		/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartUC.Clear(r.Context(), sessionFromCtx(r.Context()))
	h.respond(w, view, err)
}

func (h *CartHandler) respond(w http.ResponseWriter, view *usecase.CartView, err error) {
	if err != nil {
		h.logger.Warnf("cart operation failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(view))
}
