package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUC
	logger     logger.Logger
}

func NewCheckoutHandler(checkoutUC usecase.CheckoutUC, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: checkoutUC, logger: logger}
}

// checkout
//
//	@Summary		Оформление заказа
//	@Description	Оплачивает корзину сессии, сохраняет заказ и очищает корзину
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			true	"Идентификатор сессии"
//	@Param			body			body		CheckoutRequest	true	"Данные покупателя"
//	@Success		201				{object}	OrderResponse
//	@Failure		400				{object}	ErrorResponse	"Не заполнены обязательные поля"
//	@Failure		402				{object}	ErrorResponse	"Оплата отклонена"
//	@Failure		409				{object}	ErrorResponse	"Корзина пуста"
//	@Router			/checkout [post]
func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.checkoutUC.Checkout(r.Context(), &usecase.CheckoutReq{
		SessionID:     sessionFromCtx(r.Context()),
		Customer:      req.toCustomer(),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.logger.Warnf("checkout failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toOrderResponse(order))
}
