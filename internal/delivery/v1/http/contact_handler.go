package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ContactHandler struct {
	contactUC usecase.ContactUC
	logger    logger.Logger
}

func NewContactHandler(contactUC usecase.ContactUC, logger logger.Logger) *ContactHandler {
	return &ContactHandler{contactUC: contactUC, logger: logger}
}

// submitMessage
//
//	@Summary	Форма обратной связи
//	@Tags		contact
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ContactRequest	true	"Сообщение"
//	@Success	201		{object}	ContactMessageDTO
//	@Failure	400		{object}	ErrorResponse
//	@Router		/contact [post]
func (h *ContactHandler) submitMessage(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	msg, err := h.contactUC.SubmitMessage(r.Context(), &usecase.SubmitMessageReq{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.logger.Warnf("submit contact message: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toContactMessageDTO(*msg))
}

// listMessages
//
//	@Summary	Сообщения обратной связи
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	ContactMessageDTO
//	@Router		/admin/messages [get]
func (h *ContactHandler) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.contactUC.ListMessages(r.Context())
	if err != nil {
		h.logger.Errorf(err, "failed to list contact messages")
		WriteError(w, err)
		return
	}

	res := make([]ContactMessageDTO, len(msgs))
	for i, m := range msgs {
		res[i] = toContactMessageDTO(m)
	}

	WriteSuccess(w, http.StatusOK, res)
}

// updateStatus
//
//	@Summary	Сменить статус сообщения
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID сообщения"
//	@Param		body	body		UpdateStatusRequest	true	"new, read или responded"
//	@Success	200		{object}	ContactMessageDTO
//	@Router		/admin/messages/{id}/status [put]
func (h *ContactHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	msg, err := h.contactUC.UpdateMessageStatus(r.Context(), chi.URLParam(r, "id"), domain.MessageStatus(req.Status))
	if err != nil {
		h.logger.Warnf("update message status: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toContactMessageDTO(*msg))
}

// deleteMessage
//
//	@Summary	Удалить сообщение
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID сообщения"
//	@Success	204
//	@Router		/admin/messages/{id} [delete]
func (h *ContactHandler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.contactUC.DeleteMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Warnf("delete message: %v", err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
