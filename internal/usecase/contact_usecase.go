package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// ContactUseCase принимает сообщения формы обратной связи и ведёт их статус.
type ContactUseCase struct {
	messageRepo ContactMessageRepository
	logger      logger.Logger
}

func NewContactUC(messageRepo ContactMessageRepository, logger logger.Logger) *ContactUseCase {
	return &ContactUseCase{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (c *ContactUseCase) SubmitMessage(ctx context.Context, req *SubmitMessageReq) (*domain.ContactMessage, error) {
	const op = "ContactUseCase.SubmitMessage"

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}
	if !validEmail(email) {
		return nil, e.Wrap(op, e.ErrInvalidEmail)
	}

	msg, err := c.messageRepo.Create(ctx, domain.NewContactMessage(name, email, message))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("Contact message received. id: %s", msg.ID)

	return msg, nil
}

// ListMessages возвращает сообщения, новые первыми.
func (c *ContactUseCase) ListMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	const op = "ContactUseCase.ListMessages"

	msgs, err := c.messageRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return msgs, nil
}

func (c *ContactUseCase) UpdateMessageStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.ContactMessage, error) {
	const op = "ContactUseCase.UpdateMessageStatus"

	if !status.Valid() {
		return nil, e.Wrap(op, e.ErrInvalidMessageStatus)
	}

	msg, err := c.messageRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return msg, nil
}

func (c *ContactUseCase) DeleteMessage(ctx context.Context, id string) error {
	const op = "ContactUseCase.DeleteMessage"

	if err := c.messageRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
