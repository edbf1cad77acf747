package domain

import "time"

type MessageStatus string

const (
	MessageStatusNew       MessageStatus = "new"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusResponded MessageStatus = "responded"
)

func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusNew, MessageStatusRead, MessageStatusResponded:
		return true
	default:
		return false
	}
}

// ContactMessage — сообщение из формы обратной связи
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Status    MessageStatus
	CreatedAt time.Time
}

func NewContactMessage(name, email, message string) *ContactMessage {
	return &ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  MessageStatusNew,
	}
}
