package notification

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// Notification is the API response model for a notification.
type Notification struct {
	ID        string `json:"id" doc:"Notification UUID"`
	Type      string `json:"type" doc:"Notification type"`
	Title     string `json:"title" doc:"Short title"`
	Message   string `json:"message" doc:"Human-readable message"`
	Payload   any    `json:"payload,omitempty" doc:"Type-specific payload"`
	Read      bool   `json:"read" doc:"True once marked read"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(n service.Notification) Notification {
	return Notification{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Payload:   n.Payload,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
