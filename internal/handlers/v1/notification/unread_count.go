package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
)

// UnreadCountInput is the Huma input for the unread count.
type UnreadCountInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
}

// UnreadCountOutput is the Huma output for the unread count.
type UnreadCountOutput struct {
	Body struct {
		Count int64 `json:"count" doc:"Number of unread notifications"`
	}
}

// unreadCounter is the interface for counting unread notifications.
type unreadCounter interface {
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

// UnreadCountHandler handles GET /v1/notification/unread-count.
type UnreadCountHandler struct {
	NotificationService unreadCounter
}

// NewUnreadCountHandler creates a new UnreadCountHandler.
func NewUnreadCountHandler(svc unreadCounter) *UnreadCountHandler {
	return &UnreadCountHandler{NotificationService: svc}
}

// Register registers the unread count endpoint with the Huma API.
func (h *UnreadCountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "unread-notification-count",
		Method:      http.MethodGet,
		Path:        "/v1/notification/unread-count",
		Summary:     "Unread notification count",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *UnreadCountHandler) handle(ctx context.Context, input *UnreadCountInput) (*UnreadCountOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	count, err := h.NotificationService.UnreadCount(ctx, userID)
	if err != nil {
		return nil, apierr.Map(err, "failed to count unread notifications")
	}

	out := &UnreadCountOutput{}
	out.Body.Count = count
	return out, nil
}
