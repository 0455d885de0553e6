package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// ListNotificationsInput is the Huma input for listing notifications.
type ListNotificationsInput struct {
	UserID     string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	UnreadOnly bool   `query:"unreadOnly" doc:"Return only unread notifications"`
	Position   int64  `query:"position" minimum:"0" doc:"Pagination offset"`
	Limit      int64  `query:"limit" minimum:"0" maximum:"200" doc:"Page size, default 50"`
}

// Cursor points at the next page of notifications.
type Cursor struct {
	Position int64 `json:"position" doc:"Offset of the next page"`
	Limit    int64 `json:"limit" doc:"Page size"`
}

// ListNotificationsResponseBody is the response body for listing notifications.
type ListNotificationsResponseBody struct {
	Notifications []Notification `json:"notifications" doc:"Notifications newest first"`
	Cursor        *Cursor        `json:"cursor,omitempty" doc:"Present when more pages exist"`
}

// ListNotificationsOutput is the Huma output for listing notifications.
type ListNotificationsOutput struct {
	Body ListNotificationsResponseBody
}

// notificationLister is the interface for listing notifications.
type notificationLister interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, cursor *service.NotificationCursor) ([]service.Notification, *service.NotificationCursor, error)
}

// ListNotificationsHandler handles GET /v1/notification.
type ListNotificationsHandler struct {
	NotificationService notificationLister
	Logger              *logrus.Logger
}

// NewListNotificationsHandler creates a new ListNotificationsHandler.
func NewListNotificationsHandler(svc notificationLister, log *logrus.Logger) *ListNotificationsHandler {
	return &ListNotificationsHandler{NotificationService: svc, Logger: log}
}

// Register registers the list notifications endpoint with the Huma API.
func (h *ListNotificationsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/v1/notification",
		Summary:     "List notifications",
		Description: "Returns a page of notifications newest first.",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *ListNotificationsHandler) handle(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var cursor *service.NotificationCursor
	if input.Limit > 0 || input.Position > 0 {
		limit := input.Limit
		if limit == 0 {
			limit = 50
		}
		cursor = &service.NotificationCursor{Position: input.Position, Limit: limit}
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listNotificationsMs")
	}
	notifications, next, err := h.NotificationService.ListNotifications(ctx, userID, input.UnreadOnly, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.Map(err, "failed to list notifications")
	}
	if logData != nil {
		logData.AddData("notificationCount", len(notifications))
	}

	resp := ListNotificationsResponseBody{Notifications: make([]Notification, len(notifications))}
	for i, n := range notifications {
		resp.Notifications[i] = fromService(n)
	}
	if next != nil {
		resp.Cursor = &Cursor{Position: next.Position, Limit: next.Limit}
	}
	return &ListNotificationsOutput{Body: resp}, nil
}
