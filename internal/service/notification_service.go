package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	storagenotification "github.com/carson-networks/finance-server/internal/storage/notification"
)

const defaultNotificationLimit = 50

// Notification represents a notification in the service layer. Payload
// is decoded from the stored JSON according to Type.
type Notification struct {
	ID        uuid.UUID
	Type      finance.NotificationType
	Title     string
	Message   string
	Payload   finance.NotificationPayload
	Read      bool
	CreatedAt time.Time
}

// NotificationCursor identifies a position in a paginated result set.
type NotificationCursor struct {
	Position int64
	Limit    int64
}

// NotificationService handles notification read logic.
type NotificationService struct {
	storage *storage.Storage
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store *storage.Storage) *NotificationService {
	return &NotificationService{storage: store}
}

// ListNotifications returns a page of notifications newest-first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, cursor *NotificationCursor) ([]Notification, *NotificationCursor, error) {
	var limit int64 = defaultNotificationLimit
	var offset int64
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Notifications.List(ctx, userID, &storagenotification.NotificationFilter{
		UnreadOnly: unreadOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *NotificationCursor
	if int64(len(rows)) > limit {
		rows = rows[:limit]
		nextCursor = &NotificationCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Notification, len(rows))
	for i, row := range rows {
		n := Notification{
			ID:        row.ID,
			Type:      row.Type,
			Title:     row.Title,
			Message:   row.Message,
			Read:      row.Read,
			CreatedAt: row.CreatedAt,
		}
		payload, err := finance.UnmarshalPayload(row.Type, row.Payload)
		if err != nil {
			return nil, nil, err
		}
		n.Payload = payload
		converted[i] = n
	}
	return converted, nextCursor, nil
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.storage.Notifications.CountUnread(ctx, userID)
}
