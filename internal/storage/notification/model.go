package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
)

// Notification is a stored alert for a user. Payload holds the typed
// JSON body for the notification kind; BudgetID is set on budget alerts
// and drives the per-day dedup check.
type Notification struct {
	ID        uuid.UUID                `db:"id"`
	UserID    uuid.UUID                `db:"user_id"`
	Type      finance.NotificationType `db:"type"`
	Title     string                   `db:"title"`
	Message   string                   `db:"message"`
	BudgetID  uuid.NullUUID            `db:"budget_id"`
	Payload   []byte                   `db:"payload"`
	Read      bool                     `db:"read"`
	CreatedAt time.Time                `db:"created_at"`
}

// NotificationCreate is the input for persisting a notification.
type NotificationCreate struct {
	UserID   uuid.UUID
	Type     finance.NotificationType
	Title    string
	Message  string
	BudgetID uuid.NullUUID
	Payload  []byte
}

// NotificationFilter narrows listings.
type NotificationFilter struct {
	UnreadOnly bool
	Limit      int64
	Offset     int64
}

type INotificationReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Notification, error)
	List(ctx context.Context, userID uuid.UUID, filter *NotificationFilter) ([]*Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	// ExistsForBudgetOnDay reports whether any notification tied to the
	// budget was created during the UTC day containing `day`.
	ExistsForBudgetOnDay(ctx context.Context, userID, budgetID uuid.UUID, day time.Time) (bool, error)
}

type INotificationWriter interface {
	INotificationReader
	Insert(ctx context.Context, create *NotificationCreate) (uuid.UUID, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return finance.ErrNotFound
	}
	return err
}
