package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage"
)

type MarkNotificationRead struct {
	UserID         uuid.UUID
	NotificationID uuid.UUID
}

func (a *MarkNotificationRead) Name() string { return "mark_notification_read" }

func (a *MarkNotificationRead) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Notifications.MarkRead(ctx, a.UserID, a.NotificationID)
}

type MarkAllNotificationsRead struct {
	UserID uuid.UUID

	// Set on success.
	Updated int64
}

func (a *MarkAllNotificationsRead) Name() string { return "mark_all_notifications_read" }

func (a *MarkAllNotificationsRead) Perform(ctx context.Context, writer *storage.Writer) error {
	updated, err := writer.Notifications.MarkAllRead(ctx, a.UserID)
	if err != nil {
		return err
	}
	a.Updated = updated
	return nil
}

type DeleteReadNotifications struct {
	UserID uuid.UUID

	// Set on success.
	Deleted int64
}

func (a *DeleteReadNotifications) Name() string { return "delete_read_notifications" }

func (a *DeleteReadNotifications) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Notifications.DeleteRead(ctx, a.UserID)
	if err != nil {
		return err
	}
	a.Deleted = deleted
	return nil
}

type DeleteNotification struct {
	UserID         uuid.UUID
	NotificationID uuid.UUID
}

func (a *DeleteNotification) Name() string { return "delete_notification" }

func (a *DeleteNotification) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Notifications.Delete(ctx, a.UserID, a.NotificationID)
}
