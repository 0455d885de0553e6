// Package notify persists notifications and pushes them toward live
// sessions. Persistence is part of the caller's transaction; delivery is
// best-effort and never fails the caller.
package notify

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/metrics"
	"github.com/carson-networks/finance-server/internal/push"
	"github.com/carson-networks/finance-server/internal/storage/notification"
)

// Note is one notification to record. BudgetID ties budget alerts to
// their budget for the once-per-day dedup check.
type Note struct {
	UserID   uuid.UUID
	Title    string
	Message  string
	BudgetID uuid.NullUUID
	Payload  finance.NotificationPayload
}

type Notifier struct {
	deliverer push.Deliverer
	log       *logrus.Logger
}

func NewNotifier(deliverer push.Deliverer, log *logrus.Logger) *Notifier {
	return &Notifier{
		deliverer: deliverer,
		log:       log,
	}
}

// Create persists the note through the given writer and pushes it out.
// A delivery failure is logged and swallowed.
func (n *Notifier) Create(ctx context.Context, notifications notification.INotificationWriter, note Note) (uuid.UUID, error) {
	kind := note.Payload.NotificationType()
	raw, err := finance.MarshalPayload(note.Payload)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := notifications.Insert(ctx, &notification.NotificationCreate{
		UserID:   note.UserID,
		Type:     kind,
		Title:    note.Title,
		Message:  note.Message,
		BudgetID: note.BudgetID,
		Payload:  raw,
	})
	if err != nil {
		return uuid.Nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(string(kind)).Inc()

	if err := n.deliverer.Deliver(ctx, push.Event{
		UserID:  note.UserID.String(),
		Kind:    string(kind),
		Title:   note.Title,
		Message: note.Message,
		Payload: note.Payload,
	}); err != nil {
		n.log.WithError(err).WithFields(logrus.Fields{
			"user_id": note.UserID,
			"kind":    kind,
		}).Warn("push delivery failed")
	}

	return id, nil
}
