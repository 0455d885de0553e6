package finance

import (
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// NotificationType tags the kind of a notification and selects which
// payload struct its data unmarshals into.
type NotificationType string

const (
	NotificationBudgetWarning   NotificationType = "budget_warning"
	NotificationBudgetExceeded  NotificationType = "budget_exceeded"
	NotificationTransferRequest NotificationType = "budget_transfer_request"
	NotificationRecurring       NotificationType = "recurring_transaction"
	NotificationAnomaly         NotificationType = "anomaly_detected"
	NotificationInfo            NotificationType = "info"
)

// NotificationPayload is the closed union of per-kind notification data.
// Each kind carries only the fields it needs.
type NotificationPayload interface {
	NotificationType() NotificationType
}

// BudgetWarningPayload accompanies a budget_warning notification.
type BudgetWarningPayload struct {
	BudgetID   uuid.UUID       `json:"budgetId"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
}

func (BudgetWarningPayload) NotificationType() NotificationType { return NotificationBudgetWarning }

// BudgetExceededPayload accompanies a budget_exceeded notification.
type BudgetExceededPayload struct {
	BudgetID   uuid.UUID       `json:"budgetId"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
	Deficit    decimal.Decimal `json:"deficit"`
}

func (BudgetExceededPayload) NotificationType() NotificationType { return NotificationBudgetExceeded }

// TransferRequestPayload accompanies a budget_transfer_request
// notification, both for user-initiated transfers and for transfers the
// budget monitor suggests to cover a deficit.
type TransferRequestPayload struct {
	TransferID   uuid.UUID       `json:"transferId"`
	FromBudgetID uuid.UUID       `json:"fromBudgetId"`
	ToBudgetID   uuid.UUID       `json:"toBudgetId"`
	FromCategory string          `json:"fromCategory"`
	ToCategory   string          `json:"toCategory"`
	Amount       decimal.Decimal `json:"amount"`
	Suggested    bool            `json:"suggested"`
}

func (TransferRequestPayload) NotificationType() NotificationType { return NotificationTransferRequest }

// RecurringPayload accompanies a recurring_transaction notification.
type RecurringPayload struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	TemplateID    uuid.UUID       `json:"templateId"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	CategoryName  string          `json:"categoryName"`
}

func (RecurringPayload) NotificationType() NotificationType { return NotificationRecurring }

// AnomalyPayload accompanies an anomaly_detected notification.
type AnomalyPayload struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Baseline      decimal.Decimal `json:"baseline"`
	Ratio         decimal.Decimal `json:"ratio"`
	Severity      string          `json:"severity"`
}

func (AnomalyPayload) NotificationType() NotificationType { return NotificationAnomaly }

// InfoPayload accompanies a plain informational notification.
type InfoPayload struct{}

func (InfoPayload) NotificationType() NotificationType { return NotificationInfo }

// MarshalPayload encodes a payload for storage.
func MarshalPayload(p NotificationPayload) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// UnmarshalPayload decodes stored payload bytes according to the tagged
// notification type.
func UnmarshalPayload(t NotificationType, raw []byte) (NotificationPayload, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	decode := func(into NotificationPayload) (NotificationPayload, error) {
		if err := json.Unmarshal(raw, into); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return into, nil
	}
	switch t {
	case NotificationBudgetWarning:
		return decode(&BudgetWarningPayload{})
	case NotificationBudgetExceeded:
		return decode(&BudgetExceededPayload{})
	case NotificationTransferRequest:
		return decode(&TransferRequestPayload{})
	case NotificationRecurring:
		return decode(&RecurringPayload{})
	case NotificationAnomaly:
		return decode(&AnomalyPayload{})
	case NotificationInfo:
		return decode(&InfoPayload{})
	}
	return nil, fmt.Errorf("unknown notification type %q", t)
}
