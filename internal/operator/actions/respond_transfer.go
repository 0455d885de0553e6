package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/storage"
)

// RespondTransfer approves or rejects a pending transfer. Approval
// moves limit between the budgets with two atomic increments inside the
// same transaction; a transfer already responded to fails with
// ErrAlreadyProcessed no matter how the race interleaves.
type RespondTransfer struct {
	Deps *Deps

	UserID     uuid.UUID
	TransferID uuid.UUID
	Approve    bool
}

func (a *RespondTransfer) Name() string { return "respond_transfer" }

func (a *RespondTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	t, err := writer.Transfers.FindByID(ctx, a.UserID, a.TransferID)
	if err != nil {
		return err
	}
	if t.Status.Terminal() {
		return finance.ErrAlreadyProcessed
	}

	now := time.Now().UTC()
	status := finance.TransferRejected
	if a.Approve {
		status = finance.TransferApproved

		from, err := writer.Budgets.FindByID(ctx, a.UserID, t.FromBudgetID)
		if err != nil {
			return err
		}
		if from.LimitAmount.LessThan(t.Amount) {
			return finance.ErrInsufficientFunds
		}
		if err := writer.Budgets.AddLimit(ctx, a.UserID, t.FromBudgetID, t.Amount.Neg()); err != nil {
			return err
		}
		if err := writer.Budgets.AddLimit(ctx, a.UserID, t.ToBudgetID, t.Amount); err != nil {
			return err
		}
	}

	if err := writer.Transfers.MarkResponded(ctx, a.UserID, a.TransferID, status, now); err != nil {
		return err
	}

	title := "Budget transfer rejected"
	message := "The transfer of " + t.Amount.StringFixed(2) + " from " + t.FromCategoryName +
		" to " + t.ToCategoryName + " was rejected"
	if a.Approve {
		title = "Budget transfer approved"
		message = t.Amount.StringFixed(2) + " moved from " + t.FromCategoryName +
			" to " + t.ToCategoryName
	}
	_, err = a.Deps.Notifier.Create(ctx, writer.Notifications, notify.Note{
		UserID:  a.UserID,
		Title:   title,
		Message: message,
		Payload: finance.InfoPayload{},
	})
	return err
}
