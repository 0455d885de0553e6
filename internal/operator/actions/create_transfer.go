package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transfer"
)

// CreateTransfer records a pending limit reallocation between two
// budgets. No limit moves until the transfer is approved.
type CreateTransfer struct {
	Deps *Deps

	UserID       uuid.UUID
	FromBudgetID uuid.UUID
	ToBudgetID   uuid.UUID
	Amount       decimal.Decimal

	// Set on success.
	TransferID uuid.UUID
}

func (a *CreateTransfer) Name() string { return "create_transfer" }

func (a *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if !a.Amount.IsPositive() {
		return finance.Validationf("transfer amount must be positive, got %s", a.Amount)
	}
	if a.FromBudgetID == a.ToBudgetID {
		return finance.Validationf("source and destination budget must differ")
	}

	from, err := writer.Budgets.FindByID(ctx, a.UserID, a.FromBudgetID)
	if err != nil {
		return err
	}
	to, err := writer.Budgets.FindByID(ctx, a.UserID, a.ToBudgetID)
	if err != nil {
		return err
	}
	if from.LimitAmount.LessThan(a.Amount) {
		return finance.ErrInsufficientFunds
	}

	fromCat, err := writer.Categories.FindByID(ctx, a.UserID, from.CategoryID)
	if err != nil {
		return err
	}
	toCat, err := writer.Categories.FindByID(ctx, a.UserID, to.CategoryID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	id, err := writer.Transfers.Insert(ctx, &transfer.TransferCreate{
		UserID:           a.UserID,
		FromBudgetID:     a.FromBudgetID,
		ToBudgetID:       a.ToBudgetID,
		FromCategoryName: fromCat.Name,
		ToCategoryName:   toCat.Name,
		Amount:           a.Amount,
		RequestedAt:      now,
	})
	if err != nil {
		return err
	}
	a.TransferID = id

	_, err = a.Deps.Notifier.Create(ctx, writer.Notifications, notify.Note{
		UserID: a.UserID,
		Title:  "Budget transfer requested",
		Message: "Move " + a.Amount.StringFixed(2) + " from " + fromCat.Name +
			" to " + toCat.Name + "?",
		Payload: finance.TransferRequestPayload{
			TransferID:   id,
			FromBudgetID: a.FromBudgetID,
			ToBudgetID:   a.ToBudgetID,
			FromCategory: fromCat.Name,
			ToCategory:   toCat.Name,
			Amount:       a.Amount,
		},
	})
	return err
}
