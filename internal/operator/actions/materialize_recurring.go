package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/ledger"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// MaterializeRecurring fires one due recurring template: it records the
// occurrence, applies the balance effect and advances the template's
// schedule, all in one transaction. A template that is no longer due
// when re-read is a no-op, which makes overlapping runs safe.
type MaterializeRecurring struct {
	Deps *Deps

	UserID     uuid.UUID
	TemplateID uuid.UUID
	AsOf       time.Time

	// Set when an occurrence was recorded.
	TransactionID uuid.UUID
	Fired         bool
}

func (a *MaterializeRecurring) Name() string { return "materialize_recurring" }

func (a *MaterializeRecurring) Perform(ctx context.Context, writer *storage.Writer) error {
	tmpl, err := writer.Transactions.FindByID(ctx, a.UserID, a.TemplateID)
	if err != nil {
		return err
	}
	if !tmpl.IsRecurring || !tmpl.NextFireAt.Valid || tmpl.NextFireAt.Time.After(a.AsOf) {
		return nil
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:       tmpl.UserID,
		WalletID:     tmpl.WalletID,
		CategoryID:   tmpl.CategoryID,
		Type:         tmpl.Type,
		Amount:       tmpl.Amount,
		Currency:     tmpl.Currency,
		ExchangeRate: tmpl.ExchangeRate,
		Tags:         tmpl.Tags,
		Note:         tmpl.Note,
		CreatedAt:    a.AsOf,
	})
	if err != nil {
		return err
	}
	a.TransactionID = id
	a.Fired = true

	if err := ledger.Apply(ctx, writer.Wallets, tmpl.UserID, tmpl.WalletID, tmpl.Type, tmpl.Amount); err != nil {
		return err
	}

	// The schedule advances from the due time, not from now, so a late
	// tick does not drift the cadence. A still-past next fire time is
	// picked up again on the following tick.
	next := tmpl.Frequency.Advance(tmpl.NextFireAt.Time)
	if err := writer.Transactions.AdvanceTemplate(ctx, tmpl.ID, a.AsOf, next); err != nil {
		return err
	}

	cat, err := writer.Categories.FindByID(ctx, tmpl.UserID, tmpl.CategoryID)
	if err != nil {
		return err
	}
	if _, err := a.Deps.Notifier.Create(ctx, writer.Notifications, notify.Note{
		UserID: tmpl.UserID,
		Title:  "Recurring transaction recorded",
		Message: "A recurring " + string(tmpl.Type) + " of " + tmpl.Amount.StringFixed(2) +
			" was recorded for " + cat.Name,
		Payload: finance.RecurringPayload{
			TransactionID: id,
			TemplateID:    tmpl.ID,
			Amount:        tmpl.Amount,
			Type:          tmpl.Type,
			CategoryName:  cat.Name,
		},
	}); err != nil {
		return err
	}

	if tmpl.Type == finance.TransactionExpense {
		return a.Deps.Monitor.Evaluate(ctx, writer, tmpl.UserID, tmpl.CategoryID, a.AsOf)
	}
	return nil
}
