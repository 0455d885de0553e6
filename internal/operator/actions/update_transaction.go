package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/ledger"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// UpdateTransaction reverses the old balance effect on the old wallet,
// applies the edit, then applies the new effect on the (possibly
// different) wallet, all in one transaction.
type UpdateTransaction struct {
	Deps *Deps

	UserID        uuid.UUID
	TransactionID uuid.UUID
	Update        transaction.TransactionUpdate
}

func (a *UpdateTransaction) Name() string { return "update_transaction" }

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	old, err := writer.Transactions.FindByID(ctx, a.UserID, a.TransactionID)
	if err != nil {
		return err
	}

	if a.Update.Amount != nil && !a.Update.Amount.IsPositive() {
		return finance.Validationf("amount must be positive, got %s", a.Update.Amount)
	}
	if a.Update.WalletID != nil {
		if _, err := writer.Wallets.FindByID(ctx, a.UserID, *a.Update.WalletID); err != nil {
			return err
		}
	}

	newType := old.Type
	if a.Update.Type != nil {
		newType = *a.Update.Type
	}
	newCategoryID := old.CategoryID
	if a.Update.CategoryID != nil {
		newCategoryID = *a.Update.CategoryID
	}
	cat, err := writer.Categories.FindByID(ctx, a.UserID, newCategoryID)
	if err != nil {
		return err
	}
	if cat.Type != newType {
		return finance.Validationf("category %q is for %s transactions", cat.Name, cat.Type)
	}

	if err := ledger.Reverse(ctx, writer.Wallets, a.UserID, old.WalletID, old.Type, old.Amount); err != nil {
		return err
	}
	if err := writer.Transactions.Update(ctx, a.UserID, a.TransactionID, &a.Update); err != nil {
		return err
	}
	updated, err := writer.Transactions.FindByID(ctx, a.UserID, a.TransactionID)
	if err != nil {
		return err
	}
	if err := ledger.Apply(ctx, writer.Wallets, a.UserID, updated.WalletID, updated.Type, updated.Amount); err != nil {
		return err
	}

	// Both the old and the new category can change state.
	now := time.Now().UTC()
	if old.Type == finance.TransactionExpense {
		if err := a.Deps.Monitor.Evaluate(ctx, writer, a.UserID, old.CategoryID, now); err != nil {
			return err
		}
	}
	if updated.Type == finance.TransactionExpense && updated.CategoryID != old.CategoryID {
		if err := a.Deps.Monitor.Evaluate(ctx, writer, a.UserID, updated.CategoryID, now); err != nil {
			return err
		}
	}
	return nil
}
