package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/ledger"
	"github.com/carson-networks/finance-server/internal/storage"
)

// DeleteTransaction removes the row and reverses its balance effect.
// Deleting a recurring template also stops future firings.
type DeleteTransaction struct {
	Deps *Deps

	UserID        uuid.UUID
	TransactionID uuid.UUID
}

func (a *DeleteTransaction) Name() string { return "delete_transaction" }

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	old, err := writer.Transactions.FindByID(ctx, a.UserID, a.TransactionID)
	if err != nil {
		return err
	}

	if err := ledger.Reverse(ctx, writer.Wallets, a.UserID, old.WalletID, old.Type, old.Amount); err != nil {
		return err
	}
	if err := writer.Transactions.Delete(ctx, a.UserID, a.TransactionID); err != nil {
		return err
	}

	if old.Type == finance.TransactionExpense {
		return a.Deps.Monitor.Evaluate(ctx, writer, a.UserID, old.CategoryID, time.Now().UTC())
	}
	return nil
}
