package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/notification"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/transfer"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

// TxControl is the commit/rollback surface of an open transaction.
type TxControl interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Tables bundles the per-entity write interfaces a Writer exposes.
type Tables struct {
	Wallets       wallet.IWalletWriter
	Categories    category.ICategoryWriter
	Transactions  transaction.ITransactionWriter
	Budgets       budget.IBudgetWriter
	Transfers     transfer.ITransferWriter
	Notifications notification.INotificationWriter
}

type Writer struct {
	tx TxControl

	Wallets       wallet.IWalletWriter
	Categories    category.ICategoryWriter
	Transactions  transaction.ITransactionWriter
	Budgets       budget.IBudgetWriter
	Transfers     transfer.ITransferWriter
	Notifications notification.INotificationWriter
}

func NewWriter(tx bob.Tx) Writer {
	return NewWriterWith(tx, Tables{
		Wallets:       wallet.NewWriter(tx),
		Categories:    category.NewWriter(tx),
		Transactions:  transaction.NewWriter(tx),
		Budgets:       budget.NewWriter(tx),
		Transfers:     transfer.NewWriter(tx),
		Notifications: notification.NewWriter(tx),
	})
}

// NewWriterWith assembles a Writer from explicit table implementations.
// In-memory stores use it to stand in for a database transaction.
func NewWriterWith(tx TxControl, tables Tables) Writer {
	return Writer{
		tx:            tx,
		Wallets:       tables.Wallets,
		Categories:    tables.Categories,
		Transactions:  tables.Transactions,
		Budgets:       tables.Budgets,
		Transfers:     tables.Transfers,
		Notifications: tables.Notifications,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
