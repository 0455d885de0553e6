package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/notification"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/transfer"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

type Reader struct {
	Wallets       wallet.IWalletReader
	Categories    category.ICategoryReader
	Transactions  transaction.ITransactionReader
	Budgets       budget.IBudgetReader
	Transfers     transfer.ITransferReader
	Notifications notification.INotificationReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Wallets:       wallet.NewReader(exec),
		Categories:    category.NewReader(exec),
		Transactions:  transaction.NewReader(exec),
		Budgets:       budget.NewReader(exec),
		Transfers:     transfer.NewReader(exec),
		Notifications: notification.NewReader(exec),
	}
}
