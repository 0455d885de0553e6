package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
)

type DeleteWallet struct {
	UserID   uuid.UUID
	WalletID uuid.UUID
}

func (a *DeleteWallet) Name() string { return "delete_wallet" }

func (a *DeleteWallet) Perform(ctx context.Context, writer *storage.Writer) error {
	count, err := writer.Transactions.CountByWallet(ctx, a.UserID, a.WalletID)
	if err != nil {
		return err
	}
	if count > 0 {
		return finance.Conflictf("wallet has %d transactions; delete them first", count)
	}
	return writer.Wallets.Delete(ctx, a.UserID, a.WalletID)
}
