package actions

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

type UpdateWallet struct {
	UserID   uuid.UUID
	WalletID uuid.UUID
	Update   wallet.WalletUpdate
}

func (a *UpdateWallet) Name() string { return "update_wallet" }

func (a *UpdateWallet) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Update.Name == nil && a.Update.ExcludedFromTotal == nil {
		return finance.Validationf("nothing to update")
	}
	if a.Update.Name != nil && strings.TrimSpace(*a.Update.Name) == "" {
		return finance.Validationf("wallet name must not be empty")
	}
	return writer.Wallets.Update(ctx, a.UserID, a.WalletID, &a.Update)
}
