package actions

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

type CreateWallet struct {
	UserID            uuid.UUID
	WalletName        string
	Type              finance.WalletType
	Currency          string
	Balance           decimal.Decimal
	ExcludedFromTotal bool

	// Set on success.
	WalletID uuid.UUID
}

func (a *CreateWallet) Name() string { return "create_wallet" }

func (a *CreateWallet) Perform(ctx context.Context, writer *storage.Writer) error {
	name := strings.TrimSpace(a.WalletName)
	if name == "" {
		return finance.Validationf("wallet name must not be empty")
	}
	currency := a.Currency
	if currency == "" {
		currency = "USD"
	}

	id, err := writer.Wallets.Insert(ctx, &wallet.WalletCreate{
		UserID:            a.UserID,
		Name:              name,
		Type:              a.Type,
		Currency:          currency,
		Balance:           a.Balance,
		ExcludedFromTotal: a.ExcludedFromTotal,
	})
	if err != nil {
		return err
	}
	a.WalletID = id
	return nil
}
