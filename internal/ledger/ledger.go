// Package ledger owns the wallet balance discipline: every transaction
// mutation goes through an atomic signed increment, and every update or
// delete reverses the old effect before (possibly) applying a new one.
package ledger

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

// Apply adjusts the wallet balance by the transaction's effect:
// +amount for income, -amount for expense.
func Apply(ctx context.Context, wallets wallet.IWalletWriter, userID, walletID uuid.UUID, transactionType finance.TransactionType, amount decimal.Decimal) error {
	return wallets.AddBalance(ctx, userID, walletID, transactionType.SignedDelta(amount))
}

// Reverse undoes a previously applied transaction effect.
func Reverse(ctx context.Context, wallets wallet.IWalletWriter, userID, walletID uuid.UUID, transactionType finance.TransactionType, amount decimal.Decimal) error {
	return wallets.AddBalance(ctx, userID, walletID, transactionType.SignedDelta(amount).Neg())
}
