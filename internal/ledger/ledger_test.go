package ledger

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

func TestApplyAndReverse(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	userID := uuid.Must(uuid.NewV4())

	w, err := store.Write(ctx)
	require.NoError(t, err)

	walletID, err := w.Wallets.Insert(ctx, &wallet.WalletCreate{
		UserID:   userID,
		Name:     "Checking",
		Type:     finance.WalletBank,
		Currency: "USD",
		Balance:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	err = Apply(ctx, w.Wallets, userID, walletID, finance.TransactionIncome, decimal.NewFromInt(40))
	require.NoError(t, err)

	err = Apply(ctx, w.Wallets, userID, walletID, finance.TransactionExpense, decimal.NewFromInt(25))
	require.NoError(t, err)

	got, err := store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(115)), "balance was %s", got.Balance)

	// Reversing both effects restores the starting balance.
	err = Reverse(ctx, w.Wallets, userID, walletID, finance.TransactionIncome, decimal.NewFromInt(40))
	require.NoError(t, err)
	err = Reverse(ctx, w.Wallets, userID, walletID, finance.TransactionExpense, decimal.NewFromInt(25))
	require.NoError(t, err)

	got, err = store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)), "balance was %s", got.Balance)
}

func TestApply_UnknownWallet(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()

	w, err := store.Write(ctx)
	require.NoError(t, err)

	err = Apply(ctx, w.Wallets, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), finance.TransactionIncome, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, finance.ErrNotFound)
}
