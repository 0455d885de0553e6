package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func TestUpdateTransaction_ReappliesBalance(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 1000)
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	create := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(100),
		CreatedAt:  txTime,
	}
	require.NoError(t, create.Perform(ctx, w))

	newAmount := decimal.NewFromInt(60)
	update := &UpdateTransaction{
		Deps:          newTestDeps(),
		UserID:        userID,
		TransactionID: create.TransactionID,
		Update:        transaction.TransactionUpdate{Amount: &newAmount},
	}
	require.NoError(t, update.Perform(ctx, w))

	// The old 100 was reversed and the new 60 applied.
	wlt, err := store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, wlt.Balance.Equal(decimal.NewFromInt(940)), "balance was %s", wlt.Balance)
}

func TestUpdateTransaction_MovesBalanceBetweenWallets(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	firstWalletID := seedWallet(t, w, userID, 500)
	secondWalletID := seedWallet(t, w, userID, 500)
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	create := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   firstWalletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(100),
		CreatedAt:  txTime,
	}
	require.NoError(t, create.Perform(ctx, w))

	update := &UpdateTransaction{
		Deps:          newTestDeps(),
		UserID:        userID,
		TransactionID: create.TransactionID,
		Update:        transaction.TransactionUpdate{WalletID: &secondWalletID},
	}
	require.NoError(t, update.Perform(ctx, w))

	first, err := store.Reader().Wallets.FindByID(ctx, userID, firstWalletID)
	require.NoError(t, err)
	assert.True(t, first.Balance.Equal(decimal.NewFromInt(500)), "first balance was %s", first.Balance)

	second, err := store.Reader().Wallets.FindByID(ctx, userID, secondWalletID)
	require.NoError(t, err)
	assert.True(t, second.Balance.Equal(decimal.NewFromInt(400)), "second balance was %s", second.Balance)
}

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 1000)
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	create := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(100),
		CreatedAt:  txTime,
	}
	require.NoError(t, create.Perform(ctx, w))

	del := &DeleteTransaction{
		Deps:          newTestDeps(),
		UserID:        userID,
		TransactionID: create.TransactionID,
	}
	require.NoError(t, del.Perform(ctx, w))

	wlt, err := store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, wlt.Balance.Equal(decimal.NewFromInt(1000)), "balance was %s", wlt.Balance)

	_, err = store.Reader().Transactions.FindByID(ctx, userID, create.TransactionID)
	assert.ErrorIs(t, err, finance.ErrNotFound)
}

func TestDeleteWallet_BlockedByTransactions(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 1000)
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	create := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(10),
		CreatedAt:  txTime,
	}
	require.NoError(t, create.Perform(ctx, w))

	del := &DeleteWallet{UserID: userID, WalletID: walletID}
	assert.ErrorIs(t, del.Perform(ctx, w), finance.ErrConflict)

	cleanup := &DeleteTransaction{Deps: newTestDeps(), UserID: userID, TransactionID: create.TransactionID}
	require.NoError(t, cleanup.Perform(ctx, w))
	assert.NoError(t, del.Perform(ctx, w))
}
