package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

var txTime = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestCreateTransaction_AppliesBalance(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 1000)
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	action := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(75),
		CreatedAt:  txTime,
	}
	require.NoError(t, action.Perform(ctx, w))
	assert.NotEqual(t, uuid.Nil, action.TransactionID)

	wlt, err := store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, wlt.Balance.Equal(decimal.NewFromInt(925)), "balance was %s", wlt.Balance)

	// Currency defaults to the wallet's.
	row, err := store.Reader().Transactions.FindByID(ctx, userID, action.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "USD", row.Currency)
}

func TestCreateTransaction_IncomeAddsBalance(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 100)
	categoryID := seedCategory(t, w, userID, "Salary", finance.TransactionIncome)

	action := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionIncome,
		Amount:     decimal.NewFromInt(2500),
		CreatedAt:  txTime,
	}
	require.NoError(t, action.Perform(ctx, w))

	wlt, err := store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, wlt.Balance.Equal(decimal.NewFromInt(2600)), "balance was %s", wlt.Balance)
}

func TestCreateTransaction_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)

	action := &CreateTransaction{
		Deps:   newTestDeps(),
		UserID: uuid.Must(uuid.NewV4()),
		Type:   finance.TransactionExpense,
		Amount: decimal.Zero,
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)
}

func TestCreateTransaction_RejectsCategoryTypeMismatch(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 100)
	categoryID := seedCategory(t, w, userID, "Salary", finance.TransactionIncome)

	action := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(10),
		CreatedAt:  txTime,
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)
}

func TestCreateTransaction_RecurringSchedulesNextFire(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 1000)
	categoryID := seedCategory(t, w, userID, "Rent", finance.TransactionExpense)

	action := &CreateTransaction{
		Deps:        newTestDeps(),
		UserID:      userID,
		WalletID:    walletID,
		CategoryID:  categoryID,
		Type:        finance.TransactionExpense,
		Amount:      decimal.NewFromInt(800),
		IsRecurring: true,
		Frequency:   finance.FrequencyMonthly,
		CreatedAt:   txTime,
	}
	require.NoError(t, action.Perform(ctx, w))

	row, err := store.Reader().Transactions.FindByID(ctx, userID, action.TransactionID)
	require.NoError(t, err)
	assert.True(t, row.IsRecurring)
	require.True(t, row.NextFireAt.Valid)
	assert.Equal(t, finance.FrequencyMonthly.Advance(txTime), row.NextFireAt.Time)
}

func TestCreateTransaction_ExpenseTriggersBudgetAlert(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 1000)
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)
	seedBudget(t, w, userID, categoryID, 100,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC))

	action := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(120),
		CreatedAt:  txTime,
	}
	require.NoError(t, action.Perform(ctx, w))

	notifications := store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationBudgetExceeded, notifications[0].Type)
}

func TestCreateTransaction_AnomalyCheckRunsBeforeBudgetAlert(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	walletID := seedWallet(t, w, userID, 1000)
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)
	seedBudget(t, w, userID, categoryID, 95,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC))

	for i := 1; i <= 5; i++ {
		_, err := w.Transactions.Insert(ctx, &transaction.TransactionCreate{
			UserID:     userID,
			WalletID:   walletID,
			CategoryID: categoryID,
			Type:       finance.TransactionExpense,
			Amount:     decimal.NewFromInt(10),
			Currency:   "USD",
			CreatedAt:  txTime.AddDate(0, 0, -i),
		})
		require.NoError(t, err)
	}

	action := &CreateTransaction{
		Deps:       newTestDeps(),
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(50),
		CreatedAt:  txTime,
	}
	require.NoError(t, action.Perform(ctx, w))

	// The unusual-spend check reports before the budget re-evaluation.
	notifications := store.AllNotifications()
	require.Len(t, notifications, 2)
	assert.Equal(t, finance.NotificationAnomaly, notifications[0].Type)
	assert.Equal(t, finance.NotificationBudgetExceeded, notifications[1].Type)
}
