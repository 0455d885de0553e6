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
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func TestCreateBudget(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	action := &CreateBudget{
		Deps:        newTestDeps(),
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: decimal.NewFromInt(300),
		StartDate:   budgetStart,
		EndDate:     budgetEnd,
	}
	require.NoError(t, action.Perform(ctx, w))

	created, err := store.Reader().Budgets.FindByID(ctx, userID, action.BudgetID)
	require.NoError(t, err)
	assert.Equal(t, 0.8, created.AlertThreshold, "threshold defaults to 0.8")
}

func TestCreateBudget_ExplicitZeroThresholdKept(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	zero := 0.0
	action := &CreateBudget{
		Deps:           newTestDeps(),
		UserID:         userID,
		CategoryID:     categoryID,
		LimitAmount:    decimal.NewFromInt(300),
		AlertThreshold: &zero,
		StartDate:      budgetStart,
		EndDate:        budgetEnd,
	}
	require.NoError(t, action.Perform(ctx, w))

	created, err := store.Reader().Budgets.FindByID(ctx, userID, action.BudgetID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, created.AlertThreshold, "an explicit zero threshold is not the default")

	over := 1.5
	action = &CreateBudget{
		Deps:           newTestDeps(),
		UserID:         userID,
		CategoryID:     categoryID,
		LimitAmount:    decimal.NewFromInt(300),
		AlertThreshold: &over,
		StartDate:      budgetStart.AddDate(0, 1, 0),
		EndDate:        budgetEnd.AddDate(0, 1, 0),
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)
}

func TestCreateBudget_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)
	seedBudget(t, w, userID, categoryID, 300, budgetStart, budgetEnd)

	action := &CreateBudget{
		Deps:        newTestDeps(),
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: decimal.NewFromInt(500),
		StartDate:   budgetStart.AddDate(0, 0, 14),
		EndDate:     budgetEnd.AddDate(0, 0, 14),
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrConflict)

	// A disjoint window on the same category is fine.
	action = &CreateBudget{
		Deps:        newTestDeps(),
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: decimal.NewFromInt(500),
		StartDate:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, time.July, 31, 23, 59, 59, 0, time.UTC),
	}
	assert.NoError(t, action.Perform(ctx, w))
}

func TestCreateBudget_RejectsIncomeCategory(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Salary", finance.TransactionIncome)

	action := &CreateBudget{
		Deps:        newTestDeps(),
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: decimal.NewFromInt(300),
		StartDate:   budgetStart,
		EndDate:     budgetEnd,
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)
}

func TestCreateBudget_RejectsInvertedWindow(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	action := &CreateBudget{
		Deps:        newTestDeps(),
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: decimal.NewFromInt(300),
		StartDate:   budgetEnd,
		EndDate:     budgetStart,
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)
}

func TestUpdateBudget_RejectsLimitBelowSpend(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)
	budgetID := seedBudget(t, w, userID, categoryID, 300, budgetStart, budgetEnd)

	_, err := w.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:     userID,
		WalletID:   uuid.Must(uuid.NewV4()),
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(250),
		Currency:   "USD",
		CreatedAt:  budgetStart.AddDate(0, 0, 5),
	})
	require.NoError(t, err)

	lowLimit := decimal.NewFromInt(200)
	action := &UpdateBudget{
		Deps:     newTestDeps(),
		UserID:   userID,
		BudgetID: budgetID,
		Update:   budget.BudgetUpdate{LimitAmount: &lowLimit},
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)

	higherLimit := decimal.NewFromInt(400)
	action = &UpdateBudget{
		Deps:     newTestDeps(),
		UserID:   userID,
		BudgetID: budgetID,
		Update:   budget.BudgetUpdate{LimitAmount: &higherLimit},
	}
	require.NoError(t, action.Perform(ctx, w))

	updated, err := store.Reader().Budgets.FindByID(ctx, userID, budgetID)
	require.NoError(t, err)
	assert.True(t, updated.LimitAmount.Equal(higherLimit))
}
