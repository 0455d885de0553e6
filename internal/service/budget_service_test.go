package service

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
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func TestBudgetStatus(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	svc := NewBudgetService(newReadOnlyStorage(store))
	userID := uuid.Must(uuid.NewV4())

	w, err := store.Write(ctx)
	require.NoError(t, err)

	categoryID, err := w.Categories.Insert(ctx, &category.CategoryCreate{
		UserID: userID,
		Name:   "Groceries",
		Type:   finance.TransactionExpense,
	})
	require.NoError(t, err)

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC)
	budgetID, err := w.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID:         userID,
		CategoryID:     categoryID,
		LimitAmount:    decimal.NewFromInt(200),
		AlertThreshold: 0.8,
		StartDate:      start,
		EndDate:        end,
	})
	require.NoError(t, err)

	_, err = w.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:     userID,
		WalletID:   uuid.Must(uuid.NewV4()),
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(170),
		Currency:   "USD",
		CreatedAt:  start.AddDate(0, 0, 10),
	})
	require.NoError(t, err)

	status, err := svc.Status(ctx, userID, budgetID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", status.CategoryName)
	assert.True(t, status.Spent.Equal(decimal.NewFromInt(170)))
	assert.True(t, status.Remaining.Equal(decimal.NewFromInt(30)))
	assert.EqualValues(t, 85, status.Percentage)
	assert.Equal(t, finance.BudgetWarning, status.State)
}

func TestBudgetStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	svc := NewBudgetService(newReadOnlyStorage(store))

	_, err := svc.Status(ctx, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, finance.ErrNotFound)
}

func TestBudgetReport(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	svc := NewBudgetService(newReadOnlyStorage(store))
	userID := uuid.Must(uuid.NewV4())

	w, err := store.Write(ctx)
	require.NoError(t, err)

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC)
	asOf := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	addBudget := func(name string, limit, spent int64) {
		categoryID, err := w.Categories.Insert(ctx, &category.CategoryCreate{
			UserID: userID,
			Name:   name,
			Type:   finance.TransactionExpense,
		})
		require.NoError(t, err)
		_, err = w.Budgets.Insert(ctx, &budget.BudgetCreate{
			UserID:         userID,
			CategoryID:     categoryID,
			LimitAmount:    decimal.NewFromInt(limit),
			AlertThreshold: 0.8,
			StartDate:      start,
			EndDate:        end,
		})
		require.NoError(t, err)
		if spent > 0 {
			_, err = w.Transactions.Insert(ctx, &transaction.TransactionCreate{
				UserID:     userID,
				WalletID:   uuid.Must(uuid.NewV4()),
				CategoryID: categoryID,
				Type:       finance.TransactionExpense,
				Amount:     decimal.NewFromInt(spent),
				Currency:   "USD",
				CreatedAt:  asOf,
			})
			require.NoError(t, err)
		}
	}

	addBudget("Groceries", 200, 50)
	addBudget("Entertainment", 100, 90)
	addBudget("Dining", 100, 150)

	report, err := svc.Report(ctx, userID, asOf)
	require.NoError(t, err)
	assert.Len(t, report.Budgets, 3)
	assert.Equal(t, 1, report.Safe)
	assert.Equal(t, 1, report.Warning)
	assert.Equal(t, 1, report.Exceeded)
}
