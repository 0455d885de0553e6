package score

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

var scoreNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func addTransaction(t *testing.T, w *storage.Writer, userID, categoryID uuid.UUID, txType finance.TransactionType, amount int64, at time.Time) {
	t.Helper()
	_, err := w.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
		UserID:     userID,
		WalletID:   uuid.Must(uuid.NewV4()),
		CategoryID: categoryID,
		Type:       txType,
		Amount:     decimal.NewFromInt(amount),
		Currency:   "USD",
		CreatedAt:  at,
	})
	require.NoError(t, err)
}

func TestCompute_NoHistoryScoresNeutral(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	userID := uuid.Must(uuid.NewV4())

	s, err := Compute(ctx, store.Reader(), userID, scoreNow)
	require.NoError(t, err)

	assert.Equal(t, 20, s.BudgetCompliance)
	assert.Equal(t, 15, s.SavingsRate)
	assert.Equal(t, 15, s.Consistency)
	assert.Equal(t, 50, s.Total)
	assert.Equal(t, "D", s.Grade)
	assert.Len(t, s.Recommendations, 3)
}

func TestCompute_HealthyFinances(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	userID := uuid.Must(uuid.NewV4())
	incomeCategory := uuid.Must(uuid.NewV4())
	expenseCategory := uuid.Must(uuid.NewV4())

	w, err := store.Write(ctx)
	require.NoError(t, err)

	// Three full months of steady 40% savings.
	for m := 1; m <= 3; m++ {
		at := time.Date(2024, time.Month(2+m), 10, 0, 0, 0, 0, time.UTC)
		addTransaction(t, w, userID, incomeCategory, finance.TransactionIncome, 1000, at)
		addTransaction(t, w, userID, expenseCategory, finance.TransactionExpense, 600, at)
	}

	_, err = w.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID:         userID,
		CategoryID:     expenseCategory,
		LimitAmount:    decimal.NewFromInt(2000),
		AlertThreshold: 0.8,
		StartDate:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	s, err := Compute(ctx, store.Reader(), userID, scoreNow)
	require.NoError(t, err)

	assert.Equal(t, 40, s.BudgetCompliance)
	assert.Equal(t, 30, s.SavingsRate)
	assert.Equal(t, 30, s.Consistency)
	assert.Equal(t, 100, s.Total)
	assert.Equal(t, "A", s.Grade)
	assert.Equal(t, []string{"Your finances look healthy; keep it up"}, s.Recommendations)
}

func TestCompute_OverspentBudgetDragsCompliance(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	userID := uuid.Must(uuid.NewV4())
	expenseCategory := uuid.Must(uuid.NewV4())

	w, err := store.Write(ctx)
	require.NoError(t, err)

	addTransaction(t, w, userID, expenseCategory, finance.TransactionExpense, 500, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))

	_, err = w.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID:         userID,
		CategoryID:     expenseCategory,
		LimitAmount:    decimal.NewFromInt(300),
		AlertThreshold: 0.8,
		StartDate:      time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	s, err := Compute(ctx, store.Reader(), userID, scoreNow)
	require.NoError(t, err)

	assert.Equal(t, 0, s.BudgetCompliance)
	assert.Contains(t, s.Recommendations[0], "exceed their budgets")
}

func TestGradeFor(t *testing.T) {
	assert.Equal(t, "A", gradeFor(85))
	assert.Equal(t, "B", gradeFor(70))
	assert.Equal(t, "C", gradeFor(55))
	assert.Equal(t, "D", gradeFor(40))
	assert.Equal(t, "F", gradeFor(39))
}

func TestSavingsRateBands(t *testing.T) {
	month := func(income, expense int64) *monthTotals {
		return &monthTotals{
			income:  decimal.NewFromInt(income),
			expense: decimal.NewFromInt(expense),
		}
	}

	assert.Equal(t, 30, savingsRate(map[string]*monthTotals{"2024-05": month(1000, 700)}))
	assert.Equal(t, 24, savingsRate(map[string]*monthTotals{"2024-05": month(1000, 780)}))
	assert.Equal(t, 18, savingsRate(map[string]*monthTotals{"2024-05": month(1000, 880)}))
	assert.Equal(t, 12, savingsRate(map[string]*monthTotals{"2024-05": month(1000, 990)}))
	assert.Equal(t, 6, savingsRate(map[string]*monthTotals{"2024-05": month(1000, 1200)}))

	// Months without income are neutral.
	assert.Equal(t, 15, savingsRate(map[string]*monthTotals{"2024-05": month(0, 500)}))
}
