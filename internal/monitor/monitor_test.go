package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/push"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

var (
	monthStart = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	monthEnd   = time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC)
	midMonth   = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	store   *storagetest.Store
	writer  *storage.Writer
	monitor *Monitor
	userID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storagetest.NewStore()
	w, err := store.Write(context.Background())
	require.NoError(t, err)
	notifier := notify.NewNotifier(push.NopDeliverer{}, logging.SetupLogging())
	return &fixture{
		store:   store,
		writer:  w,
		monitor: NewMonitor(notifier),
		userID:  uuid.Must(uuid.NewV4()),
	}
}

func (f *fixture) addCategory(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id, err := f.writer.Categories.Insert(context.Background(), &category.CategoryCreate{
		UserID: f.userID,
		Name:   name,
		Type:   finance.TransactionExpense,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) addBudget(t *testing.T, categoryID uuid.UUID, limit int64) uuid.UUID {
	t.Helper()
	id, err := f.writer.Budgets.Insert(context.Background(), &budget.BudgetCreate{
		UserID:         f.userID,
		CategoryID:     categoryID,
		LimitAmount:    decimal.NewFromInt(limit),
		AlertThreshold: 0.8,
		StartDate:      monthStart,
		EndDate:        monthEnd,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) spend(t *testing.T, categoryID uuid.UUID, amount int64, at time.Time) {
	t.Helper()
	_, err := f.writer.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
		UserID:     f.userID,
		WalletID:   uuid.Must(uuid.NewV4()),
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(amount),
		Currency:   "USD",
		CreatedAt:  at,
	})
	require.NoError(t, err)
}

func TestStatusFor(t *testing.T) {
	limit := decimal.NewFromInt(100)

	state, pct := StatusFor(limit, decimal.NewFromInt(50), 0.8)
	assert.Equal(t, finance.BudgetSafe, state)
	assert.EqualValues(t, 50, pct)

	state, pct = StatusFor(limit, decimal.NewFromInt(80), 0.8)
	assert.Equal(t, finance.BudgetWarning, state)
	assert.EqualValues(t, 80, pct)

	// The derived report only turns EXCEEDED past the limit; alerting
	// at exactly the limit is covered by Evaluate.
	state, pct = StatusFor(limit, decimal.NewFromInt(100), 0.8)
	assert.Equal(t, finance.BudgetWarning, state)
	assert.EqualValues(t, 100, pct)

	state, pct = StatusFor(limit, decimal.NewFromInt(120), 0.8)
	assert.Equal(t, finance.BudgetExceeded, state)
	assert.EqualValues(t, 120, pct)
}

func TestEvaluate_Warning(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	categoryID := f.addCategory(t, "Groceries")
	budgetID := f.addBudget(t, categoryID, 100)
	f.spend(t, categoryID, 85, midMonth)

	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, categoryID, midMonth))

	notifications := f.store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationBudgetWarning, notifications[0].Type)
	assert.Equal(t, budgetID, notifications[0].BudgetID.UUID)
}

func TestEvaluate_SafeBudgetStaysQuiet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	categoryID := f.addCategory(t, "Groceries")
	f.addBudget(t, categoryID, 100)
	f.spend(t, categoryID, 30, midMonth)

	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, categoryID, midMonth))
	assert.Empty(t, f.store.AllNotifications())
}

func TestEvaluate_OncePerDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	categoryID := f.addCategory(t, "Groceries")
	f.addBudget(t, categoryID, 100)
	f.spend(t, categoryID, 90, midMonth)

	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, categoryID, midMonth))
	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, categoryID, midMonth.Add(time.Hour)))
	assert.Len(t, f.store.AllNotifications(), 1)

	// The next day it may alert again.
	nextDay := midMonth.AddDate(0, 0, 1)
	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, categoryID, nextDay))
	assert.Len(t, f.store.AllNotifications(), 2)
}

func TestEvaluate_ExceededWithoutDonor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	categoryID := f.addCategory(t, "Groceries")
	budgetID := f.addBudget(t, categoryID, 100)
	f.spend(t, categoryID, 120, midMonth)

	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, categoryID, midMonth))

	notifications := f.store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationBudgetExceeded, notifications[0].Type)

	payload, err := finance.UnmarshalPayload(notifications[0].Type, notifications[0].Payload)
	require.NoError(t, err)
	exceeded := payload.(*finance.BudgetExceededPayload)
	assert.Equal(t, budgetID, exceeded.BudgetID)
	assert.True(t, exceeded.Deficit.Equal(decimal.NewFromInt(20)), "deficit was %s", exceeded.Deficit)
}

func TestEvaluate_ExactLimitIsExceeded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	categoryID := f.addCategory(t, "Groceries")
	budgetID := f.addBudget(t, categoryID, 100)
	f.spend(t, categoryID, 100, midMonth)

	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, categoryID, midMonth))

	notifications := f.store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationBudgetExceeded, notifications[0].Type)

	payload, err := finance.UnmarshalPayload(notifications[0].Type, notifications[0].Payload)
	require.NoError(t, err)
	exceeded := payload.(*finance.BudgetExceededPayload)
	assert.Equal(t, budgetID, exceeded.BudgetID)
	assert.True(t, exceeded.Deficit.IsZero(), "deficit was %s", exceeded.Deficit)
}

func TestEvaluate_ExceededSuggestsTransfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	groceriesID := f.addCategory(t, "Groceries")
	entertainmentID := f.addCategory(t, "Entertainment")
	exceededID := f.addBudget(t, groceriesID, 100)
	donorID := f.addBudget(t, entertainmentID, 200)
	f.spend(t, groceriesID, 130, midMonth)
	f.spend(t, entertainmentID, 50, midMonth)

	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, groceriesID, midMonth))

	transfers, err := f.store.Reader().Transfers.List(ctx, f.userID, nil)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, donorID, transfers[0].FromBudgetID)
	assert.Equal(t, exceededID, transfers[0].ToBudgetID)
	assert.True(t, transfers[0].Suggested)
	assert.Equal(t, finance.TransferPending, transfers[0].Status)
	assert.True(t, transfers[0].Amount.Equal(decimal.NewFromInt(30)), "amount was %s", transfers[0].Amount)

	notifications := f.store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationTransferRequest, notifications[0].Type)

	// A pending suggestion for the same pair is not duplicated the next
	// day.
	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, groceriesID, midMonth.AddDate(0, 0, 1)))
	transfers, err = f.store.Reader().Transfers.List(ctx, f.userID, nil)
	require.NoError(t, err)
	assert.Len(t, transfers, 1)
}

func TestEvaluate_DonorWithoutHeadroomSkipped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	groceriesID := f.addCategory(t, "Groceries")
	entertainmentID := f.addCategory(t, "Entertainment")
	f.addBudget(t, groceriesID, 100)
	f.addBudget(t, entertainmentID, 200)
	f.spend(t, groceriesID, 130, midMonth)
	f.spend(t, entertainmentID, 180, midMonth)

	require.NoError(t, f.monitor.Evaluate(ctx, f.writer, f.userID, groceriesID, midMonth))

	transfers, err := f.store.Reader().Transfers.List(ctx, f.userID, nil)
	require.NoError(t, err)
	assert.Empty(t, transfers)

	notifications := f.store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationBudgetExceeded, notifications[0].Type)
}
