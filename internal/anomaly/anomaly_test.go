package anomaly

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
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func newDetector() *Detector {
	notifier := notify.NewNotifier(push.NopDeliverer{}, logging.SetupLogging())
	return NewDetector(notifier)
}

func seedExpenses(t *testing.T, w *storage.Writer, userID, walletID, categoryID uuid.UUID, base time.Time, amounts ...int64) {
	t.Helper()
	for i, amount := range amounts {
		_, err := w.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
			UserID:     userID,
			WalletID:   walletID,
			CategoryID: categoryID,
			Type:       finance.TransactionExpense,
			Amount:     decimal.NewFromInt(amount),
			Currency:   "USD",
			CreatedAt:  base.AddDate(0, 0, -i-1),
		})
		require.NoError(t, err)
	}
}

func insertAndFetch(t *testing.T, w *storage.Writer, userID, walletID, categoryID uuid.UUID, amount int64, at time.Time) *transaction.Transaction {
	t.Helper()
	ctx := context.Background()
	id, err := w.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       finance.TransactionExpense,
		Amount:     decimal.NewFromInt(amount),
		Currency:   "USD",
		CreatedAt:  at,
	})
	require.NoError(t, err)
	row, err := w.Transactions.FindByID(ctx, userID, id)
	require.NoError(t, err)
	return row
}

func TestBaseline(t *testing.T) {
	amounts := []decimal.Decimal{
		decimal.NewFromInt(10),
		decimal.NewFromInt(10),
		decimal.NewFromInt(10),
		decimal.NewFromInt(10),
		decimal.NewFromInt(60),
	}

	// Mean is 20, median is 10, baseline is their average.
	assert.True(t, Baseline(amounts).Equal(decimal.NewFromInt(15)))

	assert.True(t, Baseline(nil).IsZero())
}

func TestCheck_FlagsMediumAndHigh(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	detector := newDetector()
	userID := uuid.Must(uuid.NewV4())
	walletID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	w, err := store.Write(ctx)
	require.NoError(t, err)
	seedExpenses(t, w, userID, walletID, categoryID, now, 10, 10, 10, 10, 10)

	tx := insertAndFetch(t, w, userID, walletID, categoryID, 35, now)
	require.NoError(t, detector.Check(ctx, w, userID, tx))

	notifications := store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationAnomaly, notifications[0].Type)

	payload, err := finance.UnmarshalPayload(notifications[0].Type, notifications[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "medium", payload.(*finance.AnomalyPayload).Severity)

	// The 35 above is now part of the history, lifting the baseline to
	// about 12.08, so the next expense must clear 5x of that.
	tx = insertAndFetch(t, w, userID, walletID, categoryID, 70, now)
	require.NoError(t, detector.Check(ctx, w, userID, tx))

	notifications = store.AllNotifications()
	require.Len(t, notifications, 2)
	payload, err = finance.UnmarshalPayload(notifications[0].Type, notifications[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "high", payload.(*finance.AnomalyPayload).Severity)
}

func TestCheck_NormalExpenseNotFlagged(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	detector := newDetector()
	userID := uuid.Must(uuid.NewV4())
	walletID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	w, err := store.Write(ctx)
	require.NoError(t, err)
	seedExpenses(t, w, userID, walletID, categoryID, now, 10, 10, 10, 10, 10)

	tx := insertAndFetch(t, w, userID, walletID, categoryID, 25, now)
	require.NoError(t, detector.Check(ctx, w, userID, tx))
	assert.Empty(t, store.AllNotifications())
}

func TestCheck_ThinHistoryIgnored(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	detector := newDetector()
	userID := uuid.Must(uuid.NewV4())
	walletID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	w, err := store.Write(ctx)
	require.NoError(t, err)
	seedExpenses(t, w, userID, walletID, categoryID, now, 10, 10, 10, 10)

	tx := insertAndFetch(t, w, userID, walletID, categoryID, 500, now)
	require.NoError(t, detector.Check(ctx, w, userID, tx))
	assert.Empty(t, store.AllNotifications())
}

func TestCheck_IncomeIgnored(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	detector := newDetector()
	userID := uuid.Must(uuid.NewV4())

	w, err := store.Write(ctx)
	require.NoError(t, err)

	tx := &transaction.Transaction{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: userID,
		Type:   finance.TransactionIncome,
		Amount: decimal.NewFromInt(100000),
	}
	require.NoError(t, detector.Check(ctx, w, userID, tx))
	assert.Empty(t, store.AllNotifications())
}
