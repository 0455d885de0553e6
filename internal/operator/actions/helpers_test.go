package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/anomaly"
	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/monitor"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/push"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

func newTestDeps() *Deps {
	notifier := notify.NewNotifier(push.NopDeliverer{}, logging.SetupLogging())
	return &Deps{
		Notifier: notifier,
		Monitor:  monitor.NewMonitor(notifier),
		Detector: anomaly.NewDetector(notifier),
	}
}

func newTestWriter(t *testing.T, store *storagetest.Store) *storage.Writer {
	t.Helper()
	w, err := store.Write(context.Background())
	require.NoError(t, err)
	return w
}

func seedWallet(t *testing.T, w *storage.Writer, userID uuid.UUID, balance int64) uuid.UUID {
	t.Helper()
	id, err := w.Wallets.Insert(context.Background(), &wallet.WalletCreate{
		UserID:   userID,
		Name:     "Checking",
		Type:     finance.WalletBank,
		Currency: "USD",
		Balance:  decimal.NewFromInt(balance),
	})
	require.NoError(t, err)
	return id
}

func seedCategory(t *testing.T, w *storage.Writer, userID uuid.UUID, name string, categoryType finance.TransactionType) uuid.UUID {
	t.Helper()
	id, err := w.Categories.Insert(context.Background(), &category.CategoryCreate{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	})
	require.NoError(t, err)
	return id
}

func seedBudget(t *testing.T, w *storage.Writer, userID, categoryID uuid.UUID, limit int64, start, end time.Time) uuid.UUID {
	t.Helper()
	id, err := w.Budgets.Insert(context.Background(), &budget.BudgetCreate{
		UserID:         userID,
		CategoryID:     categoryID,
		LimitAmount:    decimal.NewFromInt(limit),
		AlertThreshold: 0.8,
		StartDate:      start,
		EndDate:        end,
	})
	require.NoError(t, err)
	return id
}
