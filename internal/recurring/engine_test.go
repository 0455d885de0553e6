package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/anomaly"
	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/monitor"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/push"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

var runTime = time.Date(2024, time.June, 15, 6, 0, 0, 0, time.UTC)

// storeProcessor runs each action directly against the in-memory store,
// standing in for the operator worker pool.
type storeProcessor struct {
	store *storagetest.Store
}

func (p *storeProcessor) Process(ctx context.Context, action actions.IAction) error {
	w, err := p.store.Write(ctx)
	if err != nil {
		return err
	}
	return action.Perform(ctx, w)
}

func newTestEngine(store *storagetest.Store) *Engine {
	notifier := notify.NewNotifier(push.NopDeliverer{}, logging.SetupLogging())
	deps := &actions.Deps{
		Notifier: notifier,
		Monitor:  monitor.NewMonitor(notifier),
		Detector: anomaly.NewDetector(notifier),
	}
	return NewEngine(store.Reader().Transactions, &storeProcessor{store: store}, deps, logging.SetupLogging())
}

func seedTemplate(t *testing.T, store *storagetest.Store, userID, walletID, categoryID uuid.UUID, amount int64, nextFireAt time.Time) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	w, err := store.Write(ctx)
	require.NoError(t, err)

	id, err := w.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:      userID,
		WalletID:    walletID,
		CategoryID:  categoryID,
		Type:        finance.TransactionExpense,
		Amount:      decimal.NewFromInt(amount),
		Currency:    "USD",
		IsRecurring: true,
		Frequency:   finance.FrequencyDaily,
		NextFireAt:  &nextFireAt,
		CreatedAt:   nextFireAt.AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	return id
}

func seedWalletAndCategory(t *testing.T, store *storagetest.Store, userID uuid.UUID) (walletID, categoryID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	w, err := store.Write(ctx)
	require.NoError(t, err)

	walletID, err = w.Wallets.Insert(ctx, &wallet.WalletCreate{
		UserID:   userID,
		Name:     "Checking",
		Type:     finance.WalletBank,
		Currency: "USD",
		Balance:  decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	categoryID, err = w.Categories.Insert(ctx, &category.CategoryCreate{
		UserID: userID,
		Name:   "Rent",
		Type:   finance.TransactionExpense,
	})
	require.NoError(t, err)
	return walletID, categoryID
}

func TestRunDueTransactions_FiresDueTemplate(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	engine := newTestEngine(store)
	userID := uuid.Must(uuid.NewV4())
	walletID, categoryID := seedWalletAndCategory(t, store, userID)

	dueAt := runTime.Add(-2 * time.Hour)
	templateID := seedTemplate(t, store, userID, walletID, categoryID, 50, dueAt)

	stats, err := engine.RunDueTransactions(ctx, runTime)
	require.NoError(t, err)
	assert.Equal(t, Stats{Due: 1, Processed: 1}, stats)

	// Occurrence recorded and balance applied.
	wlt, err := store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, wlt.Balance.Equal(decimal.NewFromInt(950)), "balance was %s", wlt.Balance)

	// The schedule advances from the due time, not from the run time.
	tmpl, err := store.Reader().Transactions.FindByID(ctx, userID, templateID)
	require.NoError(t, err)
	require.True(t, tmpl.NextFireAt.Valid)
	assert.Equal(t, dueAt.AddDate(0, 0, 1), tmpl.NextFireAt.Time)
	require.True(t, tmpl.LastFiredAt.Valid)
	assert.Equal(t, runTime, tmpl.LastFiredAt.Time)

	notifications := store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationRecurring, notifications[0].Type)
}

func TestRunDueTransactions_SkipsFutureTemplate(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	engine := newTestEngine(store)
	userID := uuid.Must(uuid.NewV4())
	walletID, categoryID := seedWalletAndCategory(t, store, userID)

	seedTemplate(t, store, userID, walletID, categoryID, 50, runTime.Add(time.Hour))

	stats, err := engine.RunDueTransactions(ctx, runTime)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Empty(t, store.AllNotifications())
}

func TestRunDueTransactions_BadTemplateDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	engine := newTestEngine(store)
	userID := uuid.Must(uuid.NewV4())
	walletID, categoryID := seedWalletAndCategory(t, store, userID)

	// The first template points at a wallet that no longer exists and
	// fails when its balance effect is applied.
	seedTemplate(t, store, userID, uuid.Must(uuid.NewV4()), categoryID, 50, runTime.Add(-3*time.Hour))
	seedTemplate(t, store, userID, walletID, categoryID, 80, runTime.Add(-2*time.Hour))

	stats, err := engine.RunDueTransactions(ctx, runTime)
	require.NoError(t, err)
	assert.Equal(t, Stats{Due: 2, Processed: 1, Failed: 1}, stats)

	wlt, err := store.Reader().Wallets.FindByID(ctx, userID, walletID)
	require.NoError(t, err)
	assert.True(t, wlt.Balance.Equal(decimal.NewFromInt(920)), "balance was %s", wlt.Balance)
}
