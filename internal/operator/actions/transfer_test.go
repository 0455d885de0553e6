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
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
)

var (
	budgetStart = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	budgetEnd   = time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC)
)

func seedTransferPair(t *testing.T, w *storage.Writer, userID uuid.UUID) (fromBudgetID, toBudgetID uuid.UUID) {
	t.Helper()
	groceriesID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)
	entertainmentID := seedCategory(t, w, userID, "Entertainment", finance.TransactionExpense)
	fromBudgetID = seedBudget(t, w, userID, entertainmentID, 200, budgetStart, budgetEnd)
	toBudgetID = seedBudget(t, w, userID, groceriesID, 100, budgetStart, budgetEnd)
	return fromBudgetID, toBudgetID
}

func TestCreateTransfer(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	fromBudgetID, toBudgetID := seedTransferPair(t, w, userID)

	action := &CreateTransfer{
		Deps:         newTestDeps(),
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   toBudgetID,
		Amount:       decimal.NewFromInt(50),
	}
	require.NoError(t, action.Perform(ctx, w))
	assert.NotEqual(t, uuid.Nil, action.TransferID)

	created, err := store.Reader().Transfers.FindByID(ctx, userID, action.TransferID)
	require.NoError(t, err)
	assert.Equal(t, finance.TransferPending, created.Status)
	assert.Equal(t, "Entertainment", created.FromCategoryName)
	assert.Equal(t, "Groceries", created.ToCategoryName)
	assert.False(t, created.Suggested)

	// No limit moves until approval.
	from, err := store.Reader().Budgets.FindByID(ctx, userID, fromBudgetID)
	require.NoError(t, err)
	assert.True(t, from.LimitAmount.Equal(decimal.NewFromInt(200)))

	notifications := store.AllNotifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, finance.NotificationTransferRequest, notifications[0].Type)
}

func TestCreateTransfer_Validation(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	fromBudgetID, toBudgetID := seedTransferPair(t, w, userID)

	action := &CreateTransfer{
		Deps:         newTestDeps(),
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   toBudgetID,
		Amount:       decimal.NewFromInt(-5),
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)

	action = &CreateTransfer{
		Deps:         newTestDeps(),
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   fromBudgetID,
		Amount:       decimal.NewFromInt(10),
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrValidation)

	// More than the source budget's whole limit.
	action = &CreateTransfer{
		Deps:         newTestDeps(),
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   toBudgetID,
		Amount:       decimal.NewFromInt(500),
	}
	assert.ErrorIs(t, action.Perform(ctx, w), finance.ErrInsufficientFunds)
}

func TestRespondTransfer_ApproveMovesLimit(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	fromBudgetID, toBudgetID := seedTransferPair(t, w, userID)

	create := &CreateTransfer{
		Deps:         newTestDeps(),
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   toBudgetID,
		Amount:       decimal.NewFromInt(50),
	}
	require.NoError(t, create.Perform(ctx, w))

	respond := &RespondTransfer{
		Deps:       newTestDeps(),
		UserID:     userID,
		TransferID: create.TransferID,
		Approve:    true,
	}
	require.NoError(t, respond.Perform(ctx, w))

	from, err := store.Reader().Budgets.FindByID(ctx, userID, fromBudgetID)
	require.NoError(t, err)
	assert.True(t, from.LimitAmount.Equal(decimal.NewFromInt(150)), "from limit was %s", from.LimitAmount)

	to, err := store.Reader().Budgets.FindByID(ctx, userID, toBudgetID)
	require.NoError(t, err)
	assert.True(t, to.LimitAmount.Equal(decimal.NewFromInt(150)), "to limit was %s", to.LimitAmount)

	updated, err := store.Reader().Transfers.FindByID(ctx, userID, create.TransferID)
	require.NoError(t, err)
	assert.Equal(t, finance.TransferApproved, updated.Status)
	assert.True(t, updated.RespondedAt.Valid)
}

func TestRespondTransfer_RejectLeavesLimits(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	fromBudgetID, toBudgetID := seedTransferPair(t, w, userID)

	create := &CreateTransfer{
		Deps:         newTestDeps(),
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   toBudgetID,
		Amount:       decimal.NewFromInt(50),
	}
	require.NoError(t, create.Perform(ctx, w))

	respond := &RespondTransfer{
		Deps:       newTestDeps(),
		UserID:     userID,
		TransferID: create.TransferID,
		Approve:    false,
	}
	require.NoError(t, respond.Perform(ctx, w))

	from, err := store.Reader().Budgets.FindByID(ctx, userID, fromBudgetID)
	require.NoError(t, err)
	assert.True(t, from.LimitAmount.Equal(decimal.NewFromInt(200)))

	updated, err := store.Reader().Transfers.FindByID(ctx, userID, create.TransferID)
	require.NoError(t, err)
	assert.Equal(t, finance.TransferRejected, updated.Status)
}

func TestRespondTransfer_SecondResponseFails(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	fromBudgetID, toBudgetID := seedTransferPair(t, w, userID)

	create := &CreateTransfer{
		Deps:         newTestDeps(),
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   toBudgetID,
		Amount:       decimal.NewFromInt(50),
	}
	require.NoError(t, create.Perform(ctx, w))

	respond := &RespondTransfer{
		Deps:       newTestDeps(),
		UserID:     userID,
		TransferID: create.TransferID,
		Approve:    false,
	}
	require.NoError(t, respond.Perform(ctx, w))

	again := &RespondTransfer{
		Deps:       newTestDeps(),
		UserID:     userID,
		TransferID: create.TransferID,
		Approve:    true,
	}
	assert.ErrorIs(t, again.Perform(ctx, w), finance.ErrAlreadyProcessed)

	// The rejected transfer still moved nothing.
	from, err := store.Reader().Budgets.FindByID(ctx, userID, fromBudgetID)
	require.NoError(t, err)
	assert.True(t, from.LimitAmount.Equal(decimal.NewFromInt(200)))
}
