package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

func TestWalletSummary_ExcludesFlaggedWallets(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	svc := NewWalletService(newReadOnlyStorage(store))
	userID := uuid.Must(uuid.NewV4())

	w, err := store.Write(ctx)
	require.NoError(t, err)

	add := func(name string, balance int64, excluded bool) {
		_, err := w.Wallets.Insert(ctx, &wallet.WalletCreate{
			UserID:            userID,
			Name:              name,
			Type:              finance.WalletBank,
			Currency:          "USD",
			Balance:           decimal.NewFromInt(balance),
			ExcludedFromTotal: excluded,
		})
		require.NoError(t, err)
	}

	add("Checking", 500, false)
	add("Savings", 1500, false)
	add("Shared household", 800, true)

	summary, err := svc.Summary(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, summary.Wallets, 3)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(2000)), "total was %s", summary.Total)
}

func TestGetWallet_NotFound(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	svc := NewWalletService(newReadOnlyStorage(store))

	_, err := svc.GetWallet(ctx, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, finance.ErrNotFound)
}
