package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	storagewallet "github.com/carson-networks/finance-server/internal/storage/wallet"
)

// Wallet represents a wallet in the service layer.
type Wallet struct {
	ID                uuid.UUID
	Name              string
	Type              finance.WalletType
	Currency          string
	Balance           decimal.Decimal
	ExcludedFromTotal bool
}

// WalletSummary aggregates balances across a user's wallets. Wallets
// flagged ExcludedFromTotal are listed but left out of Total.
type WalletSummary struct {
	Total   decimal.Decimal
	Wallets []Wallet
}

// WalletService handles wallet read logic.
type WalletService struct {
	storage *storage.Storage
}

// NewWalletService creates a new WalletService.
func NewWalletService(store *storage.Storage) *WalletService {
	return &WalletService{storage: store}
}

// GetWallet retrieves a wallet by ID.
func (s *WalletService) GetWallet(ctx context.Context, userID, id uuid.UUID) (*Wallet, error) {
	row, err := s.storage.Wallets.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	w := walletFromStorage(row)
	return &w, nil
}

// ListWallets returns every wallet the user owns.
func (s *WalletService) ListWallets(ctx context.Context, userID uuid.UUID) ([]Wallet, error) {
	rows, err := s.storage.Wallets.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	wallets := make([]Wallet, len(rows))
	for i, row := range rows {
		wallets[i] = walletFromStorage(row)
	}
	return wallets, nil
}

// Summary returns every wallet plus the combined balance of those that
// count toward the total.
func (s *WalletService) Summary(ctx context.Context, userID uuid.UUID) (*WalletSummary, error) {
	wallets, err := s.ListWallets(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, w := range wallets {
		if !w.ExcludedFromTotal {
			total = total.Add(w.Balance)
		}
	}
	return &WalletSummary{Total: total, Wallets: wallets}, nil
}

func walletFromStorage(row *storagewallet.Wallet) Wallet {
	return Wallet{
		ID:                row.ID,
		Name:              row.Name,
		Type:              row.Type,
		Currency:          row.Currency,
		Balance:           row.Balance,
		ExcludedFromTotal: row.ExcludedFromTotal,
	}
}
