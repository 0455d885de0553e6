package wallet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
)

// Wallet represents a wallet record. Balance is the signed running total
// of all transactions referencing the wallet; it is only ever mutated by
// AddBalance deltas.
type Wallet struct {
	ID                uuid.UUID          `db:"id"`
	UserID            uuid.UUID          `db:"user_id"`
	Name              string             `db:"name"`
	Type              finance.WalletType `db:"type"`
	Currency          string             `db:"currency"`
	Balance           decimal.Decimal    `db:"balance"`
	ExcludedFromTotal bool               `db:"excluded_from_total"`
	CreatedAt         time.Time          `db:"created_at"`
}

// WalletCreate is the input for creating a new wallet.
type WalletCreate struct {
	UserID            uuid.UUID
	Name              string
	Type              finance.WalletType
	Currency          string
	Balance           decimal.Decimal
	ExcludedFromTotal bool
}

// WalletUpdate carries the mutable wallet fields; nil means unchanged.
type WalletUpdate struct {
	Name              *string
	ExcludedFromTotal *bool
}

// IWalletReader defines read access to wallets. Every operation is
// user-scoped.
type IWalletReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Wallet, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Wallet, error)
}

// IWalletWriter defines mutations on wallets within a transaction.
type IWalletWriter interface {
	IWalletReader
	Insert(ctx context.Context, create *WalletCreate) (uuid.UUID, error)
	AddBalance(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error
	Update(ctx context.Context, userID, id uuid.UUID, update *WalletUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return finance.ErrNotFound
	}
	return err
}
