package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
)

// Transaction represents a transaction record. A row with IsRecurring set
// is simultaneously the ledger entry for its first occurrence and the
// template the recurring engine re-fires; NextFireAt is only ever
// advanced by the engine.
type Transaction struct {
	ID           uuid.UUID               `db:"id"`
	UserID       uuid.UUID               `db:"user_id"`
	WalletID     uuid.UUID               `db:"wallet_id"`
	CategoryID   uuid.UUID               `db:"category_id"`
	Type         finance.TransactionType `db:"type"`
	Amount       decimal.Decimal         `db:"amount"`
	Currency     string                  `db:"currency"`
	ExchangeRate decimal.NullDecimal     `db:"exchange_rate"`
	Tags         pq.StringArray          `db:"tags"`
	Note         string                  `db:"note"`
	IsRecurring  bool                    `db:"is_recurring"`
	Frequency    finance.Frequency       `db:"frequency"`
	LastFiredAt  sql.NullTime            `db:"last_fired_at"`
	NextFireAt   sql.NullTime            `db:"next_fire_at"`
	CreatedAt    time.Time               `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID       uuid.UUID
	WalletID     uuid.UUID
	CategoryID   uuid.UUID
	Type         finance.TransactionType
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate decimal.NullDecimal
	Tags         []string
	Note         string
	IsRecurring  bool
	Frequency    finance.Frequency
	NextFireAt   *time.Time
	CreatedAt    time.Time // defaults to now if zero
}

// TransactionUpdate carries the mutable transaction fields; nil means
// unchanged. Recurrence metadata is not editable after creation.
type TransactionUpdate struct {
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	Type       *finance.TransactionType
	Amount     *decimal.Decimal
	Currency   *string
	Note       *string
	Tags       *[]string
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	Type       *finance.TransactionType
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// ITransactionReader defines read access to transactions.
type ITransactionReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*Transaction, error)
	// SumExpenses aggregates expense amounts for a category inside a
	// budget window; always computed fresh, never cached.
	SumExpenses(ctx context.Context, userID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// ListExpenseAmounts returns the expense amounts the anomaly
	// detector samples, excluding the transaction under inspection.
	ListExpenseAmounts(ctx context.Context, userID, categoryID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]decimal.Decimal, error)
	// ListDueTemplates is engine-only and deliberately unscoped by user:
	// it returns every recurring template due at asOf.
	ListDueTemplates(ctx context.Context, asOf time.Time) ([]*Transaction, error)
	CountByWallet(ctx context.Context, userID, walletID uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
}

// ITransactionWriter defines mutations on transactions within a
// transaction.
type ITransactionWriter interface {
	ITransactionReader
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// AdvanceTemplate moves a recurring template past a firing.
	AdvanceTemplate(ctx context.Context, id uuid.UUID, lastFiredAt, nextFireAt time.Time) error
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return finance.ErrNotFound
	}
	return err
}
