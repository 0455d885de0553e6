package transfer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
)

// Transfer is a budget-to-budget limit reallocation request. Approving
// it moves limit between the two budgets; until then it stays pending.
type Transfer struct {
	ID               uuid.UUID              `db:"id"`
	UserID           uuid.UUID              `db:"user_id"`
	FromBudgetID     uuid.UUID              `db:"from_budget_id"`
	ToBudgetID       uuid.UUID              `db:"to_budget_id"`
	FromCategoryName string                 `db:"from_category_name"`
	ToCategoryName   string                 `db:"to_category_name"`
	Amount           decimal.Decimal        `db:"amount"`
	Status           finance.TransferStatus `db:"status"`
	Suggested        bool                   `db:"suggested"`
	RequestedAt      time.Time              `db:"requested_at"`
	RespondedAt      sql.NullTime           `db:"responded_at"`
	CreatedAt        time.Time              `db:"created_at"`
}

// TransferCreate is the input for recording a new pending transfer.
// Category names are denormalized so history survives category renames.
type TransferCreate struct {
	UserID           uuid.UUID
	FromBudgetID     uuid.UUID
	ToBudgetID       uuid.UUID
	FromCategoryName string
	ToCategoryName   string
	Amount           decimal.Decimal
	Suggested        bool
	RequestedAt      time.Time
}

// TransferFilter narrows listings.
type TransferFilter struct {
	Status *finance.TransferStatus
	Limit  int64
	Offset int64
}

type ITransferReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transfer, error)
	List(ctx context.Context, userID uuid.UUID, filter *TransferFilter) ([]*Transfer, error)
	// FindPendingForBudgets returns a pending transfer between the same
	// budget pair, or ErrNotFound. Used to avoid stacking duplicate
	// suggestions for one overspend.
	FindPendingForBudgets(ctx context.Context, userID, fromBudgetID, toBudgetID uuid.UUID) (*Transfer, error)
}

type ITransferWriter interface {
	ITransferReader
	Insert(ctx context.Context, create *TransferCreate) (uuid.UUID, error)
	// MarkResponded moves a pending transfer to a terminal status. It
	// matches only rows still pending and returns ErrAlreadyProcessed
	// when none match, so concurrent responders cannot both win.
	MarkResponded(ctx context.Context, userID, id uuid.UUID, status finance.TransferStatus, at time.Time) error
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return finance.ErrNotFound
	}
	return err
}
