package budget

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
)

// Budget represents a budget record. Spend against a budget is never
// stored; it is aggregated from expense transactions on every read.
type Budget struct {
	ID             uuid.UUID       `db:"id"`
	UserID         uuid.UUID       `db:"user_id"`
	CategoryID     uuid.UUID       `db:"category_id"`
	LimitAmount    decimal.Decimal `db:"limit_amount"`
	AlertThreshold float64         `db:"alert_threshold"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Active reports whether asOf falls inside the budget window.
func (b *Budget) Active(asOf time.Time) bool {
	return !b.StartDate.After(asOf) && !b.EndDate.Before(asOf)
}

// BudgetCreate is the input for creating a new budget.
type BudgetCreate struct {
	UserID         uuid.UUID
	CategoryID     uuid.UUID
	LimitAmount    decimal.Decimal
	AlertThreshold float64
	StartDate      time.Time
	EndDate        time.Time
}

// BudgetUpdate carries the mutable budget fields; nil means unchanged.
type BudgetUpdate struct {
	LimitAmount    *decimal.Decimal
	AlertThreshold *float64
	StartDate      *time.Time
	EndDate        *time.Time
}

// IBudgetReader defines read access to budgets. Active listings are
// ordered by creation time then id, which fixes the first-fit order the
// donor search depends on.
type IBudgetReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	ListActive(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]*Budget, error)
	ListActiveForCategory(ctx context.Context, userID, categoryID uuid.UUID, asOf time.Time) ([]*Budget, error)
	// FindOverlapping returns a budget for the category whose window
	// intersects [start, end], or ErrNotFound.
	FindOverlapping(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (*Budget, error)
}

// IBudgetWriter defines mutations on budgets within a transaction.
type IBudgetWriter interface {
	IBudgetReader
	Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *BudgetUpdate) error
	// AddLimit applies a signed delta to the limit as a single atomic
	// increment; transfer approval uses one positive and one negative
	// call inside the same transaction.
	AddLimit(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return finance.ErrNotFound
	}
	return err
}
