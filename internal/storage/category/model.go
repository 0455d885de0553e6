package category

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"

	"github.com/carson-networks/finance-server/internal/finance"
)

// Category represents a category record. Type is immutable after
// creation; Keywords feed the external auto-categorization service.
type Category struct {
	ID        uuid.UUID               `db:"id"`
	UserID    uuid.UUID               `db:"user_id"`
	Name      string                  `db:"name"`
	Type      finance.TransactionType `db:"type"`
	ParentID  uuid.NullUUID           `db:"parent_id"`
	Keywords  pq.StringArray          `db:"keywords"`
	CreatedAt time.Time               `db:"created_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	UserID   uuid.UUID
	Name     string
	Type     finance.TransactionType
	ParentID uuid.NullUUID
	Keywords []string
}

// CategoryUpdate carries the mutable category fields; nil means
// unchanged. Type is not here on purpose.
type CategoryUpdate struct {
	Name     *string
	Keywords *[]string
}

// ICategoryReader defines read access to categories.
type ICategoryReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, userID uuid.UUID, name string, categoryType finance.TransactionType) (*Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
}

// ICategoryWriter defines mutations on categories within a transaction.
type ICategoryWriter interface {
	ICategoryReader
	Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *CategoryUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return finance.ErrNotFound
	}
	return err
}
