package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

type CreateCategory struct {
	UserID       uuid.UUID
	CategoryName string
	Type         finance.TransactionType
	ParentID     uuid.NullUUID
	Keywords     []string

	// Set on success.
	CategoryID uuid.UUID
}

func (a *CreateCategory) Name() string { return "create_category" }

func (a *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	name := strings.TrimSpace(a.CategoryName)
	if name == "" {
		return finance.Validationf("category name must not be empty")
	}

	existing, err := writer.Categories.FindByName(ctx, a.UserID, name, a.Type)
	if err != nil && !errors.Is(err, finance.ErrNotFound) {
		return err
	}
	if existing != nil {
		return finance.Conflictf("category %q already exists for type %s", name, a.Type)
	}

	if a.ParentID.Valid {
		parent, err := writer.Categories.FindByID(ctx, a.UserID, a.ParentID.UUID)
		if err != nil {
			return err
		}
		if parent.Type != a.Type {
			return finance.Validationf("parent category has type %s, child must match", parent.Type)
		}
	}

	id, err := writer.Categories.Insert(ctx, &category.CategoryCreate{
		UserID:   a.UserID,
		Name:     name,
		Type:     a.Type,
		ParentID: a.ParentID,
		Keywords: a.Keywords,
	})
	if err != nil {
		return err
	}
	a.CategoryID = id
	return nil
}
