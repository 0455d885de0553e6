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

type UpdateCategory struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Update     category.CategoryUpdate
}

func (a *UpdateCategory) Name() string { return "update_category" }

func (a *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Update.Name == nil && a.Update.Keywords == nil {
		return finance.Validationf("nothing to update")
	}

	current, err := writer.Categories.FindByID(ctx, a.UserID, a.CategoryID)
	if err != nil {
		return err
	}

	if a.Update.Name != nil {
		name := strings.TrimSpace(*a.Update.Name)
		if name == "" {
			return finance.Validationf("category name must not be empty")
		}
		existing, err := writer.Categories.FindByName(ctx, a.UserID, name, current.Type)
		if err != nil && !errors.Is(err, finance.ErrNotFound) {
			return err
		}
		if existing != nil && existing.ID != a.CategoryID {
			return finance.Conflictf("category %q already exists for type %s", name, current.Type)
		}
		a.Update.Name = &name
	}

	return writer.Categories.Update(ctx, a.UserID, a.CategoryID, &a.Update)
}
