package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
)

type DeleteCategory struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

func (a *DeleteCategory) Name() string { return "delete_category" }

func (a *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	count, err := writer.Transactions.CountByCategory(ctx, a.UserID, a.CategoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return finance.Conflictf("category has %d transactions; delete them first", count)
	}

	budgets, err := writer.Budgets.List(ctx, a.UserID)
	if err != nil {
		return err
	}
	for _, b := range budgets {
		if b.CategoryID == a.CategoryID {
			return finance.Conflictf("category has a budget; delete it first")
		}
	}

	return writer.Categories.Delete(ctx, a.UserID, a.CategoryID)
}
