package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage"
)

type DeleteBudget struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

func (a *DeleteBudget) Name() string { return "delete_budget" }

func (a *DeleteBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Budgets.Delete(ctx, a.UserID, a.BudgetID)
}
