package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
)

type UpdateBudget struct {
	Deps *Deps

	UserID   uuid.UUID
	BudgetID uuid.UUID
	Update   budget.BudgetUpdate
}

func (a *UpdateBudget) Name() string { return "update_budget" }

func (a *UpdateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	b, err := writer.Budgets.FindByID(ctx, a.UserID, a.BudgetID)
	if err != nil {
		return err
	}

	start := b.StartDate
	if a.Update.StartDate != nil {
		start = *a.Update.StartDate
	}
	end := b.EndDate
	if a.Update.EndDate != nil {
		end = *a.Update.EndDate
	}
	if !start.Before(end) {
		return finance.Validationf("budget start date must be before end date")
	}

	if a.Update.AlertThreshold != nil && (*a.Update.AlertThreshold < 0 || *a.Update.AlertThreshold > 1) {
		return finance.Validationf("alert threshold must be between 0 and 1, got %v", *a.Update.AlertThreshold)
	}

	if a.Update.LimitAmount != nil {
		if !a.Update.LimitAmount.IsPositive() {
			return finance.Validationf("budget limit must be positive, got %s", a.Update.LimitAmount)
		}
		spent, err := writer.Transactions.SumExpenses(ctx, a.UserID, b.CategoryID, start, end)
		if err != nil {
			return err
		}
		if a.Update.LimitAmount.LessThan(spent) {
			return finance.Validationf("budget limit %s is below the %s already spent",
				a.Update.LimitAmount.StringFixed(2), spent.StringFixed(2))
		}
	}

	if err := writer.Budgets.Update(ctx, a.UserID, a.BudgetID, &a.Update); err != nil {
		return err
	}

	now := time.Now().UTC()
	if !start.After(now) && !end.Before(now) {
		return a.Deps.Monitor.Evaluate(ctx, writer, a.UserID, b.CategoryID, now)
	}
	return nil
}
