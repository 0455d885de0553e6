package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
)

const defaultAlertThreshold = 0.8

type CreateBudget struct {
	Deps *Deps

	UserID         uuid.UUID
	CategoryID     uuid.UUID
	LimitAmount    decimal.Decimal
	AlertThreshold *float64 // nil means the 0.8 default
	StartDate      time.Time
	EndDate        time.Time

	// Set on success.
	BudgetID uuid.UUID
}

func (a *CreateBudget) Name() string { return "create_budget" }

func (a *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if !a.LimitAmount.IsPositive() {
		return finance.Validationf("budget limit must be positive, got %s", a.LimitAmount)
	}
	threshold := defaultAlertThreshold
	if a.AlertThreshold != nil {
		threshold = *a.AlertThreshold
	}
	if threshold < 0 || threshold > 1 {
		return finance.Validationf("alert threshold must be between 0 and 1, got %v", threshold)
	}
	if !a.StartDate.Before(a.EndDate) {
		return finance.Validationf("budget start date must be before end date")
	}

	cat, err := writer.Categories.FindByID(ctx, a.UserID, a.CategoryID)
	if err != nil {
		return err
	}
	if cat.Type != finance.TransactionExpense {
		return finance.Validationf("budgets apply to expense categories, %q is %s", cat.Name, cat.Type)
	}

	existing, err := writer.Budgets.FindOverlapping(ctx, a.UserID, a.CategoryID, a.StartDate, a.EndDate)
	if err != nil && !errors.Is(err, finance.ErrNotFound) {
		return err
	}
	if existing != nil {
		return finance.Conflictf("category %q already has a budget overlapping this period", cat.Name)
	}

	id, err := writer.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID:         a.UserID,
		CategoryID:     a.CategoryID,
		LimitAmount:    a.LimitAmount,
		AlertThreshold: threshold,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
	})
	if err != nil {
		return err
	}
	a.BudgetID = id

	// Spending may already sit past the threshold of the new window.
	now := time.Now().UTC()
	if !a.StartDate.After(now) && !a.EndDate.Before(now) {
		return a.Deps.Monitor.Evaluate(ctx, writer, a.UserID, a.CategoryID, now)
	}
	return nil
}
