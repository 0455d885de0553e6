// Package monitor re-evaluates budget health after every transaction
// mutation and raises threshold, overspend and transfer-suggestion
// alerts.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/transfer"
)

type Monitor struct {
	notifier *notify.Notifier
}

func NewMonitor(notifier *notify.Notifier) *Monitor {
	return &Monitor{notifier: notifier}
}

// StatusFor derives the reporting health of a budget from its limit,
// alert threshold and current spend. The percentage is rounded to the
// nearest whole point. Reports turn EXCEEDED only past the limit;
// alerting treats the limit itself as exceeded (see Evaluate).
func StatusFor(limit, spent decimal.Decimal, alertThreshold float64) (finance.BudgetState, int64) {
	percentage := spent.Div(limit).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	switch {
	case spent.GreaterThan(limit):
		return finance.BudgetExceeded, percentage
	case spent.GreaterThanOrEqual(limit.Mul(decimal.NewFromFloat(alertThreshold))):
		return finance.BudgetWarning, percentage
	}
	return finance.BudgetSafe, percentage
}

// Evaluate recomputes spend for every budget active on the category at
// asOf and raises at most one notification per budget per UTC day.
// It runs inside the same transaction as the mutation that triggered it.
func (m *Monitor) Evaluate(ctx context.Context, w *storage.Writer, userID, categoryID uuid.UUID, asOf time.Time) error {
	budgets, err := w.Budgets.ListActiveForCategory(ctx, userID, categoryID, asOf)
	if err != nil {
		return err
	}

	for _, b := range budgets {
		spent, err := w.Transactions.SumExpenses(ctx, userID, categoryID, b.StartDate, b.EndDate)
		if err != nil {
			return err
		}

		// Reaching the limit exactly already counts as exceeded for
		// alerting purposes.
		exceeded := spent.GreaterThanOrEqual(b.LimitAmount)
		warning := spent.GreaterThanOrEqual(b.LimitAmount.Mul(decimal.NewFromFloat(b.AlertThreshold)))
		if !exceeded && !warning {
			continue
		}

		alerted, err := w.Notifications.ExistsForBudgetOnDay(ctx, userID, b.ID, asOf)
		if err != nil {
			return err
		}
		if alerted {
			continue
		}

		if exceeded {
			if err := m.handleExceeded(ctx, w, userID, b, spent, asOf); err != nil {
				return err
			}
			continue
		}
		if err := m.handleWarning(ctx, w, userID, b, spent); err != nil {
			return err
		}
	}
	return nil
}

func (m *Monitor) handleWarning(ctx context.Context, w *storage.Writer, userID uuid.UUID, b *budget.Budget, spent decimal.Decimal) error {
	cat, err := w.Categories.FindByID(ctx, userID, b.CategoryID)
	if err != nil {
		return err
	}
	_, err = m.notifier.Create(ctx, w.Notifications, notify.Note{
		UserID: userID,
		Title:  "Budget warning",
		Message: fmt.Sprintf("Spending on %s reached %s of the %s limit",
			cat.Name, spent.StringFixed(2), b.LimitAmount.StringFixed(2)),
		BudgetID: uuid.NullUUID{UUID: b.ID, Valid: true},
		Payload: finance.BudgetWarningPayload{
			BudgetID:   b.ID,
			CategoryID: b.CategoryID,
			Spent:      spent,
			Limit:      b.LimitAmount,
		},
	})
	return err
}

// handleExceeded looks for another active budget with enough headroom to
// cover the deficit. The first candidate in creation order wins and gets
// a suggested transfer recorded against it; without one the overspend is
// reported as-is.
func (m *Monitor) handleExceeded(ctx context.Context, w *storage.Writer, userID uuid.UUID, b *budget.Budget, spent decimal.Decimal, asOf time.Time) error {
	cat, err := w.Categories.FindByID(ctx, userID, b.CategoryID)
	if err != nil {
		return err
	}
	deficit := spent.Sub(b.LimitAmount)

	if deficit.IsPositive() {
		donor, err := m.findDonor(ctx, w, userID, b, deficit, asOf)
		if err != nil {
			return err
		}
		if donor != nil {
			return m.suggestTransfer(ctx, w, userID, donor, b, cat.Name, deficit, asOf)
		}
	}

	_, err = m.notifier.Create(ctx, w.Notifications, notify.Note{
		UserID: userID,
		Title:  "Budget exceeded",
		Message: fmt.Sprintf("Spending on %s is %s, over the %s limit by %s",
			cat.Name, spent.StringFixed(2), b.LimitAmount.StringFixed(2), deficit.StringFixed(2)),
		BudgetID: uuid.NullUUID{UUID: b.ID, Valid: true},
		Payload: finance.BudgetExceededPayload{
			BudgetID:   b.ID,
			CategoryID: b.CategoryID,
			Spent:      spent,
			Limit:      b.LimitAmount,
			Deficit:    deficit,
		},
	})
	return err
}

func (m *Monitor) findDonor(ctx context.Context, w *storage.Writer, userID uuid.UUID, exceeded *budget.Budget, deficit decimal.Decimal, asOf time.Time) (*budget.Budget, error) {
	active, err := w.Budgets.ListActive(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}
	for _, candidate := range active {
		if candidate.ID == exceeded.ID || candidate.CategoryID == exceeded.CategoryID {
			continue
		}
		candidateSpent, err := w.Transactions.SumExpenses(ctx, userID, candidate.CategoryID, candidate.StartDate, candidate.EndDate)
		if err != nil {
			return nil, err
		}
		remaining := candidate.LimitAmount.Sub(candidateSpent)
		if remaining.GreaterThanOrEqual(deficit) {
			return candidate, nil
		}
	}
	return nil, nil
}

func (m *Monitor) suggestTransfer(ctx context.Context, w *storage.Writer, userID uuid.UUID, donor, exceeded *budget.Budget, toCategoryName string, amount decimal.Decimal, asOf time.Time) error {
	// One pending suggestion per budget pair at a time.
	existing, err := w.Transfers.FindPendingForBudgets(ctx, userID, donor.ID, exceeded.ID)
	if err != nil && !errors.Is(err, finance.ErrNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	donorCat, err := w.Categories.FindByID(ctx, userID, donor.CategoryID)
	if err != nil {
		return err
	}

	transferID, err := w.Transfers.Insert(ctx, &transfer.TransferCreate{
		UserID:           userID,
		FromBudgetID:     donor.ID,
		ToBudgetID:       exceeded.ID,
		FromCategoryName: donorCat.Name,
		ToCategoryName:   toCategoryName,
		Amount:           amount,
		Suggested:        true,
		RequestedAt:      asOf,
	})
	if err != nil {
		return err
	}

	_, err = m.notifier.Create(ctx, w.Notifications, notify.Note{
		UserID: userID,
		Title:  "Budget transfer suggested",
		Message: fmt.Sprintf("The %s budget is over its limit. Move %s from %s to cover it?",
			toCategoryName, amount.StringFixed(2), donorCat.Name),
		BudgetID: uuid.NullUUID{UUID: exceeded.ID, Valid: true},
		Payload: finance.TransferRequestPayload{
			TransferID:   transferID,
			FromBudgetID: donor.ID,
			ToBudgetID:   exceeded.ID,
			FromCategory: donorCat.Name,
			ToCategory:   toCategoryName,
			Amount:       amount,
			Suggested:    true,
		},
	})
	return err
}
