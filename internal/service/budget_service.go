package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/monitor"
	"github.com/carson-networks/finance-server/internal/storage"
)

// BudgetStatus is the derived health of one budget.
type BudgetStatus struct {
	BudgetID       uuid.UUID
	CategoryID     uuid.UUID
	CategoryName   string
	LimitAmount    decimal.Decimal
	AlertThreshold float64
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	Percentage     int64
	State          finance.BudgetState
	StartDate      time.Time
	EndDate        time.Time
}

// BudgetReport covers every budget active at the report time.
type BudgetReport struct {
	AsOf     time.Time
	Budgets  []BudgetStatus
	Safe     int
	Warning  int
	Exceeded int
}

// BudgetService handles budget read logic. Spend is aggregated fresh on
// every call; nothing here is cached or stored.
type BudgetService struct {
	storage *storage.Storage
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store *storage.Storage) *BudgetService {
	return &BudgetService{storage: store}
}

// Status derives the health of a single budget.
func (s *BudgetService) Status(ctx context.Context, userID, budgetID uuid.UUID) (*BudgetStatus, error) {
	b, err := s.storage.Budgets.FindByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	cat, err := s.storage.Categories.FindByID(ctx, userID, b.CategoryID)
	if err != nil {
		return nil, err
	}
	spent, err := s.storage.Transactions.SumExpenses(ctx, userID, b.CategoryID, b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}

	state, percentage := monitor.StatusFor(b.LimitAmount, spent, b.AlertThreshold)
	return &BudgetStatus{
		BudgetID:       b.ID,
		CategoryID:     b.CategoryID,
		CategoryName:   cat.Name,
		LimitAmount:    b.LimitAmount,
		AlertThreshold: b.AlertThreshold,
		Spent:          spent,
		Remaining:      b.LimitAmount.Sub(spent),
		Percentage:     percentage,
		State:          state,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
	}, nil
}

// Report derives the health of every budget active at asOf.
func (s *BudgetService) Report(ctx context.Context, userID uuid.UUID, asOf time.Time) (*BudgetReport, error) {
	budgets, err := s.storage.Budgets.ListActive(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	report := &BudgetReport{AsOf: asOf}
	for _, b := range budgets {
		status, err := s.Status(ctx, userID, b.ID)
		if err != nil {
			return nil, err
		}
		report.Budgets = append(report.Budgets, *status)
		switch status.State {
		case finance.BudgetSafe:
			report.Safe++
		case finance.BudgetWarning:
			report.Warning++
		case finance.BudgetExceeded:
			report.Exceeded++
		}
	}
	return report, nil
}
