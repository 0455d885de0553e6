// Package score computes a 0-100 financial health score from the last
// three months of activity: budget compliance (40), savings rate (30)
// and spending consistency (30).
package score

import (
	"context"
	"math"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
)

// Score is the computed result. Components always sum to Total.
type Score struct {
	Total            int      `json:"total"`
	Grade            string   `json:"grade"`
	BudgetCompliance int      `json:"budgetCompliance"`
	SavingsRate      int      `json:"savingsRate"`
	Consistency      int      `json:"consistency"`
	Recommendations  []string `json:"recommendations"`
}

type monthTotals struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

// Compute derives the score from the three full months before now plus
// the current month. Scores are recomputed on demand and never stored.
func Compute(ctx context.Context, r *storage.Reader, userID uuid.UUID, now time.Time) (*Score, error) {
	now = now.UTC()
	lookback := time.Date(now.Year(), now.Month()-3, 1, 0, 0, 0, 0, time.UTC)

	transactions, err := r.Transactions.ListSince(ctx, userID, lookback)
	if err != nil {
		return nil, err
	}

	months := map[string]*monthTotals{}
	for _, t := range transactions {
		key := t.CreatedAt.UTC().Format("2006-01")
		m := months[key]
		if m == nil {
			m = &monthTotals{income: decimal.Zero, expense: decimal.Zero}
			months[key] = m
		}
		switch t.Type {
		case finance.TransactionIncome:
			m.income = m.income.Add(t.Amount)
		case finance.TransactionExpense:
			m.expense = m.expense.Add(t.Amount)
		}
	}

	compliance, err := budgetCompliance(ctx, r, userID, lookback, now)
	if err != nil {
		return nil, err
	}
	savings := savingsRate(months)
	consistency := spendingConsistency(months)

	total := compliance + savings + consistency
	s := &Score{
		Total:            total,
		Grade:            gradeFor(total),
		BudgetCompliance: compliance,
		SavingsRate:      savings,
		Consistency:      consistency,
	}
	s.Recommendations = recommendationsFor(s)
	return s, nil
}

// budgetCompliance scores 0-40 from the share of budgets in the window
// that stayed within their limit. Without any budgets it scores a
// neutral 20.
func budgetCompliance(ctx context.Context, r *storage.Reader, userID uuid.UUID, from, to time.Time) (int, error) {
	budgets, err := r.Budgets.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	var total, compliant int
	for _, b := range budgets {
		if b.EndDate.Before(from) || b.StartDate.After(to) {
			continue
		}
		spent, err := r.Transactions.SumExpenses(ctx, userID, b.CategoryID, b.StartDate, b.EndDate)
		if err != nil {
			return 0, err
		}
		total++
		if spent.LessThanOrEqual(b.LimitAmount) {
			compliant++
		}
	}
	if total == 0 {
		return 20, nil
	}
	return int(math.Round(40 * float64(compliant) / float64(total))), nil
}

// savingsRate scores 0-30 from the average of (income-expense)/income
// across months that had income. Without income it scores a neutral 15.
func savingsRate(months map[string]*monthTotals) int {
	var sum float64
	var n int
	for _, m := range months {
		if !m.income.IsPositive() {
			continue
		}
		rate, _ := m.income.Sub(m.expense).Div(m.income).Float64()
		sum += rate
		n++
	}
	if n == 0 {
		return 15
	}
	avg := sum / float64(n)
	switch {
	case avg >= 0.3:
		return 30
	case avg >= 0.2:
		return 24
	case avg >= 0.1:
		return 18
	case avg > 0:
		return 12
	}
	return 6
}

// spendingConsistency scores 0-30 from the coefficient of variation of
// monthly expense totals. Fewer than two months of data scores a
// neutral 15.
func spendingConsistency(months map[string]*monthTotals) int {
	var totals []float64
	for _, m := range months {
		v, _ := m.expense.Float64()
		totals = append(totals, v)
	}
	if len(totals) < 2 {
		return 15
	}

	var sum float64
	for _, v := range totals {
		sum += v
	}
	mean := sum / float64(len(totals))
	if mean == 0 {
		return 30
	}

	var variance float64
	for _, v := range totals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(totals))
	cv := math.Sqrt(variance) / mean

	switch {
	case cv <= 0.15:
		return 30
	case cv <= 0.25:
		return 24
	case cv <= 0.40:
		return 18
	case cv <= 0.60:
		return 12
	}
	return 6
}

func gradeFor(total int) string {
	switch {
	case total >= 85:
		return "A"
	case total >= 70:
		return "B"
	case total >= 55:
		return "C"
	case total >= 40:
		return "D"
	}
	return "F"
}

func recommendationsFor(s *Score) []string {
	var recs []string
	if s.BudgetCompliance < 30 {
		recs = append(recs, "Review the categories that regularly exceed their budgets and adjust limits or spending")
	}
	if s.SavingsRate < 24 {
		recs = append(recs, "Try to set aside at least 20% of your monthly income")
	}
	if s.Consistency < 24 {
		recs = append(recs, "Monthly spending varies a lot; spreading large purchases out makes it easier to plan")
	}
	if len(recs) == 0 {
		recs = append(recs, "Your finances look healthy; keep it up")
	}
	return recs
}
