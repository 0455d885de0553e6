// Package anomaly flags expenses that are far above a category's recent
// baseline. The baseline blends mean and median so a single past outlier
// cannot hide a new one.
package anomaly

import (
	"context"
	"fmt"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

const (
	lookbackDays = 30
	minSamples   = 5
)

var (
	mediumRatio = decimal.NewFromInt(3)
	highRatio   = decimal.NewFromInt(5)
)

type Detector struct {
	notifier *notify.Notifier
}

func NewDetector(notifier *notify.Notifier) *Detector {
	return &Detector{notifier: notifier}
}

// Check inspects a just-recorded expense against the category's recent
// history and raises an anomaly notification when it is at least 3x the
// baseline. Income and thin histories are never flagged.
func (d *Detector) Check(ctx context.Context, w *storage.Writer, userID uuid.UUID, tx *transaction.Transaction) error {
	if tx.Type != finance.TransactionExpense {
		return nil
	}

	from := tx.CreatedAt.AddDate(0, 0, -lookbackDays)
	amounts, err := w.Transactions.ListExpenseAmounts(ctx, userID, tx.CategoryID, from, tx.CreatedAt, tx.ID)
	if err != nil {
		return err
	}
	if len(amounts) < minSamples {
		return nil
	}

	baseline := Baseline(amounts)
	if !baseline.IsPositive() {
		return nil
	}

	ratio := tx.Amount.Div(baseline)
	var severity string
	switch {
	case ratio.GreaterThanOrEqual(highRatio):
		severity = "high"
	case ratio.GreaterThanOrEqual(mediumRatio):
		severity = "medium"
	default:
		return nil
	}

	_, err = d.notifier.Create(ctx, w.Notifications, notify.Note{
		UserID: userID,
		Title:  "Unusual expense detected",
		Message: fmt.Sprintf("An expense of %s is %sx your recent average of %s for this category",
			tx.Amount.StringFixed(2), ratio.StringFixed(1), baseline.StringFixed(2)),
		Payload: finance.AnomalyPayload{
			TransactionID: tx.ID,
			Amount:        tx.Amount,
			Baseline:      baseline,
			Ratio:         ratio,
			Severity:      severity,
		},
	})
	return err
}

// Baseline is the average of the mean and the median of the samples.
func Baseline(amounts []decimal.Decimal) decimal.Decimal {
	n := int64(len(amounts))
	if n == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	mean := sum.Div(decimal.NewFromInt(n))

	sorted := make([]decimal.Decimal, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	var median decimal.Decimal
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
	} else {
		median = sorted[mid]
	}

	return mean.Add(median).Div(decimal.NewFromInt(2))
}
