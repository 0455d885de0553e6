package budget

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// BudgetStatus is the API response model for a budget's derived health.
type BudgetStatus struct {
	ID             string  `json:"id" doc:"Budget UUID"`
	CategoryID     string  `json:"categoryId" doc:"Category UUID"`
	CategoryName   string  `json:"categoryName" doc:"Category display name"`
	Limit          string  `json:"limit" doc:"Decimal spending limit"`
	AlertThreshold float64 `json:"alertThreshold" doc:"Warning threshold as a fraction of the limit"`
	Spent          string  `json:"spent" doc:"Decimal spend inside the window, computed fresh"`
	Remaining      string  `json:"remaining" doc:"Limit minus spent; negative when exceeded"`
	Percentage     int64   `json:"percentage" doc:"Spend as a whole percentage of the limit"`
	State          string  `json:"state" doc:"SAFE, WARNING or EXCEEDED"`
	StartDate      string  `json:"startDate" doc:"RFC3339 window start"`
	EndDate        string  `json:"endDate" doc:"RFC3339 window end"`
}

func fromService(s service.BudgetStatus) BudgetStatus {
	return BudgetStatus{
		ID:             s.BudgetID.String(),
		CategoryID:     s.CategoryID.String(),
		CategoryName:   s.CategoryName,
		Limit:          s.LimitAmount.String(),
		AlertThreshold: s.AlertThreshold,
		Spent:          s.Spent.String(),
		Remaining:      s.Remaining.String(),
		Percentage:     s.Percentage,
		State:          string(s.State),
		StartDate:      s.StartDate.Format(time.RFC3339),
		EndDate:        s.EndDate.Format(time.RFC3339),
	}
}
