package transfer

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// Transfer is the API response model for a budget transfer.
type Transfer struct {
	ID           string `json:"id" doc:"Transfer UUID"`
	FromBudgetID string `json:"fromBudgetId" doc:"Source budget UUID"`
	ToBudgetID   string `json:"toBudgetId" doc:"Destination budget UUID"`
	FromCategory string `json:"fromCategory" doc:"Source category name at request time"`
	ToCategory   string `json:"toCategory" doc:"Destination category name at request time"`
	Amount       string `json:"amount" doc:"Decimal amount of limit to move"`
	Status       string `json:"status" doc:"pending, approved or rejected"`
	Suggested    bool   `json:"suggested" doc:"True when raised automatically for an overspend"`
	RequestedAt  string `json:"requestedAt" doc:"RFC3339 request time"`
	RespondedAt  string `json:"respondedAt,omitempty" doc:"RFC3339 response time"`
}

func fromService(t service.Transfer) Transfer {
	out := Transfer{
		ID:           t.ID.String(),
		FromBudgetID: t.FromBudgetID.String(),
		ToBudgetID:   t.ToBudgetID.String(),
		FromCategory: t.FromCategory,
		ToCategory:   t.ToCategory,
		Amount:       t.Amount.String(),
		Status:       string(t.Status),
		Suggested:    t.Suggested,
		RequestedAt:  t.RequestedAt.Format(time.RFC3339),
	}
	if t.RespondedAt != nil {
		out.RespondedAt = t.RespondedAt.Format(time.RFC3339)
	}
	return out
}
