package transaction

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string   `json:"id" doc:"Transaction UUID"`
	WalletID     string   `json:"walletId" doc:"Wallet UUID"`
	CategoryID   string   `json:"categoryId" doc:"Category UUID"`
	Type         string   `json:"type" doc:"income or expense"`
	Amount       string   `json:"amount" doc:"Decimal amount, always positive"`
	Currency     string   `json:"currency" doc:"ISO currency code"`
	ExchangeRate string   `json:"exchangeRate,omitempty" doc:"Rate to the wallet currency"`
	Tags         []string `json:"tags,omitempty" doc:"Free-form tags"`
	Note         string   `json:"note,omitempty" doc:"Free-form note"`
	IsRecurring  bool     `json:"isRecurring" doc:"True for recurring templates"`
	Frequency    string   `json:"frequency,omitempty" doc:"daily, weekly or monthly"`
	NextFireAt   string   `json:"nextFireAt,omitempty" doc:"RFC3339 next firing time"`
	CreatedAt    string   `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(t service.Transaction) Transaction {
	out := Transaction{
		ID:          t.ID.String(),
		WalletID:    t.WalletID.String(),
		CategoryID:  t.CategoryID.String(),
		Type:        string(t.Type),
		Amount:      t.Amount.String(),
		Currency:    t.Currency,
		Tags:        t.Tags,
		Note:        t.Note,
		IsRecurring: t.IsRecurring,
		Frequency:   string(t.Frequency),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.ExchangeRate != nil {
		out.ExchangeRate = t.ExchangeRate.String()
	}
	if t.NextFireAt != nil {
		out.NextFireAt = t.NextFireAt.Format(time.RFC3339)
	}
	return out
}
