package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/service"
)

// MonthlySummaryInput is the Huma input for the monthly summary.
type MonthlySummaryInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	Year   int    `query:"year" required:"true" minimum:"2000" doc:"Calendar year"`
	Month  int    `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month"`
}

// CategoryExpense is one category's share of a month's expenses.
type CategoryExpense struct {
	CategoryID string `json:"categoryId" doc:"Category UUID"`
	Amount     string `json:"amount" doc:"Decimal expense total"`
}

// WalletExpense is one wallet's share of a month's expenses.
type WalletExpense struct {
	WalletID string `json:"walletId" doc:"Wallet UUID"`
	Amount   string `json:"amount" doc:"Decimal expense total"`
}

// MonthlySummaryResponseBody is the response body for the monthly summary.
type MonthlySummaryResponseBody struct {
	Year          int               `json:"year" doc:"Calendar year"`
	Month         int               `json:"month" doc:"Calendar month"`
	Income        string            `json:"income" doc:"Decimal income total"`
	Expense       string            `json:"expense" doc:"Decimal expense total"`
	Net           string            `json:"net" doc:"Income minus expense"`
	ByCategory    []CategoryExpense `json:"byCategory" doc:"Per-category expense breakdown"`
	ByWallet      []WalletExpense   `json:"byWallet" doc:"Per-wallet expense breakdown"`
	IncomeChange  *float64          `json:"incomeChangePct,omitempty" doc:"Percent change vs the previous month"`
	ExpenseChange *float64          `json:"expenseChangePct,omitempty" doc:"Percent change vs the previous month"`
}

// MonthlySummaryOutput is the Huma output for the monthly summary.
type MonthlySummaryOutput struct {
	Body MonthlySummaryResponseBody
}

// monthlySummarizer is the interface for monthly aggregation.
type monthlySummarizer interface {
	Monthly(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*service.MonthlySummary, error)
}

// MonthlySummaryHandler handles GET /v1/transaction/summary.
type MonthlySummaryHandler struct {
	TransactionService monthlySummarizer
}

// NewMonthlySummaryHandler creates a new MonthlySummaryHandler.
func NewMonthlySummaryHandler(svc monthlySummarizer) *MonthlySummaryHandler {
	return &MonthlySummaryHandler{TransactionService: svc}
}

// Register registers the monthly summary endpoint with the Huma API.
func (h *MonthlySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "monthly-summary",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/summary",
		Summary:     "Monthly summary",
		Description: "Aggregates income, expense and per-category totals for one month.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *MonthlySummaryHandler) handle(ctx context.Context, input *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	summary, err := h.TransactionService.Monthly(ctx, userID, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, apierr.Map(err, "failed to compute monthly summary")
	}

	resp := MonthlySummaryResponseBody{
		Year:          summary.Year,
		Month:         int(summary.Month),
		Income:        summary.Income.String(),
		Expense:       summary.Expense.String(),
		Net:           summary.Net.String(),
		ByCategory:    make([]CategoryExpense, 0, len(summary.ByCategory)),
		ByWallet:      make([]WalletExpense, 0, len(summary.ByWallet)),
		IncomeChange:  summary.IncomeChange,
		ExpenseChange: summary.ExpenseChange,
	}
	for categoryID, amount := range summary.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryExpense{
			CategoryID: categoryID.String(),
			Amount:     amount.String(),
		})
	}
	for walletID, amount := range summary.ByWallet {
		resp.ByWallet = append(resp.ByWallet, WalletExpense{
			WalletID: walletID.String(),
			Amount:   amount.String(),
		})
	}
	return &MonthlySummaryOutput{Body: resp}, nil
}
