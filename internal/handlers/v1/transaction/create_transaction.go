package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	WalletID     string   `json:"walletId" required:"true" doc:"Wallet UUID"`
	CategoryID   string   `json:"categoryId" required:"true" doc:"Category UUID; its type must match"`
	Type         string   `json:"type" required:"true" doc:"income or expense"`
	Amount       string   `json:"amount" required:"true" doc:"Positive decimal amount"`
	Currency     string   `json:"currency,omitempty" doc:"ISO currency code, defaults to the wallet's"`
	ExchangeRate string   `json:"exchangeRate,omitempty" doc:"Rate to the wallet currency"`
	Tags         []string `json:"tags,omitempty" doc:"Free-form tags"`
	Note         string   `json:"note,omitempty" doc:"Free-form note"`
	IsRecurring  bool     `json:"isRecurring,omitempty" doc:"Create a recurring template"`
	Frequency    string   `json:"frequency,omitempty" doc:"daily, weekly or monthly; required when recurring"`
	Date         string   `json:"date,omitempty" doc:"RFC3339 transaction date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	Body   CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   struct {
		ID string `json:"id" doc:"New transaction UUID"`
	}
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator *operator.OperatorDelegator
	Deps     *actions.Deps
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op *operator.OperatorDelegator, deps *actions.Deps) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op, Deps: deps}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new transaction and adjusts the wallet balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	walletID, err := apierr.ParseID(input.Body.WalletID, "walletId")
	if err != nil {
		return nil, err
	}
	categoryID, err := apierr.ParseID(input.Body.CategoryID, "categoryId")
	if err != nil {
		return nil, err
	}
	transactionType, err := finance.ParseTransactionType(input.Body.Type)
	if err != nil {
		return nil, apierr.Map(err, "invalid type")
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var exchangeRate decimal.NullDecimal
	if input.Body.ExchangeRate != "" {
		rate, err := decimal.NewFromString(input.Body.ExchangeRate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid exchangeRate", err)
		}
		exchangeRate = decimal.NewNullDecimal(rate)
	}

	var createdAt time.Time
	if input.Body.Date != "" {
		createdAt, err = time.Parse(time.RFC3339, input.Body.Date)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
	}

	var frequency finance.Frequency
	if input.Body.IsRecurring {
		frequency, err = finance.ParseFrequency(input.Body.Frequency)
		if err != nil {
			return nil, apierr.Map(err, "invalid frequency")
		}
	}

	action := &actions.CreateTransaction{
		Deps:         h.Deps,
		UserID:       userID,
		WalletID:     walletID,
		CategoryID:   categoryID,
		Type:         transactionType,
		Amount:       amount,
		Currency:     input.Body.Currency,
		ExchangeRate: exchangeRate,
		Tags:         input.Body.Tags,
		Note:         input.Body.Note,
		IsRecurring:  input.Body.IsRecurring,
		Frequency:    frequency,
		CreatedAt:    createdAt,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to create transaction")
	}

	out := &CreateTransactionOutput{Status: http.StatusCreated}
	out.Body.ID = action.TransactionID.String()
	return out, nil
}
