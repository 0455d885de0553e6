package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CreateTransferBody is the request body for requesting a transfer.
type CreateTransferBody struct {
	FromBudgetID string `json:"fromBudgetId" required:"true" doc:"Source budget UUID"`
	ToBudgetID   string `json:"toBudgetId" required:"true" doc:"Destination budget UUID"`
	Amount       string `json:"amount" required:"true" doc:"Positive decimal amount of limit to move"`
}

// CreateTransferInput is the Huma input for requesting a transfer.
type CreateTransferInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	Body   CreateTransferBody
}

// CreateTransferOutput is the Huma output for requesting a transfer.
type CreateTransferOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   struct {
		ID string `json:"id" doc:"New transfer UUID"`
	}
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	Operator *operator.OperatorDelegator
	Deps     *actions.Deps
}

// NewCreateTransferHandler creates a new CreateTransferHandler.
func NewCreateTransferHandler(op *operator.OperatorDelegator, deps *actions.Deps) *CreateTransferHandler {
	return &CreateTransferHandler{Operator: op, Deps: deps}
}

// Register registers the create transfer endpoint with the Huma API.
func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Request budget transfer",
		Description: "Records a pending limit reallocation between two budgets.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	fromBudgetID, err := apierr.ParseID(input.Body.FromBudgetID, "fromBudgetId")
	if err != nil {
		return nil, err
	}
	toBudgetID, err := apierr.ParseID(input.Body.ToBudgetID, "toBudgetId")
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	action := &actions.CreateTransfer{
		Deps:         h.Deps,
		UserID:       userID,
		FromBudgetID: fromBudgetID,
		ToBudgetID:   toBudgetID,
		Amount:       amount,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to create transfer")
	}

	out := &CreateTransferOutput{Status: http.StatusCreated}
	out.Body.ID = action.TransferID.String()
	return out, nil
}
