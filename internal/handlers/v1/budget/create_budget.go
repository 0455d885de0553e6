package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	CategoryID     string   `json:"categoryId" required:"true" doc:"Expense category UUID"`
	Limit          string   `json:"limit" required:"true" doc:"Positive decimal spending limit"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty" doc:"Warning threshold fraction, defaults to 0.8 when omitted"`
	StartDate      string   `json:"startDate" required:"true" doc:"RFC3339 window start"`
	EndDate        string   `json:"endDate" required:"true" doc:"RFC3339 window end"`
}

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	Body   CreateBudgetBody
}

// CreateBudgetOutput is the Huma output for creating a budget.
type CreateBudgetOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   struct {
		ID string `json:"id" doc:"New budget UUID"`
	}
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	Operator *operator.OperatorDelegator
	Deps     *actions.Deps
}

// NewCreateBudgetHandler creates a new CreateBudgetHandler.
func NewCreateBudgetHandler(op *operator.OperatorDelegator, deps *actions.Deps) *CreateBudgetHandler {
	return &CreateBudgetHandler{Operator: op, Deps: deps}
}

// Register registers the create budget endpoint with the Huma API.
func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Create budget",
		Description: "Creates a budget for an expense category over a date window.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	categoryID, err := apierr.ParseID(input.Body.CategoryID, "categoryId")
	if err != nil {
		return nil, err
	}
	limit, err := decimal.NewFromString(input.Body.Limit)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid limit", err)
	}
	startDate, err := time.Parse(time.RFC3339, input.Body.StartDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
	}
	endDate, err := time.Parse(time.RFC3339, input.Body.EndDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
	}

	action := &actions.CreateBudget{
		Deps:           h.Deps,
		UserID:         userID,
		CategoryID:     categoryID,
		LimitAmount:    limit,
		AlertThreshold: input.Body.AlertThreshold,
		StartDate:      startDate,
		EndDate:        endDate,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to create budget")
	}

	out := &CreateBudgetOutput{Status: http.StatusCreated}
	out.Body.ID = action.BudgetID.String()
	return out, nil
}
