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
	storagebudget "github.com/carson-networks/finance-server/internal/storage/budget"
)

// UpdateBudgetBody is the request body for updating a budget. The
// category cannot change; delete and recreate instead.
type UpdateBudgetBody struct {
	Limit          *string  `json:"limit,omitempty" doc:"New decimal limit, not below the spend so far"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty" doc:"New warning threshold fraction"`
	StartDate      *string  `json:"startDate,omitempty" doc:"New RFC3339 window start"`
	EndDate        *string  `json:"endDate,omitempty" doc:"New RFC3339 window end"`
}

// UpdateBudgetInput is the Huma input for updating a budget.
type UpdateBudgetInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Budget UUID"`
	Body   UpdateBudgetBody
}

// UpdateBudgetOutput is the Huma output for updating a budget.
type UpdateBudgetOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// UpdateBudgetHandler handles PATCH /v1/budget/{id}.
type UpdateBudgetHandler struct {
	Operator *operator.OperatorDelegator
	Deps     *actions.Deps
}

// NewUpdateBudgetHandler creates a new UpdateBudgetHandler.
func NewUpdateBudgetHandler(op *operator.OperatorDelegator, deps *actions.Deps) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{Operator: op, Deps: deps}
}

// Register registers the update budget endpoint with the Huma API.
func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPatch,
		Path:        "/v1/budget/{id}",
		Summary:     "Update budget",
		Description: "Updates a budget's limit, threshold or window.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *UpdateBudgetHandler) handle(ctx context.Context, input *UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	budgetID, err := apierr.ParseID(input.ID, "budget id")
	if err != nil {
		return nil, err
	}

	var update storagebudget.BudgetUpdate
	if input.Body.Limit != nil {
		limit, err := decimal.NewFromString(*input.Body.Limit)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid limit", err)
		}
		update.LimitAmount = &limit
	}
	update.AlertThreshold = input.Body.AlertThreshold
	if input.Body.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *input.Body.StartDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
		update.StartDate = &startDate
	}
	if input.Body.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *input.Body.EndDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		update.EndDate = &endDate
	}

	action := &actions.UpdateBudget{
		Deps:     h.Deps,
		UserID:   userID,
		BudgetID: budgetID,
		Update:   update,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to update budget")
	}
	return &UpdateBudgetOutput{Status: http.StatusOK}, nil
}
