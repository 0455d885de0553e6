package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// DeleteBudgetInput is the Huma input for deleting a budget.
type DeleteBudgetInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Budget UUID"`
}

// DeleteBudgetOutput is the Huma output for deleting a budget.
type DeleteBudgetOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// DeleteBudgetHandler handles DELETE /v1/budget/{id}.
type DeleteBudgetHandler struct {
	Operator *operator.OperatorDelegator
}

// NewDeleteBudgetHandler creates a new DeleteBudgetHandler.
func NewDeleteBudgetHandler(op *operator.OperatorDelegator) *DeleteBudgetHandler {
	return &DeleteBudgetHandler{Operator: op}
}

// Register registers the delete budget endpoint with the Huma API.
func (h *DeleteBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-budget",
		Method:      http.MethodDelete,
		Path:        "/v1/budget/{id}",
		Summary:     "Delete budget",
		Description: "Deletes a budget. Transactions are untouched.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *DeleteBudgetHandler) handle(ctx context.Context, input *DeleteBudgetInput) (*DeleteBudgetOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	budgetID, err := apierr.ParseID(input.ID, "budget id")
	if err != nil {
		return nil, err
	}

	action := &actions.DeleteBudget{UserID: userID, BudgetID: budgetID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to delete budget")
	}
	return &DeleteBudgetOutput{Status: http.StatusOK}, nil
}
