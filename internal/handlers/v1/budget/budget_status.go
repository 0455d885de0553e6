package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/service"
)

// BudgetStatusInput is the Huma input for a single budget's status.
type BudgetStatusInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Budget UUID"`
}

// BudgetStatusOutput is the Huma output for a single budget's status.
type BudgetStatusOutput struct {
	Body BudgetStatus
}

// budgetStatuser is the interface for deriving one budget's health.
type budgetStatuser interface {
	Status(ctx context.Context, userID, budgetID uuid.UUID) (*service.BudgetStatus, error)
}

// BudgetStatusHandler handles GET /v1/budget/{id}.
type BudgetStatusHandler struct {
	BudgetService budgetStatuser
}

// NewBudgetStatusHandler creates a new BudgetStatusHandler.
func NewBudgetStatusHandler(svc budgetStatuser) *BudgetStatusHandler {
	return &BudgetStatusHandler{BudgetService: svc}
}

// Register registers the budget status endpoint with the Huma API.
func (h *BudgetStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-status",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}",
		Summary:     "Budget status",
		Description: "Returns the derived health of one budget.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *BudgetStatusHandler) handle(ctx context.Context, input *BudgetStatusInput) (*BudgetStatusOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	budgetID, err := apierr.ParseID(input.ID, "budget id")
	if err != nil {
		return nil, err
	}

	status, err := h.BudgetService.Status(ctx, userID, budgetID)
	if err != nil {
		return nil, apierr.Map(err, "failed to derive budget status")
	}
	return &BudgetStatusOutput{Body: fromService(*status)}, nil
}
