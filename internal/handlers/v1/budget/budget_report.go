package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// BudgetReportInput is the Huma input for the budget report.
type BudgetReportInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
}

// BudgetReportResponseBody is the response body for the budget report.
type BudgetReportResponseBody struct {
	Budgets  []BudgetStatus `json:"budgets" doc:"Every budget active right now"`
	Safe     int            `json:"safe" doc:"Budgets below their warning threshold"`
	Warning  int            `json:"warning" doc:"Budgets at or past their warning threshold"`
	Exceeded int            `json:"exceeded" doc:"Budgets over their limit"`
}

// BudgetReportOutput is the Huma output for the budget report.
type BudgetReportOutput struct {
	Body BudgetReportResponseBody
}

// budgetReporter is the interface for deriving budget health.
type budgetReporter interface {
	Report(ctx context.Context, userID uuid.UUID, asOf time.Time) (*service.BudgetReport, error)
}

// BudgetReportHandler handles GET /v1/budget.
type BudgetReportHandler struct {
	BudgetService budgetReporter
}

// NewBudgetReportHandler creates a new BudgetReportHandler.
func NewBudgetReportHandler(svc budgetReporter) *BudgetReportHandler {
	return &BudgetReportHandler{BudgetService: svc}
}

// Register registers the budget report endpoint with the Huma API.
func (h *BudgetReportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-report",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "Budget report",
		Description: "Returns the derived health of every currently active budget.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *BudgetReportHandler) handle(ctx context.Context, input *BudgetReportInput) (*BudgetReportOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("budgetReportMs")
	}
	report, err := h.BudgetService.Report(ctx, userID, time.Now().UTC())
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.Map(err, "failed to build budget report")
	}

	if logData != nil {
		logData.AddData("budgetCount", len(report.Budgets))
	}

	resp := BudgetReportResponseBody{
		Budgets:  make([]BudgetStatus, len(report.Budgets)),
		Safe:     report.Safe,
		Warning:  report.Warning,
		Exceeded: report.Exceeded,
	}
	for i, status := range report.Budgets {
		resp.Budgets[i] = fromService(status)
	}
	return &BudgetReportOutput{Body: resp}, nil
}
