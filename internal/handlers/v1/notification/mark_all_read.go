package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// MarkAllReadInput is the Huma input for marking all notifications read.
type MarkAllReadInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
}

// MarkAllReadOutput is the Huma output for marking all notifications read.
type MarkAllReadOutput struct {
	Body struct {
		Updated int64 `json:"updated" doc:"Number of notifications marked read"`
	}
}

// MarkAllReadHandler handles POST /v1/notification/read-all.
type MarkAllReadHandler struct {
	Operator *operator.OperatorDelegator
}

// NewMarkAllReadHandler creates a new MarkAllReadHandler.
func NewMarkAllReadHandler(op *operator.OperatorDelegator) *MarkAllReadHandler {
	return &MarkAllReadHandler{Operator: op}
}

// Register registers the mark all read endpoint with the Huma API.
func (h *MarkAllReadHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "mark-all-notifications-read",
		Method:      http.MethodPost,
		Path:        "/v1/notification/read-all",
		Summary:     "Mark all notifications read",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *MarkAllReadHandler) handle(ctx context.Context, input *MarkAllReadInput) (*MarkAllReadOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	action := &actions.MarkAllNotificationsRead{UserID: userID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to mark notifications read")
	}

	out := &MarkAllReadOutput{}
	out.Body.Updated = action.Updated
	return out, nil
}
