package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// DeleteReadInput is the Huma input for deleting read notifications.
type DeleteReadInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
}

// DeleteReadOutput is the Huma output for deleting read notifications.
type DeleteReadOutput struct {
	Body struct {
		Deleted int64 `json:"deleted" doc:"Number of notifications deleted"`
	}
}

// DeleteReadHandler handles DELETE /v1/notification/read.
type DeleteReadHandler struct {
	Operator *operator.OperatorDelegator
}

// NewDeleteReadHandler creates a new DeleteReadHandler.
func NewDeleteReadHandler(op *operator.OperatorDelegator) *DeleteReadHandler {
	return &DeleteReadHandler{Operator: op}
}

// Register registers the delete read endpoint with the Huma API.
func (h *DeleteReadHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-read-notifications",
		Method:      http.MethodDelete,
		Path:        "/v1/notification/read",
		Summary:     "Delete read notifications",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *DeleteReadHandler) handle(ctx context.Context, input *DeleteReadInput) (*DeleteReadOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	action := &actions.DeleteReadNotifications{UserID: userID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to delete read notifications")
	}

	out := &DeleteReadOutput{}
	out.Body.Deleted = action.Deleted
	return out, nil
}
