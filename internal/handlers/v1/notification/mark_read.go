package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// MarkReadInput is the Huma input for marking one notification read.
type MarkReadInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Notification UUID"`
}

// MarkReadOutput is the Huma output for marking one notification read.
type MarkReadOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// MarkReadHandler handles POST /v1/notification/{id}/read.
type MarkReadHandler struct {
	Operator *operator.OperatorDelegator
}

// NewMarkReadHandler creates a new MarkReadHandler.
func NewMarkReadHandler(op *operator.OperatorDelegator) *MarkReadHandler {
	return &MarkReadHandler{Operator: op}
}

// Register registers the mark read endpoint with the Huma API.
func (h *MarkReadHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "mark-notification-read",
		Method:      http.MethodPost,
		Path:        "/v1/notification/{id}/read",
		Summary:     "Mark notification read",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *MarkReadHandler) handle(ctx context.Context, input *MarkReadInput) (*MarkReadOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	notificationID, err := apierr.ParseID(input.ID, "notification id")
	if err != nil {
		return nil, err
	}

	action := &actions.MarkNotificationRead{UserID: userID, NotificationID: notificationID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to mark notification read")
	}
	return &MarkReadOutput{Status: http.StatusOK}, nil
}
