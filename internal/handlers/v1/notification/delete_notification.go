package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// DeleteNotificationInput is the Huma input for deleting one notification.
type DeleteNotificationInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Notification UUID"`
}

// DeleteNotificationOutput is the Huma output for deleting one notification.
type DeleteNotificationOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// DeleteNotificationHandler handles DELETE /v1/notification/{id}.
type DeleteNotificationHandler struct {
	Operator *operator.OperatorDelegator
}

// NewDeleteNotificationHandler creates a new DeleteNotificationHandler.
func NewDeleteNotificationHandler(op *operator.OperatorDelegator) *DeleteNotificationHandler {
	return &DeleteNotificationHandler{Operator: op}
}

// Register registers the delete notification endpoint with the Huma API.
func (h *DeleteNotificationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-notification",
		Method:      http.MethodDelete,
		Path:        "/v1/notification/{id}",
		Summary:     "Delete notification",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *DeleteNotificationHandler) handle(ctx context.Context, input *DeleteNotificationInput) (*DeleteNotificationOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	notificationID, err := apierr.ParseID(input.ID, "notification id")
	if err != nil {
		return nil, err
	}

	action := &actions.DeleteNotification{UserID: userID, NotificationID: notificationID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to delete notification")
	}
	return &DeleteNotificationOutput{Status: http.StatusOK}, nil
}
