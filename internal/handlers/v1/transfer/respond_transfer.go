package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// RespondTransferBody is the request body for responding to a transfer.
type RespondTransferBody struct {
	Approve bool `json:"approve" doc:"True to approve and move the limit, false to reject"`
}

// RespondTransferInput is the Huma input for responding to a transfer.
type RespondTransferInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Transfer UUID"`
	Body   RespondTransferBody
}

// RespondTransferOutput is the Huma output for responding to a transfer.
type RespondTransferOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// RespondTransferHandler handles POST /v1/transfer/{id}/respond.
type RespondTransferHandler struct {
	Operator *operator.OperatorDelegator
	Deps     *actions.Deps
}

// NewRespondTransferHandler creates a new RespondTransferHandler.
func NewRespondTransferHandler(op *operator.OperatorDelegator, deps *actions.Deps) *RespondTransferHandler {
	return &RespondTransferHandler{Operator: op, Deps: deps}
}

// Register registers the respond transfer endpoint with the Huma API.
func (h *RespondTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "respond-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer/{id}/respond",
		Summary:     "Respond to budget transfer",
		Description: "Approves or rejects a pending transfer. Responding twice fails.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *RespondTransferHandler) handle(ctx context.Context, input *RespondTransferInput) (*RespondTransferOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	transferID, err := apierr.ParseID(input.ID, "transfer id")
	if err != nil {
		return nil, err
	}

	action := &actions.RespondTransfer{
		Deps:       h.Deps,
		UserID:     userID,
		TransferID: transferID,
		Approve:    input.Body.Approve,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to respond to transfer")
	}
	return &RespondTransferOutput{Status: http.StatusOK}, nil
}
