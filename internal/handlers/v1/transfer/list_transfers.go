package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/service"
)

// ListTransfersInput is the Huma input for listing transfers.
type ListTransfersInput struct {
	UserID      string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	PendingOnly bool   `query:"pending" doc:"Return only transfers awaiting a response"`
}

// ListTransfersResponseBody is the response body for listing transfers.
type ListTransfersResponseBody struct {
	Transfers []Transfer `json:"transfers" doc:"Transfers newest first"`
}

// ListTransfersOutput is the Huma output for listing transfers.
type ListTransfersOutput struct {
	Body ListTransfersResponseBody
}

// transferLister is the interface for listing transfers.
type transferLister interface {
	History(ctx context.Context, userID uuid.UUID) ([]service.Transfer, error)
	Pending(ctx context.Context, userID uuid.UUID) ([]service.Transfer, error)
}

// ListTransfersHandler handles GET /v1/transfer.
type ListTransfersHandler struct {
	TransferService transferLister
}

// NewListTransfersHandler creates a new ListTransfersHandler.
func NewListTransfersHandler(svc transferLister) *ListTransfersHandler {
	return &ListTransfersHandler{TransferService: svc}
}

// Register registers the list transfers endpoint with the Huma API.
func (h *ListTransfersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transfers",
		Method:      http.MethodGet,
		Path:        "/v1/transfer",
		Summary:     "List budget transfers",
		Description: "Returns transfer history, optionally only pending ones.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *ListTransfersHandler) handle(ctx context.Context, input *ListTransfersInput) (*ListTransfersOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var transfers []service.Transfer
	if input.PendingOnly {
		transfers, err = h.TransferService.Pending(ctx, userID)
	} else {
		transfers, err = h.TransferService.History(ctx, userID)
	}
	if err != nil {
		return nil, apierr.Map(err, "failed to list transfers")
	}

	resp := ListTransfersResponseBody{Transfers: make([]Transfer, len(transfers))}
	for i, t := range transfers {
		resp.Transfers[i] = fromService(t)
	}
	return &ListTransfersOutput{Body: resp}, nil
}
