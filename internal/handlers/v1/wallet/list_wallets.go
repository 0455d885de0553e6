package wallet

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// ListWalletsInput is the Huma input for listing wallets.
type ListWalletsInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
}

// ListWalletsResponseBody is the response body for listing wallets.
type ListWalletsResponseBody struct {
	Total   string   `json:"total" doc:"Combined balance of wallets counted toward the total"`
	Wallets []Wallet `json:"wallets" doc:"Every wallet the user owns"`
}

// ListWalletsOutput is the Huma output for listing wallets.
type ListWalletsOutput struct {
	Body ListWalletsResponseBody
}

// walletSummarizer is the interface for summarizing wallets.
type walletSummarizer interface {
	Summary(ctx context.Context, userID uuid.UUID) (*service.WalletSummary, error)
}

// ListWalletsHandler handles GET /v1/wallet.
type ListWalletsHandler struct {
	WalletService walletSummarizer
}

// NewListWalletsHandler creates a new ListWalletsHandler.
func NewListWalletsHandler(svc walletSummarizer) *ListWalletsHandler {
	return &ListWalletsHandler{WalletService: svc}
}

// Register registers the list wallets endpoint with the Huma API.
func (h *ListWalletsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-wallets",
		Method:      http.MethodGet,
		Path:        "/v1/wallet",
		Summary:     "List wallets",
		Description: "Returns every wallet plus the combined balance.",
		Tags:        []string{"Wallets"},
	}, h.handle)
}

func (h *ListWalletsHandler) handle(ctx context.Context, input *ListWalletsInput) (*ListWalletsOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listWalletsMs")
	}
	summary, err := h.WalletService.Summary(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.Map(err, "failed to list wallets")
	}

	if logData != nil {
		logData.AddData("walletCount", len(summary.Wallets))
	}

	resp := ListWalletsResponseBody{
		Total:   summary.Total.String(),
		Wallets: make([]Wallet, len(summary.Wallets)),
	}
	for i, w := range summary.Wallets {
		resp.Wallets[i] = fromService(w)
	}
	return &ListWalletsOutput{Body: resp}, nil
}
