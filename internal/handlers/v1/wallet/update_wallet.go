package wallet

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	storagewallet "github.com/carson-networks/finance-server/internal/storage/wallet"
)

// UpdateWalletBody is the request body for updating a wallet. Balance is
// deliberately absent: it only ever moves through transactions.
type UpdateWalletBody struct {
	Name              *string `json:"name,omitempty" doc:"New display name"`
	ExcludedFromTotal *bool   `json:"excludedFromTotal,omitempty" doc:"Leave out of the combined balance"`
}

// UpdateWalletInput is the Huma input for updating a wallet.
type UpdateWalletInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Wallet UUID"`
	Body   UpdateWalletBody
}

// UpdateWalletOutput is the Huma output for updating a wallet.
type UpdateWalletOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// UpdateWalletHandler handles PATCH /v1/wallet/{id}.
type UpdateWalletHandler struct {
	Operator *operator.OperatorDelegator
}

// NewUpdateWalletHandler creates a new UpdateWalletHandler.
func NewUpdateWalletHandler(op *operator.OperatorDelegator) *UpdateWalletHandler {
	return &UpdateWalletHandler{Operator: op}
}

// Register registers the update wallet endpoint with the Huma API.
func (h *UpdateWalletHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-wallet",
		Method:      http.MethodPatch,
		Path:        "/v1/wallet/{id}",
		Summary:     "Update wallet",
		Description: "Updates a wallet's name or total exclusion flag.",
		Tags:        []string{"Wallets"},
	}, h.handle)
}

func (h *UpdateWalletHandler) handle(ctx context.Context, input *UpdateWalletInput) (*UpdateWalletOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	walletID, err := apierr.ParseID(input.ID, "wallet id")
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateWallet{
		UserID:   userID,
		WalletID: walletID,
		Update: storagewallet.WalletUpdate{
			Name:              input.Body.Name,
			ExcludedFromTotal: input.Body.ExcludedFromTotal,
		},
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to update wallet")
	}
	return &UpdateWalletOutput{Status: http.StatusOK}, nil
}
