package wallet

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// DeleteWalletInput is the Huma input for deleting a wallet.
type DeleteWalletInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Wallet UUID"`
}

// DeleteWalletOutput is the Huma output for deleting a wallet.
type DeleteWalletOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// DeleteWalletHandler handles DELETE /v1/wallet/{id}.
type DeleteWalletHandler struct {
	Operator *operator.OperatorDelegator
}

// NewDeleteWalletHandler creates a new DeleteWalletHandler.
func NewDeleteWalletHandler(op *operator.OperatorDelegator) *DeleteWalletHandler {
	return &DeleteWalletHandler{Operator: op}
}

// Register registers the delete wallet endpoint with the Huma API.
func (h *DeleteWalletHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-wallet",
		Method:      http.MethodDelete,
		Path:        "/v1/wallet/{id}",
		Summary:     "Delete wallet",
		Description: "Deletes a wallet that has no transactions.",
		Tags:        []string{"Wallets"},
	}, h.handle)
}

func (h *DeleteWalletHandler) handle(ctx context.Context, input *DeleteWalletInput) (*DeleteWalletOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	walletID, err := apierr.ParseID(input.ID, "wallet id")
	if err != nil {
		return nil, err
	}

	action := &actions.DeleteWallet{UserID: userID, WalletID: walletID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to delete wallet")
	}
	return &DeleteWalletOutput{Status: http.StatusOK}, nil
}
