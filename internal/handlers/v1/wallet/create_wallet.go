package wallet

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CreateWalletBody is the request body for creating a wallet.
type CreateWalletBody struct {
	Name              string `json:"name" required:"true" doc:"Display name"`
	Type              string `json:"type,omitempty" doc:"Wallet kind, defaults to cash"`
	Currency          string `json:"currency,omitempty" doc:"ISO currency code, defaults to USD"`
	Balance           string `json:"balance,omitempty" doc:"Opening decimal balance, defaults to 0"`
	ExcludedFromTotal bool   `json:"excludedFromTotal,omitempty" doc:"Leave out of the combined balance"`
}

// CreateWalletInput is the Huma input for creating a wallet.
type CreateWalletInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	Body   CreateWalletBody
}

// CreateWalletOutput is the Huma output for creating a wallet.
type CreateWalletOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   struct {
		ID string `json:"id" doc:"New wallet UUID"`
	}
}

// CreateWalletHandler handles POST /v1/wallet.
type CreateWalletHandler struct {
	Operator *operator.OperatorDelegator
}

// NewCreateWalletHandler creates a new CreateWalletHandler.
func NewCreateWalletHandler(op *operator.OperatorDelegator) *CreateWalletHandler {
	return &CreateWalletHandler{Operator: op}
}

// Register registers the create wallet endpoint with the Huma API.
func (h *CreateWalletHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-wallet",
		Method:      http.MethodPost,
		Path:        "/v1/wallet",
		Summary:     "Create wallet",
		Description: "Creates a new wallet.",
		Tags:        []string{"Wallets"},
	}, h.handle)
}

func (h *CreateWalletHandler) handle(ctx context.Context, input *CreateWalletInput) (*CreateWalletOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	walletType, err := finance.ParseWalletType(input.Body.Type)
	if err != nil {
		return nil, apierr.Map(err, "invalid wallet type")
	}
	balance := decimal.Zero
	if input.Body.Balance != "" {
		balance, err = decimal.NewFromString(input.Body.Balance)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid balance", err)
		}
	}

	action := &actions.CreateWallet{
		UserID:            userID,
		WalletName:        input.Body.Name,
		Type:              walletType,
		Currency:          input.Body.Currency,
		Balance:           balance,
		ExcludedFromTotal: input.Body.ExcludedFromTotal,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to create wallet")
	}

	out := &CreateWalletOutput{Status: http.StatusCreated}
	out.Body.ID = action.WalletID.String()
	return out, nil
}
