package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	storagetx "github.com/carson-networks/finance-server/internal/storage/transaction"
)

// UpdateTransactionBody is the request body for updating a transaction.
// Recurrence settings cannot be changed after creation.
type UpdateTransactionBody struct {
	WalletID   *string   `json:"walletId,omitempty" doc:"Move to another wallet"`
	CategoryID *string   `json:"categoryId,omitempty" doc:"Move to another category"`
	Type       *string   `json:"type,omitempty" doc:"income or expense"`
	Amount     *string   `json:"amount,omitempty" doc:"New positive decimal amount"`
	Currency   *string   `json:"currency,omitempty" doc:"New ISO currency code"`
	Note       *string   `json:"note,omitempty" doc:"New note"`
	Tags       *[]string `json:"tags,omitempty" doc:"Replacement tag list"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Transaction UUID"`
	Body   UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Operator *operator.OperatorDelegator
	Deps     *actions.Deps
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op *operator.OperatorDelegator, deps *actions.Deps) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op, Deps: deps}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Updates a transaction, rebalancing the affected wallets.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	transactionID, err := apierr.ParseID(input.ID, "transaction id")
	if err != nil {
		return nil, err
	}

	var update storagetx.TransactionUpdate
	if input.Body.WalletID != nil {
		id, err := apierr.ParseID(*input.Body.WalletID, "walletId")
		if err != nil {
			return nil, err
		}
		update.WalletID = &id
	}
	if input.Body.CategoryID != nil {
		id, err := apierr.ParseID(*input.Body.CategoryID, "categoryId")
		if err != nil {
			return nil, err
		}
		update.CategoryID = &id
	}
	if input.Body.Type != nil {
		transactionType, err := finance.ParseTransactionType(*input.Body.Type)
		if err != nil {
			return nil, apierr.Map(err, "invalid type")
		}
		update.Type = &transactionType
	}
	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		update.Amount = &amount
	}
	update.Currency = input.Body.Currency
	update.Note = input.Body.Note
	update.Tags = input.Body.Tags

	action := &actions.UpdateTransaction{
		Deps:          h.Deps,
		UserID:        userID,
		TransactionID: transactionID,
		Update:        update,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{Status: http.StatusOK}, nil
}
