package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// ListTransactionsCursor represents a pagination cursor in request and
// response bodies.
type ListTransactionsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	WalletID   string                  `json:"walletId,omitempty" doc:"Filter by wallet UUID"`
	CategoryID string                  `json:"categoryId,omitempty" doc:"Filter by category UUID"`
	Type       string                  `json:"type,omitempty" doc:"Filter by income or expense"`
	From       string                  `json:"from,omitempty" doc:"RFC3339 lower bound on the transaction date"`
	To         string                  `json:"to,omitempty" doc:"RFC3339 upper bound on the transaction date"`
	Cursor     *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	Body   ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions, newest first"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, query *service.TransactionQuery, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a filtered, paginated list of transactions.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseListTransactionsInput(input *ListTransactionsInput) (*service.TransactionQuery, *service.TransactionCursor, error) {
	query := &service.TransactionQuery{}
	if input.Body.WalletID != "" {
		id, err := apierr.ParseID(input.Body.WalletID, "walletId")
		if err != nil {
			return nil, nil, err
		}
		query.WalletID = &id
	}
	if input.Body.CategoryID != "" {
		id, err := apierr.ParseID(input.Body.CategoryID, "categoryId")
		if err != nil {
			return nil, nil, err
		}
		query.CategoryID = &id
	}
	if input.Body.Type != "" {
		transactionType, err := finance.ParseTransactionType(input.Body.Type)
		if err != nil {
			return nil, nil, apierr.Map(err, "invalid type")
		}
		query.Type = &transactionType
	}
	if input.Body.From != "" {
		from, err := time.Parse(time.RFC3339, input.Body.From)
		if err != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid from", err)
		}
		query.From = &from
	}
	if input.Body.To != "" {
		to, err := time.Parse(time.RFC3339, input.Body.To)
		if err != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid to", err)
		}
		query.To = &to
	}

	var cursor *service.TransactionCursor
	if input.Body.Cursor != nil {
		if input.Body.Cursor.Position < 0 {
			return nil, nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
		}
		cursor = &service.TransactionCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}
	return query, cursor, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	query, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, userID, query, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.Map(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = fromService(tx)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}
	return &ListTransactionsOutput{Body: resp}, nil
}
