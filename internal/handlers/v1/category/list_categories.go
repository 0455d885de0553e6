package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/storage"
)

// ListCategoriesInput is the Huma input for listing categories.
type ListCategoriesInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
}

// ListCategoriesResponseBody is the response body for listing categories.
type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"Every category the user owns"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

// ListCategoriesHandler handles GET /v1/category.
type ListCategoriesHandler struct {
	Storage *storage.Storage
}

// NewListCategoriesHandler creates a new ListCategoriesHandler.
func NewListCategoriesHandler(store *storage.Storage) *ListCategoriesHandler {
	return &ListCategoriesHandler{Storage: store}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Description: "Returns every category the user owns.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	rows, err := h.Storage.Categories.List(ctx, userID)
	if err != nil {
		return nil, apierr.Map(err, "failed to list categories")
	}

	resp := ListCategoriesResponseBody{Categories: make([]Category, len(rows))}
	for i, row := range rows {
		resp.Categories[i] = fromStorage(row)
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
