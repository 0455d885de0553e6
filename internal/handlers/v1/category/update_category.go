package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	storagecategory "github.com/carson-networks/finance-server/internal/storage/category"
)

// UpdateCategoryBody is the request body for updating a category. The
// type stays fixed for the category's lifetime.
type UpdateCategoryBody struct {
	Name     *string   `json:"name,omitempty" doc:"New display name"`
	Keywords *[]string `json:"keywords,omitempty" doc:"Replacement keyword list"`
}

// UpdateCategoryInput is the Huma input for updating a category.
type UpdateCategoryInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	ID     string `path:"id" doc:"Category UUID"`
	Body   UpdateCategoryBody
}

// UpdateCategoryOutput is the Huma output for updating a category.
type UpdateCategoryOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// UpdateCategoryHandler handles PATCH /v1/category/{id}.
type UpdateCategoryHandler struct {
	Operator *operator.OperatorDelegator
}

// NewUpdateCategoryHandler creates a new UpdateCategoryHandler.
func NewUpdateCategoryHandler(op *operator.OperatorDelegator) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{Operator: op}
}

// Register registers the update category endpoint with the Huma API.
func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/v1/category/{id}",
		Summary:     "Update category",
		Description: "Updates a category's name or keyword list.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	categoryID, err := apierr.ParseID(input.ID, "category id")
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateCategory{
		UserID:     userID,
		CategoryID: categoryID,
		Update: storagecategory.CategoryUpdate{
			Name:     input.Body.Name,
			Keywords: input.Body.Keywords,
		},
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to update category")
	}
	return &UpdateCategoryOutput{Status: http.StatusOK}, nil
}
