package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Name     string   `json:"name" required:"true" doc:"Display name"`
	Type     string   `json:"type" required:"true" doc:"income or expense; immutable after creation"`
	ParentID string   `json:"parentId,omitempty" doc:"Parent category UUID"`
	Keywords []string `json:"keywords,omitempty" doc:"Auto-categorization keywords"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
	Body   CreateCategoryBody
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   struct {
		ID string `json:"id" doc:"New category UUID"`
	}
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	Operator *operator.OperatorDelegator
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(op *operator.OperatorDelegator) *CreateCategoryHandler {
	return &CreateCategoryHandler{Operator: op}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create category",
		Description: "Creates a new category.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	categoryType, err := finance.ParseTransactionType(input.Body.Type)
	if err != nil {
		return nil, apierr.Map(err, "invalid category type")
	}
	var parentID uuid.NullUUID
	if input.Body.ParentID != "" {
		id, err := apierr.ParseID(input.Body.ParentID, "parentId")
		if err != nil {
			return nil, err
		}
		parentID = uuid.NullUUID{UUID: id, Valid: true}
	}

	action := &actions.CreateCategory{
		UserID:       userID,
		CategoryName: input.Body.Name,
		Type:         categoryType,
		ParentID:     parentID,
		Keywords:     input.Body.Keywords,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierr.Map(err, "failed to create category")
	}

	out := &CreateCategoryOutput{Status: http.StatusCreated}
	out.Body.ID = action.CategoryID.String()
	return out, nil
}
