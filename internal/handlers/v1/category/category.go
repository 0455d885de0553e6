package category

import (
	storagecategory "github.com/carson-networks/finance-server/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID       string   `json:"id" doc:"Category UUID"`
	Name     string   `json:"name" doc:"Display name, unique per user and type"`
	Type     string   `json:"type" doc:"income or expense"`
	ParentID string   `json:"parentId,omitempty" doc:"Parent category UUID for subcategories"`
	Keywords []string `json:"keywords,omitempty" doc:"Auto-categorization keywords"`
}

func fromStorage(row *storagecategory.Category) Category {
	c := Category{
		ID:       row.ID.String(),
		Name:     row.Name,
		Type:     string(row.Type),
		Keywords: row.Keywords,
	}
	if row.ParentID.Valid {
		c.ParentID = row.ParentID.UUID.String()
	}
	return c
}
