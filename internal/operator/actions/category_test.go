package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/storagetest"
)

func TestUpdateCategory_RenameAndKeywords(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	newName := "Food"
	keywords := []string{"market", "supermarket"}
	update := &UpdateCategory{
		UserID:     userID,
		CategoryID: categoryID,
		Update:     category.CategoryUpdate{Name: &newName, Keywords: &keywords},
	}
	require.NoError(t, update.Perform(ctx, w))

	row, err := store.Reader().Categories.FindByID(ctx, userID, categoryID)
	require.NoError(t, err)
	assert.Equal(t, "Food", row.Name)
	assert.EqualValues(t, keywords, row.Keywords)
}

func TestUpdateCategory_RejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)
	seedCategory(t, w, userID, "Dining", finance.TransactionExpense)

	taken := "Dining"
	update := &UpdateCategory{
		UserID:     userID,
		CategoryID: categoryID,
		Update:     category.CategoryUpdate{Name: &taken},
	}
	assert.ErrorIs(t, update.Perform(ctx, w), finance.ErrConflict)

	// Re-submitting the current name is not a conflict with itself.
	same := "Groceries"
	update.Update = category.CategoryUpdate{Name: &same}
	assert.NoError(t, update.Perform(ctx, w))
}

func TestUpdateCategory_RejectsEmptyUpdate(t *testing.T) {
	ctx := context.Background()
	store := storagetest.NewStore()
	w := newTestWriter(t, store)
	userID := uuid.Must(uuid.NewV4())
	categoryID := seedCategory(t, w, userID, "Groceries", finance.TransactionExpense)

	update := &UpdateCategory{UserID: userID, CategoryID: categoryID}
	assert.ErrorIs(t, update.Perform(ctx, w), finance.ErrValidation)
}
