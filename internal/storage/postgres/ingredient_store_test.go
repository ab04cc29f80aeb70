package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

func TestIngredientStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewIngredientStore(pool)
	ctx := context.Background()

	ing := &domain.Ingredient{
		IngredientID:   "ing-chili-001",
		Name:           "chili",
		Category:       "spice",
		Elemental:      domain.ElementalProperties{Fire: 2.5, Earth: 0.2},
		QuantityWeight: 1.0,
	}

	err := store.Insert(ctx, ing)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "ing-chili-001")
	require.NoError(t, err)

	assert.Equal(t, ing.IngredientID, retrieved.IngredientID)
	assert.Equal(t, ing.Name, retrieved.Name)
	assert.Equal(t, ing.Category, retrieved.Category)
	assert.Equal(t, ing.Elemental, retrieved.Elemental)
	assert.Equal(t, ing.QuantityWeight, retrieved.QuantityWeight)
}

func TestIngredientStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewIngredientStore(pool)
	ctx := context.Background()

	ing := &domain.Ingredient{
		IngredientID:   "ing-dup",
		Name:           "ginger",
		Category:       "spice",
		QuantityWeight: 1.0,
	}

	err := store.Insert(ctx, ing)
	require.NoError(t, err)

	err = store.Insert(ctx, ing)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestIngredientStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewIngredientStore(pool)

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIngredientStore_GetByCategoryAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewIngredientStore(pool)
	ctx := context.Background()

	ingredients := []*domain.Ingredient{
		{IngredientID: "ing-1", Name: "turmeric", Category: "spice", QuantityWeight: 1},
		{IngredientID: "ing-2", Name: "chili", Category: "spice", QuantityWeight: 1},
		{IngredientID: "ing-3", Name: "rice", Category: "grain", QuantityWeight: 1},
	}
	for _, ing := range ingredients {
		require.NoError(t, store.Insert(ctx, ing))
	}

	spices, err := store.GetByCategory(ctx, "spice")
	require.NoError(t, err)
	require.Len(t, spices, 2)
	assert.Equal(t, "chili", spices[0].Name)
	assert.Equal(t, "turmeric", spices[1].Name)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
