package clickhouse

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

func archivedRecipe(id, name, cuisine string) *domain.Recipe {
	return &domain.Recipe{
		RecipeID:  id,
		Name:      name,
		Cuisine:   cuisine,
		Elemental: domain.ElementalProperties{Fire: 2.1, Water: 0.9, Earth: 1.4, Air: 0.6},
		Alchemical: domain.AlchemicalProperties{
			Spirit: 4, Essence: 7, Matter: 6, Substance: 2,
		},
		Thermodynamic: domain.ThermodynamicMetrics{
			Heat: 0.12, Entropy: 0.3, Reactivity: 1.1,
			GregsEnergy: -0.21, Kalchm: 27, Monica: math.NaN(),
		},
		SnapshotDate: "2025-06-01",
		Season:       domain.SeasonSummer,
		LunarPhase:   domain.PhaseFullMoon,
	}
}

func TestProfileStore_InsertRecipesAndCount(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProfileStore(conn)
	ctx := context.Background()

	recipes := []*domain.Recipe{
		archivedRecipe("r-1", "vindaloo", "indian"),
		archivedRecipe("r-2", "dal", "indian"),
		archivedRecipe("r-3", "pho", "vietnamese"),
	}
	require.NoError(t, store.InsertRecipes(ctx, recipes))

	counts, err := store.RecipeCountByCuisine(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["indian"])
	assert.Equal(t, 1, counts["vietnamese"])
}

func TestProfileStore_ReArchiveDoesNotInflateCounts(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProfileStore(conn)
	ctx := context.Background()

	recipe := archivedRecipe("r-1", "vindaloo", "indian")
	require.NoError(t, store.InsertRecipes(ctx, []*domain.Recipe{recipe}))
	require.NoError(t, store.InsertRecipes(ctx, []*domain.Recipe{recipe}))

	counts, err := store.RecipeCountByCuisine(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["indian"])
}

func TestProfileStore_InsertRecipesInvalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProfileStore(conn)
	ctx := context.Background()

	err := store.InsertRecipes(ctx, []*domain.Recipe{nil})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	bad := archivedRecipe("r-1", "vindaloo", "indian")
	bad.SnapshotDate = "not-a-date"
	err = store.InsertRecipes(ctx, []*domain.Recipe{bad})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	assert.NoError(t, store.InsertRecipes(ctx, nil))
}

func TestProfileStore_InsertCuisines(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProfileStore(conn)
	ctx := context.Background()

	profile := &domain.CuisineProfile{
		Cuisine:            "indian",
		RecipeCount:        2,
		ElementalMean:      domain.ElementalProperties{Fire: 2.0, Water: 0.9, Earth: 1.3, Air: 0.6},
		ElementalVariance:  domain.ElementalProperties{Fire: 0.01, Water: 0, Earth: 0.01, Air: 0},
		AlchemicalMean:     domain.AlchemicalProperties{Spirit: 4, Essence: 7, Matter: 6, Substance: 2},
		AlchemicalVariance: domain.AlchemicalProperties{},
		Signatures: []domain.SignatureElement{
			{Element: domain.ElementFire, ZScore: 2.7},
		},
	}
	require.NoError(t, store.InsertCuisines(ctx, []*domain.CuisineProfile{profile}))

	var cuisine string
	var recipeCount uint32
	var elements []string
	var zscores []float64
	row := conn.QueryRow(ctx, `
		SELECT cuisine, recipe_count, signature_elements, signature_zscores
		FROM cuisine_profiles_archive
		WHERE cuisine = ?
	`, "indian")
	require.NoError(t, row.Scan(&cuisine, &recipeCount, &elements, &zscores))

	assert.Equal(t, "indian", cuisine)
	assert.Equal(t, uint32(2), recipeCount)
	assert.Equal(t, []string{"Fire"}, elements)
	require.Len(t, zscores, 1)
	assert.InDelta(t, 2.7, zscores[0], 1e-9)
}
