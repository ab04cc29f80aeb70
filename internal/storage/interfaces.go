package storage

import (
	"context"
	"time"

	"alchm-engine/internal/domain"
)

// IngredientStore provides access to ingredients storage.
type IngredientStore interface {
	// Insert adds a new ingredient. Returns ErrDuplicateKey if ingredient_id exists.
	Insert(ctx context.Context, ing *domain.Ingredient) error

	// GetByID retrieves an ingredient by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, ingredientID string) (*domain.Ingredient, error)

	// GetByCategory retrieves all ingredients of a category, ordered by name ASC.
	GetByCategory(ctx context.Context, category string) ([]*domain.Ingredient, error)

	// List retrieves all ingredients, ordered by name ASC.
	List(ctx context.Context) ([]*domain.Ingredient, error)
}

// RecipeStore provides access to recipe_profiles storage.
type RecipeStore interface {
	// Insert adds a new recipe profile. Returns ErrDuplicateKey if recipe_id exists.
	Insert(ctx context.Context, r *domain.Recipe) error

	// GetByID retrieves a recipe by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, recipeID string) (*domain.Recipe, error)

	// GetByCuisine retrieves all recipes of a cuisine, ordered by name ASC.
	GetByCuisine(ctx context.Context, cuisine string) ([]*domain.Recipe, error)

	// ListCuisines retrieves distinct cuisine names, ordered ASC.
	ListCuisines(ctx context.Context) ([]string, error)
}

// TransitStore provides access to transit_ranges storage.
type TransitStore interface {
	// InsertBulk adds multiple transit ranges. Fails the entire batch on any
	// duplicate (body, sign, start_date).
	InsertBulk(ctx context.Context, ranges []domain.TransitRange) error

	// GetByBody retrieves all ranges for a body, ordered by start_date ASC.
	GetByBody(ctx context.Context, body domain.Body) ([]domain.TransitRange, error)

	// GetActive retrieves the ranges containing the given instant.
	GetActive(ctx context.Context, at time.Time) ([]domain.TransitRange, error)
}

// SnapshotStore provides access to planetary position snapshot storage.
type SnapshotStore interface {
	// Insert archives a resolved snapshot. Returns ErrDuplicateKey if the
	// date_key already exists.
	Insert(ctx context.Context, s *domain.PositionSnapshot) error

	// GetByDateKey retrieves the snapshot for a calendar day. Returns
	// ErrNotFound if not exists.
	GetByDateKey(ctx context.Context, dateKey string) (*domain.PositionSnapshot, error)

	// Latest retrieves the snapshot with the greatest date_key. Returns
	// ErrNotFound on an empty archive.
	Latest(ctx context.Context) (*domain.PositionSnapshot, error)
}

// ProfileArchive provides access to the computed-profile analytics archive.
type ProfileArchive interface {
	// InsertRecipes appends computed recipe profiles.
	InsertRecipes(ctx context.Context, recipes []*domain.Recipe) error

	// InsertCuisines appends computed cuisine profiles.
	InsertCuisines(ctx context.Context, profiles []*domain.CuisineProfile) error

	// RecipeCountByCuisine returns the archived recipe count per cuisine.
	RecipeCountByCuisine(ctx context.Context) (map[string]int, error)
}
