package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// RecipeStore implements storage.RecipeStore using PostgreSQL.
type RecipeStore struct {
	pool *Pool
}

// NewRecipeStore creates a new RecipeStore.
func NewRecipeStore(pool *Pool) *RecipeStore {
	return &RecipeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RecipeStore = (*RecipeStore)(nil)

const recipeColumns = `
	recipe_id, name, cuisine,
	fire, water, earth, air,
	spirit, essence, matter, substance,
	heat, entropy, reactivity, gregs_energy, kalchm, monica,
	snapshot_date, season, lunar_phase
`

// Insert adds a new recipe profile. Returns ErrDuplicateKey if recipe_id
// exists. Monica is stored as-is: PostgreSQL double precision represents
// NaN natively.
func (s *RecipeStore) Insert(ctx context.Context, r *domain.Recipe) error {
	if r == nil || r.RecipeID == "" || r.Name == "" {
		return storage.ErrInvalidInput
	}
	snapshotDate, err := time.Parse("2006-01-02", r.SnapshotDate)
	if err != nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO recipe_profiles (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err = s.pool.Exec(ctx, query,
		r.RecipeID,
		r.Name,
		r.Cuisine,
		r.Elemental.Fire,
		r.Elemental.Water,
		r.Elemental.Earth,
		r.Elemental.Air,
		r.Alchemical.Spirit,
		r.Alchemical.Essence,
		r.Alchemical.Matter,
		r.Alchemical.Substance,
		r.Thermodynamic.Heat,
		r.Thermodynamic.Entropy,
		r.Thermodynamic.Reactivity,
		r.Thermodynamic.GregsEnergy,
		r.Thermodynamic.Kalchm,
		r.Thermodynamic.Monica,
		snapshotDate,
		string(r.Season),
		string(r.LunarPhase),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByID retrieves a recipe by its ID. Returns ErrNotFound if not exists.
func (s *RecipeStore) GetByID(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipe_profiles WHERE recipe_id = $1`

	row := s.pool.QueryRow(ctx, query, recipeID)
	r, err := scanRecipe(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe by id: %w", err)
	}
	return r, nil
}

// GetByCuisine retrieves all recipes of a cuisine, ordered by name ASC.
func (s *RecipeStore) GetByCuisine(ctx context.Context, cuisine string) ([]*domain.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipe_profiles
		WHERE cuisine = $1
		ORDER BY name ASC, recipe_id ASC
	`

	rows, err := s.pool.Query(ctx, query, cuisine)
	if err != nil {
		return nil, fmt.Errorf("get recipes by cuisine: %w", err)
	}
	defer rows.Close()

	var result []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return result, nil
}

// ListCuisines retrieves distinct cuisine names, ordered ASC.
func (s *RecipeStore) ListCuisines(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT cuisine FROM recipe_profiles ORDER BY cuisine ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cuisines: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var cuisine string
		if err := rows.Scan(&cuisine); err != nil {
			return nil, fmt.Errorf("scan cuisine: %w", err)
		}
		result = append(result, cuisine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cuisines: %w", err)
	}
	return result, nil
}

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	var r domain.Recipe
	var snapshotDate time.Time
	var season, phase string
	err := row.Scan(
		&r.RecipeID,
		&r.Name,
		&r.Cuisine,
		&r.Elemental.Fire,
		&r.Elemental.Water,
		&r.Elemental.Earth,
		&r.Elemental.Air,
		&r.Alchemical.Spirit,
		&r.Alchemical.Essence,
		&r.Alchemical.Matter,
		&r.Alchemical.Substance,
		&r.Thermodynamic.Heat,
		&r.Thermodynamic.Entropy,
		&r.Thermodynamic.Reactivity,
		&r.Thermodynamic.GregsEnergy,
		&r.Thermodynamic.Kalchm,
		&r.Thermodynamic.Monica,
		&snapshotDate,
		&season,
		&phase,
	)
	if err != nil {
		return nil, err
	}
	r.SnapshotDate = snapshotDate.Format("2006-01-02")
	r.Season = domain.Season(season)
	r.LunarPhase = domain.LunarPhase(phase)
	return &r, nil
}
