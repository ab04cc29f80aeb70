package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// IngredientStore implements storage.IngredientStore using PostgreSQL.
type IngredientStore struct {
	pool *Pool
}

// NewIngredientStore creates a new IngredientStore.
func NewIngredientStore(pool *Pool) *IngredientStore {
	return &IngredientStore{pool: pool}
}

// Compile-time interface check.
var _ storage.IngredientStore = (*IngredientStore)(nil)

// Insert adds a new ingredient. Returns ErrDuplicateKey if ingredient_id exists.
func (s *IngredientStore) Insert(ctx context.Context, ing *domain.Ingredient) error {
	if ing == nil || ing.IngredientID == "" || ing.Name == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO ingredients (
			ingredient_id, name, category, fire, water, earth, air, quantity_weight
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		ing.IngredientID,
		ing.Name,
		ing.Category,
		ing.Elemental.Fire,
		ing.Elemental.Water,
		ing.Elemental.Earth,
		ing.Elemental.Air,
		ing.QuantityWeight,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID retrieves an ingredient by its ID. Returns ErrNotFound if not exists.
func (s *IngredientStore) GetByID(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	query := `
		SELECT ingredient_id, name, category, fire, water, earth, air, quantity_weight
		FROM ingredients
		WHERE ingredient_id = $1
	`

	row := s.pool.QueryRow(ctx, query, ingredientID)
	ing, err := scanIngredient(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get ingredient by id: %w", err)
	}
	return ing, nil
}

// GetByCategory retrieves all ingredients of a category, ordered by name ASC.
func (s *IngredientStore) GetByCategory(ctx context.Context, category string) ([]*domain.Ingredient, error) {
	query := `
		SELECT ingredient_id, name, category, fire, water, earth, air, quantity_weight
		FROM ingredients
		WHERE category = $1
		ORDER BY name ASC, ingredient_id ASC
	`

	rows, err := s.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("get ingredients by category: %w", err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

// List retrieves all ingredients, ordered by name ASC.
func (s *IngredientStore) List(ctx context.Context) ([]*domain.Ingredient, error) {
	query := `
		SELECT ingredient_id, name, category, fire, water, earth, air, quantity_weight
		FROM ingredients
		ORDER BY name ASC, ingredient_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

func scanIngredient(row pgx.Row) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := row.Scan(
		&ing.IngredientID,
		&ing.Name,
		&ing.Category,
		&ing.Elemental.Fire,
		&ing.Elemental.Water,
		&ing.Elemental.Earth,
		&ing.Elemental.Air,
		&ing.QuantityWeight,
	)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func scanIngredients(rows pgx.Rows) ([]*domain.Ingredient, error) {
	var result []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		result = append(result, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return result, nil
}
