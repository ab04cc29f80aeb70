package clickhouse

import (
	"context"
	"fmt"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// ProfileStore implements storage.ProfileArchive using ClickHouse. The
// archive is append-only; each archiving run adds new rows rather than
// replacing earlier ones.
type ProfileStore struct {
	conn *Conn
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(conn *Conn) *ProfileStore {
	return &ProfileStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ProfileArchive = (*ProfileStore)(nil)

// InsertRecipes appends computed recipe profiles to the archive.
func (s *ProfileStore) InsertRecipes(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	for _, r := range recipes {
		if r == nil || r.RecipeID == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO recipe_profiles_archive (
			recipe_id, name, cuisine,
			fire, water, earth, air,
			spirit, essence, matter, substance,
			heat, entropy, reactivity, gregs_energy, kalchm, monica,
			snapshot_date, season, lunar_phase
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare recipe batch: %w", err)
	}

	for _, r := range recipes {
		snapshotDate, err := time.Parse("2006-01-02", r.SnapshotDate)
		if err != nil {
			return storage.ErrInvalidInput
		}
		err = batch.Append(
			r.RecipeID, r.Name, r.Cuisine,
			r.Elemental.Fire, r.Elemental.Water, r.Elemental.Earth, r.Elemental.Air,
			r.Alchemical.Spirit, r.Alchemical.Essence, r.Alchemical.Matter, r.Alchemical.Substance,
			r.Thermodynamic.Heat, r.Thermodynamic.Entropy, r.Thermodynamic.Reactivity,
			r.Thermodynamic.GregsEnergy, r.Thermodynamic.Kalchm, r.Thermodynamic.Monica,
			snapshotDate, string(r.Season), string(r.LunarPhase),
		)
		if err != nil {
			return fmt.Errorf("append recipe to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send recipe batch: %w", err)
	}
	return nil
}

// InsertCuisines appends computed cuisine profiles to the archive.
func (s *ProfileStore) InsertCuisines(ctx context.Context, profiles []*domain.CuisineProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	for _, p := range profiles {
		if p == nil || p.Cuisine == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO cuisine_profiles_archive (
			cuisine, recipe_count,
			fire_mean, water_mean, earth_mean, air_mean,
			fire_variance, water_variance, earth_variance, air_variance,
			spirit_mean, essence_mean, matter_mean, substance_mean,
			spirit_variance, essence_variance, matter_variance, substance_variance,
			signature_elements, signature_zscores
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare cuisine batch: %w", err)
	}

	for _, p := range profiles {
		elements := make([]string, len(p.Signatures))
		zscores := make([]float64, len(p.Signatures))
		for i, sig := range p.Signatures {
			elements[i] = string(sig.Element)
			zscores[i] = sig.ZScore
		}
		err = batch.Append(
			p.Cuisine, uint32(p.RecipeCount),
			p.ElementalMean.Fire, p.ElementalMean.Water, p.ElementalMean.Earth, p.ElementalMean.Air,
			p.ElementalVariance.Fire, p.ElementalVariance.Water, p.ElementalVariance.Earth, p.ElementalVariance.Air,
			p.AlchemicalMean.Spirit, p.AlchemicalMean.Essence, p.AlchemicalMean.Matter, p.AlchemicalMean.Substance,
			p.AlchemicalVariance.Spirit, p.AlchemicalVariance.Essence, p.AlchemicalVariance.Matter, p.AlchemicalVariance.Substance,
			elements, zscores,
		)
		if err != nil {
			return fmt.Errorf("append cuisine to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send cuisine batch: %w", err)
	}
	return nil
}

// RecipeCountByCuisine returns the archived recipe count per cuisine.
// Counts distinct recipes so re-archiving the same recipe does not inflate
// the totals.
func (s *ProfileStore) RecipeCountByCuisine(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT cuisine, uniqExact(recipe_id) AS recipe_count
		FROM recipe_profiles_archive
		GROUP BY cuisine
		ORDER BY cuisine ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query recipe counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var cuisine string
		var count uint64
		if err := rows.Scan(&cuisine, &count); err != nil {
			return nil, fmt.Errorf("scan recipe count: %w", err)
		}
		counts[cuisine] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe counts: %w", err)
	}
	return counts, nil
}
