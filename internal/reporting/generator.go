package reporting

import (
	"context"
	"sort"
	"time"

	"alchm-engine/internal/compat"
	"alchm-engine/internal/domain"
	"alchm-engine/internal/profile"
	"alchm-engine/internal/storage"
)

// Generator produces reports from stored recipe profiles.
type Generator struct {
	recipeStore storage.RecipeStore
	baseline    profile.Baseline
	now         func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(recipeStore storage.RecipeStore, baseline profile.Baseline) *Generator {
	return &Generator{
		recipeStore: recipeStore,
		baseline:    baseline,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete cuisine analytics report.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	cuisines, err := g.recipeStore.ListCuisines(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.CuisineProfile, 0, len(cuisines))
	recipeCount := 0
	snapshotDate := ""
	for _, cuisine := range cuisines {
		recipes, err := g.recipeStore.GetByCuisine(ctx, cuisine)
		if err != nil {
			return nil, err
		}
		if len(recipes) == 0 {
			continue
		}

		members := make([]domain.Recipe, len(recipes))
		for i, r := range recipes {
			members[i] = *r
		}
		p, err := profile.AggregateCuisine(cuisine, members, g.baseline)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
		recipeCount += len(recipes)
		if d := recipes[0].SnapshotDate; d > snapshotDate {
			snapshotDate = d
		}
	}

	return &Report{
		GeneratedAt:    g.now(),
		CuisineCount:   len(profiles),
		RecipeCount:    recipeCount,
		SnapshotDate:   snapshotDate,
		CuisineMetrics: generateCuisineMetrics(profiles),
		Signatures:     generateSignatures(profiles),
		Compatibility:  generateCompatibility(profiles),
	}, nil
}

// BuildReport assembles a report from already-computed cuisine profiles,
// bypassing the recipe store. Used when the profiles come straight out of
// an in-process computation run.
func BuildReport(profiles []domain.CuisineProfile, snapshotDate string, now time.Time) *Report {
	recipeCount := 0
	for _, p := range profiles {
		recipeCount += p.RecipeCount
	}
	return &Report{
		GeneratedAt:    now,
		CuisineCount:   len(profiles),
		RecipeCount:    recipeCount,
		SnapshotDate:   snapshotDate,
		CuisineMetrics: generateCuisineMetrics(profiles),
		Signatures:     generateSignatures(profiles),
		Compatibility:  generateCompatibility(profiles),
	}
}

// generateCuisineMetrics builds sorted per-cuisine rows.
func generateCuisineMetrics(profiles []domain.CuisineProfile) []CuisineMetricRow {
	rows := make([]CuisineMetricRow, len(profiles))
	for i, p := range profiles {
		rows[i] = CuisineMetricRow{
			Cuisine:     p.Cuisine,
			RecipeCount: p.RecipeCount,

			FireMean:  p.ElementalMean.Fire,
			WaterMean: p.ElementalMean.Water,
			EarthMean: p.ElementalMean.Earth,
			AirMean:   p.ElementalMean.Air,

			FireVariance:  p.ElementalVariance.Fire,
			WaterVariance: p.ElementalVariance.Water,
			EarthVariance: p.ElementalVariance.Earth,
			AirVariance:   p.ElementalVariance.Air,

			SpiritMean:    p.AlchemicalMean.Spirit,
			EssenceMean:   p.AlchemicalMean.Essence,
			MatterMean:    p.AlchemicalMean.Matter,
			SubstanceMean: p.AlchemicalMean.Substance,
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Cuisine < rows[j].Cuisine
	})
	return rows
}

// generateSignatures flattens signature elements across cuisines. Within a
// cuisine the element order from the profile is preserved.
func generateSignatures(profiles []domain.CuisineProfile) []SignatureRow {
	sorted := make([]domain.CuisineProfile, len(profiles))
	copy(sorted, profiles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Cuisine < sorted[j].Cuisine
	})

	var rows []SignatureRow
	for _, p := range sorted {
		for _, sig := range p.Signatures {
			rows = append(rows, SignatureRow{
				Cuisine: p.Cuisine,
				Element: string(sig.Element),
				ZScore:  sig.ZScore,
			})
		}
	}
	return rows
}

// generateCompatibility scores every unordered cuisine pair once, using
// each cuisine's elemental mean profile.
func generateCompatibility(profiles []domain.CuisineProfile) []CompatibilityRow {
	sorted := make([]domain.CuisineProfile, len(profiles))
	copy(sorted, profiles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Cuisine < sorted[j].Cuisine
	})

	var rows []CompatibilityRow
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			score := compat.ScoreProfiles(sorted[i].ElementalMean, sorted[j].ElementalMean)
			rows = append(rows, CompatibilityRow{
				CuisineA: sorted[i].Cuisine,
				CuisineB: sorted[j].Cuisine,
				Score:    score.Float64(),
			})
		}
	}
	return rows
}
