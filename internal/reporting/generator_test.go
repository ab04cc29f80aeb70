package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/profile"
	"alchm-engine/internal/storage/memory"
)

func setupTestData(t *testing.T) *memory.RecipeStore {
	t.Helper()
	ctx := context.Background()

	store := memory.NewRecipeStore()

	recipes := []*domain.Recipe{
		{
			RecipeID: "r1", Name: "vindaloo", Cuisine: "indian",
			Elemental:    domain.ElementalProperties{Fire: 2.5, Water: 0.8, Earth: 1.2, Air: 0.5},
			Alchemical:   domain.AlchemicalProperties{Spirit: 4, Essence: 7, Matter: 6, Substance: 2},
			SnapshotDate: "2025-06-01", Season: domain.SeasonSummer, LunarPhase: domain.PhaseFullMoon,
		},
		{
			RecipeID: "r2", Name: "dal", Cuisine: "indian",
			Elemental:    domain.ElementalProperties{Fire: 2.1, Water: 1.0, Earth: 1.4, Air: 0.5},
			Alchemical:   domain.AlchemicalProperties{Spirit: 4, Essence: 7, Matter: 6, Substance: 2},
			SnapshotDate: "2025-06-01", Season: domain.SeasonSummer, LunarPhase: domain.PhaseFullMoon,
		},
		{
			RecipeID: "r3", Name: "pho", Cuisine: "vietnamese",
			Elemental:    domain.ElementalProperties{Fire: 0.7, Water: 2.2, Earth: 1.0, Air: 0.6},
			Alchemical:   domain.AlchemicalProperties{Spirit: 4, Essence: 7, Matter: 6, Substance: 2},
			SnapshotDate: "2025-06-01", Season: domain.SeasonSummer, LunarPhase: domain.PhaseFullMoon,
		},
	}
	for _, r := range recipes {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert recipe failed: %v", err)
		}
	}
	return store
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestGenerator_Generate(t *testing.T) {
	store := setupTestData(t)
	gen := NewGenerator(store, profile.DefaultBaseline).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.CuisineCount != 2 {
		t.Errorf("CuisineCount = %d, want 2", report.CuisineCount)
	}
	if report.RecipeCount != 3 {
		t.Errorf("RecipeCount = %d, want 3", report.RecipeCount)
	}
	if report.SnapshotDate != "2025-06-01" {
		t.Errorf("SnapshotDate = %q, want 2025-06-01", report.SnapshotDate)
	}
	if !report.GeneratedAt.Equal(fixedClock()()) {
		t.Errorf("GeneratedAt = %v, want fixed clock value", report.GeneratedAt)
	}
}

func TestGenerator_CuisineMetricsSortedAndAveraged(t *testing.T) {
	store := setupTestData(t)
	gen := NewGenerator(store, profile.DefaultBaseline).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(report.CuisineMetrics) != 2 {
		t.Fatalf("got %d metric rows, want 2", len(report.CuisineMetrics))
	}
	if report.CuisineMetrics[0].Cuisine != "indian" || report.CuisineMetrics[1].Cuisine != "vietnamese" {
		t.Errorf("rows not sorted by cuisine: %v, %v",
			report.CuisineMetrics[0].Cuisine, report.CuisineMetrics[1].Cuisine)
	}

	indian := report.CuisineMetrics[0]
	if got, want := indian.FireMean, 2.3; !closeTo(got, want) {
		t.Errorf("indian FireMean = %v, want %v", got, want)
	}
	if got, want := indian.FireVariance, 0.04; !closeTo(got, want) {
		t.Errorf("indian FireVariance = %v, want %v", got, want)
	}
	if indian.RecipeCount != 2 {
		t.Errorf("indian RecipeCount = %d, want 2", indian.RecipeCount)
	}
}

func TestGenerator_CompatibilityPairs(t *testing.T) {
	store := setupTestData(t)
	gen := NewGenerator(store, profile.DefaultBaseline).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(report.Compatibility) != 1 {
		t.Fatalf("got %d compatibility rows, want 1", len(report.Compatibility))
	}
	row := report.Compatibility[0]
	if row.CuisineA != "indian" || row.CuisineB != "vietnamese" {
		t.Errorf("pair = (%s, %s), want (indian, vietnamese)", row.CuisineA, row.CuisineB)
	}
	// Fire-dominant vs Water-dominant
	if !closeTo(row.Score, 0.7) {
		t.Errorf("Score = %v, want 0.7", row.Score)
	}
}

func TestGenerator_EmptyStore(t *testing.T) {
	store := memory.NewRecipeStore()
	gen := NewGenerator(store, profile.DefaultBaseline).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if report.CuisineCount != 0 || report.RecipeCount != 0 {
		t.Errorf("expected empty report, got %d cuisines %d recipes",
			report.CuisineCount, report.RecipeCount)
	}
	if len(report.Compatibility) != 0 {
		t.Errorf("expected no compatibility rows, got %d", len(report.Compatibility))
	}
}

func TestRenderMarkdown(t *testing.T) {
	store := setupTestData(t)
	gen := NewGenerator(store, profile.DefaultBaseline).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# Cuisine Analytics Report",
		"## Cuisine Metrics",
		"## Signature Elements",
		"## Cuisine Compatibility",
		"| indian |",
		"Cuisines: 2 | Recipes: 3",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	report := BuildReport(nil, "", fixedClock()())
	md := RenderMarkdown(report)

	for _, want := range []string{
		"No cuisine metrics available.",
		"No signature elements above threshold.",
		"Not enough cuisines for pairwise comparison.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderCSV(t *testing.T) {
	store := setupTestData(t)
	gen := NewGenerator(store, profile.DefaultBaseline).WithClock(fixedClock())

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	csv := RenderCSV(report.CuisineMetrics)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d CSV lines, want 3 (header + 2 rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "cuisine,recipe_count,fire_mean") {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "indian,2,") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func closeTo(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
