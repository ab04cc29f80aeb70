package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

func archivableSnapshot(dateKey string) *domain.PositionSnapshot {
	signs := map[domain.Body]domain.ZodiacSign{
		domain.BodySun:     domain.Leo,
		domain.BodyMoon:    domain.Cancer,
		domain.BodyMercury: domain.Virgo,
		domain.BodyVenus:   domain.Libra,
		domain.BodyMars:    domain.Aries,
		domain.BodyJupiter: domain.Sagittarius,
		domain.BodySaturn:  domain.Capricorn,
		domain.BodyUranus:  domain.Taurus,
		domain.BodyNeptune: domain.Pisces,
		domain.BodyPluto:   domain.Aquarius,
	}
	positions := make(map[domain.Body]domain.PlanetaryPosition, len(signs))
	for body, sign := range signs {
		positions[body] = domain.PlanetaryPosition{
			Body:      body,
			Sign:      sign,
			Degree:    5,
			Longitude: float64(sign.Index())*30 + 5,
		}
	}
	return &domain.PositionSnapshot{
		DateKey:    dateKey,
		Positions:  positions,
		Tier:       domain.TierPrimary,
		ResolvedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotStore_InsertAndGet(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	if err := store.Insert(ctx, archivableSnapshot("2025-06-01")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.GetByDateKey(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("GetByDateKey: %v", err)
	}
	if got.DateKey != "2025-06-01" {
		t.Errorf("expected date key 2025-06-01, got %s", got.DateKey)
	}

	if err := store.Insert(ctx, archivableSnapshot("2025-06-01")); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if _, err := store.GetByDateKey(ctx, "2025-06-02"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotStore_RejectsInvalidSnapshot(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	incomplete := archivableSnapshot("2025-06-01")
	delete(incomplete.Positions, domain.BodyPluto)

	if err := store.Insert(ctx, incomplete); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSnapshotStore_Latest(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	if _, err := store.Latest(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty archive, got %v", err)
	}

	for _, key := range []string{"2025-06-02", "2025-05-30", "2025-06-01"} {
		if err := store.Insert(ctx, archivableSnapshot(key)); err != nil {
			t.Fatalf("Insert %s: %v", key, err)
		}
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.DateKey != "2025-06-02" {
		t.Errorf("expected latest 2025-06-02, got %s", latest.DateKey)
	}
}

func TestProfileArchive(t *testing.T) {
	archive := NewProfileArchive()
	ctx := context.Background()

	recipes := []*domain.Recipe{
		testRecipe("r-1", "vindaloo", "indian"),
		testRecipe("r-2", "dal", "indian"),
		testRecipe("r-3", "pho", "vietnamese"),
	}
	if err := archive.InsertRecipes(ctx, recipes); err != nil {
		t.Fatalf("InsertRecipes: %v", err)
	}

	profiles := []*domain.CuisineProfile{
		{Cuisine: "indian", RecipeCount: 2},
	}
	if err := archive.InsertCuisines(ctx, profiles); err != nil {
		t.Fatalf("InsertCuisines: %v", err)
	}

	counts, err := archive.RecipeCountByCuisine(ctx)
	if err != nil {
		t.Fatalf("RecipeCountByCuisine: %v", err)
	}
	if counts["indian"] != 2 || counts["vietnamese"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}

	if err := archive.InsertRecipes(ctx, []*domain.Recipe{{}}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
