package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

func transitRange(body domain.Body, sign domain.ZodiacSign, start, end string) domain.TransitRange {
	parse := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return domain.TransitRange{Body: body, Sign: sign, Start: parse(start), End: parse(end)}
}

func TestTransitStore_InsertBulkAndGetByBody(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	ranges := []domain.TransitRange{
		transitRange(domain.BodySaturn, domain.Aries, "2025-05-24", "2025-09-01"),
		transitRange(domain.BodySaturn, domain.Pisces, "2023-03-07", "2025-05-24"),
		transitRange(domain.BodyJupiter, domain.Gemini, "2024-05-25", "2025-06-09"),
	}
	if err := store.InsertBulk(ctx, ranges); err != nil {
		t.Fatalf("InsertBulk: %v", err)
	}

	saturn, err := store.GetByBody(ctx, domain.BodySaturn)
	if err != nil {
		t.Fatalf("GetByBody: %v", err)
	}
	if len(saturn) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(saturn))
	}
	if saturn[0].Sign != domain.Pisces || saturn[1].Sign != domain.Aries {
		t.Errorf("expected start-sorted order, got %s, %s", saturn[0].Sign, saturn[1].Sign)
	}
}

func TestTransitStore_DuplicateFailsWholeBatch(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	first := transitRange(domain.BodySaturn, domain.Aries, "2025-05-24", "2025-09-01")
	if err := store.InsertBulk(ctx, []domain.TransitRange{first}); err != nil {
		t.Fatalf("InsertBulk: %v", err)
	}

	batch := []domain.TransitRange{
		transitRange(domain.BodyJupiter, domain.Cancer, "2025-06-09", "2026-06-30"),
		first, // duplicate
	}
	if err := store.InsertBulk(ctx, batch); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// Nothing from the failed batch may be visible.
	jupiter, err := store.GetByBody(ctx, domain.BodyJupiter)
	if err != nil {
		t.Fatalf("GetByBody: %v", err)
	}
	if len(jupiter) != 0 {
		t.Errorf("failed batch leaked %d ranges", len(jupiter))
	}
}

func TestTransitStore_InvalidRange(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	inverted := transitRange(domain.BodySaturn, domain.Aries, "2025-09-01", "2025-05-24")
	if err := store.InsertBulk(ctx, []domain.TransitRange{inverted}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTransitStore_GetActive(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	ranges := []domain.TransitRange{
		transitRange(domain.BodySaturn, domain.Aries, "2025-05-24", "2025-09-01"),
		transitRange(domain.BodyJupiter, domain.Gemini, "2024-05-25", "2025-06-09"),
		transitRange(domain.BodyPluto, domain.Aquarius, "2024-11-19", "2043-03-08"),
	}
	if err := store.InsertBulk(ctx, ranges); err != nil {
		t.Fatalf("InsertBulk: %v", err)
	}

	active, err := store.GetActive(ctx, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("expected 3 active ranges, got %d", len(active))
	}

	later, err := store.GetActive(ctx, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if len(later) != 1 || later[0].Body != domain.BodyPluto {
		t.Errorf("expected only Pluto active, got %+v", later)
	}
}
