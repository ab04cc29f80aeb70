package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/observability"
)

// Default per-tier timeouts, primary first. A tier that misses its budget
// yields to the next tier; there are no retries within a tier.
var DefaultTierTimeouts = []time.Duration{
	5 * time.Second,
	3 * time.Second,
	3 * time.Second,
}

// tierTags maps tier index to its provenance tag.
var tierTags = []domain.ResolutionTier{
	domain.TierPrimary,
	domain.TierSecondary,
	domain.TierTertiary,
}

// Resolver resolves position snapshots for calendar days. Resolution
// never fails: the ordered source ladder ends in the bundled reference
// snapshot, so every call returns a value. The only shared mutable state
// is the injected cache; everything else is read-only after construction,
// making the resolver safe for concurrent use.
type Resolver struct {
	cache    *Cache
	sources  []PositionSource
	timeouts []time.Duration
	transits *TransitTable
	fallback *domain.PositionSnapshot
	logger   *log.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

// ResolverOptions contains configuration for creating a Resolver.
type ResolverOptions struct {
	// Cache is the injected position cache. A fresh cache is created when
	// nil, so tests can supply an isolated instance.
	Cache *Cache

	// Sources are the live tiers in strict priority order:
	// primary, secondary, tertiary. May be empty; resolution then always
	// lands on the reference snapshot.
	Sources []PositionSource

	// TierTimeouts bound each source attempt. Defaults apply per index
	// when shorter than Sources.
	TierTimeouts []time.Duration

	// Transits overrides the bundled transit table.
	Transits *TransitTable

	// Fallback overrides the bundled reference snapshot.
	Fallback *domain.PositionSnapshot

	Logger  *log.Logger
	Metrics *observability.Metrics
	Clock   func() time.Time
}

// NewResolver creates a resolver. The error is only possible when the
// bundled reference data cannot be loaded, which indicates a corrupt
// build.
func NewResolver(opts ResolverOptions) (*Resolver, error) {
	cache := opts.Cache
	if cache == nil {
		cache = NewCache()
	}

	transits := opts.Transits
	if transits == nil {
		ranges, err := LoadReferenceTransits()
		if err != nil {
			return nil, fmt.Errorf("load bundled transits: %w", err)
		}
		transits = NewTransitTable(ranges)
	}

	fallback := opts.Fallback
	if fallback == nil {
		var err error
		fallback, err = LoadReferenceSnapshot()
		if err != nil {
			return nil, fmt.Errorf("load bundled snapshot: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	return &Resolver{
		cache:    cache,
		sources:  opts.Sources,
		timeouts: opts.TierTimeouts,
		transits: transits,
		fallback: fallback,
		logger:   logger,
		metrics:  opts.Metrics,
		now:      now,
	}, nil
}

// Resolve returns the position snapshot for the date's UTC calendar day.
// It never fails. The fallback ladder is strictly sequential, since
// source priority must be respected tiers are not raced, and each live tier
// is bounded by its timeout. Concurrent calls for the same day may race on
// the cache write; last-writer-wins is correct because every valid
// resolution for a day is equivalent.
func (r *Resolver) Resolve(ctx context.Context, date time.Time) *domain.PositionSnapshot {
	started := r.now()
	dateKey := domain.DateKeyFor(date)

	if snapshot, ok := r.cache.Get(dateKey); ok {
		if r.metrics != nil {
			r.metrics.CacheHits.Inc()
		}
		return snapshot
	}
	if r.metrics != nil {
		r.metrics.CacheMisses.Inc()
	}

	snapshot := r.resolveTiers(ctx, date, dateKey)

	if corrections := r.transits.ValidateSnapshot(snapshot, date); corrections > 0 {
		r.logger.Printf("resolver: corrected %d position(s) against transit table for %s", corrections, dateKey)
		if r.metrics != nil {
			r.metrics.TransitCorrections.Add(float64(corrections))
		}
	}

	r.cache.Put(dateKey, snapshot)
	if r.metrics != nil {
		r.metrics.ResolutionsTotal.WithLabelValues(snapshot.Tier.String()).Inc()
		r.metrics.ResolutionLatency.Observe(r.now().Sub(started).Seconds())
		r.metrics.CacheEntries.Set(float64(r.cache.Len()))
	}
	return snapshot
}

// resolveTiers walks the source ladder: Trying(tier i) → Success, or on
// error/timeout Trying(tier i+1), ending in the reference snapshot when
// all tiers are exhausted.
func (r *Resolver) resolveTiers(ctx context.Context, date time.Time, dateKey string) *domain.PositionSnapshot {
	for i, source := range r.sources {
		tier := tierTag(i)

		positions, err := r.attemptTier(ctx, source, i, date)
		if err != nil {
			// Non-fatal: advance to the next tier.
			r.logger.Printf("resolver: tier %s (%s) failed for %s: %v", tier, source.Name(), dateKey, err)
			if r.metrics != nil {
				r.metrics.TierFailures.WithLabelValues(tier.String(), failureReason(err)).Inc()
			}
			continue
		}

		snapshot := &domain.PositionSnapshot{
			DateKey:    dateKey,
			Positions:  positions,
			Tier:       tier,
			ResolvedAt: r.now(),
		}
		if err := snapshot.Validate(); err != nil {
			r.logger.Printf("resolver: tier %s (%s) returned invalid snapshot for %s: %v", tier, source.Name(), dateKey, err)
			if r.metrics != nil {
				r.metrics.TierFailures.WithLabelValues(tier.String(), "invalid").Inc()
			}
			continue
		}
		return snapshot
	}

	// All tiers exhausted: rekey the bundled reference snapshot.
	r.logger.Printf("resolver: all tiers exhausted for %s, using reference snapshot", dateKey)
	snapshot := r.fallback.Clone()
	snapshot.DateKey = dateKey
	snapshot.Tier = domain.TierFallback
	snapshot.ResolvedAt = r.now()
	return snapshot
}

// attemptTier runs one source fetch under its tier timeout.
func (r *Resolver) attemptTier(ctx context.Context, source PositionSource, index int, date time.Time) (map[domain.Body]domain.PlanetaryPosition, error) {
	timeout := DefaultTierTimeouts[len(DefaultTierTimeouts)-1]
	if index < len(DefaultTierTimeouts) {
		timeout = DefaultTierTimeouts[index]
	}
	if index < len(r.timeouts) {
		timeout = r.timeouts[index]
	}

	tierCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return source.Fetch(tierCtx, date)
}

func tierTag(index int) domain.ResolutionTier {
	if index < len(tierTags) {
		return tierTags[index]
	}
	return tierTags[len(tierTags)-1]
}

func failureReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
