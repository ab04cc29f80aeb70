// Package main runs the end-to-end profiling pipeline on the built-in
// fixture set: resolve planetary positions, build recipe profiles,
// aggregate cuisines, and archive the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"alchm-engine/internal/ephemeris"
	"alchm-engine/internal/fixtures"
	"alchm-engine/internal/orchestrator"
	"alchm-engine/internal/storage"
	chstore "alchm-engine/internal/storage/clickhouse"
	"alchm-engine/internal/storage/memory"
	"alchm-engine/internal/storage/migrations"
	pgstore "alchm-engine/internal/storage/postgres"
)

func main() {
	dateStr := flag.String("date", "", "Snapshot date (YYYY-MM-DD, default today UTC)")
	httpEndpoint := flag.String("http-endpoint", os.Getenv("EPHEMERIS_HTTP_ENDPOINT"), "Primary ephemeris HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("EPHEMERIS_WS_ENDPOINT"), "Secondary ephemeris WebSocket endpoint")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	verbose := flag.Bool("verbose", false, "Verbose pipeline logging")
	flag.Parse()

	logger := log.New(os.Stdout, "[profile] ", log.LstdFlags)
	ctx := context.Background()

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	date := time.Now().UTC()
	if *dateStr != "" {
		parsed, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			logger.Fatalf("invalid --date %q: %v", *dateStr, err)
		}
		date = parsed
	}

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("create stores: %v", err)
	}
	defer cleanup()

	if err := fixtures.SeedIngredients(ctx, stores.ingredientStore); err != nil {
		logger.Fatalf("seed ingredients: %v", err)
	}

	resolver, err := ephemeris.NewResolver(ephemeris.ResolverOptions{
		Sources: buildSources(*httpEndpoint, *wsEndpoint),
		Logger:  logger,
	})
	if err != nil {
		logger.Fatalf("create resolver: %v", err)
	}

	orch, err := orchestrator.New(orchestrator.Options{
		Resolver:        resolver,
		IngredientStore: stores.ingredientStore,
		RecipeStore:     stores.recipeStore,
		Archive:         stores.archive,
		Recipes:         fixtures.Recipes(),
		Verbose:         *verbose,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatalf("create orchestrator: %v", err)
	}

	result, err := orch.Run(ctx, date)
	if err != nil {
		logger.Fatalf("pipeline: %v", err)
	}

	fmt.Printf("Pipeline completed for %s (tier: %s)\n", result.SnapshotDate, result.SnapshotTier)
	fmt.Printf("  Recipes built:       %d\n", result.RecipesBuilt)
	fmt.Printf("  Cuisines aggregated: %d\n", result.CuisinesAggregated)
	fmt.Printf("  Recipes archived:    %d\n", result.RecipesArchived)
	fmt.Printf("  Cuisines archived:   %d\n", result.CuisinesArchived)
	if len(result.Errors) > 0 {
		fmt.Printf("  Errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
		os.Exit(1)
	}
}

// buildSources assembles the tier ladder from the configured endpoints.
func buildSources(httpEndpoint, wsEndpoint string) []ephemeris.PositionSource {
	var sources []ephemeris.PositionSource
	if httpEndpoint != "" {
		sources = append(sources, ephemeris.NewHTTPSource("primary", httpEndpoint))
	}
	if wsEndpoint != "" {
		sources = append(sources, ephemeris.NewWSFeedSource("secondary", wsEndpoint))
	}
	sources = append(sources, ephemeris.NewAnalyticSource())
	return sources
}

// pipelineStores holds the storage implementations the pipeline needs.
type pipelineStores struct {
	ingredientStore storage.IngredientStore
	recipeStore     storage.RecipeStore
	archive         storage.ProfileArchive
}

// createStores creates all required stores, running migrations when
// backed by real databases.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*pipelineStores, func(), error) {
	if useMemory {
		stores := &pipelineStores{
			ingredientStore: memory.NewIngredientStore(),
			recipeStore:     memory.NewRecipeStore(),
			archive:         memory.NewProfileArchive(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	stores := &pipelineStores{
		ingredientStore: pgstore.NewIngredientStore(pool),
		recipeStore:     pgstore.NewRecipeStore(pool),
		archive:         chstore.NewProfileStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}
