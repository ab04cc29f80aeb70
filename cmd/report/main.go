// Package main generates the cuisine analytics report (markdown + CSV)
// from stored recipe profiles.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"alchm-engine/internal/ephemeris"
	"alchm-engine/internal/fixtures"
	"alchm-engine/internal/orchestrator"
	"alchm-engine/internal/profile"
	"alchm-engine/internal/reporting"
	"alchm-engine/internal/storage"
	"alchm-engine/internal/storage/memory"
	"alchm-engine/internal/storage/migrations"
	pgstore "alchm-engine/internal/storage/postgres"
)

func main() {
	outputDir := flag.String("output-dir", "output", "Output directory for generated files")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	useFixtures := flag.Bool("use-fixtures", false, "Run the fixture pipeline in memory instead of reading a database")
	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)
	ctx := context.Background()

	if !*useFixtures && *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn is required when not using fixtures")
		fmt.Fprintln(os.Stderr, "Use --use-fixtures to run with demo data instead")
		os.Exit(1)
	}

	var (
		recipeStore storage.RecipeStore
		cleanup     = func() {}
	)

	if *useFixtures {
		store, err := runFixturePipeline(ctx, logger)
		if err != nil {
			logger.Fatalf("fixture pipeline: %v", err)
		}
		recipeStore = store
	} else {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			logger.Fatalf("postgres migrations: %v", err)
		}
		recipeStore = pgstore.NewRecipeStore(pool)
		cleanup = pool.Close
	}
	defer cleanup()

	gen := reporting.NewGenerator(recipeStore, profile.DefaultBaseline)
	report, err := gen.Generate(ctx)
	if err != nil {
		logger.Fatalf("generate report: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Fatalf("create output directory: %v", err)
	}

	mdPath := filepath.Join(*outputDir, "CUISINE_REPORT.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		logger.Fatalf("write %s: %v", mdPath, err)
	}

	csvPath := filepath.Join(*outputDir, "cuisine_metrics.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.CuisineMetrics)), 0644); err != nil {
		logger.Fatalf("write %s: %v", csvPath, err)
	}

	fmt.Println("Cuisine report generated successfully:")
	fmt.Printf("  - %s\n", mdPath)
	fmt.Printf("  - %s\n", csvPath)
}

// runFixturePipeline builds recipe profiles for the fixture set in memory
// so the report has data to render.
func runFixturePipeline(ctx context.Context, logger *log.Logger) (storage.RecipeStore, error) {
	ingredientStore := memory.NewIngredientStore()
	recipeStore := memory.NewRecipeStore()

	if err := fixtures.SeedIngredients(ctx, ingredientStore); err != nil {
		return nil, err
	}

	resolver, err := ephemeris.NewResolver(ephemeris.ResolverOptions{Logger: logger})
	if err != nil {
		return nil, err
	}

	orch, err := orchestrator.New(orchestrator.Options{
		Resolver:        resolver,
		IngredientStore: ingredientStore,
		RecipeStore:     recipeStore,
		Recipes:         fixtures.Recipes(),
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	result, err := orch.Run(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for _, e := range result.Errors {
		logger.Printf("fixture pipeline: %s", e)
	}
	return recipeStore, nil
}
