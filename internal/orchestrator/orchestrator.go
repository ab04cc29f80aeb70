// Package orchestrator provides end-to-end pipeline orchestration.
// It coordinates: position resolution → recipe profiling → cuisine
// aggregation → archival.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"alchm-engine/internal/alchemy"
	"alchm-engine/internal/domain"
	"alchm-engine/internal/ephemeris"
	"alchm-engine/internal/profile"
	"alchm-engine/internal/storage"
)

// RecipeInput names a recipe to profile and the ingredient IDs that
// compose it. Ingredient definitions are loaded from the store at run
// time.
type RecipeInput struct {
	Name          string
	Cuisine       string
	IngredientIDs []string
}

// Orchestrator coordinates the pipeline execution.
// Flow: resolve snapshot → build recipe profiles → aggregate cuisines →
// archive results.
type Orchestrator struct {
	resolver        *ephemeris.Resolver
	ingredientStore storage.IngredientStore
	recipeStore     storage.RecipeStore
	archive         storage.ProfileArchive

	recipes  []RecipeInput
	baseline profile.Baseline

	verbose bool
	logger  *log.Logger
}

// Options for creating Orchestrator.
type Options struct {
	// Required
	Resolver        *ephemeris.Resolver
	IngredientStore storage.IngredientStore
	RecipeStore     storage.RecipeStore

	// Optional analytics archive. Nil disables archival.
	Archive storage.ProfileArchive

	// Recipes to profile on each run.
	Recipes []RecipeInput

	// Baseline for signature detection. Zero value falls back to
	// profile.DefaultBaseline.
	Baseline profile.Baseline

	Verbose bool
	Logger  *log.Logger
}

// New creates a new Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Resolver == nil {
		return nil, errors.New("orchestrator: resolver required")
	}
	if opts.IngredientStore == nil {
		return nil, errors.New("orchestrator: ingredient store required")
	}
	if opts.RecipeStore == nil {
		return nil, errors.New("orchestrator: recipe store required")
	}

	baseline := opts.Baseline
	if baseline == (profile.Baseline{}) {
		baseline = profile.DefaultBaseline
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Orchestrator{
		resolver:        opts.Resolver,
		ingredientStore: opts.IngredientStore,
		recipeStore:     opts.RecipeStore,
		archive:         opts.Archive,
		recipes:         opts.Recipes,
		baseline:        baseline,
		verbose:         opts.Verbose,
		logger:          logger,
	}, nil
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	SnapshotDate string
	SnapshotTier domain.ResolutionTier

	RecipesBuilt       int
	CuisinesAggregated int
	RecipesArchived    int
	CuisinesArchived   int

	// Profiles holds the aggregated cuisine profiles, sorted by cuisine.
	Profiles []domain.CuisineProfile

	Errors []string
}

// Run executes the full pipeline for the given date.
// Phases:
//  1. Resolve the planetary snapshot
//  2. Build a profile for each configured recipe
//  3. Aggregate per-cuisine statistics
//  4. Archive recipes and cuisine profiles
func (o *Orchestrator) Run(ctx context.Context, date time.Time) (*RunResult, error) {
	result := &RunResult{}

	// Phase 1: resolve planetary positions. Resolution never fails; the
	// tier records how fresh the data is.
	o.log("Phase 1: Resolving planetary positions...")
	snapshot := o.resolver.Resolve(ctx, date)
	result.SnapshotDate = snapshot.DateKey
	result.SnapshotTier = snapshot.Tier
	o.log("  Resolved %s via %s tier", snapshot.DateKey, snapshot.Tier)

	season := alchemy.SeasonForDate(date)
	phase, _ := alchemy.LunarPhaseForDate(date)

	// Phase 2: build recipe profiles.
	o.log("Phase 2: Building recipe profiles...")
	byCuisine := make(map[string][]domain.Recipe)
	for _, input := range o.recipes {
		recipe, err := o.buildRecipe(ctx, input, snapshot, season, phase)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("build recipe %s: %v", input.Name, err))
			continue
		}

		if err := o.recipeStore.Insert(ctx, &recipe); err != nil {
			// Already profiled for this snapshot day.
			if !errors.Is(err, storage.ErrDuplicateKey) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("store recipe %s: %v", input.Name, err))
				continue
			}
		}

		byCuisine[recipe.Cuisine] = append(byCuisine[recipe.Cuisine], recipe)
		result.RecipesBuilt++
	}
	o.log("  Built %d recipes (%d errors)", result.RecipesBuilt, len(result.Errors))

	// Phase 3: aggregate cuisines.
	o.log("Phase 3: Aggregating cuisines...")
	cuisines := make([]string, 0, len(byCuisine))
	for cuisine := range byCuisine {
		cuisines = append(cuisines, cuisine)
	}
	sort.Strings(cuisines)

	for _, cuisine := range cuisines {
		p, err := profile.AggregateCuisine(cuisine, byCuisine[cuisine], o.baseline)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("aggregate cuisine %s: %v", cuisine, err))
			continue
		}
		result.Profiles = append(result.Profiles, p)
		result.CuisinesAggregated++
	}
	o.log("  Aggregated %d cuisines", result.CuisinesAggregated)

	// Phase 4: archival.
	if o.archive != nil {
		o.log("Phase 4: Archiving profiles...")
		archivedRecipes, archivedCuisines, archiveErrs := o.runArchival(ctx, byCuisine, result.Profiles)
		result.RecipesArchived = archivedRecipes
		result.CuisinesArchived = archivedCuisines
		result.Errors = append(result.Errors, archiveErrs...)
		o.log("  Archived %d recipes, %d cuisines (%d errors)",
			archivedRecipes, archivedCuisines, len(archiveErrs))
	} else {
		o.log("Phase 4: Skipping archival (no archive configured)")
	}

	o.log("Pipeline completed: %d recipes, %d cuisines, %d errors",
		result.RecipesBuilt, result.CuisinesAggregated, len(result.Errors))

	return result, nil
}

// buildRecipe loads the input's ingredients and computes its profile.
func (o *Orchestrator) buildRecipe(
	ctx context.Context,
	input RecipeInput,
	snapshot *domain.PositionSnapshot,
	season domain.Season,
	phase domain.LunarPhase,
) (domain.Recipe, error) {
	ingredients := make([]domain.Ingredient, 0, len(input.IngredientIDs))
	for _, id := range input.IngredientIDs {
		ing, err := o.ingredientStore.GetByID(ctx, id)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("ingredient %s: %w", id, err)
		}
		ingredients = append(ingredients, *ing)
	}

	return profile.BuildRecipe(input.Name, input.Cuisine, ingredients, snapshot, season, phase)
}

// runArchival pushes the run's recipes and cuisine profiles to the
// analytics archive.
func (o *Orchestrator) runArchival(
	ctx context.Context,
	byCuisine map[string][]domain.Recipe,
	profiles []domain.CuisineProfile,
) (int, int, []string) {
	var errs []string

	var recipes []*domain.Recipe
	cuisines := make([]string, 0, len(byCuisine))
	for cuisine := range byCuisine {
		cuisines = append(cuisines, cuisine)
	}
	sort.Strings(cuisines)
	for _, cuisine := range cuisines {
		members := byCuisine[cuisine]
		for i := range members {
			recipes = append(recipes, &members[i])
		}
	}

	archivedRecipes := 0
	if err := o.archive.InsertRecipes(ctx, recipes); err != nil {
		errs = append(errs, fmt.Sprintf("archive recipes: %v", err))
	} else {
		archivedRecipes = len(recipes)
	}

	archivedCuisines := 0
	profilePtrs := make([]*domain.CuisineProfile, len(profiles))
	for i := range profiles {
		profilePtrs[i] = &profiles[i]
	}
	if err := o.archive.InsertCuisines(ctx, profilePtrs); err != nil {
		errs = append(errs, fmt.Sprintf("archive cuisines: %v", err))
	} else {
		archivedCuisines = len(profilePtrs)
	}

	return archivedRecipes, archivedCuisines, errs
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		o.logger.Printf("[orchestrator] "+format, args...)
	}
}
