// Package main provides the unified service that runs all components
// together:
// - Resolution warmer (scheduled): keeps the day's snapshot cached
// - Pipeline (scheduled): resolve → profile → aggregate → archive
// - Reporting (scheduled): CUISINE_REPORT.md and CSV
// - HTTP: health, status, Prometheus metrics
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/ephemeris"
	"alchm-engine/internal/fixtures"
	"alchm-engine/internal/observability"
	"alchm-engine/internal/orchestrator"
	"alchm-engine/internal/profile"
	"alchm-engine/internal/reporting"
	"alchm-engine/internal/storage"
	chstore "alchm-engine/internal/storage/clickhouse"
	"alchm-engine/internal/storage/memory"
	"alchm-engine/internal/storage/migrations"
	pgstore "alchm-engine/internal/storage/postgres"
)

// Server holds all components of the unified service.
type Server struct {
	// Configuration
	outputDir        string
	warmInterval     time.Duration
	pipelineInterval time.Duration
	reportInterval   time.Duration

	// Components
	resolver *ephemeris.Resolver
	orch     *orchestrator.Orchestrator
	stores   *allStores
	metrics  *observability.Metrics
	logger   *log.Logger

	// State
	mu              sync.Mutex
	started         time.Time
	lastWarmRun     time.Time
	lastPipelineRun time.Time
	lastReportRun   time.Time
	pipelineRunning bool
	reportRunning   bool

	// Stats
	warmRuns     int
	pipelineRuns int
	reportRuns   int
}

// allStores holds all storage implementations.
type allStores struct {
	ingredientStore storage.IngredientStore
	recipeStore     storage.RecipeStore
	snapshotStore   storage.SnapshotStore
	transitStore    storage.TransitStore
	archive         storage.ProfileArchive
}

func main() {
	loadEnvFile()

	httpEndpoint := flag.String("http-endpoint", os.Getenv("EPHEMERIS_HTTP_ENDPOINT"), "Primary ephemeris HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("EPHEMERIS_WS_ENDPOINT"), "Secondary ephemeris WebSocket endpoint")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	outputDir := flag.String("output-dir", "output", "Output directory for reports")
	warmInterval := flag.Duration("warm-interval", 1*time.Hour, "Snapshot warmer interval")
	pipelineInterval := flag.Duration("pipeline-interval", 6*time.Hour, "Pipeline run interval")
	reportInterval := flag.Duration("report-interval", 12*time.Hour, "Report generation interval")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for health/status/metrics")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	if err := fixtures.SeedIngredients(ctx, stores.ingredientStore); err != nil {
		logger.Fatalf("Failed to seed ingredients: %v", err)
	}

	metrics := observability.NewMetrics("")

	resolver, err := ephemeris.NewResolver(ephemeris.ResolverOptions{
		Sources:  buildSources(*httpEndpoint, *wsEndpoint),
		Transits: loadTransitTable(ctx, stores.transitStore, logger),
		Logger:   logger,
		Metrics:  metrics,
	})
	if err != nil {
		logger.Fatalf("Failed to create resolver: %v", err)
	}

	orch, err := orchestrator.New(orchestrator.Options{
		Resolver:        resolver,
		IngredientStore: stores.ingredientStore,
		RecipeStore:     stores.recipeStore,
		Archive:         stores.archive,
		Recipes:         fixtures.Recipes(),
		Verbose:         true,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatalf("Failed to create orchestrator: %v", err)
	}

	server := &Server{
		outputDir:        *outputDir,
		warmInterval:     *warmInterval,
		pipelineInterval: *pipelineInterval,
		reportInterval:   *reportInterval,
		resolver:         resolver,
		orch:             orch,
		stores:           stores,
		metrics:          metrics,
		logger:           logger,
		started:          time.Now(),
	}

	done := make(chan error, 1)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	go server.startHTTPServer(*metricsAddr)

	err = server.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
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

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			ingredientStore: memory.NewIngredientStore(),
			recipeStore:     memory.NewRecipeStore(),
			snapshotStore:   memory.NewSnapshotStore(),
			transitStore:    memory.NewTransitStore(),
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

	stores := &allStores{
		ingredientStore: pgstore.NewIngredientStore(pool),
		recipeStore:     pgstore.NewRecipeStore(pool),
		snapshotStore:   pgstore.NewSnapshotStore(pool),
		transitStore:    pgstore.NewTransitStore(pool),
		archive:         chstore.NewProfileStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// loadTransitTable seeds the transit store with the bundled reference
// ranges and builds the correction table from whatever the store holds,
// so operators can extend the table out-of-band without a rebuild. Any
// store failure falls back to the bundled data.
func loadTransitTable(ctx context.Context, store storage.TransitStore, logger *log.Logger) *ephemeris.TransitTable {
	bundled, err := ephemeris.LoadReferenceTransits()
	if err != nil {
		logger.Printf("Failed to load bundled transit ranges: %v", err)
		return nil
	}

	if err := store.InsertBulk(ctx, bundled); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		logger.Printf("Failed to seed transit store, using bundled ranges: %v", err)
		return ephemeris.NewTransitTable(bundled)
	}

	bodies := append([]domain.Body{}, domain.Planets...)
	bodies = append(bodies, domain.BodyNorthNode, domain.BodySouthNode)

	var ranges []domain.TransitRange
	for _, body := range bodies {
		got, err := store.GetByBody(ctx, body)
		if err != nil {
			logger.Printf("Failed to read transit ranges for %s, using bundled ranges: %v", body, err)
			return ephemeris.NewTransitTable(bundled)
		}
		ranges = append(ranges, got...)
	}

	logger.Printf("Loaded %d transit ranges from store", len(ranges))
	return ephemeris.NewTransitTable(ranges)
}

// Run starts the unified server with all components.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("Starting unified server...")

	errCh := make(chan error, 3)

	go func() {
		err := s.runWarmer(ctx)
		if err != nil && err != context.Canceled {
			errCh <- fmt.Errorf("warmer: %w", err)
		}
	}()

	go func() {
		err := s.runPipelineScheduler(ctx)
		if err != nil && err != context.Canceled {
			errCh <- fmt.Errorf("pipeline scheduler: %w", err)
		}
	}()

	go func() {
		err := s.runReportScheduler(ctx)
		if err != nil && err != context.Canceled {
			errCh <- fmt.Errorf("report scheduler: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// runWarmer keeps the current day's snapshot resolved and cached so
// interactive callers never pay the source latency.
func (s *Server) runWarmer(ctx context.Context) error {
	s.logger.Printf("Starting snapshot warmer (interval: %v)...", s.warmInterval)

	s.warm(ctx)

	ticker := time.NewTicker(s.warmInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *Server) warm(ctx context.Context) {
	snapshot := s.resolver.Resolve(ctx, time.Now().UTC())
	s.logger.Printf("Warmed snapshot %s (tier: %s)", snapshot.DateKey, snapshot.Tier)

	if err := s.stores.snapshotStore.Insert(ctx, snapshot); err != nil {
		if !errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Printf("Failed to archive snapshot %s: %v", snapshot.DateKey, err)
		}
	}

	s.mu.Lock()
	s.lastWarmRun = time.Now()
	s.warmRuns++
	s.mu.Unlock()
}

// runPipelineScheduler runs the profiling pipeline on schedule.
func (s *Server) runPipelineScheduler(ctx context.Context) error {
	s.logger.Printf("Starting pipeline scheduler (interval: %v)...", s.pipelineInterval)

	s.runPipeline(ctx)

	ticker := time.NewTicker(s.pipelineInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runPipeline(ctx)
		}
	}
}

// runPipeline executes the profiling pipeline.
func (s *Server) runPipeline(ctx context.Context) {
	s.mu.Lock()
	if s.pipelineRunning {
		s.mu.Unlock()
		s.logger.Println("Pipeline already running, skipping...")
		return
	}
	s.pipelineRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pipelineRunning = false
		s.lastPipelineRun = time.Now()
		s.pipelineRuns++
		s.mu.Unlock()
	}()

	s.logger.Println("Running pipeline...")
	start := time.Now()

	result, err := s.orch.Run(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Printf("Pipeline error: %v", err)
		return
	}

	s.metrics.ProfilesComputed.Add(float64(result.RecipesBuilt))
	s.metrics.CuisinesAggregated.Add(float64(result.CuisinesAggregated))
	s.metrics.ArchiveWrites.Add(float64(result.RecipesArchived + result.CuisinesArchived))
	if len(result.Errors) > 0 {
		s.metrics.ArchiveWriteErrors.Add(float64(len(result.Errors)))
	}

	s.logger.Printf("Pipeline completed in %v: %d recipes, %d cuisines, %d errors",
		time.Since(start), result.RecipesBuilt, result.CuisinesAggregated, len(result.Errors))
}

// runReportScheduler runs report generation on schedule.
func (s *Server) runReportScheduler(ctx context.Context) error {
	s.logger.Printf("Starting report scheduler (interval: %v)...", s.reportInterval)

	// Wait for the first pipeline run before generating reports.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(1 * time.Minute):
	}

	s.runReport(ctx)

	ticker := time.NewTicker(s.reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runReport(ctx)
		}
	}
}

// runReport generates reports.
func (s *Server) runReport(ctx context.Context) {
	s.mu.Lock()
	if s.reportRunning {
		s.mu.Unlock()
		s.logger.Println("Report generation already running, skipping...")
		return
	}
	s.reportRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.reportRunning = false
		s.lastReportRun = time.Now()
		s.reportRuns++
		s.mu.Unlock()
	}()

	s.logger.Println("Generating reports...")
	start := time.Now()

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		s.logger.Printf("Failed to create output directory: %v", err)
		return
	}

	gen := reporting.NewGenerator(s.stores.recipeStore, profile.DefaultBaseline)
	report, err := gen.Generate(ctx)
	if err != nil {
		s.logger.Printf("Report generation error: %v", err)
		return
	}

	mdPath := filepath.Join(s.outputDir, "CUISINE_REPORT.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		s.logger.Printf("Failed to write %s: %v", mdPath, err)
		return
	}
	csvPath := filepath.Join(s.outputDir, "cuisine_metrics.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.CuisineMetrics)), 0644); err != nil {
		s.logger.Printf("Failed to write %s: %v", csvPath, err)
		return
	}

	s.logger.Printf("Reports generated in %v to %s/", time.Since(start), s.outputDir)
}

// startHTTPServer starts the HTTP server for health/metrics/status.
func (s *Server) startHTTPServer(addr string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", observability.Handler())

	mux.HandleFunc("/status", s.handleStatus)

	s.logger.Printf("Starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		s.logger.Printf("HTTP server error: %v", err)
	}
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status          string    `json:"status"`
	Uptime          string    `json:"uptime"`
	LastWarmRun     time.Time `json:"last_warm_run,omitempty"`
	LastPipelineRun time.Time `json:"last_pipeline_run,omitempty"`
	LastReportRun   time.Time `json:"last_report_run,omitempty"`
	WarmRuns        int       `json:"warm_runs"`
	PipelineRuns    int       `json:"pipeline_runs"`
	ReportRuns      int       `json:"report_runs"`
	PipelineRunning bool      `json:"pipeline_running"`
	ReportRunning   bool      `json:"report_running"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := StatusResponse{
		Status:          "running",
		Uptime:          time.Since(s.started).String(),
		LastWarmRun:     s.lastWarmRun,
		LastPipelineRun: s.lastPipelineRun,
		LastReportRun:   s.lastReportRun,
		WarmRuns:        s.warmRuns,
		PipelineRuns:    s.pipelineRuns,
		ReportRuns:      s.reportRuns,
		PipelineRunning: s.pipelineRunning,
		ReportRunning:   s.reportRunning,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
