package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/catalog"
	"github.com/stemsi/unicatalog/internal/config"
	"github.com/stemsi/unicatalog/internal/database"
	"github.com/stemsi/unicatalog/internal/dataset"
	"github.com/stemsi/unicatalog/internal/handler"
	"github.com/stemsi/unicatalog/internal/logger"
	"github.com/stemsi/unicatalog/internal/middleware"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/repository"
	"github.com/stemsi/unicatalog/internal/router"
	"github.com/stemsi/unicatalog/internal/service"
	"github.com/stemsi/unicatalog/internal/validator"
	"github.com/stemsi/unicatalog/internal/web"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("compare_store", cfg.CompareStore).
		Msg("Starting university catalog")

	opts := catalog.Options{PageSize: cfg.PageSize, MaxCompareSize: cfg.MaxCompareSize}
	if err := opts.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid catalog options")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Dataset ──────────────────────────────────────────────────
	// One attempt. A failure leaves the catalog empty and flagged unavailable.
	records, available := loadDataset(ctx, cfg, log)

	// ─── Comparison Store ──────────────────────────────────────────────
	store, notifier, closeStore, err := openCompareStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open comparison store")
	}
	defer closeStore()

	// ─── Initialize Services ──────────────────────────────────────────
	catalogService := service.NewCatalogService(records, available, opts, log)
	compareService := service.NewCompareService(store, notifier, catalogService, log)
	clientService := service.NewClientService(cfg.ClientSecret, cfg.ClientTokenTTL)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Page:    handler.NewPageHandler(catalogService, compareService, log),
		Catalog: handler.NewCatalogHandler(catalogService),
		Compare: handler.NewCompareHandler(catalogService, compareService, log),
		WS:      handler.NewWSHandler(catalogService, compareService, log, cfg.AllowedOrigins),
	}

	tmpl, err := web.Templates()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	compareLimit := middleware.NewRateLimiter(cfg.CompareRateLimit, time.Minute)
	defer compareLimit.Close()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, router.Deps{
		Clients:      clientService,
		Templates:    tmpl,
		CompareLimit: compareLimit,
		Log:          log,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	log.Info().Msg("Shutdown complete")
}

// loadDataset reports a LoadError on the operator log and never aborts startup.
func loadDataset(ctx context.Context, cfg *config.Config, log zerolog.Logger) ([]model.University, bool) {
	log = logger.Component(log, "dataset")
	records, err := dataset.NewLoader(nil).Load(ctx, cfg.DataSource)
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			log.Error().Err(loadErr.Err).Str("source", loadErr.Source).Msg("Dataset load failed, catalog unavailable")
		} else {
			log.Error().Err(err).Msg("Dataset load failed, catalog unavailable")
		}
		return nil, false
	}
	log.Info().Int("records", len(records)).Str("source", cfg.DataSource).Msg("Dataset loaded")
	return records, true
}

// openCompareStore wires the backend named by COMPARE_STORE.
func openCompareStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.CompareStore, service.CompareNotifier, func(), error) {
	switch cfg.CompareStore {
	case config.CompareStoreRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewCompareRedisRepository(rdb),
			repository.NewRedisCompareNotifier(rdb, log),
			func() { closeQuietly(rdb) }, nil

	case config.CompareStorePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		// Postgres has no fan-out here; panels sync across tabs of one instance only.
		return repository.NewComparePostgresRepository(pool),
			repository.NewMemoryCompareNotifier(),
			pool.Close, nil

	case config.CompareStoreMemory:
		log.Warn().Msg("Comparison sets are kept in memory and lost on restart")
		return repository.NewCompareMemoryRepository(), repository.NewMemoryCompareNotifier(), func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown COMPARE_STORE %q", cfg.CompareStore)
	}
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
