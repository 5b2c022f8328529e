package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"socarchive/internal/auth"
	"socarchive/internal/config"
	"socarchive/internal/handler"
	"socarchive/internal/middleware"
	"socarchive/internal/repository/postgres"
	postgresCatalog "socarchive/internal/repository/postgres/catalog"
	serviceCatalog "socarchive/internal/service/catalog"
	"socarchive/internal/storage/filestore"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Apply schema migrations. golang-migrate selects its driver by URL
	// scheme, so the pgx pool URL is rewritten for it.
	migrateURL := strings.Replace(cfg.DatabaseURL, "postgres://", "pgx5://", 1)
	if err := postgres.Migrate(migrateURL, logger); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	workRepo := postgresCatalog.NewWorkRepository(repoConfig)
	categoryRepo := postgresCatalog.NewCategoryRepository(repoConfig)
	searchIndex := postgresCatalog.NewSearchIndex(repoConfig)

	// Create artifact storage
	artifactStore, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to create artifact store: %v", err)
	}

	// Create services
	categoryService := serviceCatalog.NewCategoryService(categoryRepo, cfg.CategoryCacheSize, cfg.CategoryCacheTTL, logger)
	filterResolver := serviceCatalog.NewFilterResolver(categoryService, logger)
	searchExecutor := serviceCatalog.NewSearchExecutor(workRepo, searchIndex, logger)
	queryService := serviceCatalog.NewWorkQueryService(workRepo, artifactStore, logger)
	lifecycleService := serviceCatalog.NewLifecycleService(workRepo, searchIndex, artifactStore, categoryService, logger)
	reportService := serviceCatalog.NewReportService(workRepo, logger)

	// Create handlers
	workHandler := handler.NewWorkHandler(filterResolver, searchExecutor, queryService, logger)
	adminHandler := handler.NewAdminHandler(lifecycleService, reportService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", healthHandler.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public catalog routes
	mux.HandleFunc("GET /api/v1/works", workHandler.SearchWorks)
	mux.HandleFunc("GET /api/v1/works/{id}", workHandler.GetWork)
	mux.HandleFunc("GET /api/v1/works/{id}/pdf", workHandler.DownloadPDF)
	mux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories)

	// Submission intake
	mux.HandleFunc("POST /api/v1/works", adminHandler.ImportWork)

	// Moderation routes
	mux.HandleFunc("POST /api/v1/works/{id}/approve", adminHandler.ApproveWork)
	mux.HandleFunc("POST /api/v1/works/{id}/reject", adminHandler.RejectWork)
	mux.HandleFunc("POST /api/v1/works/{id}/resubmit", adminHandler.ResubmitWork)
	mux.HandleFunc("PUT /api/v1/works/{id}/pdf", adminHandler.UploadPDF)
	mux.HandleFunc("POST /api/v1/works/{id}/redact", adminHandler.RedactWork)

	// Category administration
	mux.HandleFunc("POST /api/v1/categories", categoryHandler.CreateCategory)
	mux.HandleFunc("DELETE /api/v1/categories/{id}", categoryHandler.DeactivateCategory)

	// Reporting
	mux.HandleFunc("GET /api/v1/stats", adminHandler.GetStats)
	mux.HandleFunc("GET /api/v1/export", adminHandler.ExportCatalog)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Metrics → Recovery → Auth → Routes
	root = middleware.Authenticate(jwtVerifier, logger)(root)
	root = middleware.Recovery(logger)(root)
	root = middleware.Metrics()(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server and wait for a shutdown signal
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
