package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"broadsheet/internal/auth"
	"broadsheet/internal/config"
	"broadsheet/internal/domain/models/article"
	"broadsheet/internal/handler"
	"broadsheet/internal/middleware"
	"broadsheet/internal/policy"
	"broadsheet/internal/repository/postgres"
	postgresArticle "broadsheet/internal/repository/postgres/article"
	serviceArticle "broadsheet/internal/service/article"
	"broadsheet/internal/service/blockdoc"
	"broadsheet/internal/service/converter"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"editorial_policy", cfg.EditorialPolicy,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Editorial policy shared by the publish validator and the insertion guard
	registry, err := policy.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load policy registry: %v", err)
	}
	editorialPolicy, err := registry.Resolve(cfg.EditorialPolicy)
	if err != nil {
		log.Fatalf("Failed to resolve editorial policy: %v", err)
	}
	logger.Info("editorial policy loaded",
		"policy", editorialPolicy.Name,
		"max_images", editorialPolicy.MaxImages,
		"video_soft_limit", editorialPolicy.VideoSoftLimit,
		"enforce_media_placement", editorialPolicy.EnforceMediaPlacement,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("database connected", "articles_table", tables.Articles)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	articleRepo := postgresArticle.NewArticleRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Block engine
	ids := article.NewSequenceIDGenerator(nil)
	parser := blockdoc.NewParser(ids)
	serializer := blockdoc.NewSerializer()
	validator := blockdoc.NewValidator(editorialPolicy)

	// Services
	articleService := serviceArticle.NewArticleService(
		articleRepo,
		txManager,
		parser,
		serializer,
		validator,
		serviceArticle.NewContentAnalyzer(),
		ids,
		logger,
	)
	importService := serviceArticle.NewImportService(articleRepo, articleService, parser, converter.NewRegistry(), logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux,
		handler.NewBlocksHandler(parser, serializer, validator, ids, logger),
		handler.NewArticleHandler(articleService, logger),
		handler.NewImportHandler(importService, logger),
	)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(jwtVerifier, logger, "/health")(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
