package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"broadsheet/internal/config"
	"broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/policy"
	"broadsheet/internal/repository/postgres"
	postgresArticle "broadsheet/internal/repository/postgres/article"
	serviceArticle "broadsheet/internal/service/article"
	"broadsheet/internal/service/blockdoc"
	"broadsheet/internal/service/converter"
	"broadsheet/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// seedAuthorID owns every seeded article
const seedAuthorID = "00000000-0000-4000-8000-000000000001"

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed articles")
	clearData := flag.Bool("clear-data", false, "Delete all articles (keep schema)")
	importDir := flag.String("import-dir", "", "Also import every article file under this directory")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run --drop-tables or --clear-data in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if err := clearArticles(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to clear articles: %v", err)
	}
	if *clearData {
		log.Println("Articles cleared")
		return
	}

	registry, err := policy.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load policy registry: %v", err)
	}
	p, err := registry.Resolve(cfg.EditorialPolicy)
	if err != nil {
		log.Fatalf("Failed to resolve editorial policy: %v", err)
	}

	ids := article.NewSequenceIDGenerator(nil)
	parser := blockdoc.NewParser(ids)
	repo := postgresArticle.NewArticleRepository(&postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger})
	svc := serviceArticle.NewArticleService(
		repo,
		postgres.NewTransactionManager(pool, logger),
		parser,
		blockdoc.NewSerializer(),
		blockdoc.NewValidator(p),
		serviceArticle.NewContentAnalyzer(),
		ids,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	for i, s := range seedArticles() {
		a, err := svc.CreateArticle(ctx, &articleSvc.CreateArticleRequest{
			AuthorID: seedAuthorID,
			Title:    s.title,
			Section:  s.section,
			Body:     s.body,
		})
		if err != nil {
			log.Printf("Failed to create %q: %v", s.title, err)
			continue
		}
		log.Printf("Created article %d: %s (ID: %s, words: %d)", i+1, a.Slug, a.ID, a.WordCount)

		if !s.publish {
			continue
		}
		if _, err := svc.PublishArticle(ctx, a.ID); err != nil {
			log.Printf("Could not publish %s: %v", a.Slug, err)
			continue
		}
		log.Printf("Published %s", a.Slug)
	}

	if *importDir != "" {
		converters := converter.NewRegistry()
		archive, err := utils.CreateZipFromDirectory(*importDir, converters.Supports)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *importDir, err)
		}
		imports := serviceArticle.NewImportService(repo, svc, parser, converters, logger)
		result, err := imports.ImportFiles(ctx, seedAuthorID, []articleSvc.UploadedFile{
			{Filename: "seed.zip", Content: archive.Bytes()},
		}, true)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", *importDir, err)
		}
		log.Printf("Imported %s: %d created, %d updated, %d skipped, %d failed",
			*importDir, result.Summary.Created, result.Summary.Updated, result.Summary.Skipped, result.Summary.Failed)
	}

	log.Println("Seeding complete")
}

func clearArticles(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	_, err := pool.Exec(ctx, "DELETE FROM "+tables.Articles)
	return err
}
