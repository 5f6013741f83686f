package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"broadsheet/internal/domain"
	models "broadsheet/internal/domain/models/article"
	"broadsheet/internal/domain/repositories"

	"broadsheet/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const articleColumns = `id, title, slug, section, author_id, body, status, word_count, created_at, updated_at, published_at`

// PostgresArticleRepository implements repositories.ArticleRepository
type PostgresArticleRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(config *postgres.RepositoryConfig) repositories.ArticleRepository {
	return &PostgresArticleRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new article
func (r *PostgresArticleRepository) Create(ctx context.Context, a *models.Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, slug, section, author_id, body, status, word_count, created_at, updated_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Articles)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		a.Title,
		a.Slug,
		a.Section,
		a.AuthorID,
		a.Body,
		a.Status,
		a.WordCount,
		a.CreatedAt,
		a.UpdatedAt,
		a.PublishedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.slugConflict(ctx, a.Slug)
		}
		if postgres.IsPgCheckError(err) {
			return fmt.Errorf("invalid article status %q: %w", a.Status, domain.ErrValidation)
		}
		return fmt.Errorf("create article: %w", err)
	}

	r.logger.Debug("article created", "id", a.ID, "slug", a.Slug)
	return nil
}

// GetByID retrieves an article by ID
func (r *PostgresArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, articleColumns, r.tables.Articles)

	executor := postgres.GetExecutor(ctx, r.pool)
	a, err := scanArticle(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// GetBySlug retrieves an article by its slug
func (r *PostgresArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE slug = $1 AND deleted_at IS NULL
	`, articleColumns, r.tables.Articles)

	executor := postgres.GetExecutor(ctx, r.pool)
	a, err := scanArticle(executor.QueryRow(ctx, query, slug))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("article with slug %s: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	return a, nil
}

// Update writes the mutable fields of an article
func (r *PostgresArticleRepository) Update(ctx context.Context, a *models.Article) error {
	a.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, slug = $2, section = $3, body = $4, status = $5,
		    word_count = $6, published_at = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL
	`, r.tables.Articles)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		a.Title,
		a.Slug,
		a.Section,
		a.Body,
		a.Status,
		a.WordCount,
		a.PublishedAt,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.slugConflict(ctx, a.Slug)
		}
		if postgres.IsPgCheckError(err) {
			return fmt.Errorf("invalid article status %q: %w", a.Status, domain.ErrValidation)
		}
		return fmt.Errorf("update article: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("article %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete soft-deletes an article
func (r *PostgresArticleRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Articles)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns articles newest first, optionally filtered by status
func (r *PostgresArticleRepository) List(ctx context.Context, opts models.ListOptions) ([]models.Article, error) {
	opts.ApplyDefaults()

	where := []string{"deleted_at IS NULL"}
	args := []any{}
	if opts.Status != "" {
		args = append(args, opts.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	args = append(args, opts.Limit, opts.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, r.tables.Articles, strings.Join(where, " AND "), len(args)-1, len(args))

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

// slugConflict builds a ConflictError pointing at the article that owns slug
func (r *PostgresArticleRepository) slugConflict(ctx context.Context, slug string) error {
	existing, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("article with slug '%s' already exists: %w", slug, domain.ErrConflict)
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("article with slug '%s' already exists", slug),
		ResourceType: "article",
		ResourceID:   existing.ID,
	}
}

// scanArticle reads one row in articleColumns order
func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Section,
		&a.AuthorID,
		&a.Body,
		&a.Status,
		&a.WordCount,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
