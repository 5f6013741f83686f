package repositories

import (
	"context"

	"broadsheet/internal/domain/models/article"
)

// ArticleRepository stores articles. Only the text body is persisted;
// the block form is derived on read.
type ArticleRepository interface {
	// Create inserts the article and fills in ID and timestamps.
	// Returns a *domain.ConflictError when the slug is taken.
	Create(ctx context.Context, a *article.Article) error

	// GetByID returns domain.ErrNotFound (wrapped) for unknown or deleted ids
	GetByID(ctx context.Context, id string) (*article.Article, error)

	// GetBySlug returns domain.ErrNotFound (wrapped) for unknown slugs
	GetBySlug(ctx context.Context, slug string) (*article.Article, error)

	// Update writes title, slug, section, body, status, word count and
	// published_at, and refreshes UpdatedAt.
	Update(ctx context.Context, a *article.Article) error

	// Delete soft-deletes the article
	Delete(ctx context.Context, id string) error

	// List returns articles newest first
	List(ctx context.Context, opts article.ListOptions) ([]article.Article, error)
}
