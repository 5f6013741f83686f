package article

import (
	"context"
	"io"

	"broadsheet/internal/domain/models/article"
	"broadsheet/internal/policy"
)

// ArticleService handles article use cases. Bodies are stored as text;
// the block form is produced by the parser on every read.
type ArticleService interface {
	// CreateArticle creates a draft. The slug is derived from the title
	// when not given.
	CreateArticle(ctx context.Context, req *CreateArticleRequest) (*article.Article, error)

	// GetArticle returns the article together with its parsed blocks
	GetArticle(ctx context.Context, id string) (*ArticleView, error)

	// ListArticles lists articles newest first
	ListArticles(ctx context.Context, req *ListArticlesRequest) ([]article.Article, error)

	// UpdateArticle updates metadata and either the text body or the blocks.
	// Sending both Body and Blocks is a validation error.
	UpdateArticle(ctx context.Context, id string, req *UpdateArticleRequest) (*ArticleView, error)

	// InsertMedia builds an image or video block from collaborator payloads
	// and inserts it at req.Index if the editorial policy allows it
	InsertMedia(ctx context.Context, id string, req *InsertMediaRequest) (*InsertMediaResult, error)

	// DeleteArticle soft-deletes an article
	DeleteArticle(ctx context.Context, id string) error

	// PublishArticle parses and validates the body and marks the article
	// published. Returns *domain.PublishBlockedError when the body has
	// parse errors or validation errors; warnings never block.
	PublishArticle(ctx context.Context, id string) (*PublishResult, error)
}

// ImportService imports article files (.md, .txt or .zip archives of them)
type ImportService interface {
	// ImportFiles creates one article per text file. With overwrite, an
	// article whose slug already exists is updated instead of skipped.
	ImportFiles(ctx context.Context, authorID string, files []UploadedFile, overwrite bool) (*ImportResult, error)
}

// ImageUploader stores an image and reports where it lives. Implemented
// by the image service; the bytes never reach the block model.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*article.ImageUpload, error)
}

// VideoResolver looks up provider metadata for a pasted video URL
type VideoResolver interface {
	Resolve(ctx context.Context, url string) (*article.VideoMetadata, error)
}

// ArticleView is an article with its body parsed into blocks
type ArticleView struct {
	*article.Article
	Blocks      article.Blocks       `json:"blocks"`
	ParseErrors []article.ParseError `json:"parse_errors"`
	IsLegacy    bool                 `json:"is_legacy"`
}

// CreateArticleRequest represents an article creation request
type CreateArticleRequest struct {
	AuthorID string `json:"-"` // Set by handler from auth context, not from request body
	Title    string `json:"title"`
	Slug     string `json:"slug,omitempty"`
	Section  string `json:"section"`
	Body     string `json:"body"`
}

// ListArticlesRequest represents an article listing request
type ListArticlesRequest struct {
	Status string `json:"status,omitempty"` // draft, published or empty for all
	Limit  int    `json:"limit,omitempty"`  // default 20, max 100
	Offset int    `json:"offset,omitempty"`
}

// UpdateArticleRequest represents an article update request. Nil fields
// are left unchanged.
type UpdateArticleRequest struct {
	Title   *string        `json:"title,omitempty"`
	Slug    *string        `json:"slug,omitempty"`
	Section *string        `json:"section,omitempty"`
	Body    *string        `json:"body,omitempty"`
	Blocks  article.Blocks `json:"blocks,omitempty"` // serialized to the body when present
}

// InsertMediaRequest carries exactly one of Image or Video
type InsertMediaRequest struct {
	Index int                    `json:"index"`
	Image *ImageInsert           `json:"image,omitempty"`
	Video *article.VideoMetadata `json:"video,omitempty"`
	// Caption applies to videos; images carry their own
	Caption string `json:"caption,omitempty"`
}

// ImageInsert is an upload result plus the editor-supplied text fields
type ImageInsert struct {
	article.ImageUpload
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
	Credit  string `json:"credit,omitempty"`
}

// InsertMediaResult is the updated article plus any non-blocking warning
// from the insertion guard
type InsertMediaResult struct {
	Article *ArticleView `json:"article"`
	Warning string       `json:"warning,omitempty"`
}

// PublishResult is the published article plus validation warnings
type PublishResult struct {
	Article  *article.Article            `json:"article"`
	Warnings []article.ValidationWarning `json:"warnings"`
	Policy   policy.Name                 `json:"policy"`
}

// UploadedFile is one file received by the import endpoint
type UploadedFile struct {
	Filename string
	Content  []byte
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Summary  ImportSummary   `json:"summary"`
	Errors   []ImportError   `json:"errors"`
	Articles []ImportArticle `json:"articles"`
}

// ImportSummary contains aggregate statistics for an import operation
type ImportSummary struct {
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	TotalFiles int `json:"total_files"`
}

// ImportError represents an error that occurred during import
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportArticle represents a processed file
type ImportArticle struct {
	ID       string `json:"id,omitempty"`
	File     string `json:"file"`
	Slug     string `json:"slug"`
	Action   string `json:"action"` // "created", "updated" or "skipped"
	IsLegacy bool   `json:"is_legacy"`
	// ParseErrors counts problems in the imported body; the article is
	// stored anyway and can be fixed in the editor.
	ParseErrors int `json:"parse_errors"`
}
