package article

import "time"

// Status is the publication state of an article
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Article is the stored record. Only the text body is persisted; blocks
// are rebuilt from it on every read.
type Article struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Section     string     `json:"section" db:"section"`
	AuthorID    string     `json:"author_id" db:"author_id"`
	Body        string     `json:"body" db:"body"`
	Status      Status     `json:"status" db:"status"`
	WordCount   int        `json:"word_count" db:"word_count"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
}

// ListOptions filters and pages article listings
type ListOptions struct {
	Status Status
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ApplyDefaults clamps limit/offset into range
func (o *ListOptions) ApplyDefaults() {
	if o.Limit <= 0 || o.Limit > MaxListLimit {
		o.Limit = DefaultListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}
