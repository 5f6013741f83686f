package article

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"broadsheet/internal/domain"
	models "broadsheet/internal/domain/models/article"
	"broadsheet/internal/domain/repositories"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/policy"
	"broadsheet/internal/service/blockdoc"
	"broadsheet/internal/service/converter"

	"github.com/google/uuid"
)

// memoryRepo is an in-memory ArticleRepository
type memoryRepo struct {
	mu       sync.Mutex
	articles map[string]*models.Article
	updates  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{articles: make(map[string]*models.Article)}
}

func (r *memoryRepo) Create(_ context.Context, a *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.articles {
		if existing.Slug == a.Slug {
			return &domain.ConflictError{Message: "slug taken", ResourceType: "article", ResourceID: existing.ID}
		}
	}
	a.ID = uuid.NewString()
	stored := *a
	r.articles[a.ID] = &stored
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.articles[id]
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	out := *a
	return &out, nil
}

func (r *memoryRepo) GetBySlug(_ context.Context, slug string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.articles {
		if a.Slug == slug {
			out := *a
			return &out, nil
		}
	}
	return nil, fmt.Errorf("article with slug %s: %w", slug, domain.ErrNotFound)
}

func (r *memoryRepo) Update(_ context.Context, a *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[a.ID]; !ok {
		return fmt.Errorf("article %s: %w", a.ID, domain.ErrNotFound)
	}
	a.UpdatedAt = time.Now()
	stored := *a
	r.articles[a.ID] = &stored
	r.updates++
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	delete(r.articles, id)
	return nil
}

func (r *memoryRepo) List(_ context.Context, opts models.ListOptions) ([]models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Article{}
	for _, a := range r.articles {
		if opts.Status == "" || a.Status == opts.Status {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	if opts.Offset >= len(out) {
		return []models.Article{}, nil
	}
	out = out[opts.Offset:]
	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// inlineTx runs the function without a real transaction
type inlineTx struct{}

func (inlineTx) ExecTx(ctx context.Context, fn repositories.TxFn) error { return fn(ctx) }

const testAuthorID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

type testEnv struct {
	repo     *memoryRepo
	articles articleSvc.ArticleService
	imports  articleSvc.ImportService
}

func newTestEnv(p policy.Policy) *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ids := models.NewSequenceIDGenerator(rand.New(rand.NewSource(1)))
	parser := blockdoc.NewParser(ids)
	repo := newMemoryRepo()

	articles := NewArticleService(
		repo,
		inlineTx{},
		parser,
		blockdoc.NewSerializer(),
		blockdoc.NewValidator(p),
		NewContentAnalyzer(),
		ids,
		logger,
	)
	return &testEnv{
		repo:     repo,
		articles: articles,
		imports:  NewImportService(repo, articles, parser, converter.NewRegistry(), logger),
	}
}
