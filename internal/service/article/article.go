package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"broadsheet/internal/config"
	"broadsheet/internal/domain"
	models "broadsheet/internal/domain/models/article"
	"broadsheet/internal/domain/repositories"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/utils"
)

// articleService implements the ArticleService interface
type articleService struct {
	repo       repositories.ArticleRepository
	txManager  repositories.TransactionManager
	parser     articleSvc.BlockParser
	serializer articleSvc.BlockSerializer
	validator  articleSvc.BlockValidator
	analyzer   articleSvc.ContentAnalyzer
	ids        models.IDGenerator
	logger     *slog.Logger
}

// NewArticleService creates a new article service. The validator's policy
// is also used by the media insertion guard.
func NewArticleService(
	repo repositories.ArticleRepository,
	txManager repositories.TransactionManager,
	parser articleSvc.BlockParser,
	serializer articleSvc.BlockSerializer,
	validator articleSvc.BlockValidator,
	analyzer articleSvc.ContentAnalyzer,
	ids models.IDGenerator,
	logger *slog.Logger,
) articleSvc.ArticleService {
	return &articleService{
		repo:       repo,
		txManager:  txManager,
		parser:     parser,
		serializer: serializer,
		validator:  validator,
		analyzer:   analyzer,
		ids:        ids,
		logger:     logger,
	}
}

// CreateArticle creates a new draft article
func (s *articleService) CreateArticle(ctx context.Context, req *articleSvc.CreateArticleRequest) (*models.Article, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Section = strings.TrimSpace(req.Section)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		req.Slug = utils.Slugify(req.Title, config.MaxSlugLength)
	}

	if err := validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	parsed := s.parser.Parse(req.Body)
	now := time.Now()
	a := &models.Article{
		Title:     req.Title,
		Slug:      req.Slug,
		Section:   req.Section,
		AuthorID:  req.AuthorID,
		Body:      req.Body,
		Status:    models.StatusDraft,
		WordCount: s.analyzer.CountWords(parsed.Blocks),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("article created",
		"id", a.ID,
		"slug", a.Slug,
		"author_id", a.AuthorID,
		"word_count", a.WordCount,
		"blocks", len(parsed.Blocks),
		"parse_errors", len(parsed.Errors),
		"legacy", parsed.IsLegacy,
	)

	return a, nil
}

// GetArticle retrieves an article and parses its body
func (s *articleService) GetArticle(ctx context.Context, id string) (*articleSvc.ArticleView, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(a), nil
}

// ListArticles lists articles, newest first
func (s *articleService) ListArticles(ctx context.Context, req *articleSvc.ListArticlesRequest) ([]models.Article, error) {
	if err := validateListRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	opts := models.ListOptions{
		Status: models.Status(req.Status),
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	opts.ApplyDefaults()

	return s.repo.List(ctx, opts)
}

// UpdateArticle updates metadata and the body, given either as text or
// as blocks
func (s *articleService) UpdateArticle(ctx context.Context, id string, req *articleSvc.UpdateArticleRequest) (*articleSvc.ArticleView, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		a.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Section != nil {
		a.Section = strings.TrimSpace(*req.Section)
	}

	switch {
	case req.Body != nil:
		a.Body = *req.Body
	case req.Blocks != nil:
		blocks := []models.Block(req.Blocks)
		models.EnsureIDs(s.ids, blocks)
		models.ReorderBlocks(blocks)
		body, err := s.serializeBlocks(blocks)
		if err != nil {
			return nil, err
		}
		a.Body = body
		if len(a.Body) > config.MaxArticleBodyLength {
			return nil, fmt.Errorf("%w: serialized body exceeds %d bytes", domain.ErrValidation, config.MaxArticleBodyLength)
		}
	}

	view := s.view(a)
	a.WordCount = s.analyzer.CountWords(view.Blocks)

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("article updated",
		"id", a.ID,
		"slug", a.Slug,
		"word_count", a.WordCount,
		"from_blocks", req.Blocks != nil,
	)

	return view, nil
}

// InsertMedia inserts an image or video block after checking the
// editorial policy
func (s *articleService) InsertMedia(ctx context.Context, id string, req *articleSvc.InsertMediaRequest) (*articleSvc.InsertMediaResult, error) {
	if err := validateInsertMediaRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var result *articleSvc.InsertMediaResult
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		a, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		parsed := s.parser.Parse(a.Body)
		if !parsed.Success {
			// re-serializing would drop the regions that failed to parse
			return fmt.Errorf("%w: article body has %d parse error(s); fix them before inserting media",
				domain.ErrValidation, len(parsed.Errors))
		}

		block := s.buildMediaBlock(req)
		decision := s.validator.Policy().CanInsert(parsed.Blocks, req.Index, block.Type())
		if !decision.Allowed {
			s.logger.Debug("media insertion rejected",
				"id", id,
				"index", req.Index,
				"type", block.Type(),
				"rule", decision.Rule,
			)
			return &domain.ValidationError{Message: "cannot insert media: " + decision.Reason}
		}

		blocks := models.InsertBlock(parsed.Blocks, req.Index, block)
		body, err := s.serializeBlocks(blocks)
		if err != nil {
			return err
		}
		a.Body = body
		a.WordCount = s.analyzer.CountWords(blocks)
		if err := s.repo.Update(txCtx, a); err != nil {
			return err
		}

		result = &articleSvc.InsertMediaResult{
			Article: &articleSvc.ArticleView{
				Article:     a,
				Blocks:      blocks,
				ParseErrors: []models.ParseError{},
				IsLegacy:    false,
			},
			Warning: decision.Warning,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("media inserted",
		"id", id,
		"index", req.Index,
		"warning", result.Warning,
	)

	return result, nil
}

// serializeBlocks renders blocks as article text that must parse back to
// the same block types. Legacy paragraphs may hold a bare ":::" or an
// unclosed ":::quote" line, which become fence errors once the body
// contains a media fence.
func (s *articleService) serializeBlocks(blocks []models.Block) (string, error) {
	body := s.serializer.Serialize(blocks)

	reparsed := s.parser.Parse(body)
	if !reparsed.Success {
		first := reparsed.Errors[0]
		return "", fmt.Errorf("%w: serialized body does not parse (line %d: %s)",
			domain.ErrValidation, first.Line, first.Message)
	}
	if len(reparsed.Blocks) != len(blocks) {
		return "", fmt.Errorf("%w: serialized body parses to %d blocks, expected %d",
			domain.ErrValidation, len(reparsed.Blocks), len(blocks))
	}
	for i, b := range reparsed.Blocks {
		if b.Type() != blocks[i].Type() {
			return "", fmt.Errorf("%w: block %d parses back as %s, expected %s",
				domain.ErrValidation, i, b.Type(), blocks[i].Type())
		}
	}
	return body, nil
}

// DeleteArticle deletes an article
func (s *articleService) DeleteArticle(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("article deleted", "id", id)
	return nil
}

// PublishArticle validates the article and marks it published
func (s *articleService) PublishArticle(ctx context.Context, id string) (*articleSvc.PublishResult, error) {
	var result *articleSvc.PublishResult
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		a, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		parsed := s.parser.Parse(a.Body)
		if !parsed.Success {
			return &domain.PublishBlockedError{ArticleID: a.ID, ParseErrors: parsed.Errors}
		}

		validation := s.validator.Validate(parsed.Blocks)
		if !validation.IsValid {
			return &domain.PublishBlockedError{ArticleID: a.ID, Validation: validation}
		}

		now := time.Now()
		a.Status = models.StatusPublished
		if a.PublishedAt == nil {
			a.PublishedAt = &now
		}
		a.WordCount = s.analyzer.CountWords(parsed.Blocks)
		if err := s.repo.Update(txCtx, a); err != nil {
			return err
		}

		result = &articleSvc.PublishResult{
			Article:  a,
			Warnings: validation.Warnings,
			Policy:   s.validator.Policy().Name,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("article published",
		"id", id,
		"policy", result.Policy,
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// view parses the article body
func (s *articleService) view(a *models.Article) *articleSvc.ArticleView {
	parsed := s.parser.Parse(a.Body)
	return &articleSvc.ArticleView{
		Article:     a,
		Blocks:      parsed.Blocks,
		ParseErrors: parsed.Errors,
		IsLegacy:    parsed.IsLegacy,
	}
}

// buildMediaBlock turns a validated request into an image or video block
func (s *articleService) buildMediaBlock(req *articleSvc.InsertMediaRequest) models.Block {
	if req.Image != nil {
		img := req.Image
		return models.ImageFromUpload(s.ids, img.ImageUpload,
			strings.TrimSpace(img.Alt), strings.TrimSpace(img.Caption), strings.TrimSpace(img.Credit))
	}
	meta := *req.Video
	meta.Provider = models.VideoProvider(strings.ToLower(string(meta.Provider)))
	return models.VideoFromMetadata(s.ids, meta, strings.TrimSpace(req.Caption))
}
