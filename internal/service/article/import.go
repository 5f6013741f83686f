package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"broadsheet/internal/config"
	"broadsheet/internal/domain"
	"broadsheet/internal/domain/repositories"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/utils"
)

// importService implements the ImportService interface
type importService struct {
	repo           repositories.ArticleRepository
	articleService articleSvc.ArticleService
	parser         articleSvc.BlockParser
	converters     articleSvc.FileConverter
	logger         *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	repo repositories.ArticleRepository,
	articleService articleSvc.ArticleService,
	parser articleSvc.BlockParser,
	converters articleSvc.FileConverter,
	logger *slog.Logger,
) articleSvc.ImportService {
	return &importService{
		repo:           repo,
		articleService: articleService,
		parser:         parser,
		converters:     converters,
		logger:         logger,
	}
}

// ImportFiles imports article files (text or HTML) and zip archives of
// them. A failing file is recorded in the result and does not stop the
// import.
func (s *importService) ImportFiles(ctx context.Context, authorID string, files []articleSvc.UploadedFile, overwrite bool) (*articleSvc.ImportResult, error) {
	result := &articleSvc.ImportResult{
		Errors:   []articleSvc.ImportError{},
		Articles: []articleSvc.ImportArticle{},
	}

	for _, f := range files {
		switch {
		case strings.EqualFold(path.Ext(f.Filename), ".zip"):
			s.importArchive(ctx, authorID, f, overwrite, result)
		case s.converters.Supports(f.Filename):
			s.importFile(ctx, authorID, f.Filename, f.Content, overwrite, result)
		default:
			result.Summary.TotalFiles++
			result.Summary.Skipped++
			s.logger.Debug("skipping unsupported file", "file", f.Filename)
		}
	}

	s.logger.Info("import complete",
		"author_id", authorID,
		"created", result.Summary.Created,
		"updated", result.Summary.Updated,
		"skipped", result.Summary.Skipped,
		"failed", result.Summary.Failed,
		"total_files", result.Summary.TotalFiles,
	)

	return result, nil
}

func (s *importService) importArchive(ctx context.Context, authorID string, f articleSvc.UploadedFile, overwrite bool, result *articleSvc.ImportResult) {
	entries, skipped, err := utils.ReadArticleArchive(f.Content, config.MaxImportFileBytes, s.converters.Supports)
	if err != nil {
		result.Summary.TotalFiles++
		s.addError(result, f.Filename, err.Error())
		return
	}

	result.Summary.TotalFiles += len(skipped)
	result.Summary.Skipped += len(skipped)
	for _, e := range entries {
		s.importFile(ctx, authorID, f.Filename+"/"+e.Name, e.Content, overwrite, result)
	}
}

// importFile creates or updates one article from a text file
func (s *importService) importFile(ctx context.Context, authorID, filename string, content []byte, overwrite bool, result *articleSvc.ImportResult) {
	result.Summary.TotalFiles++

	if len(content) > config.MaxImportFileBytes {
		s.addError(result, filename, fmt.Sprintf("file exceeds %d bytes", config.MaxImportFileBytes))
		return
	}

	meta, raw, err := utils.ParseFrontmatter(content)
	if err != nil {
		s.addError(result, filename, err.Error())
		return
	}
	body, err := s.converters.Convert(ctx, filename, []byte(raw))
	if err != nil {
		s.addError(result, filename, err.Error())
		return
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = titleFromFilename(filename)
	}
	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		slug = utils.Slugify(title, config.MaxSlugLength)
	}

	parsed := s.parser.Parse(body)
	entry := articleSvc.ImportArticle{
		File:        filename,
		Slug:        slug,
		IsLegacy:    parsed.IsLegacy,
		ParseErrors: len(parsed.Errors),
	}

	existing, err := s.repo.GetBySlug(ctx, slug)
	switch {
	case err == nil && !overwrite:
		entry.ID = existing.ID
		entry.Action = "skipped"
		result.Summary.Skipped++
		result.Articles = append(result.Articles, entry)
		return

	case err == nil:
		update := &articleSvc.UpdateArticleRequest{Title: &title, Body: &body}
		if meta.Section != "" {
			update.Section = &meta.Section
		}
		if _, err := s.articleService.UpdateArticle(ctx, existing.ID, update); err != nil {
			s.addError(result, filename, err.Error())
			return
		}
		entry.ID = existing.ID
		entry.Action = "updated"
		result.Summary.Updated++

	case errors.Is(err, domain.ErrNotFound):
		a, err := s.articleService.CreateArticle(ctx, &articleSvc.CreateArticleRequest{
			AuthorID: authorID,
			Title:    title,
			Slug:     slug,
			Section:  meta.Section,
			Body:     body,
		})
		if err != nil {
			s.addError(result, filename, err.Error())
			return
		}
		entry.ID = a.ID
		entry.Action = "created"
		result.Summary.Created++

	default:
		s.addError(result, filename, err.Error())
		return
	}

	if entry.ParseErrors > 0 {
		s.logger.Warn("imported article has parse errors",
			"file", filename,
			"slug", slug,
			"parse_errors", entry.ParseErrors,
		)
	}
	result.Articles = append(result.Articles, entry)
}

func (s *importService) addError(result *articleSvc.ImportResult, file, msg string) {
	result.Summary.Failed++
	result.Errors = append(result.Errors, articleSvc.ImportError{File: file, Error: msg})
	s.logger.Warn("import failed", "file", file, "error", msg)
}

// titleFromFilename turns "harbour-reopens_2024.md" into "harbour reopens 2024"
func titleFromFilename(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
