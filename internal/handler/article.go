package handler

import (
	"log/slog"
	"net/http"

	"broadsheet/internal/domain/models"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/httputil"
)

// ArticleHandler handles article HTTP requests
type ArticleHandler struct {
	articleService articleSvc.ArticleService
	logger         *slog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService articleSvc.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		logger:         logger,
	}
}

// CreateArticle creates a new draft article
// POST /api/articles
// Returns 201 if created, 409 with the existing article if the slug is taken
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleSvc.CreateArticleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.AuthorID = httputil.GetUserID(r)

	a, err := h.articleService.CreateArticle(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, func(id string) (*articleSvc.ArticleView, error) {
			return h.articleService.GetArticle(r.Context(), id)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, a)
}

// ListArticles lists articles, optionally filtered by status
// GET /api/articles?status=draft&limit=20&offset=0
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := httputil.QueryInt(r, "offset", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	articles, err := h.articleService.ListArticles(r.Context(), &articleSvc.ListArticlesRequest{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, articles)
}

// GetArticle retrieves an article with its parsed blocks
// GET /api/articles/{id}
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	view, err := h.articleService.GetArticle(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// UpdateArticle updates an article's metadata and body
// PATCH /api/articles/{id}
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	var req articleSvc.UpdateArticleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.articleService.UpdateArticle(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// InsertMedia inserts an image or video block
// POST /api/articles/{id}/media
func (h *ArticleHandler) InsertMedia(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	var req articleSvc.InsertMediaRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.articleService.InsertMedia(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// PublishArticle publishes an article. Responds 422 with every parse
// error or validation finding when publication is blocked.
// POST /api/articles/{id}/publish
func (h *ArticleHandler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	result, err := h.articleService.PublishArticle(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DeleteArticle deletes an article. Admins only.
// DELETE /api/articles/{id}
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	if httputil.GetEditorialRole(r) != models.RoleAdmin {
		h.logger.Warn("delete refused",
			"id", id,
			"user_id", httputil.GetUserID(r),
			"role", httputil.GetEditorialRole(r),
		)
		httputil.RespondError(w, http.StatusForbidden, "only admins can delete articles")
		return
	}

	if err := h.articleService.DeleteArticle(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
