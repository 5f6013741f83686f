package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"broadsheet/internal/config"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/httputil"
)

// ImportHandler handles bulk article import
type ImportHandler struct {
	importService articleSvc.ImportService
	logger        *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService articleSvc.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		logger:        logger,
	}
}

// ImportResponse represents the response for import operations
type ImportResponse struct {
	Success  bool                       `json:"success"`
	Summary  articleSvc.ImportSummary   `json:"summary"`
	Errors   []articleSvc.ImportError   `json:"errors"`
	Articles []articleSvc.ImportArticle `json:"articles"`
}

// Import imports .md/.txt files and zip archives of them.
// POST /api/import
//
// Query parameters:
//   - overwrite: optional, if "true" updates articles whose slug already exists
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImportUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	overwrite := r.URL.Query().Get("overwrite") == "true"
	authorID := httputil.GetUserID(r)

	h.logger.Info("starting import",
		"author_id", authorID,
		"file_count", len(headers),
		"overwrite", overwrite,
	)

	files := make([]articleSvc.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file", "file", fh.Filename, "error", err)
			httputil.RespondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open file %s", fh.Filename))
			return
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			h.logger.Error("failed to read uploaded file", "file", fh.Filename, "error", err)
			httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read file %s", fh.Filename))
			return
		}
		files = append(files, articleSvc.UploadedFile{Filename: fh.Filename, Content: content})
	}

	result, err := h.importService.ImportFiles(r.Context(), authorID, files, overwrite)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ImportResponse{
		Success:  result.Summary.Failed == 0,
		Summary:  result.Summary,
		Errors:   result.Errors,
		Articles: result.Articles,
	})
}
