package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"broadsheet/internal/config"
	"broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/httputil"
)

// BlocksHandler exposes the block engine to the editor: parsing,
// serializing, validating and the insertion guard. Nothing is stored.
type BlocksHandler struct {
	parser     articleSvc.BlockParser
	serializer articleSvc.BlockSerializer
	validator  articleSvc.BlockValidator
	ids        article.IDGenerator
	logger     *slog.Logger
}

// NewBlocksHandler creates a new blocks handler
func NewBlocksHandler(
	parser articleSvc.BlockParser,
	serializer articleSvc.BlockSerializer,
	validator articleSvc.BlockValidator,
	ids article.IDGenerator,
	logger *slog.Logger,
) *BlocksHandler {
	return &BlocksHandler{
		parser:     parser,
		serializer: serializer,
		validator:  validator,
		ids:        ids,
		logger:     logger,
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

type blocksRequest struct {
	Blocks article.Blocks `json:"blocks"`
}

type serializeResponse struct {
	Text string `json:"text"`
}

type insertionCheckRequest struct {
	Blocks article.Blocks    `json:"blocks"`
	Index  int               `json:"index"`
	Type   article.BlockType `json:"type"`
}

// Parse parses article text into blocks
// POST /api/blocks/parse
func (h *BlocksHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Text) > config.MaxArticleBodyLength {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds %d bytes", config.MaxArticleBodyLength))
		return
	}

	result := h.parser.Parse(req.Text)
	h.logger.Debug("parsed text",
		"bytes", len(req.Text),
		"blocks", len(result.Blocks),
		"errors", len(result.Errors),
		"legacy", result.IsLegacy,
	)

	httputil.RespondJSON(w, http.StatusOK, result)
}

// Serialize renders blocks as canonical article text
// POST /api/blocks/serialize
func (h *BlocksHandler) Serialize(w http.ResponseWriter, r *http.Request) {
	blocks, ok := h.decodeBlocks(w, r)
	if !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, serializeResponse{Text: h.serializer.Serialize(blocks)})
}

// Validate checks blocks against the editorial policy
// POST /api/blocks/validate
func (h *BlocksHandler) Validate(w http.ResponseWriter, r *http.Request) {
	blocks, ok := h.decodeBlocks(w, r)
	if !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, h.validator.Validate(blocks))
}

// InsertionCheck reports whether a block of the given type may be
// inserted at the given index
// POST /api/blocks/insertion-check
func (h *BlocksHandler) InsertionCheck(w http.ResponseWriter, r *http.Request) {
	var req insertionCheckRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !isBlockType(req.Type) {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown block type %q", req.Type))
		return
	}

	decision := h.validator.Policy().CanInsert(article.ReorderBlocks(req.Blocks), req.Index, req.Type)
	httputil.RespondJSON(w, http.StatusOK, decision)
}

// decodeBlocks reads a {blocks} body, fills in missing ids and
// renumbers the order fields
func (h *BlocksHandler) decodeBlocks(w http.ResponseWriter, r *http.Request) ([]article.Block, bool) {
	var req blocksRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	blocks := []article.Block(req.Blocks)
	if blocks == nil {
		blocks = []article.Block{}
	}
	article.EnsureIDs(h.ids, blocks)
	return article.ReorderBlocks(blocks), true
}

func isBlockType(t article.BlockType) bool {
	for _, known := range article.AllBlockTypes {
		if t == known {
			return true
		}
	}
	return false
}
