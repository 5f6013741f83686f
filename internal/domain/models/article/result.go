package article

// ParseErrorKind classifies a structural problem in article text
type ParseErrorKind string

const (
	ParseErrorUnclosedFence     ParseErrorKind = "unclosed_fence"
	ParseErrorInvalidProperty   ParseErrorKind = "invalid_property"
	ParseErrorMissingProperty   ParseErrorKind = "missing_property"
	ParseErrorInvalidDimensions ParseErrorKind = "invalid_dimensions"
	ParseErrorInvalidProvider   ParseErrorKind = "invalid_provider"
	ParseErrorInvalidValue      ParseErrorKind = "invalid_value"
	ParseErrorUnknownFence      ParseErrorKind = "unknown_fence"
	ParseErrorEmptyQuote        ParseErrorKind = "empty_quote"
)

// ParseError is a recoverable, line-scoped malformation found while parsing.
// Line is 1-based.
type ParseError struct {
	Line    int            `json:"line"`
	Kind    ParseErrorKind `json:"kind"`
	Message string         `json:"message"`
	Content string         `json:"content,omitempty"`
}

// ParseResult is the outcome of parsing an article body
type ParseResult struct {
	Blocks   Blocks       `json:"blocks"`
	Success  bool         `json:"success"`
	Errors   []ParseError `json:"errors"`
	IsLegacy bool         `json:"isLegacy"`
}

// ValidationErrorType is the closed set of publication-blocking rule violations
type ValidationErrorType string

const (
	ErrEmptyBlocks            ValidationErrorType = "empty_blocks"
	ErrMediaOnlyArticle       ValidationErrorType = "media_only_article"
	ErrImageLimitExceeded     ValidationErrorType = "image_limit_exceeded"
	ErrEmptyAltText           ValidationErrorType = "empty_alt_text"
	ErrInvalidImageDimensions ValidationErrorType = "invalid_image_dimensions"
	ErrMissingImageSrc        ValidationErrorType = "missing_image_src"
	ErrInvalidVideoProvider   ValidationErrorType = "invalid_video_provider"
	ErrMissingVideoID         ValidationErrorType = "missing_video_id"
	ErrMissingEmbedURL        ValidationErrorType = "missing_embed_url"
	ErrMissingPosterURL       ValidationErrorType = "missing_poster_url"
	ErrDuplicateBlockID       ValidationErrorType = "duplicate_block_id"
	ErrStartsWithMedia        ValidationErrorType = "article_starts_with_media"
	ErrEndsWithMedia          ValidationErrorType = "article_ends_with_media"
	ErrConsecutiveMedia       ValidationErrorType = "consecutive_media"
)

// ValidationWarningType is the closed set of non-blocking findings
type ValidationWarningType string

const (
	WarnVideoSoftLimit      ValidationWarningType = "video_soft_limit"
	WarnMissingImageCaption ValidationWarningType = "missing_image_caption"
	WarnMissingImageCredit  ValidationWarningType = "missing_image_credit"
	WarnMissingVideoCaption ValidationWarningType = "missing_video_caption"
)

// ValidationError blocks publication. BlockID and Index are set when the
// error is scoped to a single block; Index is -1 otherwise.
type ValidationError struct {
	Type    ValidationErrorType `json:"type"`
	Message string              `json:"message"`
	BlockID string              `json:"blockId,omitempty"`
	Index   int                 `json:"index"`
	Count   int                 `json:"count,omitempty"`
}

// ValidationWarning never blocks publication
type ValidationWarning struct {
	Type    ValidationWarningType `json:"type"`
	Message string                `json:"message"`
	BlockID string                `json:"blockId,omitempty"`
	Index   int                   `json:"index"`
	Count   int                   `json:"count,omitempty"`
}

// ValidationResult is the full set of findings for a block list
type ValidationResult struct {
	IsValid  bool                `json:"isValid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

// HasError reports whether an error of type t is present
func (r *ValidationResult) HasError(t ValidationErrorType) bool {
	for _, e := range r.Errors {
		if e.Type == t {
			return true
		}
	}
	return false
}

// HasWarning reports whether a warning of type t is present
func (r *ValidationResult) HasWarning(t ValidationWarningType) bool {
	for _, w := range r.Warnings {
		if w.Type == t {
			return true
		}
	}
	return false
}
