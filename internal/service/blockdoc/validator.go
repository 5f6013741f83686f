package blockdoc

import (
	"fmt"
	"strings"

	"broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/policy"
)

// validator implements articleSvc.BlockValidator for one policy
type validator struct {
	policy policy.Policy
}

// NewValidator creates a validator enforcing p
func NewValidator(p policy.Policy) articleSvc.BlockValidator {
	return &validator{policy: p}
}

func (v *validator) Policy() policy.Policy { return v.policy }

// report collects findings for a single Validate call
type report struct {
	errors   []article.ValidationError
	warnings []article.ValidationWarning
}

func (r *report) err(t article.ValidationErrorType, index int, blockID, format string, args ...any) {
	r.errors = append(r.errors, article.ValidationError{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		BlockID: blockID,
		Index:   index,
	})
}

func (r *report) warn(t article.ValidationWarningType, index int, blockID, format string, args ...any) {
	r.warnings = append(r.warnings, article.ValidationWarning{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		BlockID: blockID,
		Index:   index,
	})
}

func (r *report) result() *article.ValidationResult {
	if r.errors == nil {
		r.errors = []article.ValidationError{}
	}
	if r.warnings == nil {
		r.warnings = []article.ValidationWarning{}
	}
	return &article.ValidationResult{
		IsValid:  len(r.errors) == 0,
		Errors:   r.errors,
		Warnings: r.warnings,
	}
}

// Validate runs every check in a fixed order. Checks are independent; none
// suppresses another, except that an empty list short-circuits.
func (v *validator) Validate(blocks []article.Block) *article.ValidationResult {
	r := &report{}

	if len(blocks) == 0 {
		r.err(article.ErrEmptyBlocks, -1, "", "Article has no content blocks")
		return r.result()
	}

	if article.CountBlocks(blocks, article.IsTextBlock) == 0 {
		r.err(article.ErrMediaOnlyArticle, -1, "", "Article must contain at least one text block")
	}

	if n := article.CountBlocks(blocks, article.IsImageBlock); n > v.policy.MaxImages {
		r.err(article.ErrImageLimitExceeded, -1, "", "Article has %d images; the maximum is %d", n, v.policy.MaxImages)
		r.errors[len(r.errors)-1].Count = n
	}

	if n := article.CountBlocks(blocks, article.IsVideoBlock); n > v.policy.VideoSoftLimit {
		r.warn(article.WarnVideoSoftLimit, -1, "", "Article has %d videos; at most %d is recommended", n, v.policy.VideoSoftLimit)
		r.warnings[len(r.warnings)-1].Count = n
	}

	seen := make(map[string]int, len(blocks))
	for i, b := range blocks {
		id := b.BlockID()
		if first, dup := seen[id]; dup {
			r.err(article.ErrDuplicateBlockID, i, id, "Block id %q is already used by block %d", id, first)
		} else {
			seen[id] = i
		}

		switch blk := b.(type) {
		case *article.Paragraph, *article.Subheading, *article.Quote:
			// no field rules
		case *article.Image:
			checkImage(r, i, blk)
		case *article.Video:
			checkVideo(r, i, blk)
		default:
			article.UnknownBlockPanic(b)
		}
	}

	if v.policy.EnforceMediaPlacement {
		checkPlacement(r, blocks)
	}

	return r.result()
}

func checkImage(r *report, i int, img *article.Image) {
	if strings.TrimSpace(img.Alt) == "" {
		r.err(article.ErrEmptyAltText, i, img.ID, "Image %d is missing alt text", i)
	}
	if img.Width <= 0 || img.Height <= 0 {
		r.err(article.ErrInvalidImageDimensions, i, img.ID, "Image %d must have positive width and height (got %dx%d)", i, img.Width, img.Height)
	}
	if strings.TrimSpace(img.Src) == "" {
		r.err(article.ErrMissingImageSrc, i, img.ID, "Image %d has no source URL", i)
	}
	if strings.TrimSpace(img.Caption) == "" {
		r.warn(article.WarnMissingImageCaption, i, img.ID, "Image %d has no caption", i)
	}
	if strings.TrimSpace(img.Credit) == "" {
		r.warn(article.WarnMissingImageCredit, i, img.ID, "Image %d has no credit", i)
	}
}

func checkVideo(r *report, i int, vid *article.Video) {
	if !vid.Provider.IsValid() {
		r.err(article.ErrInvalidVideoProvider, i, vid.ID, "Video %d has an invalid provider %q", i, vid.Provider)
	}
	if strings.TrimSpace(vid.VideoID) == "" {
		r.err(article.ErrMissingVideoID, i, vid.ID, "Video %d has no video id", i)
	}
	if strings.TrimSpace(vid.EmbedURL) == "" {
		r.err(article.ErrMissingEmbedURL, i, vid.ID, "Video %d has no embed URL", i)
	}
	if strings.TrimSpace(vid.PosterURL) == "" {
		r.err(article.ErrMissingPosterURL, i, vid.ID, "Video %d has no poster image", i)
	}
	if strings.TrimSpace(vid.Caption) == "" {
		r.warn(article.WarnMissingVideoCaption, i, vid.ID, "Video %d has no caption", i)
	}
}

// checkPlacement requires a text block immediately before and after every
// media block
func checkPlacement(r *report, blocks []article.Block) {
	first, last := blocks[0], blocks[len(blocks)-1]
	if article.IsMediaBlock(first) {
		r.err(article.ErrStartsWithMedia, 0, first.BlockID(), "Article cannot start with a %s block", first.Type())
	}
	if article.IsMediaBlock(last) {
		r.err(article.ErrEndsWithMedia, len(blocks)-1, last.BlockID(), "Article cannot end with a %s block", last.Type())
	}
	for i := 1; i < len(blocks); i++ {
		if article.IsMediaBlock(blocks[i-1]) && article.IsMediaBlock(blocks[i]) {
			r.err(article.ErrConsecutiveMedia, i, blocks[i].BlockID(), "Block %d (%s) directly follows another media block", i, blocks[i].Type())
		}
	}
}
