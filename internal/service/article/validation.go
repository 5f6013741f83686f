package article

import (
	"errors"
	"regexp"
	"strings"

	"broadsheet/internal/config"
	models "broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	titleRules   = []validation.Rule{validation.Required, validation.RuneLength(1, config.MaxArticleTitleLength)}
	sectionRules = []validation.Rule{validation.RuneLength(0, config.MaxSectionNameLength)}
	slugRules    = []validation.Rule{
		validation.Required,
		validation.Length(1, config.MaxSlugLength),
		validation.Match(slugPattern).Error("must contain only lower-case letters, digits and single hyphens"),
	}
	bodyRules = []validation.Rule{validation.Length(0, config.MaxArticleBodyLength)}
)

// validateCreateRequest validates an article creation request
func validateCreateRequest(req *articleSvc.CreateArticleRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AuthorID, validation.Required, is.UUID),
		validation.Field(&req.Title, titleRules...),
		validation.Field(&req.Section, sectionRules...),
		validation.Field(&req.Slug, slugRules...),
		validation.Field(&req.Body, bodyRules...),
	)
}

// validateListRequest validates a listing request
func validateListRequest(req *articleSvc.ListArticlesRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Status, validation.In(string(models.StatusDraft), string(models.StatusPublished))),
		validation.Field(&req.Offset, validation.Min(0)),
	)
}

// validateUpdateRequest validates an update request. Nil fields are
// skipped by ozzo's pointer handling.
func validateUpdateRequest(req *articleSvc.UpdateArticleRequest) error {
	if req.Body != nil && req.Blocks != nil {
		return errors.New("body and blocks are mutually exclusive")
	}
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.RuneLength(1, config.MaxArticleTitleLength)),
		validation.Field(&req.Section, sectionRules...),
		validation.Field(&req.Slug, append([]validation.Rule{validation.NilOrNotEmpty}, slugRules[1:]...)...),
		validation.Field(&req.Body, bodyRules...),
	)
}

// validateInsertMediaRequest checks that exactly one payload is present
// and that it carries what the block needs
func validateInsertMediaRequest(req *articleSvc.InsertMediaRequest) error {
	if (req.Image == nil) == (req.Video == nil) {
		return errors.New("exactly one of image or video is required")
	}
	if err := validation.Validate(req.Index, validation.Min(0)); err != nil {
		return errors.New("index: " + err.Error())
	}

	if img := req.Image; img != nil {
		return validation.Errors{
			"url":    validation.Validate(img.URL, validation.Required),
			"alt":    validation.Validate(strings.TrimSpace(img.Alt), validation.Required.Error("alt text is required")),
			"width":  validation.Validate(img.Width, validation.Required, validation.Min(1)),
			"height": validation.Validate(img.Height, validation.Required, validation.Min(1)),
		}.Filter()
	}

	v := req.Video
	return validation.Errors{
		"provider": validation.Validate(string(v.Provider), validation.Required, validation.By(validProvider)),
		"videoId":  validation.Validate(strings.TrimSpace(v.VideoID), validation.Required),
		"duration": validation.Validate(v.Duration, validation.Min(0)),
	}.Filter()
}

func validProvider(value any) error {
	s, _ := value.(string)
	if !models.VideoProvider(strings.ToLower(s)).IsValid() {
		return errors.New("must be youtube, vimeo or cdn")
	}
	return nil
}
