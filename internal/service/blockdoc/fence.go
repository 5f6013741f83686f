package blockdoc

import (
	"fmt"
	"strconv"
	"strings"

	"broadsheet/internal/domain/models/article"
)

// fenceKind is the type named on a property fence opener
type fenceKind string

const (
	fenceImage fenceKind = "image"
	fenceVideo fenceKind = "video"
)

// rawFence is the untyped stage between a closed property fence and a
// typed block. Keys are lower-cased. Nothing outside this file reads
// properties directly.
type rawFence struct {
	kind       fenceKind
	properties map[string]string
	startLine  int
	endLine    int
}

func newRawFence(kind fenceKind, startLine int) *rawFence {
	return &rawFence{
		kind:       kind,
		properties: make(map[string]string),
		startLine:  startLine,
	}
}

func (f *rawFence) set(key, value string) {
	f.properties[strings.ToLower(key)] = strings.TrimSpace(value)
}

func (f *rawFence) lookup(key string) (string, bool) {
	v, ok := f.properties[strings.ToLower(key)]
	return v, ok
}

func (f *rawFence) get(key string) string {
	v, _ := f.lookup(key)
	return v
}

func (f *rawFence) errorf(kind article.ParseErrorKind, format string, args ...any) article.ParseError {
	return article.ParseError{
		Line:    f.startLine,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// lift converts a closed fence into a typed block. On any error no block
// is returned.
func (f *rawFence) lift(ids article.IDGenerator) (article.Block, []article.ParseError) {
	switch f.kind {
	case fenceImage:
		img, errs := f.liftImage(ids)
		if img == nil {
			return nil, errs
		}
		return img, nil
	case fenceVideo:
		v, errs := f.liftVideo(ids)
		if v == nil {
			return nil, errs
		}
		return v, nil
	}
	return nil, []article.ParseError{f.errorf(article.ParseErrorUnknownFence, "Unknown fence type: %s", f.kind)}
}

func (f *rawFence) liftImage(ids article.IDGenerator) (*article.Image, []article.ParseError) {
	var errs []article.ParseError

	src := f.get("src")
	if src == "" {
		errs = append(errs, f.errorf(article.ParseErrorMissingProperty, "Image block missing required property: src"))
	}

	// an empty alt is kept so the validator can report it against the block
	alt, hasAlt := f.lookup("alt")
	if !hasAlt {
		errs = append(errs, f.errorf(article.ParseErrorMissingProperty, "Image block missing required property: alt"))
	}

	width, height := 0, 0
	rawWidth, hasWidth := f.lookup("width")
	rawHeight, hasHeight := f.lookup("height")
	if !hasWidth || !hasHeight || rawWidth == "" || rawHeight == "" {
		errs = append(errs, f.errorf(article.ParseErrorMissingProperty, "Image block missing required dimensions (width and height)"))
	} else {
		var ok bool
		if width, ok = parsePositiveInt(rawWidth); !ok {
			errs = append(errs, f.errorf(article.ParseErrorInvalidDimensions, "Invalid image width %q: must be a positive integer", rawWidth))
		}
		if height, ok = parsePositiveInt(rawHeight); !ok {
			errs = append(errs, f.errorf(article.ParseErrorInvalidDimensions, "Invalid image height %q: must be a positive integer", rawHeight))
		}
	}

	ratio := article.DeriveAspectRatio(width, height)
	if raw := f.get("aspectRatio"); raw != "" {
		if !article.AspectRatio(raw).IsValid() {
			errs = append(errs, f.errorf(article.ParseErrorInvalidValue, "Invalid image aspectRatio %q", raw))
		} else {
			ratio = article.AspectRatio(raw)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return article.NewImage(ids, article.Image{
		Src:         src,
		Alt:         alt,
		Caption:     f.get("caption"),
		Credit:      f.get("credit"),
		Width:       width,
		Height:      height,
		AspectRatio: ratio,
		Srcset:      f.get("srcset"),
	}), nil
}

func (f *rawFence) liftVideo(ids article.IDGenerator) (*article.Video, []article.ParseError) {
	var errs []article.ParseError

	provider := article.VideoProvider(strings.ToLower(f.get("provider")))
	switch {
	case provider == "":
		errs = append(errs, f.errorf(article.ParseErrorMissingProperty, "Video block missing required property: provider"))
	case !provider.IsValid():
		errs = append(errs, f.errorf(article.ParseErrorInvalidProvider, "Invalid video provider %q: must be youtube, vimeo or cdn", provider))
	}

	videoID := f.get("videoId")
	if videoID == "" {
		errs = append(errs, f.errorf(article.ParseErrorMissingProperty, "Video block missing required property: videoId"))
	}

	duration := 0
	if raw := f.get("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 {
			errs = append(errs, f.errorf(article.ParseErrorInvalidValue, "Invalid video duration %q: must be a whole number of seconds", raw))
		} else {
			duration = d
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	embedURL := f.get("embedUrl")
	if embedURL == "" {
		embedURL = article.DefaultEmbedURL(provider, videoID)
	}
	posterURL := f.get("posterUrl")
	if posterURL == "" {
		posterURL = article.DefaultPosterURL(provider, videoID)
	}

	return article.NewVideo(ids, article.Video{
		Provider:  provider,
		VideoID:   videoID,
		EmbedURL:  embedURL,
		PosterURL: posterURL,
		Caption:   f.get("caption"),
		Duration:  duration,
		Title:     f.get("title"),
	}), nil
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
