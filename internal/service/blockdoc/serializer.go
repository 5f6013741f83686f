package blockdoc

import (
	"strconv"
	"strings"

	"broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
)

type serializer struct{}

// NewSerializer creates a serializer producing canonical article text
func NewSerializer() articleSvc.BlockSerializer {
	return &serializer{}
}

// Serialize writes blocks in canonical form, one blank line between
// blocks. Order fields are ignored; slice order is authoritative.
func (s *serializer) Serialize(blocks []article.Block) string {
	if len(blocks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, serializeBlock(b))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func serializeBlock(b article.Block) string {
	switch v := b.(type) {
	case *article.Paragraph:
		return v.Content
	case *article.Subheading:
		return "## " + v.Content
	case *article.Quote:
		return serializeQuote(v)
	case *article.Image:
		return serializeImage(v)
	case *article.Video:
		return serializeVideo(v)
	default:
		article.UnknownBlockPanic(b)
		return ""
	}
}

// serializeQuote uses the one-line form only when re-parsing it gives the
// same content back
func serializeQuote(q *article.Quote) string {
	inline := q.Attribution == "" &&
		!strings.Contains(q.Content, "\n") &&
		!attributionPattern.MatchString(q.Content)
	if inline {
		return "> " + q.Content
	}

	var sb strings.Builder
	sb.WriteString(":::quote\n")
	sb.WriteString(q.Content)
	sb.WriteString("\n")
	if q.Attribution != "" {
		sb.WriteString("attribution: ")
		sb.WriteString(q.Attribution)
		sb.WriteString("\n")
	}
	sb.WriteString(fenceDelimiter)
	return sb.String()
}

// propertyWriter emits "key: value" lines inside a fence
type propertyWriter struct {
	sb strings.Builder
}

func newPropertyWriter(kind fenceKind) *propertyWriter {
	w := &propertyWriter{}
	w.sb.WriteString(fenceDelimiter)
	w.sb.WriteString(string(kind))
	w.sb.WriteString("\n")
	return w
}

// required always writes the property, even when empty
func (w *propertyWriter) required(key, value string) {
	w.sb.WriteString(key)
	w.sb.WriteString(": ")
	w.sb.WriteString(value)
	w.sb.WriteString("\n")
}

// optional skips empty values
func (w *propertyWriter) optional(key, value string) {
	if value != "" {
		w.required(key, value)
	}
}

func (w *propertyWriter) close() string {
	w.sb.WriteString(fenceDelimiter)
	return w.sb.String()
}

func serializeImage(img *article.Image) string {
	w := newPropertyWriter(fenceImage)
	w.required("src", img.Src)
	w.required("alt", img.Alt)
	w.required("width", strconv.Itoa(img.Width))
	w.required("height", strconv.Itoa(img.Height))
	w.optional("caption", img.Caption)
	w.optional("credit", img.Credit)
	w.optional("srcset", img.Srcset)
	if img.AspectRatio != "" && img.AspectRatio != article.DeriveAspectRatio(img.Width, img.Height) {
		w.required("aspectRatio", string(img.AspectRatio))
	}
	return w.close()
}

func serializeVideo(v *article.Video) string {
	w := newPropertyWriter(fenceVideo)
	w.required("provider", string(v.Provider))
	w.required("videoId", v.VideoID)
	w.optional("embedUrl", v.EmbedURL)
	w.optional("posterUrl", v.PosterURL)
	w.optional("caption", v.Caption)
	if v.Duration > 0 {
		w.required("duration", strconv.Itoa(v.Duration))
	}
	w.optional("title", v.Title)
	return w.close()
}
