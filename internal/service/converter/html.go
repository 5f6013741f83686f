package converter

import (
	"context"
	"fmt"
	"strings"

	articleSvc "broadsheet/internal/domain/services/article"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"
)

// htmlConverter turns CMS exports into article text in two stages:
// sanitize the markup, then convert it to markdown. Headings come out as
// "## " lines and blockquotes as "> " lines, which the parser reads as
// subheadings and quotes.
type htmlConverter struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewHTMLConverter creates a new HTML converter
func NewHTMLConverter() articleSvc.ContentConverter {
	policy := bluemonday.UGCPolicy()
	// Scripts inside data URIs stay out of article bodies
	policy.AllowDataURIImages()

	return &htmlConverter{
		policy:    policy,
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(_ context.Context, input []byte) (string, error) {
	sanitized := c.policy.Sanitize(string(input))

	text, err := c.converter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("convert HTML: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	return text + "\n", nil
}

func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *htmlConverter) Name() string {
	return "html"
}
