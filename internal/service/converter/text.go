package converter

import (
	"context"

	articleSvc "broadsheet/internal/domain/services/article"
)

// textConverter passes article text through unchanged
type textConverter struct{}

// NewTextConverter creates the passthrough converter for text files
func NewTextConverter() articleSvc.ContentConverter {
	return &textConverter{}
}

func (c *textConverter) Convert(_ context.Context, input []byte) (string, error) {
	return string(input), nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".md", ".markdown", ".txt", ".text"}
}

func (c *textConverter) Name() string {
	return "text"
}
