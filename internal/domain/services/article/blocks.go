package article

import (
	"context"

	"broadsheet/internal/domain/models/article"
	"broadsheet/internal/policy"
)

// BlockParser turns an article body into blocks.
//
// Implementations are stateless apart from id generation and safe for
// concurrent use.
type BlockParser interface {
	// Parse never fails outright: malformed regions are reported in
	// ParseResult.Errors and the blocks that parsed cleanly are returned.
	Parse(text string) *article.ParseResult
}

// BlockSerializer turns blocks back into canonical article text
type BlockSerializer interface {
	// Serialize is total over every block variant
	Serialize(blocks []article.Block) string
}

// BlockValidator checks a block list against an editorial policy
type BlockValidator interface {
	// Validate runs every check and returns all findings at once
	Validate(blocks []article.Block) *article.ValidationResult

	// Policy returns the policy this validator enforces, so insertion
	// guards can share it
	Policy() policy.Policy
}

// ContentAnalyzer computes text statistics over blocks
type ContentAnalyzer interface {
	// CountWords counts words in text blocks only
	CountWords(blocks []article.Block) int
}

// ContentConverter turns an uploaded file into article text. Text
// formats pass through; markup is converted to the legacy text form that
// the parser upgrades.
type ContentConverter interface {
	Convert(ctx context.Context, input []byte) (string, error)
	SupportedExtensions() []string
	Name() string
}

// FileConverter picks a ContentConverter by file name
type FileConverter interface {
	Supports(filename string) bool
	Convert(ctx context.Context, filename string, content []byte) (string, error)
}
