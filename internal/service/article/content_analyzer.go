package article

import (
	"strings"
	"unicode"

	"broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
)

type contentAnalyzerService struct{}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() articleSvc.ContentAnalyzer {
	return &contentAnalyzerService{}
}

// CountWords counts words in paragraphs, subheadings and quotes. Media
// captions and quote attributions are not part of the word count.
func (s *contentAnalyzerService) CountWords(blocks []article.Block) int {
	count := 0
	for _, b := range blocks {
		switch v := b.(type) {
		case *article.Paragraph:
			count += countWords(v.Content)
		case *article.Subheading:
			count += countWords(v.Content)
		case *article.Quote:
			count += countWords(v.Content)
		case *article.Image, *article.Video:
		default:
			article.UnknownBlockPanic(b)
		}
	}
	return count
}

// inlineMarkers are emphasis and code markers that may appear in text
// blocks and should not split or form words
var inlineMarkers = strings.NewReplacer("**", "", "__", "", "~~", "", "`", "", "*", "")

func countWords(text string) int {
	text = inlineMarkers.Replace(text)
	words := strings.FieldsFunc(text, unicode.IsSpace)

	count := 0
	for _, w := range words {
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			count++
		}
	}
	return count
}
