package blockdoc

import (
	"regexp"
	"strings"
)

var (
	headingPattern    = regexp.MustCompile(`^#{2,3}\s+(.+)$`)
	mediaFencePattern = regexp.MustCompile(`^:::(image|video)\s*$`)
	quoteFencePattern = regexp.MustCompile(`^:::quote\s*$`)
	propertyPattern   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*):[ \t]*(.*)$`)

	// "Words" — Name, with straight or curly quotes and an em dash, en dash
	// or hyphen(s) before the attribution
	attributionPattern = regexp.MustCompile(`^["“](.+)["”]\s*(?:—|–|--|-)\s*(.+)$`)

	// used for mode selection only; must match a whole line
	mediaFenceLinePattern = regexp.MustCompile(`(?m)^:::(image|video)\s*$`)
)

const fenceDelimiter = ":::"

// lineKind is the scanner's classification of a single line
type lineKind int

const (
	lineText lineKind = iota
	lineBlank
	lineHeading
	lineQuote
	lineMediaFence
	lineQuoteFence
	lineFenceClose
	lineOtherFence
)

// classifyLine decides what a line starts, ignoring surrounding whitespace
func classifyLine(line string) lineKind {
	t := strings.TrimSpace(line)
	switch {
	case t == "":
		return lineBlank
	case t == fenceDelimiter:
		return lineFenceClose
	case mediaFencePattern.MatchString(t):
		return lineMediaFence
	case quoteFencePattern.MatchString(t):
		return lineQuoteFence
	case strings.HasPrefix(t, fenceDelimiter):
		return lineOtherFence
	case headingPattern.MatchString(t):
		return lineHeading
	case strings.HasPrefix(t, ">"):
		return lineQuote
	}
	return lineText
}

// isFenceOpener reports whether kind opens a fence the parser understands
func isFenceOpener(kind lineKind) bool {
	return kind == lineMediaFence || kind == lineQuoteFence
}

// scanner is a forward-only cursor over the lines of a document
type scanner struct {
	lines []string
	pos   int
}

func newScanner(text string) *scanner {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return &scanner{}
	}
	return &scanner{lines: strings.Split(text, "\n")}
}

func (s *scanner) done() bool { return s.pos >= len(s.lines) }

// peek returns the current line without consuming it
func (s *scanner) peek() string { return s.lines[s.pos] }

// lineNo is the 1-based number of the current line
func (s *scanner) lineNo() int { return s.pos + 1 }

// next consumes the current line and returns it with its 1-based number
func (s *scanner) next() (string, int) {
	line := s.lines[s.pos]
	s.pos++
	return line, s.pos
}

func (s *scanner) mark() int     { return s.pos }
func (s *scanner) reset(pos int) { s.pos = pos }

// headingText extracts the subheading text from a heading line
func headingText(line string) string {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// splitQuoteLine turns a "> ..." line into content and optional attribution
func splitQuoteLine(line string) (content, attribution string) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ">"))
	return splitAttribution(rest)
}

// splitAttribution applies the `"…" — Attribution` heuristic. When the
// pattern does not match, the whole text is the content.
func splitAttribution(text string) (content, attribution string) {
	if m := attributionPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return text, ""
}

// hasMediaFence reports whether any line opens an image or video fence
func hasMediaFence(text string) bool {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return mediaFenceLinePattern.MatchString(text)
}
