package blockdoc

import (
	"fmt"
	"strings"

	"broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
)

// parser implements articleSvc.BlockParser
type parser struct {
	ids article.IDGenerator
}

// NewParser creates a parser that stamps block ids with ids
func NewParser(ids article.IDGenerator) articleSvc.BlockParser {
	return &parser{ids: ids}
}

// IsLegacy reports whether text would be parsed in legacy mode, i.e. it
// has no line opening an image or video fence.
func IsLegacy(text string) bool {
	return !hasMediaFence(text)
}

// parseState accumulates output for a single Parse call
type parseState struct {
	blocks []article.Block
	errors []article.ParseError
}

func (st *parseState) add(b article.Block) {
	st.blocks = append(st.blocks, b)
}

func (st *parseState) fail(line int, kind article.ParseErrorKind, content, format string, args ...any) {
	st.errors = append(st.errors, article.ParseError{
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Content: content,
	})
}

// Parse converts an article body into blocks. It never aborts: every
// problem found is reported in the result and cleanly parsed blocks are
// kept.
func (p *parser) Parse(text string) *article.ParseResult {
	legacy := IsLegacy(text)
	sc := newScanner(text)
	st := &parseState{}

	if legacy {
		p.parseLegacy(sc, st)
	} else {
		p.parseBlocks(sc, st)
	}

	if st.errors == nil {
		st.errors = []article.ParseError{}
	}
	blocks := article.ReorderBlocks(st.blocks)
	if blocks == nil {
		blocks = []article.Block{}
	}

	return &article.ParseResult{
		Blocks:   blocks,
		Success:  len(st.errors) == 0,
		Errors:   st.errors,
		IsLegacy: legacy,
	}
}

// parseLegacy is the best-effort path for text without media fences. It
// never records errors.
func (p *parser) parseLegacy(sc *scanner, st *parseState) {
	var buf strings.Builder
	flush := func() {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if text != "" {
			st.add(article.NewParagraph(p.ids, text))
		}
	}

	for !sc.done() {
		line := sc.peek()
		switch classifyLine(line) {
		case lineBlank:
			sc.next()
			flush()
		case lineHeading:
			sc.next()
			flush()
			st.add(article.NewSubheading(p.ids, headingText(line)))
		case lineQuote:
			sc.next()
			flush()
			content, attribution := splitQuoteLine(line)
			st.add(article.NewQuote(p.ids, content, attribution))
		case lineQuoteFence:
			start := sc.mark()
			q := collectQuoteFence(sc)
			if q.closed && q.content != "" {
				flush()
				st.add(article.NewQuote(p.ids, q.content, q.attribution))
				continue
			}
			// not a usable fence: treat the opener as ordinary text
			sc.reset(start)
			sc.next()
			buf.WriteString(line)
			buf.WriteString("\n")
		default:
			sc.next()
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush()
}

// parseBlocks is the strict path used once a media fence is present
func (p *parser) parseBlocks(sc *scanner, st *parseState) {
	for !sc.done() {
		line := sc.peek()
		switch classifyLine(line) {
		case lineBlank:
			sc.next()
		case lineMediaFence:
			p.parsePropertyFence(sc, st)
		case lineQuoteFence:
			p.parseQuoteFence(sc, st)
		case lineFenceClose:
			_, n := sc.next()
			st.fail(n, article.ParseErrorUnknownFence, line, "Unexpected fence delimiter without an open block")
		case lineOtherFence:
			_, n := sc.next()
			st.fail(n, article.ParseErrorUnknownFence, line, "Unknown fence type: %s", strings.TrimSpace(line))
		case lineHeading:
			sc.next()
			st.add(article.NewSubheading(p.ids, headingText(line)))
		case lineQuote:
			sc.next()
			content, attribution := splitQuoteLine(line)
			st.add(article.NewQuote(p.ids, content, attribution))
		default:
			p.parseParagraph(sc, st)
		}
	}
}

// parseParagraph collects text lines, stopping before the first line that
// starts something else
func (p *parser) parseParagraph(sc *scanner, st *parseState) {
	var lines []string
	for !sc.done() && classifyLine(sc.peek()) == lineText {
		line, _ := sc.next()
		lines = append(lines, line)
	}
	if text := strings.TrimSpace(strings.Join(lines, "\n")); text != "" {
		st.add(article.NewParagraph(p.ids, text))
	}
}

// parsePropertyFence handles :::image and :::video. The fence ends at a
// ":::" line; another fence opener or end of input leaves it unclosed.
func (p *parser) parsePropertyFence(sc *scanner, st *parseState) {
	opener, start := sc.next()
	kind := fenceKind(mediaFencePattern.FindStringSubmatch(strings.TrimSpace(opener))[1])
	raw := newRawFence(kind, start)

	var propErrs []article.ParseError
	closed := false
	for !sc.done() {
		if isFenceOpener(classifyLine(sc.peek())) {
			break
		}
		line, n := sc.next()
		t := strings.TrimSpace(line)
		if t == fenceDelimiter {
			closed = true
			raw.endLine = n
			break
		}
		if t == "" {
			continue
		}
		m := propertyPattern.FindStringSubmatch(t)
		if m == nil {
			propErrs = append(propErrs, article.ParseError{
				Line:    n,
				Kind:    article.ParseErrorInvalidProperty,
				Message: fmt.Sprintf("Invalid property format in %s block (expected key: value)", kind),
				Content: line,
			})
			continue
		}
		raw.set(m[1], m[2])
	}

	if !closed {
		st.fail(start, article.ParseErrorUnclosedFence, opener, "Unclosed %s fence block", kind)
		return
	}

	st.errors = append(st.errors, propErrs...)
	block, errs := raw.lift(p.ids)
	if len(errs) > 0 {
		st.errors = append(st.errors, errs...)
		return
	}
	st.add(block)
}

// parseQuoteFence handles :::quote in block mode
func (p *parser) parseQuoteFence(sc *scanner, st *parseState) {
	opener := sc.peek()
	start := sc.lineNo()
	q := collectQuoteFence(sc)
	switch {
	case !q.closed:
		st.fail(start, article.ParseErrorUnclosedFence, opener, "Unclosed quote fence block")
	case q.content == "":
		st.fail(start, article.ParseErrorEmptyQuote, opener, "Quote block has no content")
	default:
		st.add(article.NewQuote(p.ids, q.content, q.attribution))
	}
}

// quoteFence is the collected body of a :::quote fence
type quoteFence struct {
	content     string
	attribution string
	closed      bool
}

// collectQuoteFence consumes a :::quote fence starting at the current line
func collectQuoteFence(sc *scanner) quoteFence {
	sc.next()

	var q quoteFence
	var lines []string
	for !sc.done() {
		if isFenceOpener(classifyLine(sc.peek())) {
			break
		}
		line, _ := sc.next()
		t := strings.TrimSpace(line)
		if t == fenceDelimiter {
			q.closed = true
			break
		}
		if strings.HasPrefix(t, "attribution:") {
			q.attribution = strings.TrimSpace(strings.TrimPrefix(t, "attribution:"))
			continue
		}
		lines = append(lines, line)
	}
	q.content = strings.TrimSpace(strings.Join(lines, "\n"))
	return q
}
