package article

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator stamps new block ids
type IDGenerator interface {
	NewID(t BlockType) string
}

// idPrefixes maps each variant to its short id prefix
var idPrefixes = map[BlockType]string{
	BlockTypeParagraph:  "para",
	BlockTypeSubheading: "sub",
	BlockTypeQuote:      "quote",
	BlockTypeImage:      "img",
	BlockTypeVideo:      "vid",
}

// IDPrefix returns the id prefix used for blocks of type t
func IDPrefix(t BlockType) string {
	if p, ok := idPrefixes[t]; ok {
		return p
	}
	return "blk"
}

// SequenceIDGenerator produces ids of the form <prefix>-<counter>-<suffix>.
// The counter is monotonic per generator (base 36) and the suffix is the
// first 8 hex digits of a random UUID drawn from the injected reader.
// Safe for concurrent use.
type SequenceIDGenerator struct {
	counter atomic.Uint64
	mu      sync.Mutex
	random  io.Reader
}

// NewSequenceIDGenerator creates a generator reading randomness from r.
// A nil reader falls back to crypto/rand.
func NewSequenceIDGenerator(r io.Reader) *SequenceIDGenerator {
	if r == nil {
		r = rand.Reader
	}
	return &SequenceIDGenerator{random: r}
}

// NewID returns a fresh id for a block of type t
func (g *SequenceIDGenerator) NewID(t BlockType) string {
	n := g.counter.Add(1)

	g.mu.Lock()
	u, err := uuid.NewRandomFromReader(g.random)
	g.mu.Unlock()

	suffix := "00000000"
	if err == nil {
		suffix = strings.ReplaceAll(u.String(), "-", "")[:8]
	}
	return fmt.Sprintf("%s-%s-%s", IDPrefix(t), strconv.FormatUint(n, 36), suffix)
}

// NewParagraph creates a paragraph with a fresh id
func NewParagraph(ids IDGenerator, content string) *Paragraph {
	return &Paragraph{BlockBase: BlockBase{ID: ids.NewID(BlockTypeParagraph)}, Content: content}
}

// NewSubheading creates a subheading with a fresh id
func NewSubheading(ids IDGenerator, content string) *Subheading {
	return &Subheading{BlockBase: BlockBase{ID: ids.NewID(BlockTypeSubheading)}, Content: content}
}

// NewQuote creates a quote with a fresh id
func NewQuote(ids IDGenerator, content, attribution string) *Quote {
	return &Quote{
		BlockBase:   BlockBase{ID: ids.NewID(BlockTypeQuote)},
		Content:     content,
		Attribution: attribution,
	}
}

// NewImage stamps a fresh id onto img and returns it
func NewImage(ids IDGenerator, img Image) *Image {
	img.ID = ids.NewID(BlockTypeImage)
	return &img
}

// NewVideo stamps a fresh id onto v and returns it
func NewVideo(ids IDGenerator, v Video) *Video {
	v.ID = ids.NewID(BlockTypeVideo)
	return &v
}

// EnsureIDs stamps a fresh id on every block that has none, e.g. blocks
// created client-side in the editor
func EnsureIDs(ids IDGenerator, blocks []Block) {
	for _, b := range blocks {
		if b.BlockID() == "" {
			b.setID(ids.NewID(b.Type()))
		}
	}
}
