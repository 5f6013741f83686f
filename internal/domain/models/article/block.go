package article

import "fmt"

// BlockType is the discriminator for the block union
type BlockType string

// Block type constants
const (
	BlockTypeParagraph  BlockType = "paragraph"
	BlockTypeSubheading BlockType = "subheading"
	BlockTypeQuote      BlockType = "quote"
	BlockTypeImage      BlockType = "image"
	BlockTypeVideo      BlockType = "video"
)

// AllBlockTypes lists every variant of the union, in declaration order.
var AllBlockTypes = []BlockType{
	BlockTypeParagraph,
	BlockTypeSubheading,
	BlockTypeQuote,
	BlockTypeImage,
	BlockTypeVideo,
}

// Block is one typed unit of article content.
//
// The set of implementations is closed: only the five variant structs in
// this file satisfy it. Code that switches over blocks should panic in its
// default branch (see UnknownBlockPanic) so a missing case fails loudly.
type Block interface {
	// BlockID returns the opaque id, stable across edits
	BlockID() string
	// BlockOrder returns the zero-based position last assigned by ReorderBlocks
	BlockOrder() int
	// Type returns the union discriminator
	Type() BlockType

	setOrder(order int)
	setID(id string)
	sealed()
}

// BlockBase holds the fields shared by every variant
type BlockBase struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

func (b *BlockBase) BlockID() string    { return b.ID }
func (b *BlockBase) BlockOrder() int    { return b.Order }
func (b *BlockBase) setOrder(order int) { b.Order = order }
func (b *BlockBase) setID(id string)    { b.ID = id }
func (b *BlockBase) sealed()            {}

// Paragraph is free text, the default unit
type Paragraph struct {
	BlockBase
	Content string `json:"content"`
}

// Subheading is a section break within the body
type Subheading struct {
	BlockBase
	Content string `json:"content"`
}

// Quote is a pull-quote. Attribution is optional.
type Quote struct {
	BlockBase
	Content     string `json:"content"`
	Attribution string `json:"attribution,omitempty"`
}

// Image is an inline image with required accessibility metadata
type Image struct {
	BlockBase
	Src         string      `json:"src"`
	Alt         string      `json:"alt"`
	Caption     string      `json:"caption,omitempty"`
	Credit      string      `json:"credit,omitempty"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	AspectRatio AspectRatio `json:"aspectRatio"`
	Srcset      string      `json:"srcset,omitempty"`
}

// Video is an embedded provider video
type Video struct {
	BlockBase
	Provider  VideoProvider `json:"provider"`
	VideoID   string        `json:"videoId"`
	EmbedURL  string        `json:"embedUrl"`
	PosterURL string        `json:"posterUrl"`
	Caption   string        `json:"caption,omitempty"`
	Duration  int           `json:"duration,omitempty"` // seconds, 0 = unknown
	Title     string        `json:"title,omitempty"`
}

func (*Paragraph) Type() BlockType  { return BlockTypeParagraph }
func (*Subheading) Type() BlockType { return BlockTypeSubheading }
func (*Quote) Type() BlockType      { return BlockTypeQuote }
func (*Image) Type() BlockType      { return BlockTypeImage }
func (*Video) Type() BlockType      { return BlockTypeVideo }

// VideoProvider identifies the hosting service for a video
type VideoProvider string

const (
	VideoProviderYouTube VideoProvider = "youtube"
	VideoProviderVimeo   VideoProvider = "vimeo"
	VideoProviderCDN     VideoProvider = "cdn"
)

// IsValid reports whether p is one of the supported providers
func (p VideoProvider) IsValid() bool {
	switch p {
	case VideoProviderYouTube, VideoProviderVimeo, VideoProviderCDN:
		return true
	}
	return false
}

// IsTextBlock returns true for paragraph, subheading and quote blocks
func IsTextBlock(b Block) bool {
	switch b.(type) {
	case *Paragraph, *Subheading, *Quote:
		return true
	}
	return false
}

// IsMediaBlock returns true for image and video blocks
func IsMediaBlock(b Block) bool {
	return IsImageBlock(b) || IsVideoBlock(b)
}

// IsImageBlock returns true if b is an image
func IsImageBlock(b Block) bool {
	_, ok := b.(*Image)
	return ok
}

// IsVideoBlock returns true if b is a video
func IsVideoBlock(b Block) bool {
	_, ok := b.(*Video)
	return ok
}

// CountBlocks counts the blocks matching pred
func CountBlocks(blocks []Block, pred func(Block) bool) int {
	n := 0
	for _, b := range blocks {
		if pred(b) {
			n++
		}
	}
	return n
}

// UnknownBlockPanic is called from the default branch of exhaustive type switches.
func UnknownBlockPanic(b Block) {
	panic(fmt.Sprintf("article: unhandled block variant %T", b))
}
