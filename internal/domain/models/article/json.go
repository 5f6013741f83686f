package article

import (
	"encoding/json"
	"fmt"
)

// Blocks is a block list with a type-discriminated JSON encoding:
//
//	[{"type":"paragraph","id":"para-1-ab12cd34","order":0,"content":"..."}, ...]
type Blocks []Block

// MarshalJSON encodes each block with its "type" field
func (bs Blocks) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(bs))
	for _, b := range bs {
		raw, err := MarshalBlock(b)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a list of type-discriminated blocks
func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Blocks, 0, len(raws))
	for i, raw := range raws {
		b, err := UnmarshalBlock(raw)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		out = append(out, b)
	}
	*bs = out
	return nil
}

// MarshalBlock encodes a single block with its "type" field
func MarshalBlock(b Block) ([]byte, error) {
	switch v := b.(type) {
	case *Paragraph:
		return json.Marshal(struct {
			Type BlockType `json:"type"`
			*Paragraph
		}{v.Type(), v})
	case *Subheading:
		return json.Marshal(struct {
			Type BlockType `json:"type"`
			*Subheading
		}{v.Type(), v})
	case *Quote:
		return json.Marshal(struct {
			Type BlockType `json:"type"`
			*Quote
		}{v.Type(), v})
	case *Image:
		return json.Marshal(struct {
			Type BlockType `json:"type"`
			*Image
		}{v.Type(), v})
	case *Video:
		return json.Marshal(struct {
			Type BlockType `json:"type"`
			*Video
		}{v.Type(), v})
	default:
		UnknownBlockPanic(b)
		return nil, nil
	}
}

// UnmarshalBlock decodes a single type-discriminated block
func UnmarshalBlock(data []byte) (Block, error) {
	var head struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var b Block
	switch head.Type {
	case BlockTypeParagraph:
		b = &Paragraph{}
	case BlockTypeSubheading:
		b = &Subheading{}
	case BlockTypeQuote:
		b = &Quote{}
	case BlockTypeImage:
		b = &Image{}
	case BlockTypeVideo:
		b = &Video{}
	case "":
		return nil, fmt.Errorf("missing block type")
	default:
		return nil, fmt.Errorf("unknown block type: %s", head.Type)
	}

	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("invalid %s block: %w", head.Type, err)
	}
	return b, nil
}
