package policy

import (
	"fmt"

	"broadsheet/internal/domain/models/article"

	"gopkg.in/yaml.v3"
)

// Name identifies a registered policy
type Name string

const (
	NameStrict     Name = "strict"
	NameCountsOnly Name = "counts_only"
)

// Policy is the single source of truth for block-structure rules. The
// publish-time validator and the insertion-time guard must be handed the
// same value.
type Policy struct {
	Name        Name   `yaml:"-" json:"name"`
	Description string `yaml:"description" json:"description"`

	// MaxImages is a hard ceiling
	MaxImages int `yaml:"max_images" json:"max_images"`

	// VideoSoftLimit only produces a warning when exceeded
	VideoSoftLimit int `yaml:"video_soft_limit" json:"video_soft_limit"`

	// EnforceMediaPlacement forbids media as first/last block and two
	// media blocks in a row
	EnforceMediaPlacement bool `yaml:"enforce_media_placement" json:"enforce_media_placement"`
}

// Strict is the canonical policy
var Strict = Policy{
	Name:                  NameStrict,
	Description:           "Counts, required fields and media placement",
	MaxImages:             3,
	VideoSoftLimit:        1,
	EnforceMediaPlacement: true,
}

// CountsOnly drops the placement rules and keeps counts and field checks
var CountsOnly = Policy{
	Name:                  NameCountsOnly,
	Description:           "Counts and required fields only",
	MaxImages:             3,
	VideoSoftLimit:        1,
	EnforceMediaPlacement: false,
}

// InsertionDecision is the answer of the editor insertion guard
type InsertionDecision struct {
	Allowed bool                        `json:"allowed"`
	Rule    article.ValidationErrorType `json:"rule,omitempty"`
	Reason  string                      `json:"reason,omitempty"`
	Warning string                      `json:"warning,omitempty"`
}

// CanInsert reports whether a block of type t may be inserted at index
// (0..len(blocks)) without breaking this policy. Text blocks are always
// allowed.
func (p Policy) CanInsert(blocks []article.Block, index int, t article.BlockType) InsertionDecision {
	if t != article.BlockTypeImage && t != article.BlockTypeVideo {
		return InsertionDecision{Allowed: true}
	}
	if index < 0 || index > len(blocks) {
		return InsertionDecision{Reason: fmt.Sprintf("index %d out of range [0, %d]", index, len(blocks))}
	}

	if t == article.BlockTypeImage {
		if n := article.CountBlocks(blocks, article.IsImageBlock); n >= p.MaxImages {
			return InsertionDecision{
				Rule:   article.ErrImageLimitExceeded,
				Reason: fmt.Sprintf("article already has %d images (maximum %d)", n, p.MaxImages),
			}
		}
	}

	if p.EnforceMediaPlacement {
		switch {
		case index == 0:
			return InsertionDecision{
				Rule:   article.ErrStartsWithMedia,
				Reason: "media cannot be the first block of an article",
			}
		case index == len(blocks):
			return InsertionDecision{
				Rule:   article.ErrEndsWithMedia,
				Reason: "media cannot be the last block of an article",
			}
		case article.IsMediaBlock(blocks[index-1]) || article.IsMediaBlock(blocks[index]):
			return InsertionDecision{
				Rule:   article.ErrConsecutiveMedia,
				Reason: "media must have a text block immediately before and after it",
			}
		}
	}

	decision := InsertionDecision{Allowed: true}
	if t == article.BlockTypeVideo {
		if n := article.CountBlocks(blocks, article.IsVideoBlock); n >= p.VideoSoftLimit {
			decision.Warning = fmt.Sprintf("article will have %d videos (recommended maximum %d)", n+1, p.VideoSoftLimit)
		}
	}
	return decision
}

// policyFile is the on-disk shape of config/policies.yaml
type policyFile struct {
	Default  Name
	Policies []Policy
}

// UnmarshalYAML keeps policies in file order and stamps each with its key
func (f *policyFile) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Default  Name              `yaml:"default"`
		Policies map[string]Policy `yaml:"policies"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	f.Default = raw.Default

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != "policies" {
			continue
		}
		policiesNode := node.Content[i+1]
		for j := 0; j < len(policiesNode.Content); j += 2 {
			key := policiesNode.Content[j].Value
			if p, ok := raw.Policies[key]; ok {
				p.Name = Name(key)
				f.Policies = append(f.Policies, p)
			}
		}
		break
	}
	return nil
}
