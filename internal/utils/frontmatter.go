package utils

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ArticleMetadata is the YAML frontmatter accepted on imported articles
type ArticleMetadata struct {
	Title   string `yaml:"title"`
	Section string `yaml:"section"`
	Slug    string `yaml:"slug"`
}

// ParseFrontmatter splits an optional YAML frontmatter block from the body.
// Expected format:
//
//	---
//	title: Harbour reopens
//	section: Local
//	---
//	Body text...
//
// A file without a leading "---" line has no metadata; the whole content
// is the body.
func ParseFrontmatter(content []byte) (*ArticleMetadata, string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return &ArticleMetadata{}, string(content), nil
	}

	lines := bytes.Split(content, []byte("\n"))
	closingDelim := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closingDelim = i
			break
		}
	}
	if closingDelim == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	var meta ArticleMetadata
	yamlContent := bytes.Join(lines[1:closingDelim], []byte("\n"))
	if err := yaml.Unmarshal(yamlContent, &meta); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	body := bytes.Join(lines[closingDelim+1:], []byte("\n"))
	return &meta, string(bytes.TrimLeft(body, "\r\n")), nil
}
