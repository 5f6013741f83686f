package main

import (
	"fmt"
	"io"
	"os"

	"broadsheet/internal/config"
	"broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/service/blockdoc"
)

// readInput reads FILE, or standard input for "-"
func readInput(name string, stdin io.Reader) (string, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, config.MaxArticleBodyLength+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > config.MaxArticleBodyLength {
		return "", fmt.Errorf("%s exceeds %d bytes", name, config.MaxArticleBodyLength)
	}
	return string(data), nil
}

// newParser builds a parser with random block ids
func newParser() articleSvc.BlockParser {
	return blockdoc.NewParser(article.NewSequenceIDGenerator(nil))
}

// displayName is what reports call the input
func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}
