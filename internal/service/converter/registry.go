package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	articleSvc "broadsheet/internal/domain/services/article"
)

// Registry routes uploaded files to a converter by extension.
//
// Thread-safe for concurrent access.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]articleSvc.ContentConverter // key: lower-case extension with dot
}

// NewRegistry creates a registry with the text and HTML converters
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[string]articleSvc.ContentConverter)}
	r.Register(NewTextConverter())
	r.Register(NewHTMLConverter())
	return r
}

// Register associates a converter with its extensions. Extensions are
// normalized to lower case with a leading dot.
func (r *Registry) Register(c articleSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range c.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = c
	}
}

// lookup returns the converter for filename, or nil
func (r *Registry) lookup(filename string) articleSvc.ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[strings.ToLower(filepath.Ext(filename))]
}

// Supports reports whether a converter is registered for filename
func (r *Registry) Supports(filename string) bool {
	return r.lookup(filename) != nil
}

// Convert picks the converter for filename and runs it
func (r *Registry) Convert(ctx context.Context, filename string, content []byte) (string, error) {
	c := r.lookup(filename)
	if c == nil {
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	return c.Convert(ctx, content)
}
