package policy

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the editorial policies known to the service
type Registry struct {
	policies    map[Name]Policy
	order       []Name
	defaultName Name
	mu          sync.RWMutex
}

// NewRegistry creates a registry from the embedded policies file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/policies.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read policies.yaml: %w", err)
	}
	return NewRegistryFromYAML(data)
}

// NewRegistryFromYAML creates a registry from a policies document
func NewRegistryFromYAML(data []byte) (*Registry, error) {
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policies: %w", err)
	}
	if len(file.Policies) == 0 {
		return nil, fmt.Errorf("no policies defined")
	}

	r := &Registry{policies: make(map[Name]Policy)}
	for _, p := range file.Policies {
		if p.MaxImages <= 0 {
			return nil, fmt.Errorf("policy %s: max_images must be positive", p.Name)
		}
		if p.VideoSoftLimit <= 0 {
			return nil, fmt.Errorf("policy %s: video_soft_limit must be positive", p.Name)
		}
		r.policies[p.Name] = p
		r.order = append(r.order, p.Name)
	}

	r.defaultName = file.Default
	if r.defaultName == "" {
		r.defaultName = r.order[0]
	}
	if _, ok := r.policies[r.defaultName]; !ok {
		return nil, fmt.Errorf("default policy %s is not defined", r.defaultName)
	}
	return r, nil
}

// Get returns the named policy
func (r *Registry) Get(name Name) (Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("unknown editorial policy: %s", name)
	}
	return p, nil
}

// Resolve returns the named policy, or the default one when name is empty
func (r *Registry) Resolve(name string) (Policy, error) {
	if name == "" {
		return r.Default(), nil
	}
	return r.Get(Name(name))
}

// Default returns the registry's default policy
func (r *Registry) Default() Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policies[r.defaultName]
}

// List returns all policies in file order
func (r *Registry) List() []Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Policy, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.policies[name])
	}
	return out
}
