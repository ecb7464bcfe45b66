// Package registry holds the static catalog of content sources.
// The catalog is fixed at process start: either the embedded default list or
// an operator-supplied YAML file with the same layout.
package registry

import (
	_ "embed"
	"fmt"
	"os"

	"drupal-news/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultSources []byte

// file is the on-disk layout of a registry YAML document.
type file struct {
	Sources []entity.Source `yaml:"sources"`
}

// Registry is an immutable, ordered set of sources keyed by id.
type Registry struct {
	sources []entity.Source
	byID    map[string]int
}

// New validates sources and builds a Registry preserving their order.
// Duplicate ids are rejected.
func New(sources []entity.Source) (*Registry, error) {
	r := &Registry{
		sources: make([]entity.Source, 0, len(sources)),
		byID:    make(map[string]int, len(sources)),
	}
	for i := range sources {
		src := sources[i]
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("source #%d: %w", i, err)
		}
		if _, dup := r.byID[src.ID]; dup {
			return nil, fmt.Errorf("duplicate source id %q", src.ID)
		}
		r.byID[src.ID] = len(r.sources)
		r.sources = append(r.sources, src)
	}
	return r, nil
}

// Default returns the embedded catalog.
func Default() (*Registry, error) {
	return Parse(defaultSources)
}

// Parse decodes a registry YAML document.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse sources: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources list is empty")
	}
	return New(f.Sources)
}

// Load reads a registry YAML file from path.
// The path parameter is expected to come from a trusted source (environment or CLI flag).
func Load(path string) (*Registry, error) {
	// #nosec G304 -- path is operator configuration, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	return Parse(data)
}

// FromFileOrDefault loads path when it is non-empty and falls back to the
// embedded catalog otherwise.
func FromFileOrDefault(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// All returns every source in catalog order.
func (r *Registry) All() []entity.Source {
	out := make([]entity.Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Len returns the number of sources.
func (r *Registry) Len() int { return len(r.sources) }

// Get looks up a source by id.
func (r *Registry) Get(id string) (entity.Source, bool) {
	i, ok := r.byID[id]
	if !ok {
		return entity.Source{}, false
	}
	return r.sources[i], true
}

// Resolve returns the sources selected by an optional id filter: the whole
// catalog for "", or the single matching source. An id that matches nothing
// yields entity.ErrUnknownSource.
func (r *Registry) Resolve(id string) ([]entity.Source, error) {
	if id == "" {
		return r.All(), nil
	}
	src, ok := r.Get(id)
	if !ok {
		return nil, entity.ErrUnknownSource
	}
	return []entity.Source{src}, nil
}
