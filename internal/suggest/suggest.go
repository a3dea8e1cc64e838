// Package suggest provides candidate recipient addresses for dialog fields.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultLimit caps the number of suggestions when a caller passes no limit
const DefaultLimit = 20

// Source filters a collection of records by substring containment on one property
type Source interface {
	Filter(ctx context.Context, entity, property, contains string, limit int) ([]string, error)
}

// Registry resolves named suggestion sources
type Registry struct {
	mu          sync.RWMutex
	sources     map[string]Source
	defaultName string
}

// NewRegistry creates a registry whose empty name resolves to defaultName
func NewRegistry(defaultName string) *Registry {
	return &Registry{
		sources:     make(map[string]Source),
		defaultName: defaultName,
	}
}

// Register adds or replaces a source
func (r *Registry) Register(name string, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = src
}

// Lookup returns the named source; an empty name means the default source
func (r *Registry) Lookup(name string) (Source, bool) {
	if name == "" {
		name = r.defaultName
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[name]
	return src, ok
}

// Names returns the registered source names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Record is a single suggestion candidate keyed by property name
type Record map[string]string

// StaticSource serves suggestions from in-memory records
type StaticSource struct {
	mu       sync.RWMutex
	entities map[string][]Record
}

// NewStaticSource creates an empty static source
func NewStaticSource() *StaticSource {
	return &StaticSource{entities: make(map[string][]Record)}
}

// Add appends records to an entity
func (s *StaticSource) Add(entity string, records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entity] = append(s.entities[entity], records...)
}

// Filter returns the property values containing the given text, ignoring
// case, in record order.
func (s *StaticSource) Filter(ctx context.Context, entity, property, contains string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.entities[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity: %s", entity)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	needle := strings.ToLower(contains)
	var out []string
	for _, rec := range records {
		value, ok := rec[property]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(value), needle) {
			out = append(out, value)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
