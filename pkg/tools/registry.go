package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
	"github.com/isitobservable/opensearch-query-mcp/pkg/version"
)

// HandlerFunc executes one tool invocation. The returned value is either the
// upstream payload or the uniform []types.TextContent error payload; the
// error return is reserved for cancellation, which must propagate
// untranslated.
type HandlerFunc func(ctx context.Context, raw json.RawMessage) (interface{}, error)

// Descriptor is the registry entry for one tool.
type Descriptor struct {
	Name        string
	DisplayName string
	Description string
	InputSchema map[string]interface{}
	Handler     HandlerFunc

	// Inclusive version bounds; empty means unbounded on that side.
	MinVersion string
	MaxVersion string

	// HTTP verbs the underlying call may use. Documentation metadata,
	// not enforced routing.
	HTTPMethods []string
}

// Registry holds tool descriptors in insertion order. It is populated once
// at startup; the mutex keeps dynamic registration possible without making
// read paths unsafe.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Descriptor),
	}
}

// Register adds a descriptor. A duplicate name is rejected with
// DuplicateToolError and the existing entry is left untouched. Descriptors
// with both bounds set must satisfy min <= max.
func (r *Registry) Register(d Descriptor) error {
	if d.MinVersion != "" && d.MaxVersion != "" {
		cmp, err := version.Compare(d.MinVersion, d.MaxVersion)
		if err != nil {
			return err
		}
		if cmp > 0 {
			return fmt.Errorf("tool %q: min_version %s exceeds max_version %s", d.Name, d.MinVersion, d.MaxVersion)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[d.Name]; exists {
		return &types.DuplicateToolError{Name: d.Name}
	}
	r.entries[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Get retrieves a descriptor by name.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[name]
	if !ok {
		return Descriptor{}, &types.UnknownToolError{Name: name}
	}
	return d, nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}
