package decor

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// Registry maps decorator names to implementations.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	decorators map[string]Decorator
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		decorators: make(map[string]Decorator),
	}
}

// Builtins returns a registry pre-loaded with the built-in decorators.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("solid", Solid{})
	r.Register("dots", Dots{})
	r.Register("gradient", Gradient{})
	r.Register("diagonal", Diagonal{})
	r.Register("crosshatch", Crosshatch{})
	return r
}

// Register adds a decorator under name.
// If a decorator with the same name exists, it is overwritten.
func (r *Registry) Register(name string, d Decorator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decorators[name] = d
}

// Get looks up a decorator by name. An unknown name fails with an
// UNKNOWN_DECORATOR error listing every registered name.
func (r *Registry) Get(name string) (Decorator, error) {
	r.mu.RLock()
	d, ok := r.decorators[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownDecorator,
			"unknown decorator: %q (must be one of: %s)", name, strings.Join(r.Names(), ", "))
	}
	return d, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decorators))
	for name := range r.decorators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply looks up name and applies it to g.
func (r *Registry) Apply(g *grid.Grid, name string, params Params) error {
	d, err := r.Get(name)
	if err != nil {
		return err
	}
	return d.Apply(g, params)
}
