package classifier

import (
	"fmt"
	"sort"

	"StockSentiment/internal/config"
	"StockSentiment/internal/ports"
)

// Factory builds a classifier backend from configuration. It may be expensive
// (model load, client setup) and is invoked at most once per Lazy.
type Factory func(cfg config.Config) (ports.SentimentClassifier, error)

// Registry keeps a mapping from backend names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces a backend factory.
func (r *Registry) Register(name string, factory Factory) {
	if r.factories == nil {
		r.factories = map[string]Factory{}
	}
	r.factories[name] = factory
}

// Resolve returns a factory by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Factory, error) {
	if factory, ok := r.factories[name]; ok {
		return factory, nil
	}
	return nil, fmt.Errorf("classifier backend %q is not registered (known: %v)", name, r.Names())
}

// Names lists registered backends in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
