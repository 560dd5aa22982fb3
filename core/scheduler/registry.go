package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ErrUnknownStrategy is returned when no grouper is registered under a name.
var ErrUnknownStrategy = errors.New("unknown grouping strategy")

// ModuleConfig names a grouping strategy and carries its raw settings.
type ModuleConfig struct {
	Type string         `json:"type" yaml:"type"`
	Conf map[string]any `json:"conf" yaml:"conf"`
}

// GrouperFactory builds a Grouper from raw settings.
type GrouperFactory func(conf map[string]any) (Grouper, error)

// Registry maps strategy names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]GrouperFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]GrouperFactory)}
}

// DefaultRegistry returns a registry holding the built-in strategies:
// "theme", "mixed" (conf: seed) and "sequential".
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("theme", func(map[string]any) (Grouper, error) { return ThemeGrouper{}, nil })
	_ = r.Register("sequential", func(map[string]any) (Grouper, error) { return SequentialGrouper{}, nil })
	_ = r.Register("mixed", func(conf map[string]any) (Grouper, error) {
		g := MixedGrouper{Seed: 1}
		if err := decode(conf, &g); err != nil {
			return nil, fmt.Errorf("mixed grouping conf: %w", err)
		}
		return g, nil
	})
	return r
}

// Register adds a factory. Names must be unique.
func (r *Registry) Register(name string, f GrouperFactory) error {
	if f == nil {
		return fmt.Errorf("grouper factory nil for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("grouper already registered for %s", name)
	}
	r.factories[name] = f
	return nil
}

// Create instantiates the strategy named by cfg.Type. An empty type selects
// the theme-cohesive strategy.
func (r *Registry) Create(cfg ModuleConfig) (Grouper, error) {
	name := cfg.Type
	if name == "" {
		name = "theme"
	}
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownStrategy, name, r.Names())
	}
	return f(cfg.Conf)
}

// Names lists registered strategies in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
