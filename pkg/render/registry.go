package render

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/engine/ace"
	"github.com/goliatone/go-pugview/pkg/engine/jade"
	"github.com/goliatone/go-pugview/pkg/engine/pongo"
	"github.com/goliatone/go-pugview/pkg/options"
)

// DefaultEngine is used when the "renderer" option is absent.
const DefaultEngine = jade.Name

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *engine.Registry
)

// DefaultRegistry returns the process-wide registry holding the bundled
// engines. Custom engines registered here become selectable by name.
func DefaultRegistry() *engine.Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry returns a fresh registry holding the bundled engines.
func NewRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.MustRegister(jade.Name, jade.Factory)
	reg.MustRegister(ace.Name, ace.Factory)
	reg.MustRegister(pongo.Name, pongo.Factory)
	return reg
}

func resolveFactory(reg *engine.Registry, opts *options.Set) (engine.Factory, string, error) {
	value, ok := opts.Lookup(OptionRenderer)
	if !ok || value == nil {
		factory, err := reg.Get(DefaultEngine)
		return factory, DefaultEngine, err
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			factory, err := reg.Get(DefaultEngine)
			return factory, DefaultEngine, err
		}
		factory, err := reg.Get(v)
		if err != nil {
			return nil, v, fmt.Errorf("render: %w", err)
		}
		return factory, v, nil
	case engine.Factory:
		return v, fmt.Sprintf("%T", v), nil
	case func(*options.Set) (engine.Engine, error):
		return engine.Factory(v), fmt.Sprintf("%T", v), nil
	default:
		return nil, "", fmt.Errorf("render: option %q must be an engine name or factory, got %T: %w", OptionRenderer, value, engine.ErrInvalidArgument)
	}
}
