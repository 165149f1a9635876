package render

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-pugview/pkg/engine"
)

// Option configures a Renderer before construction.
type Option func(*config)

type config struct {
	logger   *zap.Logger
	registry *engine.Registry
	engine   engine.Engine
}

// WithLogger sets the logger used for engine selection and fetch tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRegistry resolves the "renderer" option against reg instead of the
// default registry.
func WithRegistry(reg *engine.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithEngine injects a prebuilt engine handle; the "renderer" option is then
// ignored.
func WithEngine(eng engine.Engine) Option {
	return func(cfg *config) {
		cfg.engine = eng
	}
}

func newConfig(configure []Option) *config {
	cfg := &config{}
	for _, opt := range configure {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	return cfg
}
