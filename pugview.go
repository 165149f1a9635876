// Package pugview re-exports the render adapter and its echo binding so
// applications can wire template rendering from a single import.
package pugview

import (
	"github.com/goliatone/go-pugview/pkg/echoview"
	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/options"
	"github.com/goliatone/go-pugview/pkg/render"
)

// Renderer aliases render.Renderer.
type Renderer = render.Renderer

// Option aliases render.Option for configuring construction.
type Option = render.Option

// Options aliases the ordered option set engines are configured with.
type Options = options.Set

// App aliases echoview.App, the echo instance plus its service container.
type App = echoview.App

// Engine aliases engine.Engine.
type Engine = engine.Engine

// Sentinel errors surfaced by Render and Fetch.
var (
	ErrTemplateNotFound  = engine.ErrTemplateNotFound
	ErrInvalidArgument   = engine.ErrInvalidArgument
	ErrUnsupportedEngine = engine.ErrUnsupportedEngine
)

// Re-exported construction options.
var (
	WithLogger   = render.WithLogger
	WithRegistry = render.WithRegistry
	WithEngine   = render.WithEngine
)

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return options.New()
}

// New builds a Renderer for templatePath. See render.New.
func New(templatePath string, opts *Options, attributes map[string]any, configure ...Option) (*Renderer, error) {
	return render.New(templatePath, opts, attributes, configure...)
}

// NewFromOptions builds a Renderer reading the template path from the
// "templates.path" option.
func NewFromOptions(opts *Options, attributes map[string]any, configure ...Option) (*Renderer, error) {
	return render.NewFromOptions(opts, attributes, configure...)
}

// NewApp creates an echo application seeded with settings.
func NewApp(settings *Options) *App {
	return echoview.NewApp(settings)
}

// Create builds a renderer and registers it with app. See echoview.Create.
func Create(app *App, templatePath string, opts *Options, attributes map[string]any, configure ...Option) (*App, *Renderer, error) {
	return echoview.Create(app, templatePath, opts, attributes, configure...)
}
