package echoview

import (
	"fmt"

	"github.com/goliatone/go-pugview/pkg/options"
	"github.com/goliatone/go-pugview/pkg/render"
)

// Create builds a renderer and registers it with app, both under the
// container's "renderer" key and as the echo renderer used by c.Render. A nil
// app is replaced by NewApp(nil), and a partially built one gets a fresh echo
// instance or container where missing. An empty templatePath falls back to the
// container's "templates.path" setting.
func Create(app *App, templatePath string, opts *options.Set, attributes map[string]any, configure ...render.Option) (*App, *render.Renderer, error) {
	if app == nil {
		app = NewApp(nil)
	}
	if app.Echo == nil {
		app.Echo = NewApp(nil).Echo
	}
	if app.Container == nil {
		app.Container = NewContainer()
	}

	if templatePath == "" {
		if value, ok := app.Container.Get(KeyTemplatesPath); ok {
			path, isString := value.(string)
			if !isString {
				return nil, nil, fmt.Errorf("echoview: container %q must be a string, got %T", KeyTemplatesPath, value)
			}
			templatePath = path
		}
	}

	r, err := render.New(templatePath, opts, attributes, configure...)
	if err != nil {
		return nil, nil, fmt.Errorf("echoview: create renderer: %w", err)
	}

	app.Container.Set(KeyRenderer, r)
	app.Echo.Renderer = NewRenderer(r)

	return app, r, nil
}

// FromContainer returns the renderer registered by Create.
func FromContainer(c *Container) (*render.Renderer, bool) {
	value, ok := c.Get(KeyRenderer)
	if !ok {
		return nil, false
	}
	r, ok := value.(*render.Renderer)
	return r, ok
}
