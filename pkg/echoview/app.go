// Package echoview binds the render adapter to an echo application. It carries
// a small key based service container alongside the echo instance so callers
// can look the renderer up by name the same way they look up settings.
package echoview

import (
	"sort"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-pugview/pkg/options"
)

// Container keys.
const (
	KeyRenderer      = "renderer"
	KeyTemplatesPath = "templates.path"
)

// App couples an echo instance with the service container its handlers read.
type App struct {
	*echo.Echo
	Container *Container
}

// NewApp creates an echo application and seeds the container with settings.
func NewApp(settings *options.Set) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	container := NewContainer()
	settings.Each(func(name string, value any) {
		container.Set(name, value)
	})

	return &App{Echo: e, Container: container}
}

// Container is a concurrency safe key/value registry of services and settings.
type Container struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (c *Container) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	return value, ok
}

// Set stores value under key, replacing any previous value.
func (c *Container) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has reports whether key is registered.
func (c *Container) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Keys returns the registered keys sorted alphabetically.
func (c *Container) Keys() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
