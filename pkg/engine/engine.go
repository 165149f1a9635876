// Package engine defines the engine-handle contract the renderer delegates to,
// along with the option store, registry and helpers shared by the bundled
// engines.
package engine

import "github.com/goliatone/go-pugview/pkg/options"

// Option names understood across engines.
const (
	OptionPath            = "path"
	OptionPaths           = "paths"
	OptionBasedir         = "basedir"
	OptionBaseDir         = "base_dir"
	OptionGlobals         = "globals"
	OptionSharedVariables = "shared_variables"
	OptionExtension       = "extension"
	OptionCache           = "cache"
	OptionDebug           = "debug"
)

// Engine is the minimal engine handle: an option store plus a variable
// sharing primitive. Rendering is exposed through SourceRenderer or
// FileRenderer.
type Engine interface {
	// Lookup returns the option value and whether it is set.
	Lookup(name string) (any, bool)
	SetOption(name string, value any)
	Share(vars map[string]any)
	ShareValue(key string, value any)
}

// OptionChecker reports option presence without reading the value.
type OptionChecker interface {
	HasOption(name string) bool
}

// CustomOptionSetter is the renamed option setter some engines expose. When
// present it takes precedence over Engine.SetOption.
type CustomOptionSetter interface {
	SetCustomOption(name string, value any)
}

// SourceRenderer renders template source text. path identifies the source in
// error messages and caches.
type SourceRenderer interface {
	Render(source, path string, data map[string]any) (string, error)
}

// FileRenderer resolves and renders a template by name.
type FileRenderer interface {
	RenderFile(name string, data map[string]any) (string, error)
}

// Primer is implemented by engines that must initialise their template
// registry once before the first RenderFile call.
type Primer interface {
	Prime() error
}

// Factory builds an engine handle from options.
type Factory func(opts *options.Set) (Engine, error)
