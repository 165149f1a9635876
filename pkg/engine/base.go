package engine

import (
	"maps"
	"strings"
	"sync"

	"github.com/goliatone/go-pugview/pkg/options"
)

// Base is the option and shared-variable store bundled engines embed. Shared
// variables live under the shared_variables option so they can be read back
// like any other option.
type Base struct {
	mu      sync.RWMutex
	options *options.Set
}

// NewBase copies opts into a new store.
func NewBase(opts *options.Set) *Base {
	return &Base{options: opts.Clone()}
}

// Lookup implements Engine.
func (b *Base) Lookup(name string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.options.Lookup(name)
}

// SetOption implements Engine.
func (b *Base) SetOption(name string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.options.Set(name, value)
}

// Share merges vars into the shared variables.
func (b *Base) Share(vars map[string]any) {
	if len(vars) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	shared := b.sharedLocked()
	maps.Copy(shared, vars)
	b.options.Set(OptionSharedVariables, shared)
}

// ShareValue shares a single variable.
func (b *Base) ShareValue(key string, value any) {
	b.Share(map[string]any{key: value})
}

// Options returns a snapshot of the current options.
func (b *Base) Options() *options.Set {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.options.Clone()
}

// StringOption returns a string option or def when unset or not a string.
func (b *Base) StringOption(name, def string) string {
	value, ok := b.Lookup(name)
	if !ok {
		return def
	}
	if s, ok := value.(string); ok {
		return s
	}
	return def
}

// BoolOption returns a bool option or def when unset or not a bool.
func (b *Base) BoolOption(name string, def bool) bool {
	value, ok := b.Lookup(name)
	if !ok {
		return def
	}
	if v, ok := value.(bool); ok {
		return v
	}
	return def
}

// BaseDir returns the base_dir option, falling back to basedir and path.
func (b *Base) BaseDir() string {
	for _, name := range []string{OptionBaseDir, OptionBasedir, OptionPath} {
		if dir := strings.TrimSpace(b.StringOption(name, "")); dir != "" {
			return dir
		}
	}
	return ""
}

// Context builds the variables visible to a template: globals, then shared
// variables, then data, later sources winning on collision.
func (b *Base) Context(data map[string]any) map[string]any {
	b.mu.RLock()
	globals := AsMap(b.options.Get(OptionGlobals))
	shared := AsMap(b.options.Get(OptionSharedVariables))
	b.mu.RUnlock()

	return Merge(globals, shared, data)
}

func (b *Base) sharedLocked() map[string]any {
	current := AsMap(b.options.Get(OptionSharedVariables))
	out := make(map[string]any, len(current))
	maps.Copy(out, current)
	return out
}

// AsMap returns value as a string keyed map, or nil when it is not one.
func AsMap(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case *options.Set:
		return v.Map()
	default:
		return nil
	}
}
