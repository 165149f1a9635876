// Package pongo renders Django-syntax templates through flosch/pongo2. The
// template set is only built by Prime, so callers must prime the engine once
// before rendering files.
package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/options"
)

// Name is the registry name of this engine.
const Name = "pongo2"

const defaultExtension = ".html"

// Engine renders files through a pongo2 template set.
type Engine struct {
	*engine.Base

	mu        sync.RWMutex
	primed    bool
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

var (
	_ engine.Engine       = (*Engine)(nil)
	_ engine.FileRenderer = (*Engine)(nil)
	_ engine.Primer       = (*Engine)(nil)
)

// New constructs an unprimed Engine from opts.
func New(opts *options.Set) (*Engine, error) {
	registerDefaultFilters()
	return &Engine{Base: engine.NewBase(opts)}, nil
}

// Factory adapts New to engine.Factory.
func Factory(opts *options.Set) (engine.Engine, error) {
	return New(opts)
}

// SetOption updates an option. Changing the base directory discards the
// template set; it is rebuilt on the next render.
func (e *Engine) SetOption(name string, value any) {
	e.Base.SetOption(name, value)
	switch name {
	case engine.OptionBaseDir, engine.OptionBasedir, engine.OptionPath:
		e.mu.Lock()
		e.set = nil
		e.templates = make(map[string]*pongo2.Template)
		e.mu.Unlock()
	}
}

// Prime builds the template set and compiles an empty template to initialise
// it. Calling Prime again is harmless.
func (e *Engine) Prime() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.set == nil {
		set, err := e.newSet()
		if err != nil {
			return err
		}
		e.set = set
	}
	if e.templates == nil {
		e.templates = make(map[string]*pongo2.Template)
	}
	if _, err := e.set.FromString(""); err != nil {
		return fmt.Errorf("pongo: prime: %w", err)
	}
	e.primed = true
	return nil
}

// RenderFile renders the named template with the shared variables and data.
func (e *Engine) RenderFile(name string, data map[string]any) (string, error) {
	if err := engine.CheckData(data); err != nil {
		return "", err
	}

	tmpl, err := e.getTemplate(e.resolve(name))
	if err != nil {
		return "", err
	}

	ctx, err := convertMapToContext(e.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: convert data: %w", err)
	}

	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", name, err)
	}
	return out, nil
}

func (e *Engine) resolve(name string) string {
	rel := strings.TrimLeft(filepath.ToSlash(strings.TrimSpace(name)), "/")
	if filepath.Ext(rel) == "" {
		ext := e.StringOption(engine.OptionExtension, defaultExtension)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		rel += ext
	}
	return rel
}

func (e *Engine) getTemplate(rel string) (*pongo2.Template, error) {
	useCache := e.BoolOption(engine.OptionCache, true)

	e.mu.RLock()
	if !e.primed {
		e.mu.RUnlock()
		return nil, engine.ErrNotPrimed
	}
	if tmpl, ok := e.templates[rel]; ok && useCache {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[rel]; ok && useCache {
		return tmpl, nil
	}
	if e.set == nil {
		set, err := e.newSet()
		if err != nil {
			return nil, err
		}
		e.set = set
	}

	abs := filepath.Join(e.BaseDir(), filepath.FromSlash(rel))
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, engine.NotFound(abs, err)
		}
		return nil, fmt.Errorf("pongo: stat %q: %w", abs, err)
	}

	tmpl, err := e.set.FromFile(rel)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", rel, err)
	}
	if useCache {
		e.templates[rel] = tmpl
	}
	return tmpl, nil
}

func (e *Engine) newSet() (*pongo2.TemplateSet, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(e.BaseDir())
	if err != nil {
		return nil, fmt.Errorf("pongo: create local loader: %w", err)
	}
	set := pongo2.NewSet("pugview", loader)
	set.Debug = e.BoolOption(engine.OptionDebug, false)
	return set, nil
}

func convertMapToContext(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

// convertValue normalises nested structs to maps so pongo2 can resolve
// dotted lookups on them. Functions and scalars pass through.
func convertValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case map[string]any:
		ctx, err := convertMapToContext(v)
		return map[string]any(ctx), err
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := convertValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		if m, err := engine.ToMap(v); err == nil {
			return m, nil
		}
		return v, nil
	}
}

var filtersOnce sync.Once

func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("sanitize") {
			_ = pongo2.RegisterFilter("sanitize", filterSanitize)
		}
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
	})
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(engine.Sanitize(in.String())), nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
