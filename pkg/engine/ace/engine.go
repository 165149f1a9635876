// Package ace renders Ace templates (a Jade/Pug-inspired syntax) through
// github.com/yosssi/ace. The engine renders from source text, so the caller
// reads template files itself.
package ace

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/yosssi/ace"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/options"
)

// Name is the registry name of this engine.
const Name = "ace"

// Engine compiles Ace source on demand.
type Engine struct {
	*engine.Base

	mu       sync.RWMutex
	compiled map[string]compiled
}

type compiled struct {
	source string
	tmpl   *template.Template
}

var (
	_ engine.Engine             = (*Engine)(nil)
	_ engine.SourceRenderer     = (*Engine)(nil)
	_ engine.CustomOptionSetter = (*Engine)(nil)
	_ engine.OptionChecker      = (*Engine)(nil)
)

// New constructs an Engine from opts.
func New(opts *options.Set) (*Engine, error) {
	return &Engine{
		Base:     engine.NewBase(opts),
		compiled: make(map[string]compiled),
	}, nil
}

// Factory adapts New to engine.Factory.
func Factory(opts *options.Set) (engine.Engine, error) {
	return New(opts)
}

// HasOption reports whether name is set.
func (e *Engine) HasOption(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// SetCustomOption stores an option and drops compiled templates so the next
// render picks it up.
func (e *Engine) SetCustomOption(name string, value any) {
	e.Base.SetOption(name, value)
	e.mu.Lock()
	e.compiled = make(map[string]compiled)
	e.mu.Unlock()
}

// Render compiles source (identified by path) and executes it.
func (e *Engine) Render(source, path string, data map[string]any) (string, error) {
	if err := engine.CheckData(data); err != nil {
		return "", err
	}

	tmpl, err := e.compile(source, path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e.Context(data)); err != nil {
		return "", fmt.Errorf("ace: execute %q: %w", path, err)
	}
	return buf.String(), nil
}

func (e *Engine) compile(source, path string) (*template.Template, error) {
	useCache := e.BoolOption(engine.OptionCache, true)
	if useCache {
		e.mu.RLock()
		entry, ok := e.compiled[path]
		e.mu.RUnlock()
		if ok && entry.source == source {
			return entry.tmpl, nil
		}
	}

	opts := e.aceOptions()
	src := ace.NewSource(ace.NewFile(path, []byte(source)), ace.NewFile("", []byte{}), []*ace.File{})
	rslt, err := ace.ParseSource(src, opts)
	if err != nil {
		return nil, fmt.Errorf("ace: parse %q: %w", path, err)
	}
	tmpl, err := ace.CompileResult(path, rslt, opts)
	if err != nil {
		return nil, fmt.Errorf("ace: compile %q: %w", path, err)
	}

	if useCache {
		e.mu.Lock()
		e.compiled[path] = compiled{source: source, tmpl: tmpl}
		e.mu.Unlock()
	}
	return tmpl, nil
}

func (e *Engine) aceOptions() *ace.Options {
	ext := strings.TrimPrefix(e.StringOption(engine.OptionExtension, ""), ".")
	return &ace.Options{
		BaseDir:   e.BaseDir(),
		Extension: ext,
		Indent:    e.StringOption("indent", ""),
		FuncMap:   engine.FuncMap(),
	}
}
