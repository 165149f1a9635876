// Package jade renders Pug templates through github.com/Joker/jade, which
// compiles Pug source to html/template text.
package jade

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Joker/jade"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/options"
)

// Name is the registry name of this engine.
const Name = "pug"

const defaultExtension = ".pug"

// Engine renders .pug files below the base_dir option.
type Engine struct {
	*engine.Base

	mu        sync.RWMutex
	templates map[string]*template.Template
}

var (
	_ engine.Engine       = (*Engine)(nil)
	_ engine.FileRenderer = (*Engine)(nil)
)

// New constructs an Engine from opts.
func New(opts *options.Set) (*Engine, error) {
	return &Engine{
		Base:      engine.NewBase(opts),
		templates: make(map[string]*template.Template),
	}, nil
}

// Factory adapts New to engine.Factory.
func Factory(opts *options.Set) (engine.Engine, error) {
	return New(opts)
}

// SetOption updates an option. Changing the base directory drops compiled
// templates.
func (e *Engine) SetOption(name string, value any) {
	e.Base.SetOption(name, value)
	switch name {
	case engine.OptionBaseDir, engine.OptionBasedir, engine.OptionPath, engine.OptionExtension:
		e.Reset()
	}
}

// Reset drops every compiled template.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates = make(map[string]*template.Template)
}

// RenderFile compiles (or reuses) the named template and executes it with the
// shared variables and data.
func (e *Engine) RenderFile(name string, data map[string]any) (string, error) {
	if err := engine.CheckData(data); err != nil {
		return "", err
	}

	rel := e.resolve(name)
	tmpl, err := e.load(rel)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e.Context(data)); err != nil {
		return "", fmt.Errorf("jade: execute template %q: %w", rel, err)
	}
	return buf.String(), nil
}

func (e *Engine) resolve(name string) string {
	rel := strings.TrimLeft(filepath.ToSlash(strings.TrimSpace(name)), "/")
	ext := e.StringOption(engine.OptionExtension, defaultExtension)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if filepath.Ext(rel) == "" {
		rel += ext
	}
	return rel
}

func (e *Engine) load(rel string) (*template.Template, error) {
	useCache := e.BoolOption(engine.OptionCache, true)
	if useCache {
		e.mu.RLock()
		tmpl, ok := e.templates[rel]
		e.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	dir := e.BaseDir()
	abs := filepath.Join(dir, filepath.FromSlash(rel))
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, engine.NotFound(abs, err)
		}
		return nil, fmt.Errorf("jade: stat %q: %w", abs, err)
	}

	root := dir
	if root == "" {
		root = "."
	}
	src, err := jade.ParseFileFromFileSystem(rel, http.Dir(root))
	if err != nil {
		return nil, fmt.Errorf("jade: parse %q: %w", abs, err)
	}

	tmpl, err := template.New(rel).Funcs(engine.FuncMap()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("jade: compile %q: %w", abs, err)
	}

	if useCache {
		e.mu.Lock()
		e.templates[rel] = tmpl
		e.mu.Unlock()
	}
	return tmpl, nil
}
