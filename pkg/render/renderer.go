// Package render provides the Renderer, which resolves options for a template
// engine, forwards the template path and shared variables to it, and writes
// rendered output into a response body.
package render

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/options"
)

// Option names consumed by the renderer itself.
const (
	OptionRenderer      = "renderer"
	OptionTemplatesPath = "templates.path"
)

// Renderer adapts one engine handle, fixed at construction, to a
// response-oriented API. Configure it during startup; Render and Fetch are
// safe to call concurrently afterwards.
type Renderer struct {
	engine engine.Engine
	logger *zap.Logger

	setOption func(name string, value any)
	fetch     func(template string, data map[string]any) (string, error)

	primeMu sync.Mutex
	primed  bool
}

// New builds a Renderer. The engine is chosen by the "renderer" option (a
// registered engine name or an engine.Factory) and defaults to DefaultEngine.
// A non-empty templatePath is applied through SetTemplatePath and attributes
// are shared with the engine.
func New(templatePath string, opts *options.Set, attributes map[string]any, configure ...Option) (*Renderer, error) {
	cfg := newConfig(configure)

	eng := cfg.engine
	if eng == nil {
		factory, name, err := resolveFactory(cfg.registry, opts)
		if err != nil {
			return nil, err
		}
		eng, err = factory(opts.Clone())
		if err != nil {
			return nil, fmt.Errorf("render: build engine %q: %w", name, err)
		}
		if eng == nil {
			return nil, fmt.Errorf("render: engine %q factory returned nil", name)
		}
		cfg.logger.Debug("render: engine selected", zap.String("engine", name))
	}

	r := &Renderer{
		engine: eng,
		logger: cfg.logger,
	}
	if err := r.bind(); err != nil {
		return nil, err
	}

	if templatePath != "" {
		r.SetTemplatePath(templatePath)
	}
	eng.Share(attributes)

	return r, nil
}

// NewFromOptions builds a Renderer taking the template path from the
// "templates.path" option. NewFromOptions({templates.path: p, ...}) behaves
// like New(p, {...}).
func NewFromOptions(opts *options.Set, attributes map[string]any, configure ...Option) (*Renderer, error) {
	templatePath, _ := opts.String(OptionTemplatesPath)
	return New(templatePath, opts, attributes, configure...)
}

// bind picks the option setter and fetch strategy once, from the capabilities
// the engine exposes.
func (r *Renderer) bind() error {
	if setter, ok := r.engine.(engine.CustomOptionSetter); ok {
		r.setOption = setter.SetCustomOption
	} else {
		r.setOption = r.engine.SetOption
	}

	switch eng := r.engine.(type) {
	case engine.FileRenderer:
		r.fetch = r.fileFetcher(eng)
	case engine.SourceRenderer:
		r.fetch = r.sourceFetcher(eng)
	default:
		return fmt.Errorf("render: %T exposes neither RenderFile nor Render: %w", r.engine, engine.ErrUnsupportedEngine)
	}
	return nil
}

// Engine returns the underlying engine handle.
func (r *Renderer) Engine() engine.Engine {
	return r.engine
}

// Option returns the engine option name, or def when it is not set.
func (r *Renderer) Option(name string, def any) any {
	if checker, ok := r.engine.(engine.OptionChecker); ok && !checker.HasOption(name) {
		return def
	}
	if value, ok := r.engine.Lookup(name); ok {
		return value
	}
	return def
}

// SetOption sets a single engine option.
func (r *Renderer) SetOption(name string, value any) *Renderer {
	r.setOption(name, value)
	return r
}

// SetOptions sets every option in opts, in order.
func (r *Renderer) SetOptions(opts *options.Set) *Renderer {
	opts.Each(func(name string, value any) {
		r.SetOption(name, value)
	})
	return r
}

// Attributes returns the globals merged with the shared variables; shared
// variables win on collision.
func (r *Renderer) Attributes() map[string]any {
	return engine.Merge(
		engine.AsMap(r.Option(engine.OptionGlobals, nil)),
		engine.AsMap(r.Option(engine.OptionSharedVariables, nil)),
	)
}

// SetAttributes shares attributes with the engine.
func (r *Renderer) SetAttributes(attributes map[string]any) {
	r.engine.Share(attributes)
}

// AddAttribute shares a single attribute.
func (r *Renderer) AddAttribute(key string, value any) {
	r.engine.ShareValue(key, value)
}

// Attribute returns the named attribute, or nil.
func (r *Renderer) Attribute(key string) any {
	return r.Attributes()[key]
}

// TemplatePath returns the base_dir option.
func (r *Renderer) TemplatePath() string {
	path, _ := r.Option(engine.OptionBaseDir, "").(string)
	return path
}

// SetTemplatePath strips trailing separators from path and stores it under
// every base directory option name engines read.
func (r *Renderer) SetTemplatePath(path string) *Renderer {
	path = strings.TrimRight(path, `/\`)
	return r.SetOptions(options.New().
		With(engine.OptionPath, path).
		With(engine.OptionPaths, []string{path}).
		With(engine.OptionBasedir, path).
		With(engine.OptionBaseDir, path))
}

// Render fetches template and writes the output to w. The same writer is
// returned so callers can chain on it.
func (r *Renderer) Render(w io.Writer, template string, data map[string]any) (io.Writer, error) {
	out, err := r.Fetch(template, data)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return nil, fmt.Errorf("render: write %q: %w", template, err)
	}
	return w, nil
}

// Fetch renders template with data and returns the output.
func (r *Renderer) Fetch(template string, data map[string]any) (string, error) {
	if data == nil {
		data = map[string]any{}
	}
	start := time.Now()
	out, err := r.fetch(template, data)
	if err != nil {
		r.logger.Debug("render: fetch failed", zap.String("template", template), zap.Error(err))
		return "", err
	}
	r.logger.Debug("render: fetched",
		zap.String("template", template),
		zap.Int("bytes", len(out)),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}

// ResolveFile joins the template path and template, adding a "/" only when
// neither side supplies a separator. An empty template path leaves template
// untouched.
func (r *Renderer) ResolveFile(template string) string {
	return joinTemplatePath(r.TemplatePath(), template)
}

func joinTemplatePath(dir, template string) string {
	if dir == "" {
		return template
	}
	if isSeparator(dir[len(dir)-1]) || (template != "" && isSeparator(template[0])) {
		return dir + template
	}
	return dir + "/" + template
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

func (r *Renderer) sourceFetcher(eng engine.SourceRenderer) func(string, map[string]any) (string, error) {
	return func(template string, data map[string]any) (string, error) {
		file := r.ResolveFile(template)
		src, err := os.ReadFile(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", engine.NotFound(file, err)
			}
			return "", fmt.Errorf("render: read %q: %w", file, err)
		}
		return eng.Render(string(src), file, data)
	}
}

func (r *Renderer) fileFetcher(eng engine.FileRenderer) func(string, map[string]any) (string, error) {
	primer, needsPrime := eng.(engine.Primer)
	return func(template string, data map[string]any) (string, error) {
		if needsPrime {
			if err := r.prime(primer); err != nil {
				return "", err
			}
		}
		return eng.RenderFile(template, data)
	}
}

// prime runs Prime until it first succeeds. A failure is retried on the next
// fetch, so fixing the template path afterwards recovers the renderer.
func (r *Renderer) prime(primer engine.Primer) error {
	r.primeMu.Lock()
	defer r.primeMu.Unlock()

	if r.primed {
		return nil
	}
	if err := primer.Prime(); err != nil {
		return fmt.Errorf("render: prime engine: %w", err)
	}
	r.primed = true
	return nil
}
