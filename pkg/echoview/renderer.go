package echoview

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/render"
)

// Renderer implements echo.Renderer on top of a render.Renderer.
type Renderer struct {
	renderer *render.Renderer
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer wraps r.
func NewRenderer(r *render.Renderer) *Renderer {
	return &Renderer{renderer: r}
}

// Unwrap returns the underlying render.Renderer.
func (r *Renderer) Unwrap() *render.Renderer {
	return r.renderer
}

// Render implements echo.Renderer. Data may be a map, echo.Map or any value
// that marshals to a JSON object.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	vars, err := toData(data)
	if err != nil {
		return fmt.Errorf("echoview: render %q: %w", name, err)
	}
	_, err = r.renderer.Render(w, name, vars)
	return err
}

func toData(data any) (map[string]any, error) {
	if m, ok := data.(echo.Map); ok {
		return map[string]any(m), nil
	}
	return engine.ToMap(data)
}
