package pongo_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/engine/pongo"
	"github.com/goliatone/go-pugview/pkg/options"
)

func newPrimedEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	eng, err := pongo.New(options.New().With(engine.OptionBaseDir, filepath.Join("testdata", "views")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := eng.Prime(); err != nil {
		t.Fatalf("prime: %v", err)
	}
	return eng
}

func TestEngine_RequiresPrime(t *testing.T) {
	eng, err := pongo.New(options.New().With(engine.OptionBaseDir, filepath.Join("testdata", "views")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	_, err = eng.RenderFile("hello.html", map[string]any{"name": "bob"})
	if !errors.Is(err, engine.ErrNotPrimed) {
		t.Fatalf("expected ErrNotPrimed, got %v", err)
	}
}

func TestEngine_RenderFile(t *testing.T) {
	eng := newPrimedEngine(t)

	out, err := eng.RenderFile("/hello", map[string]any{"name": "bob"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.TrimSpace(out); got != "Hello bob" {
		t.Fatalf("expected %q, got %q", "Hello bob", got)
	}
}

func TestEngine_SharedAndSanitize(t *testing.T) {
	eng := newPrimedEngine(t)
	eng.ShareValue("site", "Docs")

	out, err := eng.RenderFile("bio.html", map[string]any{
		"bio": `<b>bold</b><script>x()</script>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "Docs: ") {
		t.Fatalf("expected shared variable, got %q", out)
	}
	if strings.Contains(out, "script") || !strings.Contains(out, "<b>bold</b>") {
		t.Fatalf("expected sanitized markup, got %q", out)
	}
}

func TestEngine_StructData(t *testing.T) {
	type author struct {
		Name string `json:"name"`
	}
	eng := newPrimedEngine(t)

	out, err := eng.RenderFile("author.html", map[string]any{"author": author{Name: "  Ada "}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.TrimSpace(out); got != "Ada" {
		t.Fatalf("expected %q, got %q", "Ada", got)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	eng := newPrimedEngine(t)

	_, err := eng.RenderFile("missing.html", nil)
	if !errors.Is(err, engine.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestEngine_PrimeFailsForMissingBaseDir(t *testing.T) {
	eng, err := pongo.New(options.New().With(engine.OptionBaseDir, filepath.Join(t.TempDir(), "nope")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := eng.Prime(); err == nil {
		t.Fatalf("expected prime to fail for a missing base dir")
	}
}
