package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pugview/pkg/engine"
	"github.com/goliatone/go-pugview/pkg/options"
)

func TestBase_ShareMergesIntoSharedVariables(t *testing.T) {
	base := engine.NewBase(nil)
	base.Share(map[string]any{"foo": "bar"})
	base.ShareValue("biz", 42)

	value, ok := base.Lookup(engine.OptionSharedVariables)
	if !ok {
		t.Fatalf("expected shared_variables to be set")
	}
	want := map[string]any{"foo": "bar", "biz": 42}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Fatalf("shared variables mismatch (-want +got):\n%s", diff)
	}
}

func TestBase_ShareDoesNotAliasCallerMap(t *testing.T) {
	base := engine.NewBase(nil)
	vars := map[string]any{"a": 1}
	base.Share(vars)
	vars["a"] = 2

	ctx := base.Context(nil)
	if ctx["a"] != 1 {
		t.Fatalf("expected shared copy to keep 1, got %v", ctx["a"])
	}
}

func TestBase_ContextPrecedence(t *testing.T) {
	opts := options.New().
		With(engine.OptionGlobals, map[string]any{"a": 1, "b": 2}).
		With(engine.OptionSharedVariables, map[string]any{"b": 3, "c": 4})
	base := engine.NewBase(opts)

	got := base.Context(map[string]any{"c": 5, "d": 6})
	want := map[string]any{"a": 1, "b": 3, "c": 5, "d": 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestBase_CopiesOptions(t *testing.T) {
	opts := options.New().With("cache", true)
	base := engine.NewBase(opts)
	opts.Set("cache", false)

	if !base.BoolOption("cache", false) {
		t.Fatalf("expected engine store to be isolated from caller options")
	}
}

func TestBase_BaseDirFallbacks(t *testing.T) {
	base := engine.NewBase(options.New().With(engine.OptionPath, "/p"))
	if got := base.BaseDir(); got != "/p" {
		t.Fatalf("expected path fallback, got %q", got)
	}
	base.SetOption(engine.OptionBaseDir, "/canonical")
	if got := base.BaseDir(); got != "/canonical" {
		t.Fatalf("expected base_dir to win, got %q", got)
	}
}

func TestCheckData(t *testing.T) {
	if err := engine.CheckData(map[string]any{"name": "bob"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := engine.CheckData(map[string]any{"template": "x"})
	if !errors.Is(err, engine.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	cause := errors.New("boom")
	err := engine.NotFound("/views/home.pug", cause)
	if !errors.Is(err, engine.ErrTemplateNotFound) || !errors.Is(err, cause) {
		t.Fatalf("expected both sentinel and cause in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "/views/home.pug") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestRegistry(t *testing.T) {
	reg := engine.NewRegistry()
	factory := func(opts *options.Set) (engine.Engine, error) { return engine.NewBase(opts), nil }

	if err := reg.Register("Pug", factory); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("pug", factory); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(" ", factory); err == nil {
		t.Fatalf("expected blank name to fail")
	}
	if _, err := reg.Get("PUG"); err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected lookup error")
	}
	reg.MustRegister("ace", factory)
	if diff := cmp.Diff([]string{"ace", "pug"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestToMap(t *testing.T) {
	type page struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	got, err := engine.ToMap(page{Title: "Home", Count: 2})
	if err != nil {
		t.Fatalf("to map: %v", err)
	}
	want := map[string]any{"title": "Home", "count": float64(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	got, err = engine.ToMap(map[string]string{" name ": "bob"})
	if err != nil {
		t.Fatalf("to map: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "bob"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := engine.ToMap([]string{"a"}); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for non-object data, got %v", err)
	}
}

func TestSanitize(t *testing.T) {
	got := engine.Sanitize(`<a href="https://example.com" onclick="x()">link</a><script>alert(1)</script>`)
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Fatalf("expected unsafe markup removed, got %q", got)
	}
	if !strings.Contains(got, "link</a>") {
		t.Fatalf("expected anchor preserved, got %q", got)
	}
	if got := engine.StripTags("<b>bold</b> text"); got != "bold text" {
		t.Fatalf("striptags: got %q", got)
	}
}
