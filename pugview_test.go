package pugview

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRendersFromRoot(t *testing.T) {
	r, err := New(filepath.Join("testdata", "views"), nil, map[string]any{"name": "bob"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var body bytes.Buffer
	if _, err := r.Render(&body, "hello", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body.String(), "Hello bob") {
		t.Fatalf("unexpected body %q", body.String())
	}
}

func TestCreateThroughFacade(t *testing.T) {
	app := NewApp(NewOptions().With("templates.path", filepath.Join("testdata", "views")))
	_, r, err := Create(app, "", nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := r.Fetch("missing", nil); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}
