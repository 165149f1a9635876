package prompt

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

type stubDriver struct {
	selects  []int
	confirms []bool
	inputs   []string

	selectPrompts []SelectConfig
}

func (d *stubDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("unexpected input prompt")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *stubDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *stubDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	d.selectPrompts = append(d.selectPrompts, cfg)
	if len(d.selects) == 0 {
		return -1, nil
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

var views = fstest.MapFS{
	"home.pug":          {Data: []byte("p home")},
	"partials/nav.pug":  {Data: []byte("nav")},
	".cache/stale.pug":  {Data: []byte("x")},
	"about.ace":         {Data: []byte("p about")},
	"partials/.keep":    {Data: nil},
	"partials/foot.pug": {Data: []byte("footer")},
}

func TestListTemplates(t *testing.T) {
	got, err := ListTemplates(views)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"about.ace", "home.pug", "partials/foot.pug", "partials/nav.pug"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_FillsMissingFields(t *testing.T) {
	driver := &stubDriver{
		selects:  []int{1, 1},
		confirms: []bool{true, true, false},
		inputs:   []string{"name=bob", " title = Intro"},
	}

	got, err := Collect(context.Background(), driver, views, []string{"ace", "pug"}, Request{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := Request{
		Engine:   "pug",
		Template: "home.pug",
		Data:     map[string]any{"name": "bob", "title": " Intro"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_KeepsProvidedFields(t *testing.T) {
	driver := &stubDriver{}
	req := Request{Engine: "ace", Template: "about.ace", Data: map[string]any{"a": 1}}

	got, err := Collect(context.Background(), driver, views, []string{"ace", "pug"}, req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(driver.selectPrompts) != 0 {
		t.Fatalf("expected no select prompts, got %d", len(driver.selectPrompts))
	}
	if diff := cmp.Diff(req, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_NoSelection(t *testing.T) {
	_, err := Collect(context.Background(), &stubDriver{}, views, []string{"pug"}, Request{})
	if err == nil {
		t.Fatalf("expected error when nothing is selected")
	}
}

func TestParseEntry(t *testing.T) {
	key, value, err := ParseEntry("name=a=b")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if key != "name" || value != "a=b" {
		t.Fatalf("ParseEntry = %q, %q", key, value)
	}
	for _, bad := range []string{"novalue", "=x", "  =x"} {
		if _, _, err := ParseEntry(bad); !errors.Is(err, errMalformedEntry) {
			t.Errorf("ParseEntry(%q) error = %v", bad, err)
		}
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if got := translateSurveyErr(other); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
}
