package prompt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Request is the answer set gathered by Collect.
type Request struct {
	Engine   string
	Template string
	Data     map[string]any
}

// Collect fills in whatever req leaves empty: the engine (chosen from
// engines), the template (chosen from the files under fsys) and extra data
// entries entered as key=value pairs until the user declines to add more.
func Collect(ctx context.Context, driver Driver, fsys fs.FS, engines []string, req Request) (Request, error) {
	if req.Data == nil {
		req.Data = map[string]any{}
	}

	if req.Engine == "" && len(engines) > 0 {
		idx, err := driver.Select(ctx, SelectConfig{
			Message: "Template engine",
			Options: engines,
		})
		if err != nil {
			return req, err
		}
		if idx < 0 {
			return req, fmt.Errorf("prompt: no engine selected")
		}
		req.Engine = engines[idx]
	}

	if req.Template == "" {
		files, err := ListTemplates(fsys)
		if err != nil {
			return req, err
		}
		if len(files) == 0 {
			return req, fmt.Errorf("prompt: no templates found")
		}
		idx, err := driver.Select(ctx, SelectConfig{
			Message:  "Template",
			Options:  files,
			PageSize: 15,
		})
		if err != nil {
			return req, err
		}
		if idx < 0 {
			return req, fmt.Errorf("prompt: no template selected")
		}
		req.Template = files[idx]
	}

	for {
		more, err := driver.Confirm(ctx, ConfirmConfig{Message: "Add a template variable?"})
		if err != nil {
			return req, err
		}
		if !more {
			return req, nil
		}
		entry, err := driver.Input(ctx, InputConfig{
			Message:   "Variable (key=value)",
			Validator: validateEntry,
		})
		if err != nil {
			return req, err
		}
		key, value, err := ParseEntry(entry)
		if err != nil {
			return req, err
		}
		req.Data[key] = value
	}
}

// ListTemplates returns every regular file below fsys, slash separated and
// sorted. Hidden files and directories are skipped.
func ListTemplates(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != "." && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: list templates: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

var errMalformedEntry = errors.New("prompt: expected key=value")

// ParseEntry splits a key=value pair, trimming whitespace around the key.
func ParseEntry(entry string) (string, string, error) {
	key, value, ok := strings.Cut(entry, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w, got %q", errMalformedEntry, entry)
	}
	return key, value, nil
}

func validateEntry(entry string) error {
	_, _, err := ParseEntry(entry)
	return err
}
