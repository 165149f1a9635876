package engine

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidArgument reports data or options an engine refuses.
	ErrInvalidArgument = errors.New("engine: invalid argument")
	// ErrTemplateNotFound reports a template that could not be resolved.
	ErrTemplateNotFound = errors.New("engine: template not found")
	// ErrUnsupportedEngine reports an engine exposing no render primitive.
	ErrUnsupportedEngine = errors.New("engine: unsupported engine")
	// ErrNotPrimed reports a RenderFile call before Prime.
	ErrNotPrimed = errors.New("engine: not primed")
)

// ReservedKeys lists data keys engines refuse at render time.
var ReservedKeys = []string{"template"}

// CheckData rejects render data containing a reserved key.
func CheckData(data map[string]any) error {
	var found []string
	for _, key := range ReservedKeys {
		if _, ok := data[key]; ok {
			found = append(found, key)
		}
	}
	if len(found) == 0 {
		return nil
	}
	sort.Strings(found)
	return fmt.Errorf("%w: data key %q is reserved", ErrInvalidArgument, found[0])
}

// NotFound wraps cause as ErrTemplateNotFound for the given path.
func NotFound(path string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	return fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, path, cause)
}
