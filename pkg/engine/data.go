package engine

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// ToMap normalises render data into a string keyed map. Maps are copied with
// trimmed keys; structs and other values go through their JSON encoding.
func ToMap(data any) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return trimKeys(v), nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = value
		}
		return trimKeys(out), nil
	default:
		m, err := jsonToMap(v)
		if err != nil {
			return nil, fmt.Errorf("%w: render data: %w", ErrInvalidArgument, err)
		}
		return trimKeys(m), nil
	}
}

func trimKeys(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func jsonToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge returns a new map holding every entry of sources, later sources
// winning on collision.
func Merge(sources ...map[string]any) map[string]any {
	size := 0
	for _, src := range sources {
		size += len(src)
	}
	out := make(map[string]any, size)
	for _, src := range sources {
		maps.Copy(out, src)
	}
	return out
}
