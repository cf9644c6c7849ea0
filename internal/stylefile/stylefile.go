// Package stylefile reads style files: flat or nested maps of style
// parameters written in YAML or TOML.
//
// Nested tables are flattened into dotted keys, so
//
//	lines:
//	  linewidth: 2
//
// and
//
//	lines.linewidth: 2
//
// both produce the parameter "lines.linewidth".
package stylefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files whose extension is not a style
// file extension.
var ErrUnknownFormat = errors.New("unknown style file format")

// Load reads the style file at path. The format follows the extension.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file: %w", err)
	}
	params, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("style file %s: %w", path, err)
	}
	return params, nil
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or
// ".toml") and returns the flattened parameters.
func Parse(data []byte, ext string) (map[string]any, error) {
	raw := map[string]any{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	out := make(map[string]any, len(raw))
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// Keys returns the parameter names of params in sorted order.
func Keys(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
