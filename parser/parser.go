/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser decodes token sources and resolution documents from
// JSON, JSON with comments, or YAML into generic maps.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/tokencraft/fs"
)

// Format is a source encoding.
type Format int

const (
	// Auto sniffs the content.
	Auto Format = iota
	JSON
	YAML
)

// ErrNotObject is returned when the document root is not a mapping.
var ErrNotObject = errors.New("document root must be an object")

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Auto
	}
}

// Decode decodes data, sniffing JSON versus YAML.
func Decode(data []byte) (map[string]any, error) {
	return DecodeAs(data, Auto)
}

// DecodeAs decodes data in the given format. Numbers always decode to
// float64 so both formats yield identical trees.
func DecodeAs(data []byte, format Format) (map[string]any, error) {
	if format == Auto {
		format = YAML
		if isLikelyJSON(data) {
			format = JSON
		}
	}

	switch format {
	case JSON:
		var raw any
		// strip comments and trailing commas
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, ErrNotObject
		}
		return m, nil
	default:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if raw == nil {
			return map[string]any{}, nil
		}
		m, ok := normalize(raw).(map[string]any)
		if !ok {
			return nil, ErrNotObject
		}
		return m, nil
	}
}

// DecodeFile reads and decodes path, choosing the format by extension.
func DecodeFile(filesystem fs.FileSystem, path string) (map[string]any, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	m, err := DecodeAs(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	return m, nil
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
// JSON typically starts with '{' (optionally preceded by whitespace/BOM).
func isLikelyJSON(data []byte) bool {
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF: // UTF-8 BOM
			continue
		case '/':
			// a leading comment only appears in JSONC
			return i+1 < len(data) && (data[i+1] == '/' || data[i+1] == '*')
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// normalize recursively converts map[any]any to map[string]any and
// integers to float64. YAML with numeric keys (like "10:") creates
// map[any]any, which must be normalized for string-keyed lookup.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = normalize(val)
		}
		return x
	case map[any]any:
		result := make(map[string]any, len(x))
		for k, val := range x {
			result[fmt.Sprintf("%v", k)] = normalize(val)
		}
		return result
	case []any:
		for i, val := range x {
			x[i] = normalize(val)
		}
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return v
	}
}
