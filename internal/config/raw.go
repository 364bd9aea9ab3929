// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"reflect"

	"github.com/pelletier/go-toml/v2"
)

// RawConfig is the parsed-but-unvalidated TOML document (C1): a tree of
// map[string]any / []any / scalar values. It is immutable once returned by
// LoadRaw; nothing downstream mutates it in place.
type RawConfig map[string]any

// LoadRaw parses data as TOML and rejects constructs that need TOML
// 1.0.0 semantics beyond what TOML 0.5.0 allowed (§4.1). go-toml/v2 is a
// 1.0-era parser, so outright syntax errors already cover most of "newer
// than 0.5.0 syntax"; the one semantic gap it doesn't reject for us is
// TOML 1.0's relaxation of "arrays must be homogeneous": TOML 0.5.0
// forbade mixed-type arrays, so we walk the decoded tree afterward and
// reject any array whose elements don't share a single TOML type.
func LoadRaw(data []byte) (RawConfig, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("pyproject.toml: %w", err)
	}
	if err := rejectHeterogeneousArrays("", raw); err != nil {
		return nil, err
	}
	return RawConfig(raw), nil
}

func rejectHeterogeneousArrays(path string, v any) error {
	switch val := v.(type) {
	case map[string]any:
		for k, sub := range val {
			if err := rejectHeterogeneousArrays(joinPath(path, k), sub); err != nil {
				return err
			}
		}
	case []any:
		var kind reflect.Kind
		for i, elem := range val {
			ek := tomlKind(elem)
			if i == 0 {
				kind = ek
			} else if ek != kind {
				return fmt.Errorf(
					"%s: mixed-type arrays require TOML >= 1.0.0 (this tool only accepts TOML 0.5.0 syntax)",
					path)
			}
			if err := rejectHeterogeneousArrays(fmt.Sprintf("%s[%d]", path, i), elem); err != nil {
				return err
			}
		}
	}
	return nil
}

func tomlKind(v any) reflect.Kind {
	switch v.(type) {
	case map[string]any:
		return reflect.Map
	case []any:
		return reflect.Slice
	case string:
		return reflect.String
	case int64:
		return reflect.Int64
	case float64:
		return reflect.Float64
	case bool:
		return reflect.Bool
	default:
		return reflect.Invalid
	}
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// table extracts a sub-table, returning nil (not an error) if the key is
// absent, since most tables in this schema are optional.
func table(raw map[string]any, path, key string) (map[string]any, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, errf(joinPath(path, key), "must be a table")
	}
	return t, nil
}

func str(raw map[string]any, path, key string) (string, bool, error) {
	v, ok := raw[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, errf(joinPath(path, key), "must be a string")
	}
	return s, true, nil
}

func strList(raw map[string]any, path, key string) ([]string, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, errf(joinPath(path, key), "must be an array of strings")
	}
	out := make([]string, 0, len(arr))
	for i, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, errf(fmt.Sprintf("%s[%d]", joinPath(path, key), i), "must be a string")
		}
		out = append(out, s)
	}
	return out, nil
}

func strMap(raw map[string]any, path, key string) (map[string]string, []string, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, nil, errf(joinPath(path, key), "must be a table")
	}
	out := make(map[string]string, len(t))
	order := make([]string, 0, len(t))
	for k, val := range t {
		s, ok := val.(string)
		if !ok {
			return nil, nil, errf(joinPath(path, key)+"."+k, "must be a string")
		}
		out[k] = s
		order = append(order, k)
	}
	return out, order, nil
}
