// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config

// License is the normalized `project.license` table (§3): exactly one of
// File or Text is set.
type License struct {
	File string
	Text string
}

func parseLicense(raw map[string]any, path string) (*License, error) {
	v, ok := raw["license"]
	if !ok {
		return nil, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, errf(joinPath(path, "license"), "must be a table with 'file' or 'text'")
	}
	entryPath := joinPath(path, "license")
	file, hasFile, err := str(t, entryPath, "file")
	if err != nil {
		return nil, err
	}
	text, hasText, err := str(t, entryPath, "text")
	if err != nil {
		return nil, err
	}
	switch {
	case hasFile && hasText:
		return nil, errHint(entryPath, "set only one of 'file' or 'text'", "'file' and 'text' are mutually exclusive")
	case hasFile:
		return &License{File: file}, nil
	case hasText:
		return &License{Text: text}, nil
	default:
		return nil, errf(entryPath, "must set one of 'file' or 'text'")
	}
}
