// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// Readme is the normalized `project.readme` value (§3): either a bare
// string naming a file, or a table naming a file or inline text plus an
// optional explicit content-type/charset.
type Readme struct {
	File        string // set if the readme comes from a file
	Text        string // set if the readme is given as inline text
	ContentType string
	Charset     string
}

func parseReadme(raw map[string]any, path string) (*Readme, error) {
	v, ok := raw["readme"]
	if !ok {
		return nil, nil
	}
	if file, ok := v.(string); ok {
		return readmeFromFile(file)
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, errf(joinPath(path, "readme"), "must be a string or a table")
	}
	entryPath := joinPath(path, "readme")
	file, hasFile, err := str(t, entryPath, "file")
	if err != nil {
		return nil, err
	}
	text, hasText, err := str(t, entryPath, "text")
	if err != nil {
		return nil, err
	}
	if hasFile && hasText {
		return nil, errHint(entryPath, "set only one of 'file' or 'text'", "'file' and 'text' are mutually exclusive")
	}
	if !hasFile && !hasText {
		return nil, errf(entryPath, "must set one of 'file' or 'text'")
	}
	contentType, _, err := str(t, entryPath, "content-type")
	if err != nil {
		return nil, err
	}
	charset, _, err := str(t, entryPath, "charset")
	if err != nil {
		return nil, err
	}
	if charset == "" {
		charset = "UTF-8"
	}

	if hasFile {
		rm, err := readmeFromFile(file)
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			rm.ContentType = contentType
		}
		rm.Charset = charset
		return rm, nil
	}

	if contentType == "" {
		return nil, errf(entryPath, "'content-type' is required when 'text' is given")
	}
	return &Readme{Text: text, ContentType: contentType, Charset: charset}, nil
}

func readmeFromFile(file string) (*Readme, error) {
	ct := contentTypeForSuffix(file)
	if ct == "" {
		return nil, errf("project.readme", "unrecognized readme file extension: %q (expected .md, .rst, or .txt)", file)
	}
	return &Readme{File: file, ContentType: ct, Charset: "UTF-8"}, nil
}

func contentTypeForSuffix(file string) string {
	switch {
	case strings.HasSuffix(file, ".md"):
		return "text/markdown"
	case strings.HasSuffix(file, ".rst"):
		return "text/x-rst"
	case strings.HasSuffix(file, ".txt"):
		return "text/plain"
	default:
		return ""
	}
}
