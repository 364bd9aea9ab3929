// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"strings"

	"github.com/datawire/dlib/dlog"
)

// ManifestDirective is one line of `tool.whey.additional-files` (§3): a
// tagged variant over the four MANIFEST.in-style verbs.
type ManifestDirective struct {
	Verb     ManifestVerb
	Dir      string   // set for RecursiveInclude/RecursiveExclude
	Patterns []string
}

// ManifestVerb names a ManifestDirective's action.
type ManifestVerb int

const (
	Include ManifestVerb = iota
	Exclude
	RecursiveInclude
	RecursiveExclude
)

// Builders names the builder override table (§3); empty strings mean "use
// the built-in builder".
type Builders struct {
	Sdist  string
	Wheel  string
	Binary string
}

// ToolConfig is the normalized `[tool.whey]` table (C3).
type ToolConfig struct {
	Package               string
	SourceDir             string
	AdditionalFiles       []ManifestDirective
	LicenseKey            string
	BaseClassifiers       []string
	Platforms             []string
	PythonImplementations []string
	PythonVersions        []string
	Builders              Builders
}

var knownToolKeys = map[string]bool{ //nolint:gochecknoglobals
	"package": true, "source-dir": true, "additional-files": true,
	"license-key": true, "base-classifiers": true, "platforms": true,
	"python-implementations": true, "python-versions": true, "builders": true,
}

// LoadTool validates and normalizes raw["tool"]["whey"] into a ToolConfig
// (C3), defaulting `package` from projectName and `source-dir` to ".".
// Unlike [project], unknown keys here are warned rather than rejected,
// because third-party builders may read their own extension keys out of
// the same table (§4.3).
func LoadTool(ctx context.Context, raw RawConfig, projectName string) (*ToolConfig, error) {
	toolTable, err := table(map[string]any(raw), "", "tool")
	if err != nil {
		return nil, err
	}
	const path = "tool.whey"
	t, err := table(toolTable, "tool", "whey")
	if err != nil {
		return nil, err
	}

	cfg := &ToolConfig{
		Package:   strings.ReplaceAll(projectName, "-", "_"),
		SourceDir: ".",
	}
	if t == nil {
		return cfg, nil
	}

	for k := range t {
		if !knownToolKeys[k] {
			dlog.Warnf(ctx, "%s.%s: unrecognized key (ignored; may be read by a third-party builder)", path, k)
		}
	}

	if pkg, has, perr := str(t, path, "package"); perr != nil {
		return nil, perr
	} else if has {
		cfg.Package = pkg
	}
	if dir, has, derr := str(t, path, "source-dir"); derr != nil {
		return nil, derr
	} else if has {
		cfg.SourceDir = dir
	}
	if key, has, lerr := str(t, path, "license-key"); lerr != nil {
		return nil, lerr
	} else if has {
		cfg.LicenseKey = key
	}

	if cfg.BaseClassifiers, err = strList(t, path, "base-classifiers"); err != nil {
		return nil, err
	}
	if cfg.Platforms, err = strList(t, path, "platforms"); err != nil {
		return nil, err
	}
	if cfg.PythonImplementations, err = strList(t, path, "python-implementations"); err != nil {
		return nil, err
	}
	if cfg.PythonVersions, err = strList(t, path, "python-versions"); err != nil {
		return nil, err
	}

	if cfg.Builders, err = parseBuilders(t, path); err != nil {
		return nil, err
	}
	if cfg.AdditionalFiles, err = parseAdditionalFiles(t, path); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseBuilders(t map[string]any, path string) (Builders, error) {
	bt, err := table(t, path, "builders")
	if err != nil {
		return Builders{}, err
	}
	if bt == nil {
		return Builders{}, nil
	}
	bp := joinPath(path, "builders")
	var b Builders
	var herr error
	if b.Sdist, _, herr = str(bt, bp, "sdist"); herr != nil {
		return Builders{}, herr
	}
	if b.Wheel, _, herr = str(bt, bp, "wheel"); herr != nil {
		return Builders{}, herr
	}
	if b.Binary, _, herr = str(bt, bp, "binary"); herr != nil {
		return Builders{}, herr
	}
	return b, nil
}

func parseAdditionalFiles(t map[string]any, path string) ([]ManifestDirective, error) {
	v, ok := t["additional-files"]
	if !ok {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, errf(joinPath(path, "additional-files"), "must be an array of strings")
	}
	out := make([]ManifestDirective, 0, len(arr))
	for i, elem := range arr {
		line, ok := elem.(string)
		if !ok {
			return nil, errf(joinPathIdx(path, "additional-files", i), "must be a string")
		}
		d, derr := parseManifestLine(line)
		if derr != nil {
			return nil, errHint(joinPathIdx(path, "additional-files", i), derr.Error(),
				"expected 'include', 'exclude', 'recursive-include', or 'recursive-exclude'")
		}
		out = append(out, d)
	}
	return out, nil
}

func parseManifestLine(line string) (ManifestDirective, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ManifestDirective{}, errf("", "malformed manifest directive: %q", line)
	}
	verb, rest := fields[0], fields[1:]
	switch verb {
	case "include":
		return ManifestDirective{Verb: Include, Patterns: rest}, nil
	case "exclude":
		return ManifestDirective{Verb: Exclude, Patterns: rest}, nil
	case "recursive-include":
		if len(rest) < 2 {
			return ManifestDirective{}, errf("", "recursive-include requires a directory and at least one pattern: %q", line)
		}
		return ManifestDirective{Verb: RecursiveInclude, Dir: rest[0], Patterns: rest[1:]}, nil
	case "recursive-exclude":
		if len(rest) < 2 {
			return ManifestDirective{}, errf("", "recursive-exclude requires a directory and at least one pattern: %q", line)
		}
		return ManifestDirective{Verb: RecursiveExclude, Dir: rest[0], Patterns: rest[1:]}, nil
	default:
		return ManifestDirective{}, errf("", "unknown manifest verb: %q", verb)
	}
}
