// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package synth derives dynamic [project] fields (classifiers,
// requires-python, dependencies) from [tool.whey] data (§4.4, C4).
package synth

import (
	"context"
	_ "embed"
	"fmt"
	"sort"

	"github.com/datawire/dlib/dlog"
	"gopkg.in/yaml.v3"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/pep440"
	"github.com/repo-helper/whey/internal/pep508"
)

//go:embed data/spdx_classifiers.yaml
var spdxClassifiersYAML []byte

// spdxToClassifier is loaded once at init from the embedded snapshot.
var spdxToClassifier = loadSPDXMap() //nolint:gochecknoglobals

func loadSPDXMap() map[string]string {
	var m map[string]string
	if err := yaml.Unmarshal(spdxClassifiersYAML, &m); err != nil {
		panic(fmt.Sprintf("synth: corrupt embedded spdx_classifiers.yaml: %v", err))
	}
	return m
}

// platformClassifiers maps a `tool.whey.platforms` entry to its trove
// classifier. This list is small and stable enough to keep inline rather
// than as an embedded resource, unlike the SPDX map and the classifier
// snapshot.
var platformClassifiers = map[string]string{ //nolint:gochecknoglobals
	"Linux":   "Operating System :: POSIX :: Linux",
	"POSIX":   "Operating System :: POSIX",
	"MacOS":   "Operating System :: MacOS",
	"macOS":   "Operating System :: MacOS",
	"Windows": "Operating System :: Microsoft :: Windows",
	"Unix":    "Operating System :: POSIX",
}

var implementationClassifiers = map[string]string{ //nolint:gochecknoglobals
	"CPython": "Programming Language :: Python :: Implementation :: CPython",
	"PyPy":    "Programming Language :: Python :: Implementation :: PyPy",
}

// RequiresPython synthesizes `requires-python` from the minimum entry of
// python_versions, forming `>={min}` (§4.4). The caller has already
// confirmed `requires-python` is in `dynamic`.
func RequiresPython(versions []string) (pep440.Specifier, error) {
	if len(versions) == 0 {
		return nil, fmt.Errorf("synth: requires-python is dynamic but tool.whey.python-versions is empty")
	}
	min := versions[0]
	for _, v := range versions[1:] {
		if versionLess(v, min) {
			min = v
		}
	}
	return pep440.ParseSpecifier(">=" + min)
}

// versionLess compares two dotted release strings ("3.8" < "3.10") using
// pep440's ordering so that the common case of unparenthesized X.Y python
// version strings sorts numerically, not lexicographically.
func versionLess(a, b string) bool {
	va, errA := pep440.ParseVersion(a)
	vb, errB := pep440.ParseVersion(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return va.Cmp(*vb) < 0
}

// Classifiers synthesizes the `classifiers` field from base_classifiers
// plus license/platform/python-version/implementation derived entries, in
// the canonical order from §4.4: license, then platforms, then Python ::
// 3 :: Only and Python :: 3.X per python_versions, then implementations.
// Duplicates are removed preserving first occurrence.
func Classifiers(ctx context.Context, tool *config.ToolConfig) []string {
	out := append([]string(nil), tool.BaseClassifiers...)

	if tool.LicenseKey != "" {
		if c, ok := spdxToClassifier[tool.LicenseKey]; ok {
			out = append(out, c)
		} else {
			dlog.Warnf(ctx, "tool.whey.license-key %q has no known trove classifier mapping", tool.LicenseKey)
		}
	}

	for _, p := range tool.Platforms {
		if c, ok := platformClassifiers[p]; ok {
			out = append(out, c)
		} else {
			dlog.Warnf(ctx, "tool.whey.platforms entry %q has no known trove classifier mapping", p)
		}
	}

	if len(tool.PythonVersions) > 0 {
		out = append(out, "Programming Language :: Python :: 3 :: Only")
	}
	sortedPyVersions := append([]string(nil), tool.PythonVersions...)
	sort.Strings(sortedPyVersions)
	for _, v := range sortedPyVersions {
		out = append(out, "Programming Language :: Python :: "+v)
	}

	for _, impl := range tool.PythonImplementations {
		if c, ok := implementationClassifiers[impl]; ok {
			out = append(out, c)
		} else {
			dlog.Warnf(ctx, "tool.whey.python-implementations entry %q has no known trove classifier mapping", impl)
		}
	}

	return dedupPreserveOrder(out)
}

func dedupPreserveOrder(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Dependencies synthesizes `dependencies` when listed as dynamic: whey
// never invents dependencies on its own, so the result is always empty
// unless an external hook (none shipped) supplies them (§4.4).
func Dependencies() []pep508.Requirement {
	return nil
}
