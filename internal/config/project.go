// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"regexp"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/repo-helper/whey/internal/pep440"
	"github.com/repo-helper/whey/internal/pep508"
)

// dynamicAllowed is the set of dynamic field names this tool is willing to
// synthesize (§3, §4.2 "Dynamic gating").
var dynamicAllowed = map[string]bool{ //nolint:gochecknoglobals
	"classifiers":     true,
	"dependencies":    true,
	"requires-python": true,
}

// ProjectConfig is the normalized PEP 621 `[project]` table (C2).
type ProjectConfig struct {
	Name           string
	Version        *pep440.Version
	Description    string
	Readme         *Readme
	RequiresPython pep440.Specifier
	License        *License
	Authors        []Person
	Maintainers    []Person
	Keywords       []string
	Classifiers    []string
	URLs           *orderedmap.OrderedMap[string, string]

	Scripts     *orderedmap.OrderedMap[string, string]
	GUIScripts  *orderedmap.OrderedMap[string, string]
	EntryPoints *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, string]]

	Dependencies         []pep508.Requirement
	OptionalDependencies *orderedmap.OrderedMap[string, []pep508.Requirement]

	Dynamic map[string]bool
}

var reExtraName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// LoadProject validates and normalizes raw["project"] into a ProjectConfig
// (C2). Unknown top-level keys in [project] are rejected (§4.2).
func LoadProject(raw RawConfig) (*ProjectConfig, error) {
	const path = "project"
	t, err := table(map[string]any(raw), "", "project")
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errf(path, "the [project] table is required")
	}
	if err := rejectUnknownKeys(t, path, knownProjectKeys); err != nil {
		return nil, err
	}

	dynamic, err := strList(t, path, "dynamic")
	if err != nil {
		return nil, err
	}
	dynSet := make(map[string]bool, len(dynamic))
	for _, d := range dynamic {
		if !dynamicAllowed[d] {
			return nil, errf(path+".dynamic", "%q is not a permitted dynamic field", d)
		}
		dynSet[d] = true
	}
	if dynSet["name"] || dynSet["version"] {
		return nil, errf(path+".dynamic", "'name' and 'version' must not be dynamic")
	}

	cfg := &ProjectConfig{Dynamic: dynSet}

	name, hasName, err := str(t, path, "name")
	if err != nil {
		return nil, err
	}
	if !hasName {
		return nil, errf(path+".name", "is required")
	}
	cfg.Name = name

	versionStr, hasVersion, err := str(t, path, "version")
	if err != nil {
		return nil, err
	}
	if !hasVersion {
		return nil, errf(path+".version", "is required")
	}
	ver, err := pep440.ParseVersion(versionStr)
	if err != nil {
		return nil, wrapErr(path+".version", err)
	}
	cfg.Version = ver

	if cfg.Description, _, err = str(t, path, "description"); err != nil {
		return nil, err
	}

	if cfg.Readme, err = parseReadme(t, path); err != nil {
		return nil, err
	}
	if cfg.License, err = parseLicense(t, path); err != nil {
		return nil, err
	}
	if cfg.Authors, err = parsePeople(t, path, "authors"); err != nil {
		return nil, err
	}
	if cfg.Maintainers, err = parsePeople(t, path, "maintainers"); err != nil {
		return nil, err
	}
	if cfg.Keywords, err = strList(t, path, "keywords"); err != nil {
		return nil, err
	}

	if !dynSet["requires-python"] {
		if rp, has, rerr := str(t, path, "requires-python"); rerr != nil {
			return nil, rerr
		} else if has {
			spec, perr := pep440.ParseSpecifier(rp)
			if perr != nil {
				return nil, wrapErr(path+".requires-python", perr)
			}
			cfg.RequiresPython = spec
		}
	}

	if !dynSet["classifiers"] {
		classifiers, cerr := strList(t, path, "classifiers")
		if cerr != nil {
			return nil, cerr
		}
		for _, c := range classifiers {
			if !knownClassifiers[c] {
				return nil, errf(path+".classifiers", "unknown trove classifier: %q", c)
			}
		}
		cfg.Classifiers = classifiers
	}

	if cfg.URLs, _, err = orderedStrMap(t, path, "urls"); err != nil {
		return nil, err
	}
	if cfg.Scripts, _, err = orderedStrMap(t, path, "scripts"); err != nil {
		return nil, err
	}
	if cfg.GUIScripts, _, err = orderedStrMap(t, path, "gui-scripts"); err != nil {
		return nil, err
	}
	if cfg.EntryPoints, err = parseEntryPointGroups(t, path); err != nil {
		return nil, err
	}

	if !dynSet["dependencies"] {
		deps, derr := parseRequirementList(t, path, "dependencies")
		if derr != nil {
			return nil, derr
		}
		cfg.Dependencies = deps
	}
	if cfg.OptionalDependencies, err = parseOptionalDependencies(t, path); err != nil {
		return nil, err
	}

	return cfg, nil
}

var knownProjectKeys = map[string]bool{ //nolint:gochecknoglobals
	"name": true, "version": true, "description": true, "readme": true,
	"requires-python": true, "license": true, "authors": true, "maintainers": true,
	"keywords": true, "classifiers": true, "urls": true, "scripts": true,
	"gui-scripts": true, "entry-points": true, "dependencies": true,
	"optional-dependencies": true, "dynamic": true, "license-files": true,
}

func rejectUnknownKeys(t map[string]any, path string, known map[string]bool) error {
	for k := range t {
		if !known[k] {
			return errf(joinPath(path, k), "unknown key")
		}
	}
	return nil
}

func orderedStrMap(t map[string]any, path, key string) (*orderedmap.OrderedMap[string, string], []string, error) {
	m, order, err := strMap(t, path, key)
	if err != nil {
		return nil, nil, err
	}
	om := orderedmap.New[string, string]()
	for _, k := range sortedKeys(order) {
		om.Set(k, m[k])
	}
	return om, order, nil
}

func sortedKeys(keys []string) []string {
	sorted := append([]string(nil), keys...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted
}

func parseRequirementList(t map[string]any, path, key string) ([]pep508.Requirement, error) {
	strs, err := strList(t, path, key)
	if err != nil {
		return nil, err
	}
	reqs := make([]pep508.Requirement, 0, len(strs))
	for i, s := range strs {
		req, perr := pep508.Parse(s)
		if perr != nil {
			return nil, errHint(fmt.Sprintf("%s[%d]", joinPath(path, key), i), "must be a PEP 508 requirement", "%s", perr)
		}
		reqs = append(reqs, *req)
	}
	return reqs, nil
}

func parseOptionalDependencies(t map[string]any, path string) (*orderedmap.OrderedMap[string, []pep508.Requirement], error) {
	v, ok := t["optional-dependencies"]
	if !ok {
		return nil, nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, errf(joinPath(path, "optional-dependencies"), "must be a table of arrays")
	}
	extraPath := joinPath(path, "optional-dependencies")
	names := make([]string, 0, len(sub))
	for name := range sub {
		names = append(names, name)
	}
	om := orderedmap.New[string, []pep508.Requirement]()
	for _, name := range sortedKeys(names) {
		if !reExtraName.MatchString(name) {
			return nil, errf(joinPath(extraPath, name), "invalid extra name")
		}
		reqs, err := parseRequirementList(sub, extraPath, name)
		if err != nil {
			return nil, err
		}
		om.Set(name, reqs)
	}
	return om, nil
}

func parseEntryPointGroups(t map[string]any, path string) (*orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, string]], error) {
	v, ok := t["entry-points"]
	if !ok {
		return nil, nil
	}
	groups, ok := v.(map[string]any)
	if !ok {
		return nil, errf(joinPath(path, "entry-points"), "must be a table of tables")
	}
	groupPath := joinPath(path, "entry-points")
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	om := orderedmap.New[string, *orderedmap.OrderedMap[string, string]]()
	for _, name := range sortedKeys(names) {
		if name == "console_scripts" || name == "gui_scripts" {
			return nil, errf(joinPath(groupPath, name),
				"reserved; use the top-level 'scripts'/'gui-scripts' tables instead")
		}
		entries, _, err := orderedStrMap(groups, groupPath, name)
		if err != nil {
			return nil, err
		}
		om.Set(name, entries)
	}
	return om, nil
}
