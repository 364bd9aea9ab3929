// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/python"
)

// buildEntryPointsTxt renders entry_points.txt from scripts, gui-scripts,
// and entry-points, sectioned console_scripts/gui_scripts/<group> (§4.8).
// It produces the same section-ordered-map INI shape that setuptools'
// pkg_resources reads back, just in the write direction.
func buildEntryPointsTxt(proj *config.ProjectConfig) []byte {
	var sections []python.OrderedSection

	if s := orderedSection("console_scripts", proj.Scripts); s != nil {
		sections = append(sections, *s)
	}
	if s := orderedSection("gui_scripts", proj.GUIScripts); s != nil {
		sections = append(sections, *s)
	}
	if proj.EntryPoints != nil {
		for pair := proj.EntryPoints.Oldest(); pair != nil; pair = pair.Next() {
			if s := orderedSection(pair.Key, pair.Value); s != nil {
				sections = append(sections, *s)
			}
		}
	}

	if len(sections) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := python.WriteINI(&buf, sections); err != nil {
		return nil
	}
	return buf.Bytes()
}

// orderedSection adapts one section's worth of name->entry-point-ref
// pairs into an OrderedSection, or nil if m is absent/empty.
func orderedSection(name string, m *orderedmap.OrderedMap[string, string]) *python.OrderedSection {
	if m == nil || m.Len() == 0 {
		return nil
	}
	s := &python.OrderedSection{Name: name, Vals: make(map[string]string, m.Len())}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		s.Keys = append(s.Keys, pair.Key)
		s.Vals[pair.Key] = pair.Value
	}
	return s
}
