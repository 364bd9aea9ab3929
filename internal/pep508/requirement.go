// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package pep508 implements enough of PEP 508 ("Dependency specification
// for Python Software Packages") to parse the `dependencies` and
// `optional-dependencies` entries of a `[project]` table: a distribution
// name, optional extras, an optional PEP 440 version specifier, and an
// optional raw environment marker (marker *evaluation* is out of scope:
// this tool only ever emits Requires-Dist headers, it never resolves
// dependencies, so the marker string is carried verbatim).
//
// https://peps.python.org/pep-0508/
package pep508

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/repo-helper/whey/internal/pep440"
)

// Requirement is a single PEP 508 dependency specifier.
type Requirement struct {
	Name      string
	Extras    []string
	Specifier pep440.Specifier
	Marker    string // raw, unevaluated; "" if absent
}

// reRequirement is deliberately lax on the specifier and marker grammars
// (it captures them as opaque strings) and leans on pep440 to validate the
// specifier; full PEP 508 marker grammar (boolean combinations of
// environment comparisons) has no role in this tool beyond being carried
// through to Requires-Dist, so a single regexp with named groups is used
// rather than a hand-written recursive-descent parser for a grammar that
// is only ever read back out, never evaluated.
var reRequirement = regexp.MustCompile(
	`^\s*(?P<name>[A-Za-z0-9][A-Za-z0-9._-]*)` +
		`\s*(?:\[(?P<extras>[^\]]*)\])?` +
		`\s*(?P<specifier>[^;]*?)` +
		`\s*(?:;\s*(?P<marker>.*))?\s*$`)

// Parse parses one PEP 508 requirement string.
func Parse(str string) (*Requirement, error) {
	m := reRequirement.FindStringSubmatch(str)
	if m == nil {
		return nil, fmt.Errorf("pep508.Parse: invalid requirement: %q", str)
	}
	sub := func(name string) string { return strings.TrimSpace(m[reRequirement.SubexpIndex(name)]) }

	req := &Requirement{
		Name:   sub("name"),
		Marker: sub("marker"),
	}
	if extras := sub("extras"); extras != "" {
		for _, e := range strings.Split(extras, ",") {
			if e = strings.TrimSpace(e); e != "" {
				req.Extras = append(req.Extras, e)
			}
		}
	}
	if specStr := sub("specifier"); specStr != "" {
		spec, err := pep440.ParseSpecifier(specStr)
		if err != nil {
			return nil, fmt.Errorf("pep508.Parse: %q: %w", str, err)
		}
		req.Specifier = spec
	}
	return req, nil
}

// String renders the requirement back to PEP 508 syntax.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteString("]")
	}
	if len(r.Specifier) > 0 {
		b.WriteString(r.Specifier.String())
	}
	if r.Marker != "" {
		b.WriteString("; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}

// WithExtraMarker returns r with an `extra == "name"` clause composed into
// its marker (§4.6): joined with `and` if a marker is already present,
// wrapping any pre-existing marker in parens to keep precedence correct.
func (r Requirement) WithExtraMarker(extra string) Requirement {
	clause := fmt.Sprintf(`extra == "%s"`, extra)
	switch {
	case r.Marker == "":
		r.Marker = clause
	default:
		r.Marker = fmt.Sprintf("(%s) and %s", r.Marker, clause)
	}
	return r
}
