// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package pep440

import (
	"fmt"
	"strings"
)

// CmpOp is a version-specifier comparison operator (PEP 440 "Version
// specifiers" section).
type CmpOp int

const (
	CmpOpCompatible CmpOp = iota // ~=
	CmpOpStrictMatch             // == (no trailing .*)
	CmpOpPrefixMatch             // ==X.Y.*
	CmpOpStrictExclude           // !=
	CmpOpPrefixExclude           // !=X.Y.*
	CmpOpLE
	CmpOpGE
	CmpOpLT
	CmpOpGT
)

func (op CmpOp) String() string {
	s, ok := map[CmpOp]string{
		CmpOpCompatible: "~=", CmpOpStrictMatch: "==", CmpOpPrefixMatch: "==",
		CmpOpStrictExclude: "!=", CmpOpPrefixExclude: "!=",
		CmpOpLE: "<=", CmpOpGE: ">=", CmpOpLT: "<", CmpOpGT: ">",
	}[op]
	if !ok {
		panic(fmt.Errorf("pep440: invalid CmpOp: %d", op))
	}
	return s
}

// Clause is a single comparison (operator + version) within a Specifier.
type Clause struct {
	CmpOp   CmpOp
	Version Version
}

func (c Clause) String() string { return c.CmpOp.String() + c.Version.String() }

// Match reports whether ver satisfies this clause alone.
func (c Clause) Match(ver Version) bool {
	switch c.CmpOp {
	case CmpOpCompatible:
		prefix := c.Version
		prefix.Release = prefix.Release[:len(prefix.Release)-1]
		prefix.Pre, prefix.Post, prefix.Dev = nil, nil, nil
		return Clause{CmpOp: CmpOpGE, Version: c.Version}.Match(ver) &&
			Clause{CmpOp: CmpOpPrefixMatch, Version: prefix}.Match(ver)
	case CmpOpStrictMatch:
		if len(c.Version.Local) == 0 {
			return specPublic(c.Version).Cmp(specPublic(ver)) == 0
		}
		return c.Version.Cmp(ver) == 0
	case CmpOpPrefixMatch:
		return matchPrefix(c.Version, ver)
	case CmpOpStrictExclude:
		return !Clause{CmpOp: CmpOpStrictMatch, Version: c.Version}.Match(ver)
	case CmpOpPrefixExclude:
		return !Clause{CmpOp: CmpOpPrefixMatch, Version: c.Version}.Match(ver)
	case CmpOpLE:
		return c.Version.Cmp(specPublic(ver)) >= 0
	case CmpOpGE:
		return c.Version.Cmp(specPublic(ver)) <= 0
	case CmpOpLT:
		return c.Version.Cmp(specPublic(ver)) > 0
	case CmpOpGT:
		if c.Version.Cmp(specPublic(ver)) >= 0 {
			return false
		}
		// ">V" excludes post-releases of V itself unless V is a post-release.
		return c.Version.Post != nil || ver.Post == nil ||
			c.Version.Epoch != ver.Epoch || cmpRelease(c.Version, ver) != 0
	default:
		panic(fmt.Errorf("pep440: invalid CmpOp: %d", c.CmpOp))
	}
}

// specPublic zeroes the local-version label, for comparisons that must
// ignore it (plain "==" / ordered comparisons against a public-only spec).
func specPublic(ver Version) Version {
	ver.Local = nil
	return ver
}

// matchPrefix implements "==X.Y.*" / "!=X.Y.*" prefix matching: trailing
// release segments and any trailing pre/post tail in ver are ignored past
// whatever spec's terminal (most specific) component is.
func matchPrefix(spec, ver Version) bool {
	spec, ver = specPublic(spec), specPublic(ver)
	const (
		partRelease = iota
		partPre
		partPost
	)
	terminal := partRelease
	switch {
	case spec.Post != nil:
		terminal = partPost
	case spec.Pre != nil:
		terminal = partPre
	}

	if spec.Epoch != ver.Epoch {
		return false
	}

	if terminal == partRelease {
		if len(ver.Release) > len(spec.Release) {
			ver.Release = ver.Release[:len(spec.Release)]
		}
		return cmpRelease(spec, ver) == 0
	}
	if cmpRelease(spec, ver) != 0 {
		return false
	}

	if (ver.Pre == nil) != (spec.Pre == nil) {
		return false
	}
	if spec.Pre != nil && (preReleaseOrder[ver.Pre.L] != preReleaseOrder[spec.Pre.L] || ver.Pre.N != spec.Pre.N) {
		return false
	}
	if terminal == partPre {
		return true
	}

	return cmpPostRelease(spec, ver) == 0
}

func parseClause(str string) (Clause, error) {
	var c Clause
	str = strings.TrimSpace(str)
	minSegments, devOK, localOK := 1, true, false
	switch {
	case strings.HasPrefix(str, "~="):
		c.CmpOp, str, minSegments = CmpOpCompatible, str[2:], 2
	case strings.HasPrefix(str, "===" ):
		return c, fmt.Errorf("specifiers with === are not supported; versions must be PEP 440 compliant")
	case strings.HasPrefix(str, "=="):
		c.CmpOp, str, localOK = CmpOpStrictMatch, str[2:], true
		if strings.HasSuffix(str, ".*") {
			c.CmpOp, str, devOK, localOK = CmpOpPrefixMatch, strings.TrimSuffix(str, ".*"), false, false
		}
	case strings.HasPrefix(str, "!="):
		c.CmpOp, str, localOK = CmpOpStrictExclude, str[2:], true
		if strings.HasSuffix(str, ".*") {
			c.CmpOp, str, devOK, localOK = CmpOpPrefixExclude, strings.TrimSuffix(str, ".*"), false, false
		}
	case strings.HasPrefix(str, "<="):
		c.CmpOp, str = CmpOpLE, str[2:]
	case strings.HasPrefix(str, ">="):
		c.CmpOp, str = CmpOpGE, str[2:]
	case strings.HasPrefix(str, "<"):
		c.CmpOp, str = CmpOpLT, str[1:]
	case strings.HasPrefix(str, ">"):
		c.CmpOp, str = CmpOpGT, str[1:]
	default:
		return c, fmt.Errorf("invalid comparison operator in specifier clause: %q", str)
	}
	ver, err := ParseVersion(str)
	if err != nil {
		return c, err
	}
	if len(ver.Release) < minSegments {
		return c, fmt.Errorf("at least %d release segment(s) required in %q clauses", minSegments, c.CmpOp)
	}
	if ver.Dev != nil && !devOK {
		return c, fmt.Errorf("dev-part not permitted in %q clauses", c.CmpOp)
	}
	if len(ver.Local) > 0 && !localOK {
		return c, fmt.Errorf("local-part not permitted in %q clauses", c.CmpOp)
	}
	c.Version = *ver
	return c, nil
}

// Specifier is a comma-separated conjunction of Clauses, e.g. ">=1.0,<2.0".
type Specifier []Clause

// ParseSpecifier parses a PEP 440 version specifier (used both for
// Requires-Python values and the version part of a PEP 508 requirement).
func ParseSpecifier(str string) (Specifier, error) {
	parts := strings.FieldsFunc(str, func(r rune) bool { return r == ',' })
	spec := make(Specifier, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := parseClause(part)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
		}
		spec = append(spec, c)
	}
	return spec, nil
}

func (spec Specifier) String() string {
	parts := make([]string, len(spec))
	for i, c := range spec {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// Match reports whether ver satisfies every clause in spec.
func (spec Specifier) Match(ver Version) bool {
	for _, c := range spec {
		if !c.Match(ver) {
			return false
		}
	}
	return true
}
