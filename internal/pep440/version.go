// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package pep440 implements version identifiers and specifiers per PEP 440
// ("Version Identification and Dependency Specification").
//
// https://www.python.org/dev/peps/pep-0440/
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// Version is a PEP 440 version identifier: an optional epoch, a release
// segment, an optional pre/post/dev-release tail, and an optional local
// version label.
type Version struct {
	Epoch   int
	Release []int
	Pre     *PreRelease
	Post    *int
	Dev     *int
	Local   []intstr.IntOrString
}

type PreRelease struct {
	L string // one of "a", "b", "rc" (canonicalized)
	N int
}

// ParseVersion parses and normalizes a PEP 440 version string.
func ParseVersion(str string) (*Version, error) {
	ver, err := parseVersion(str)
	if err != nil {
		return nil, fmt.Errorf("pep440.ParseVersion: %w", err)
	}
	return ver, nil
}

func (ver Version) releaseSegment(n int) int {
	if n < len(ver.Release) {
		return ver.Release[n]
	}
	return 0
}

func (ver Version) Major() int { return ver.releaseSegment(0) }
func (ver Version) Minor() int { return ver.releaseSegment(1) }
func (ver Version) Micro() int { return ver.releaseSegment(2) }

// IsFinal reports whether ver has no pre/post/dev/local component.
func (ver Version) IsFinal() bool {
	return ver.Pre == nil && ver.Post == nil && ver.Dev == nil && len(ver.Local) == 0
}

// IsPreRelease reports whether ver is a pre-release or dev-release.
func (ver Version) IsPreRelease() bool {
	return ver.Pre != nil || ver.Dev != nil
}

func (ver Version) String() string {
	var b strings.Builder
	if ver.Epoch > 0 {
		fmt.Fprintf(&b, "%d!", ver.Epoch)
	}
	if len(ver.Release) == 0 {
		panic("pep440: invalid version: no release segments")
	}
	fmt.Fprintf(&b, "%d", ver.Release[0])
	for _, seg := range ver.Release[1:] {
		fmt.Fprintf(&b, ".%d", seg)
	}
	if ver.Pre != nil {
		fmt.Fprintf(&b, "%s%d", ver.Pre.L, ver.Pre.N)
	}
	if ver.Post != nil {
		fmt.Fprintf(&b, ".post%d", *ver.Post)
	}
	if ver.Dev != nil {
		fmt.Fprintf(&b, ".dev%d", *ver.Dev)
	}
	sep := "+"
	for _, local := range ver.Local {
		b.WriteString(sep)
		b.WriteString(local.String())
		sep = "."
	}
	return b.String()
}

// Normalize re-parses ver.String(), which canonicalizes e.g. case and
// padding. It is here mainly so callers don't need to know that String()
// itself doesn't normalize a hand-built Version.
func (ver Version) Normalize() (*Version, error) {
	return ParseVersion(ver.String())
}

// Cmp returns <0, 0, >0 as ver is less than, equal to, or greater than
// other, using PEP 440's total ordering (epoch, release, pre/post/dev,
// local).
func (ver Version) Cmp(other Version) int {
	if d := ver.Epoch - other.Epoch; d != 0 {
		return d
	}
	if d := cmpRelease(ver, other); d != 0 {
		return d
	}
	if d := cmpPreRelease(ver, other); d != 0 {
		return d
	}
	if d := cmpPostRelease(ver, other); d != 0 {
		return d
	}
	if d := cmpDevRelease(ver, other); d != 0 {
		return d
	}
	return cmpLocal(ver, other)
}

func cmpRelease(a, b Version) int {
	for i := 0; i < len(a.Release) || i < len(b.Release); i++ {
		if d := a.releaseSegment(i) - b.releaseSegment(i); d != 0 {
			return d
		}
	}
	return 0
}

// preReleaseOrder ranks pre-release phases; "no pre-release" sorts as 0,
// a dev-only release (no pre, no post) sorts before all phases.
var preReleaseOrder = map[string]int{ //nolint:gochecknoglobals
	"a": -3, "alpha": -3,
	"b": -2, "beta": -2,
	"rc": -1, "c": -1, "pre": -1, "preview": -1,
}

func cmpPreRelease(a, b Version) int {
	var aL, aN, bL, bN int
	if a.Pre != nil {
		aL, aN = preReleaseOrder[a.Pre.L], a.Pre.N
	} else if a.Dev != nil && a.Post == nil {
		aL = -4
	}
	if b.Pre != nil {
		bL, bN = preReleaseOrder[b.Pre.L], b.Pre.N
	} else if b.Dev != nil && b.Post == nil {
		bL = -4
	}
	if aL != bL {
		return aL - bL
	}
	return aN - bN
}

func cmpPostRelease(a, b Version) int {
	aPost, bPost := -1, -1
	if a.Post != nil {
		aPost = *a.Post
	}
	if b.Post != nil {
		bPost = *b.Post
	}
	return aPost - bPost
}

func cmpDevRelease(a, b Version) int {
	switch {
	case a.Dev == nil && b.Dev == nil:
		return 0
	case a.Dev == nil:
		return 1
	case b.Dev == nil:
		return -1
	default:
		return *a.Dev - *b.Dev
	}
}

// cmpLocal compares local-version labels dot-segment by dot-segment: a
// missing segment sorts lowest, numeric segments compare numerically and
// sort above string segments, string segments compare lexicographically.
func cmpLocal(a, b Version) int {
	for i := 0; i < len(a.Local) || i < len(b.Local); i++ {
		var aSeg, bSeg *intstr.IntOrString
		if i < len(a.Local) {
			aSeg = &a.Local[i]
		}
		if i < len(b.Local) {
			bSeg = &b.Local[i]
		}
		if d := cmpLocalSegment(aSeg, bSeg); d != 0 {
			return d
		}
	}
	return 0
}

func cmpLocalSegment(a, b *intstr.IntOrString) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return int(a.IntVal - b.IntVal)
	case a.Type == intstr.String && b.Type == intstr.String:
		return strings.Compare(a.StrVal, b.StrVal)
	case a.Type == intstr.Int:
		return 1 // numeric always sorts above lexicographic
	default:
		return -1
	}
}

// reVersion is PEP 440's Appendix-B regular expression, translated to Go's
// RE2 syntax (RE2 has no backreferences, named groups use (?P<name>...)).
var reVersion = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<prel>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<pren>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<postn1>[0-9]+))|(?:[-_.]?(?P<postl>post|rev|r)[-_.]?(?P<postn2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?(?P<devl>dev)[-_.]?(?P<devn>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?\s*$`)

func parseVersion(str string) (*Version, error) {
	m := reVersion.FindStringSubmatch(str)
	if m == nil {
		return nil, fmt.Errorf("invalid version: %q", str)
	}
	sub := func(name string) string { return m[reVersion.SubexpIndex(name)] }

	var ver Version
	if epoch := sub("epoch"); epoch != "" {
		n, err := strconv.Atoi(epoch)
		if err != nil {
			return nil, err
		}
		ver.Epoch = n
	}
	for _, seg := range strings.Split(sub("release"), ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, err
		}
		ver.Release = append(ver.Release, n)
	}

	pre, err := parseLetterNumber(sub("prel"), sub("pren"), map[string][]string{
		"a": {"alpha"}, "b": {"beta"}, "rc": {"c", "pre", "preview"},
	})
	if err != nil {
		return nil, fmt.Errorf("pre-release: %w", err)
	}
	if pre != nil {
		ver.Pre = &PreRelease{L: pre.l, N: pre.n}
	}

	post, err := parseLetterNumber(sub("postl"), sub("postn1")+sub("postn2"), map[string][]string{
		"post": {"", "rev", "r"},
	})
	if err != nil {
		return nil, fmt.Errorf("post-release: %w", err)
	}
	if post != nil {
		ver.Post = &post.n
	}

	dev, err := parseLetterNumber(sub("devl"), sub("devn"), map[string][]string{"dev": nil})
	if err != nil {
		return nil, fmt.Errorf("dev-release: %w", err)
	}
	if dev != nil {
		ver.Dev = &dev.n
	}

	for _, part := range strings.FieldsFunc(sub("local"), func(r rune) bool {
		return strings.ContainsRune("-_.", r)
	}) {
		ver.Local = append(ver.Local, intstr.Parse(strings.ToLower(part)))
	}

	return &ver, nil
}

type letterNumber struct {
	l string
	n int
}

// parseLetterNumber interprets a {letter}{number} pair (the shared shape of
// the pre/post/dev segments), canonicalizing aliased spellings via
// acceptable (e.g. "alpha" -> "a").
func parseLetterNumber(letter, number string, acceptable map[string][]string) (*letterNumber, error) {
	if letter == "" && number == "" {
		return nil, nil //nolint:nilnil
	}
	letter = strings.ToLower(letter)
	if letter != "" && number == "" {
		number = "0"
	}
	canonical := letter
	if _, ok := acceptable[letter]; !ok {
		found := false
		for c, aliases := range acceptable {
			for _, a := range aliases {
				if letter == a {
					canonical, found = c, true
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("invalid string-part: %q", letter)
		}
	}
	var n int
	if number != "" {
		parsed, err := strconv.Atoi(number)
		if err != nil {
			return nil, err
		}
		n = parsed
	}
	return &letterNumber{l: canonical, n: n}, nil
}
