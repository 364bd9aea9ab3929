// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package fileselect implements the MANIFEST.in-style file selection
// engine (§4.5, C5): a seed walk of the package tree, built-in excludes,
// py.typed/*.pyi auto-inclusion, and additional_files directive
// application, producing a deterministically ordered FileList.
package fileselect

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/fsutil"
)

// builtinExcludeNames are base-name patterns rejected during the seed
// walk regardless of any directive (§4.5 step 1).
var builtinExcludeNames = []string{ //nolint:gochecknoglobals
	"__pycache__", "*.pyc", "*.pyo", "*.so~", "*~", "#*#",
}

var builtinExcludeDirs = map[string]bool{ //nolint:gochecknoglobals
	".git": true, ".hg": true, ".svn": true, "__pycache__": true,
}

// autoIncludePatterns are always kept even if excluded by a later
// directive (§4.5 step 2).
var autoIncludePatterns = []string{"py.typed", "*.pyi"} //nolint:gochecknoglobals

// Select runs the full file-selection algorithm against projectRoot and
// returns a lexicographically sorted, de-duplicated list of paths
// relative to projectRoot, forward-slash separated.
func Select(projectRoot string, tool *config.ToolConfig) ([]string, error) {
	packageRoot := filepath.Join(projectRoot, filepath.FromSlash(tool.SourceDir), filepath.FromSlash(tool.Package))

	seed := map[string]bool{}
	if err := walkSeed(projectRoot, packageRoot, seed); err != nil {
		return nil, fmt.Errorf("fileselect: %w", err)
	}

	for _, d := range tool.AdditionalFiles {
		if err := applyDirective(projectRoot, d, seed); err != nil {
			return nil, fmt.Errorf("fileselect: %w", err)
		}
	}

	out := make([]string, 0, len(seed))
	for p := range seed {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func walkSeed(projectRoot, packageRoot string, seed map[string]bool) error {
	return filepath.WalkDir(packageRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if builtinExcludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, rerr := filepath.Rel(projectRoot, p)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)

		if isAutoIncluded(d.Name()) {
			seed[rel] = true
			return nil
		}
		if matchesAny(builtinExcludeNames, d.Name()) {
			return nil
		}
		seed[rel] = true
		return nil
	})
}

func isAutoIncluded(name string) bool {
	return matchesAny(autoIncludePatterns, name)
}

func matchesAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, name); ok {
			return true
		}
	}
	return false
}

// applyDirective mutates seed per one ManifestDirective (§4.5 step 3).
func applyDirective(projectRoot string, d config.ManifestDirective, seed map[string]bool) error {
	switch d.Verb {
	case config.Include:
		return walkMatch(projectRoot, "", d.Patterns, matchRelPath, func(rel string) { seed[rel] = true })
	case config.Exclude:
		return walkMatch(projectRoot, "", d.Patterns, matchRelPath, func(rel string) {
			if !isAutoIncluded(path.Base(rel)) {
				delete(seed, rel)
			}
		})
	case config.RecursiveInclude:
		return walkMatch(projectRoot, d.Dir, d.Patterns, matchBaseName, func(rel string) { seed[rel] = true })
	case config.RecursiveExclude:
		return walkMatch(projectRoot, d.Dir, d.Patterns, matchBaseName, func(rel string) {
			if !isAutoIncluded(path.Base(rel)) {
				delete(seed, rel)
			}
		})
	default:
		return fmt.Errorf("unknown manifest verb %d", d.Verb)
	}
}

// matchTarget picks what a walkMatch pattern is matched against.
type matchTarget int

const (
	// matchRelPath matches patterns against the `/`-joined path relative
	// to projectRoot, so directory-qualified patterns like
	// "docs/*.rst" or "spam/data/*.txt" (include/exclude, §4.5 step 3)
	// can match files outside the walked directory's own top level.
	matchRelPath matchTarget = iota
	// matchBaseName matches patterns against the bare file name only,
	// the MANIFEST.in behavior for recursive-include/recursive-exclude,
	// whose patterns are plain filename globs applied under dir.
	matchBaseName
)

// walkMatch walks projectRoot/dir (or all of projectRoot if dir == "") and
// invokes fn for every regular file matching any pattern, per target.
func walkMatch(projectRoot, dir string, patterns []string, target matchTarget, fn func(rel string)) error {
	root := projectRoot
	if dir != "" {
		root = filepath.Join(projectRoot, filepath.FromSlash(dir))
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if builtinExcludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, rerr := filepath.Rel(projectRoot, p)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, "../") || rel == ".." {
			return fmt.Errorf("path escapes project root: %s", rel)
		}

		matchAgainst := d.Name()
		if target == matchRelPath {
			matchAgainst = rel
		}
		if !matchesAny(patterns, matchAgainst) {
			return nil
		}
		fn(rel)
		return nil
	})
}

// ToFileReferences resolves a sorted path list against projectRoot into
// OSFileReference values, ready to hand to a builder.
func ToFileReferences(projectRoot string, paths []string) ([]fsutil.FileReference, error) {
	refs := make([]fsutil.FileReference, 0, len(paths))
	for _, p := range paths {
		abs := filepath.Join(projectRoot, filepath.FromSlash(p))
		ref, err := fsutil.NewOSFileReference(abs, p)
		if err != nil {
			return nil, fmt.Errorf("fileselect: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
