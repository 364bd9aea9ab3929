// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package build implements the sdist, wheel, and editable-wheel archive
// builders (C7-C10) and the reproducible-mtime, atomic-write discipline
// shared by all of them (§4.7-§4.10, §5).
package build

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/fsutil"
	"github.com/repo-helper/whey/internal/reproducible"
)

// Project bundles everything a builder needs: normalized config, the
// project root on disk, and the selected file list (relative to
// projectRoot, already sorted deterministically by fileselect.Select).
type Project struct {
	Root    string
	Project *config.ProjectConfig
	Tool    *config.ToolConfig
	Files   []string // project-root-relative paths, sorted
}

// ResolveMTime applies the §4.7/§5 mtime policy: SOURCE_DATE_EPOCH if set,
// else the newest mtime among the selected files, clamped to range.
func (p *Project) ResolveMTime() (time.Time, error) {
	fallback := time.Unix(0, 0).UTC()
	for _, rel := range p.Files {
		fi, err := os.Stat(filepath.Join(p.Root, filepath.FromSlash(rel)))
		if err != nil {
			return time.Time{}, fmt.Errorf("build: %w", err)
		}
		if fi.ModTime().After(fallback) {
			fallback = fi.ModTime()
		}
	}
	return reproducible.Resolve(fallback)
}

// FileReferences resolves p.Files into on-disk FileReferences.
func (p *Project) FileReferences() ([]fsutil.FileReference, error) {
	refs := make([]fsutil.FileReference, 0, len(p.Files))
	for _, rel := range p.Files {
		ref, err := fsutil.NewOSFileReference(filepath.Join(p.Root, filepath.FromSlash(rel)), rel)
		if err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// ReadmeBody resolves the project's README body: inline text verbatim, or
// the contents of Readme.File read relative to the project root.
func (p *Project) ReadmeBody() (string, error) {
	r := p.Project.Readme
	if r == nil {
		return "", nil
	}
	if r.Text != "" {
		return r.Text, nil
	}
	if r.File == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(p.Root, filepath.FromSlash(r.File)))
	if err != nil {
		return "", fmt.Errorf("build: readme: %w", err)
	}
	return string(data), nil
}

// LicenseBody resolves the project's LICENSE file body the same way, for
// embedding verbatim into a wheel's dist-info (§4.8).
func (p *Project) LicenseBody() (string, error) {
	l := p.Project.License
	if l == nil {
		return "", nil
	}
	if l.Text != "" {
		return l.Text, nil
	}
	if l.File == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(p.Root, filepath.FromSlash(l.File)))
	if err != nil {
		return "", fmt.Errorf("build: license: %w", err)
	}
	return string(data), nil
}

// writeAtomic streams content to a temp file beside dst and renames it
// into place on success, unlinking the temp file on any error (§5).
func writeAtomic(dst string, write func(f *os.File) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".whey-*.tmp")
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return nil
}
