// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/repo-helper/whey/internal/fsutil"
	"github.com/repo-helper/whey/internal/metadata"
)

// BuildEditableWheel produces an editable install wheel (§4.9): same
// dist-info as BuildWheel, but the package tree itself is replaced by a
// single .pth file that points back at the project's source directory.
// whey ships no "editables" collaborator, so unlike the PEP 660 reference
// flow this builder always takes the .pth fallback path rather than
// preferring a redirector module.
func BuildEditableWheel(p *Project, outDir string) (string, error) {
	mtime, err := p.ResolveMTime()
	if err != nil {
		return "", err
	}

	distInfo := distInfoName(p.Project)
	dst := filepath.Join(outDir, WheelFilename(p.Project))

	sourceRoot := filepath.Join(p.Root, filepath.FromSlash(p.Tool.SourceDir))
	absSourceRoot, err := filepath.Abs(sourceRoot)
	if err != nil {
		return "", fmt.Errorf("build: editable: %w", err)
	}
	pthName := escapeWheelName(p.Project.Name) + ".pth"
	pthContent := []byte(absSourceRoot + "\n")

	var refs []fsutil.FileReference
	refs = append(refs, fsutil.NewInMemFileReference(pthName, pthContent, 0o644, mtime))

	distRefs, err := buildDistInfo(p, distInfo, mtime)
	if err != nil {
		return "", err
	}
	refs = append(refs, distRefs...)

	recordPath := path.Join(distInfo, "RECORD")
	record, err := metadata.BuildRecord(refs, recordPath)
	if err != nil {
		return "", err
	}
	refs = append(refs, fsutil.NewInMemFileReference(recordPath, record, 0o644, mtime))

	if err := writeAtomic(dst, func(f *os.File) error {
		return writeZip(f, refs, mtime)
	}); err != nil {
		return "", err
	}
	return dst, nil
}
