// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/repo-helper/whey/internal/fsutil"
)

// PrepareMetadata implements the PEP 517/660
// prepare_metadata_for_build_wheel/editable hooks: it writes a standalone
// {name}-{version}.dist-info directory (METADATA, WHEEL, LICENSE,
// entry_points.txt) under metadataDir without producing a wheel, and
// returns the directory's basename so a later build_wheel/build_editable
// call can reuse it (§6).
func PrepareMetadata(p *Project, metadataDir string) (string, error) {
	mtime, err := p.ResolveMTime()
	if err != nil {
		return "", err
	}

	distInfo := distInfoName(p.Project)
	dir := filepath.Join(metadataDir, distInfo)
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return "", err
	}

	refs, err := buildDistInfo(p, distInfo, mtime)
	if err != nil {
		return "", err
	}
	for _, ref := range refs {
		rel := strings.TrimPrefix(ref.FullName(), distInfo+"/")
		if err := writeMetadataFile(filepath.Join(dir, filepath.FromSlash(rel)), ref); err != nil {
			return "", err
		}
	}
	return distInfo, nil
}

func writeMetadataFile(dst string, ref fsutil.FileReference) error {
	src, err := ref.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
