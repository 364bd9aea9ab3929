// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/fsutil"
	"github.com/repo-helper/whey/internal/metadata"
)

// Wheel tag constants (§4.8): this tool never produces native-code
// extensions, so the tag triple is always the universal py3-none-any.
const (
	PythonTag   = "py3"
	ABITag      = "none"
	PlatformTag = "any"
)

var reNonWheelNameChar = regexp.MustCompile(`[^\w\d.]+`)

// escapeWheelName applies PEP 427's distribution-name escaping rule
// (runs of non `[\w\d.]` collapsed to a single `_`) used both in the
// wheel filename and the dist-info directory name.
func escapeWheelName(name string) string {
	return reNonWheelNameChar.ReplaceAllString(name, "_")
}

// WheelFilename returns the wheel archive's basename for proj, without
// building anything.
func WheelFilename(proj *config.ProjectConfig) string {
	escName := escapeWheelName(proj.Name)
	return fmt.Sprintf("%s-%s-%s-%s-%s.whl", escName, proj.Version.String(), PythonTag, ABITag, PlatformTag)
}

// distInfoName returns the {name}-{version}.dist-info directory name.
func distInfoName(proj *config.ProjectConfig) string {
	return fmt.Sprintf("%s-%s.dist-info", escapeWheelName(proj.Name), proj.Version.String())
}

// BuildWheel produces {name}-{version}-py3-none-any.whl under outDir and
// returns its path.
func BuildWheel(p *Project, outDir string) (string, error) {
	mtime, err := p.ResolveMTime()
	if err != nil {
		return "", err
	}

	distInfo := distInfoName(p.Project)
	dst := filepath.Join(outDir, WheelFilename(p.Project))

	refs, err := p.FileReferences()
	if err != nil {
		return "", err
	}

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

// buildDistInfo constructs the {name}-{version}.dist-info member set:
// METADATA, WHEEL, LICENSE (if present), entry_points.txt (if any
// scripts/gui-scripts/entry-points are declared) (§4.8).
func buildDistInfo(p *Project, distInfo string, mtime time.Time) ([]fsutil.FileReference, error) {
	var refs []fsutil.FileReference

	readmeBody, err := p.ReadmeBody()
	if err != nil {
		return nil, err
	}
	meta := metadata.Build(p.Project, readmeBody)
	refs = append(refs, fsutil.NewInMemFileReference(path.Join(distInfo, "METADATA"), meta, 0o644, mtime))

	refs = append(refs, fsutil.NewInMemFileReference(path.Join(distInfo, "WHEEL"), buildWheelHeader(), 0o644, mtime))

	licenseBody, err := p.LicenseBody()
	if err != nil {
		return nil, err
	}
	if licenseBody != "" {
		refs = append(refs, fsutil.NewInMemFileReference(path.Join(distInfo, "LICENSE"), []byte(licenseBody), 0o644, mtime))
	}

	if ep := buildEntryPointsTxt(p.Project); ep != nil {
		refs = append(refs, fsutil.NewInMemFileReference(path.Join(distInfo, "entry_points.txt"), ep, 0o644, mtime))
	}

	return refs, nil
}

func buildWheelHeader() []byte {
	return []byte(
		"Wheel-Version: 1.0\n" +
			"Generator: whey\n" +
			"Root-Is-Purelib: true\n" +
			"Tag: " + PythonTag + "-" + ABITag + "-" + PlatformTag + "\n")
}

func writeZip(w io.Writer, refs []fsutil.FileReference, mtime time.Time) error {
	sorted := fsutil.SortedFullNames(refs)
	zw := zip.NewWriter(w)
	for _, ref := range sorted {
		hdr := &zip.FileHeader{
			Name:     ref.FullName(),
			Method:   zip.Deflate,
			Modified: mtime,
		}
		hdr.SetMode(0o644)
		entry, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		f, err := ref.Open()
		if err != nil {
			return err
		}
		_, err = io.Copy(entry, f)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	return zw.Close()
}
