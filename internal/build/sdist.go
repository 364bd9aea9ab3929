// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/metadata"
)

// SdistFilename returns the sdist archive's basename for proj, without
// building anything.
func SdistFilename(proj *config.ProjectConfig) string {
	return fmt.Sprintf("%s-%s.tar.gz", proj.Name, proj.Version.String())
}

// BuildSdist produces {name}-{version}.tar.gz under outDir (§4.7) and
// returns its path.
func BuildSdist(p *Project, outDir string) (string, error) {
	mtime, err := p.ResolveMTime()
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s", p.Project.Name, p.Project.Version.String())
	dst := filepath.Join(outDir, SdistFilename(p.Project))

	readmeBody, err := p.ReadmeBody()
	if err != nil {
		return "", err
	}
	pkgInfo := metadata.Build(p.Project, readmeBody)

	files := ensurePyprojectToml(p.Files)

	if err := writeAtomic(dst, func(f *os.File) error {
		gz, gzErr := gzip.NewWriterLevel(f, gzip.BestCompression)
		if gzErr != nil {
			return gzErr
		}
		gz.ModTime = time.Unix(0, 0).UTC() // reproducible gzip header (§4.7)
		tw := tar.NewWriter(gz)

		if err := writeTarEntry(tw, name+"/PKG-INFO", pkgInfo, mtime); err != nil {
			return err
		}
		for _, rel := range files {
			if err := writeTarFile(tw, p.Root, rel, name+"/"+rel, mtime); err != nil {
				return err
			}
		}
		if err := tw.Close(); err != nil {
			return err
		}
		return gz.Close()
	}); err != nil {
		return "", err
	}
	return dst, nil
}

// ensurePyprojectToml guarantees pyproject.toml is present in the sdist
// regardless of file-selection results (§4.7).
func ensurePyprojectToml(files []string) []string {
	for _, f := range files {
		if f == "pyproject.toml" {
			return files
		}
	}
	out := append([]string{"pyproject.toml"}, files...)
	sort.Strings(out)
	return out
}

func writeTarEntry(tw *tar.Writer, name string, content []byte, mtime time.Time) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  mtime,
		Uid:      0,
		Gid:      0,
		Uname:    "",
		Gname:    "",
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

func writeTarFile(tw *tar.Writer, root, relSrc, archName string, mtime time.Time) error {
	abs := filepath.Join(root, filepath.FromSlash(relSrc))
	fi, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("sdist: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("sdist: %w", err)
	}
	defer f.Close()

	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     archName,
		Mode:     0o644,
		Size:     fi.Size(),
		ModTime:  mtime,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}
