// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build_test

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/build"
	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/pep440"
)

func newTestProject(t *testing.T) *build.Project {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "foo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "foo", "__init__.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[project]\n"), 0o644))

	ver, err := pep440.ParseVersion("1.0.0")
	require.NoError(t, err)

	scripts := orderedmap.New[string, string]()
	scripts.Set("foo-cli", "foo:main")

	return &build.Project{
		Root: root,
		Project: &config.ProjectConfig{
			Name:    "foo",
			Version: ver,
			Scripts: scripts,
		},
		Tool: &config.ToolConfig{Package: "foo", SourceDir: "."},
		Files: []string{
			"foo/__init__.py",
			"pyproject.toml",
		},
	}
}

func TestBuildSdist(t *testing.T) {
	t.Parallel()
	p := newTestProject(t)
	outDir := t.TempDir()

	path, err := build.BuildSdist(p, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "foo-1.0.0.tar.gz"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	assert.Equal(t, []string{"foo-1.0.0/PKG-INFO", "foo-1.0.0/foo/__init__.py", "foo-1.0.0/pyproject.toml"}, names)
}

func TestBuildWheel(t *testing.T) {
	t.Parallel()
	p := newTestProject(t)
	outDir := t.TempDir()

	path, err := build.BuildWheel(p, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "foo-1.0.0-py3-none-any.whl"), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "foo/__init__.py")
	assert.Contains(t, names, "foo-1.0.0.dist-info/METADATA")
	assert.Contains(t, names, "foo-1.0.0.dist-info/WHEEL")
	assert.Contains(t, names, "foo-1.0.0.dist-info/RECORD")
	assert.Contains(t, names, "foo-1.0.0.dist-info/entry_points.txt")
}

func TestBuildEditableWheel(t *testing.T) {
	t.Parallel()
	p := newTestProject(t)
	outDir := t.TempDir()

	path, err := build.BuildEditableWheel(p, outDir)
	require.NoError(t, err)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "foo.pth")
	assert.NotContains(t, names, "foo/__init__.py")
}
