// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package fileselect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/fileselect"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestSelectSeedAndExcludes(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "foo/__init__.py", "")
	writeFile(t, root, "foo/mod.py", "")
	writeFile(t, root, "foo/mod.pyc", "")
	writeFile(t, root, "foo/py.typed", "")
	writeFile(t, root, "foo/__pycache__/mod.cpython-311.pyc", "")

	tool := &config.ToolConfig{Package: "foo", SourceDir: "."}
	got, err := fileselect.Select(root, tool)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo/__init__.py", "foo/mod.py", "foo/py.typed"}, got)
}

func TestSelectAdditionalFiles(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "foo/__init__.py", "")
	writeFile(t, root, "README.md", "hi")
	writeFile(t, root, "data/config.json", "{}")

	tool := &config.ToolConfig{
		Package:   "foo",
		SourceDir: ".",
		AdditionalFiles: []config.ManifestDirective{
			{Verb: config.Include, Patterns: []string{"README.md"}},
			{Verb: config.RecursiveInclude, Dir: "data", Patterns: []string{"*.json"}},
		},
	}
	got, err := fileselect.Select(root, tool)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "data/config.json", "foo/__init__.py"}, got)
}

func TestSelectIncludeWithDirectoryComponent(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "foo/__init__.py", "")
	writeFile(t, root, "spam/data/one.txt", "")
	writeFile(t, root, "spam/data/two.csv", "")
	writeFile(t, root, "docs/readme.rst", "")

	tool := &config.ToolConfig{
		Package:   "foo",
		SourceDir: ".",
		AdditionalFiles: []config.ManifestDirective{
			{Verb: config.Include, Patterns: []string{"spam/data/*.txt", "docs/*.rst"}},
		},
	}
	got, err := fileselect.Select(root, tool)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/readme.rst", "foo/__init__.py", "spam/data/one.txt"}, got)
}

func TestSelectExcludeWithDirectoryComponent(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "foo/__init__.py", "")
	writeFile(t, root, "spam/data/one.txt", "")
	writeFile(t, root, "spam/data/two.txt", "")

	tool := &config.ToolConfig{
		Package:   "foo",
		SourceDir: ".",
		AdditionalFiles: []config.ManifestDirective{
			{Verb: config.Include, Patterns: []string{"spam/data/*.txt"}},
			{Verb: config.Exclude, Patterns: []string{"spam/data/two.txt"}},
		},
	}
	got, err := fileselect.Select(root, tool)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo/__init__.py", "spam/data/one.txt"}, got)
}

func TestSelectExcludeDoesNotRemoveAutoIncluded(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "foo/__init__.pyi", "")

	tool := &config.ToolConfig{
		Package:   "foo",
		SourceDir: ".",
		AdditionalFiles: []config.ManifestDirective{
			{Verb: config.RecursiveExclude, Dir: "foo", Patterns: []string{"*.pyi"}},
		},
	}
	got, err := fileselect.Select(root, tool)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo/__init__.pyi"}, got)
}
