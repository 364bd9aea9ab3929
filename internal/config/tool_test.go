// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/config"
)

func TestLoadToolDefaults(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "my-cool-project"
version = "1.0"
`))
	require.NoError(t, err)
	tool, err := config.LoadTool(context.Background(), raw, "my-cool-project")
	require.NoError(t, err)
	assert.Equal(t, "my_cool_project", tool.Package)
	assert.Equal(t, ".", tool.SourceDir)
}

func TestLoadToolFull(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"

[tool.whey]
package = "foo_pkg"
source-dir = "src"
license-key = "MIT"
base-classifiers = ["Topic :: Utilities"]
platforms = ["Linux"]
python-implementations = ["CPython"]
python-versions = ["3.8", "3.9"]
additional-files = [
    "include *.txt",
    "recursive-include foo/data *.json",
]

[tool.whey.builders]
wheel = "custom_wheel_builder"
`))
	require.NoError(t, err)
	tool, err := config.LoadTool(context.Background(), raw, "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo_pkg", tool.Package)
	assert.Equal(t, "src", tool.SourceDir)
	assert.Equal(t, "MIT", tool.LicenseKey)
	assert.Equal(t, []string{"3.8", "3.9"}, tool.PythonVersions)
	assert.Equal(t, "custom_wheel_builder", tool.Builders.Wheel)
	require.Len(t, tool.AdditionalFiles, 2)
	assert.Equal(t, config.Include, tool.AdditionalFiles[0].Verb)
	assert.Equal(t, config.RecursiveInclude, tool.AdditionalFiles[1].Verb)
	assert.Equal(t, "foo/data", tool.AdditionalFiles[1].Dir)
}

func TestLoadToolRejectsMalformedDirective(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"

[tool.whey]
additional-files = ["garbage"]
`))
	require.NoError(t, err)
	_, err = config.LoadTool(context.Background(), raw, "foo")
	require.Error(t, err)
}
