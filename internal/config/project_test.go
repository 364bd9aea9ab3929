// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/config"
)

const minimalProjectTOML = `
[project]
name = "foo"
version = "1.2.3"
`

func TestLoadProjectMinimal(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(minimalProjectTOML))
	require.NoError(t, err)
	proj, err := config.LoadProject(raw)
	require.NoError(t, err)
	assert.Equal(t, "foo", proj.Name)
	assert.Equal(t, "1.2.3", proj.Version.String())
	assert.Empty(t, proj.Dynamic)
}

func TestLoadProjectRejectsUnknownKey(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"
bogus = "nope"
`))
	require.NoError(t, err)
	_, err = config.LoadProject(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestLoadProjectRejectsDynamicNameVersion(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"
dynamic = ["name"]
`))
	require.NoError(t, err)
	_, err = config.LoadProject(raw)
	require.Error(t, err)
}

func TestLoadProjectRejectsUnpermittedDynamic(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"
dynamic = ["description"]
`))
	require.NoError(t, err)
	_, err = config.LoadProject(raw)
	require.Error(t, err)
}

func TestLoadProjectClassifiersAndDeps(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"
classifiers = ["Typing :: Typed", "Topic :: Utilities"]
dependencies = ["requests>=2,<3", "click"]

[project.optional-dependencies]
test = ["pytest"]
`))
	require.NoError(t, err)
	proj, err := config.LoadProject(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Typing :: Typed", "Topic :: Utilities"}, proj.Classifiers)
	require.Len(t, proj.Dependencies, 2)
	assert.Equal(t, "requests", proj.Dependencies[0].Name)
	require.NotNil(t, proj.OptionalDependencies)
	reqs, ok := proj.OptionalDependencies.Get("test")
	require.True(t, ok)
	require.Len(t, reqs, 1)
	assert.Equal(t, "pytest", reqs[0].Name)
}

func TestLoadProjectRejectsUnknownClassifier(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"
classifiers = ["Not :: A :: Real :: Classifier"]
`))
	require.NoError(t, err)
	_, err = config.LoadProject(raw)
	require.Error(t, err)
}

func TestLoadProjectURLsOrdered(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"

[project.urls]
Homepage = "https://example.com"
Repository = "https://example.com/repo"
`))
	require.NoError(t, err)
	proj, err := config.LoadProject(raw)
	require.NoError(t, err)
	require.NotNil(t, proj.URLs)
	var keys []string
	for pair := proj.URLs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"Homepage", "Repository"}, keys)
}

func TestLoadProjectEntryPointsRejectsReservedGroup(t *testing.T) {
	t.Parallel()
	raw, err := config.LoadRaw([]byte(`
[project]
name = "foo"
version = "1.0"

[project.entry-points.console_scripts]
foo = "foo:main"
`))
	require.NoError(t, err)
	_, err = config.LoadProject(raw)
	require.Error(t, err)
}
