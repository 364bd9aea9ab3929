// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package metadata_test

import (
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/metadata"
	"github.com/repo-helper/whey/internal/pep440"
	"github.com/repo-helper/whey/internal/pep508"
	"github.com/repo-helper/whey/internal/testutil"
)

func TestBuildBasic(t *testing.T) {
	t.Parallel()
	ver, err := pep440.ParseVersion("1.2.3")
	require.NoError(t, err)

	urls := orderedmap.New[string, string]()
	urls.Set("Homepage", "https://example.com")

	proj := &config.ProjectConfig{
		Name:        "foo",
		Version:     ver,
		Description: "a test project",
		Classifiers: []string{"Topic :: Utilities"},
		URLs:        urls,
	}

	doc := string(metadata.Build(proj, ""))
	assert.Contains(t, doc, "Metadata-Version: 2.2\n")
	assert.Contains(t, doc, "Name: foo\n")
	assert.Contains(t, doc, "Version: 1.2.3\n")
	assert.Contains(t, doc, "Summary: a test project\n")
	assert.Contains(t, doc, "Classifier: Topic :: Utilities\n")
	assert.Contains(t, doc, "Project-URL: Homepage, https://example.com\n")
}

func TestBuildRequiresDistExtraMarker(t *testing.T) {
	t.Parallel()
	ver, err := pep440.ParseVersion("1.0")
	require.NoError(t, err)
	req, err := pep508.Parse("pytest")
	require.NoError(t, err)

	optDeps := orderedmap.New[string, []pep508.Requirement]()
	optDeps.Set("test", []pep508.Requirement{*req})

	proj := &config.ProjectConfig{
		Name:                 "foo",
		Version:              ver,
		OptionalDependencies: optDeps,
	}
	doc := string(metadata.Build(proj, ""))
	assert.Contains(t, doc, `Requires-Dist: pytest; extra == "test"`)
	assert.Contains(t, doc, "Provides-Extra: test\n")
}

func TestBuildReadmeBody(t *testing.T) {
	t.Parallel()
	ver, err := pep440.ParseVersion("1.0")
	require.NoError(t, err)
	proj := &config.ProjectConfig{
		Name:    "foo",
		Version: ver,
		Readme:  &config.Readme{ContentType: "text/markdown", Charset: "UTF-8"},
	}
	doc := string(metadata.Build(proj, "# Hello\n"))
	assert.Contains(t, doc, "Description-Content-Type: text/markdown; charset=UTF-8\n")
	assert.Contains(t, doc, "\n\n# Hello\n")
}

func TestBuildExactDocument(t *testing.T) {
	t.Parallel()
	ver, err := pep440.ParseVersion("1.0")
	require.NoError(t, err)
	proj := &config.ProjectConfig{
		Name:    "foo",
		Version: ver,
	}
	doc := string(metadata.Build(proj, ""))
	want := "Metadata-Version: 2.2\nName: foo\nVersion: 1.0\n"
	testutil.AssertEqualText(t, want, doc, "METADATA")
}
