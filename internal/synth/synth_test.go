// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package synth_test

import (
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/synth"
)

func TestRequiresPython(t *testing.T) {
	t.Parallel()
	spec, err := synth.RequiresPython([]string{"3.9", "3.8", "3.10"})
	require.NoError(t, err)
	assert.Equal(t, ">=3.8", spec.String())
}

func TestRequiresPythonEmptyIsFatal(t *testing.T) {
	t.Parallel()
	_, err := synth.RequiresPython(nil)
	require.Error(t, err)
}

func TestClassifiers(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	tool := &config.ToolConfig{
		LicenseKey:            "MIT",
		PythonVersions:        []string{"3.9", "3.8"},
		Platforms:             []string{"Linux"},
		PythonImplementations: []string{"CPython"},
	}
	got := synth.Classifiers(ctx, tool)
	assert.Equal(t, []string{
		"License :: OSI Approved :: MIT License",
		"Operating System :: POSIX :: Linux",
		"Programming Language :: Python :: 3 :: Only",
		"Programming Language :: Python :: 3.8",
		"Programming Language :: Python :: 3.9",
		"Programming Language :: Python :: Implementation :: CPython",
	}, got)
}

func TestClassifiersDedup(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	tool := &config.ToolConfig{
		BaseClassifiers: []string{"Topic :: Utilities", "Topic :: Utilities"},
	}
	got := synth.Classifiers(ctx, tool)
	assert.Equal(t, []string{"Topic :: Utilities"}, got)
}
