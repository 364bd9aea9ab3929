// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/build"
)

func TestRegistryResolveDefault(t *testing.T) {
	t.Parallel()
	r := build.NewRegistry()
	b, err := r.Resolve("sdist", "")
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestRegistryResolveUnknown(t *testing.T) {
	t.Parallel()
	r := build.NewRegistry()
	_, err := r.Resolve("binary", "")
	require.Error(t, err)
}

func TestRegistryResolveConfigured(t *testing.T) {
	t.Parallel()
	r := build.NewRegistry()
	r.Register("my_custom_wheel", build.BuildWheel)
	b, err := r.Resolve("wheel", "my_custom_wheel")
	require.NoError(t, err)
	assert.NotNil(t, b)
}
