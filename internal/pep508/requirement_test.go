// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package pep508_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/pep508"
)

func TestParse(t *testing.T) {
	t.Parallel()
	req, err := pep508.Parse(`requests[security,socks] >=2.8.1,<3 ; python_version >= "3.6"`)
	require.NoError(t, err)
	assert.Equal(t, "requests", req.Name)
	assert.Equal(t, []string{"security", "socks"}, req.Extras)
	assert.Equal(t, `python_version >= "3.6"`, req.Marker)
	assert.Len(t, req.Specifier, 2)
}

func TestParseBare(t *testing.T) {
	t.Parallel()
	req, err := pep508.Parse("click")
	require.NoError(t, err)
	assert.Equal(t, "click", req.Name)
	assert.Empty(t, req.Extras)
	assert.Empty(t, req.Marker)
}

func TestWithExtraMarker(t *testing.T) {
	t.Parallel()
	req, err := pep508.Parse(`colorama; platform_system == "Windows"`)
	require.NoError(t, err)
	withExtra := req.WithExtraMarker("color")
	assert.Equal(t, `(platform_system == "Windows") and extra == "color"`, withExtra.Marker)

	bare, err := pep508.Parse("rich")
	require.NoError(t, err)
	withExtra = bare.WithExtraMarker("color")
	assert.Equal(t, `extra == "color"`, withExtra.Marker)
}
