// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package pep440_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/pep440"
)

func TestSpecifierMatch(t *testing.T) {
	t.Parallel()
	cases := []struct {
		spec  string
		ver   string
		match bool
	}{
		{">=3.7", "3.7", true},
		{">=3.7", "3.6", false},
		{">=3.7", "3.8", true},
		{"~=1.1", "1.1.0", true},
		{"~=1.1", "1.2", true},
		{"~=1.1", "2.0", false},
		{"==1.1.*", "1.1.post1", true},
		{"==1.1", "1.1.post1", false},
		{"!=1.1.*", "1.1.post1", false},
		{">1.7", "1.7.1", true},
		{">1.7", "1.7.0.post1", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.spec+"_"+tc.ver, func(t *testing.T) {
			t.Parallel()
			spec, err := pep440.ParseSpecifier(tc.spec)
			require.NoError(t, err)
			ver, err := pep440.ParseVersion(tc.ver)
			require.NoError(t, err)
			assert.Equal(t, tc.match, spec.Match(*ver))
		})
	}
}

func TestParseSpecifierRejectsArbitraryEquality(t *testing.T) {
	t.Parallel()
	_, err := pep440.ParseSpecifier("===1.0")
	assert.Error(t, err)
}
