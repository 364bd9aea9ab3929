// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package pep440_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repo-helper/whey/internal/pep440"
)

func TestSortOrder(t *testing.T) {
	t.Parallel()
	groups := map[string][]string{
		"final-releases":          {"0.9", "0.9.1", "0.9.2", "0.9.10", "1.0", "1.0.1", "1.1", "2.0"},
		"pre-releases":            {"4.3a2", "4.3b2", "4.3rc2", "4.3"},
		"post-releases":           {"4.3a2.post1", "4.3b2.post1", "4.3rc2.post1"},
		"developmental-releases":  {"4.3a2.dev1", "4.3b2.dev1", "4.3rc2.dev1", "4.3.post2.dev1"},
		"version-epochs":          {"1.0", "1.1", "2.0", "1!1.0", "1!1.1", "1!2.0"},
	}
	for name, in := range groups {
		in := in
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			versions := make([]*pep440.Version, len(in))
			for i, s := range in {
				v, err := pep440.ParseVersion(s)
				require.NoError(t, err, s)
				versions[i] = v
			}
			shuffled := append([]*pep440.Version(nil), versions...)
			rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			sort.Slice(shuffled, func(i, j int) bool { return shuffled[i].Cmp(*shuffled[j]) < 0 })
			for i := range versions {
				assert.Equal(t, versions[i].String(), shuffled[i].String())
			}
		})
	}
}

func TestParseNormalizesCase(t *testing.T) {
	t.Parallel()
	v, err := pep440.ParseVersion("1.0RC1")
	require.NoError(t, err)
	assert.Equal(t, "1.0rc1", v.String())
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := pep440.ParseVersion("not-a-version")
	assert.Error(t, err)
}

func TestMajorMinorMicro(t *testing.T) {
	t.Parallel()
	v, err := pep440.ParseVersion("3.8")
	require.NoError(t, err)
	assert.Equal(t, 3, v.Major())
	assert.Equal(t, 8, v.Minor())
	assert.Equal(t, 0, v.Micro())
}
