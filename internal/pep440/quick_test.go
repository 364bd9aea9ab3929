// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package pep440_test

import (
	"testing"
	"testing/quick"

	"github.com/repo-helper/whey/internal/pep440"
	"github.com/repo-helper/whey/internal/testutil"
)

// TestRoundTripQuick checks that for any release segment built from random
// non-negative components, parsing the rendered string recovers a version
// that compares equal to, and renders identically to, the original.
func TestRoundTripQuick(t *testing.T) {
	t.Parallel()
	prop := func(epoch uint8, major, minor, patch uint16) bool {
		v := pep440.Version{
			Epoch:   int(epoch),
			Release: []int{int(major), int(minor), int(patch)},
		}
		parsed, err := pep440.ParseVersion(v.String())
		if err != nil {
			return false
		}
		return parsed.Cmp(v) == 0 && parsed.String() == v.String()
	}
	testutil.QuickCheck(t, prop, quick.Config{MaxCount: 200})
}
