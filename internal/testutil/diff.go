// Copyright (C) 2021-2022  Ambassador Labs
// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var dumpConfig = spew.ConfigState{ //nolint:exhaustivestruct
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump renders v as a deterministic multi-line value dump, for embedding a
// structured value in a test failure message.
func Dump(v any) string {
	return dumpConfig.Sdump(v)
}

// AssertEqualText fails t with a unified diff, rather than testify's
// side-by-side dump, when exp and act differ. Meant for generated
// multi-line text (METADATA, RECORD, entry_points.txt) where a line-level
// diff is far more readable than a full-string dump.
func AssertEqualText(t *testing.T, exp, act, what string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{ //nolint:exhaustivestruct
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	t.Errorf("%s mismatch:\n%s", what, diff)
	return false
}
