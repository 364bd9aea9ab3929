// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package python

import (
	"fmt"
	"io"
)

// OrderedSection is a single [section] of an INI document, with keys kept
// in insertion order so that repeated writes over identical input are
// byte-identical (required by this repo's reproducible-build invariant).
type OrderedSection struct {
	Name string
	Keys []string
	Vals map[string]string
}

// WriteINI writes sections as a configparser-compatible INI document: one
// blank line between sections, "key = value" pairs, no interpolation.
//
// This is the write-side counterpart to ConfigParser.Parse: CPython's
// configparser doesn't need a dedicated writer type since dict iteration
// order is insertion order in modern CPython, but Go maps don't guarantee
// that, hence the explicit Keys ordering here.
func WriteINI(w io.Writer, sections []OrderedSection) error {
	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", section.Name); err != nil {
			return err
		}
		for _, key := range section.Keys {
			if _, err := fmt.Fprintf(w, "%s = %s\n", key, section.Vals[key]); err != nil {
				return err
			}
		}
	}
	return nil
}
