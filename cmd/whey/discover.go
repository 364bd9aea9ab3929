// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// findProjectRoot walks upward from start looking for pyproject.toml, the
// way most PEP 517 front-ends locate the project root when invoked with
// no explicit path (§4.3 "Supplemented features").
func findProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "pyproject.toml")
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no pyproject.toml found in %q or any parent directory", start)
		}
		dir = parent
	}
}
