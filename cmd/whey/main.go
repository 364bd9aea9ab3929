// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Command whey builds PEP 517 sdist and wheel artifacts straight from a
// project's pyproject.toml.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	ctx := context.Background()

	if err := argparser.ExecuteContext(ctx); err != nil {
		if tracebackEnabled() {
			fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %+v\n", argparser.CommandPath(), err)
		} else {
			fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		}
		os.Exit(1)
	}
}
