// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package cliutil_test

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/repo-helper/whey/internal/cliutil"
)

//nolint:paralleltest // can't use .Parallel() with .Setenv()
func TestHelpTemplate(t *testing.T) {
	t.Setenv("COLUMNS", "80")
	noopRunE := func(_ *cobra.Command, _ []string) error {
		return nil
	}
	cmd := &cobra.Command{
		Use:   "whey [flags]",
		Args:  cobra.ArbitraryArgs,
		Short: "Build Python sdists and wheels from pyproject.toml",
		Long: "Build Python sdists and wheels from pyproject.toml.  " +
			"This is a longer description that may need to be word-wrapped " +
			"when the terminal is narrow.",
		RunE: noopRunE,
	}
	cmd.Flags().BoolP("sdist", "s", false, "Build an sdist")
	cmd.Flags().BoolP("wheel", "w", false, "Build a wheel")
	cmd.SetHelpTemplate(cliutil.HelpTemplate)

	var out strings.Builder
	cmd.SetOutput(&out)
	cmd.HelpFunc()(cmd, []string{"--help"})

	assert.Contains(t, out.String(), "Usage: whey [flags]\n")
	assert.Contains(t, out.String(), "-s, --sdist")
	assert.Contains(t, out.String(), "-w, --wheel")
}
