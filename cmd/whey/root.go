// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/repo-helper/whey/internal/build"
	"github.com/repo-helper/whey/internal/cliutil"
)

var (
	flagSdist     bool
	flagWheel     bool
	flagBinary    bool
	flagOutDir    string
	flagTraceback bool
	flagVerbose   bool
)

var argparser = &cobra.Command{
	Use:   "whey [flags] [PROJECT_DIR]",
	Short: "Build Python sdists and wheels from pyproject.toml",
	Long: "whey builds PEP 517 sdist and wheel artifacts directly from the " +
		"[project] and [tool.whey] tables of a pyproject.toml, with no " +
		"intermediate setup.py or setup.cfg.",

	Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
	RunE: runBuild,

	Version: moduleVersion(), // non-empty so cobra registers --version

	SilenceErrors: true, // main() handles this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc handles it
}

// moduleVersion reports the version embedded in the binary by the Go
// toolchain (module version for `go install`, pseudo-version or "(devel)"
// for a local build), so --version reflects however whey was built.
func moduleVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)

	flags := argparser.Flags()
	flags.BoolVarP(&flagSdist, "sdist", "s", false, "Build an sdist")
	flags.BoolVarP(&flagWheel, "wheel", "w", false, "Build a wheel")
	flags.BoolVarP(&flagBinary, "binary", "b", false, "Build a binary artifact via the configured binary builder")
	flags.StringVarP(&flagOutDir, "out-dir", "o", "dist", "Output directory")
	flags.BoolVarP(&flagTraceback, "traceback", "T", false, "Emit full error context on failures")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")

	argparser.AddCommand(showCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	root, err := findProjectRoot(start)
	if err != nil {
		return err
	}

	lp, err := load(ctx, root)
	if err != nil {
		return err
	}
	proj := lp.buildProject()

	if err := os.MkdirAll(flagOutDir, 0o777); err != nil {
		return fmt.Errorf("whey: %w", err)
	}

	roles := selectedRoles()
	registry := build.NewRegistry()
	for _, role := range roles {
		builderName := builderNameFor(lp, role)
		builder, err := registry.Resolve(role, builderName)
		if err != nil {
			return err
		}
		debugf(ctx, "resolved builder %q for role %q", builderName, role)
		filename, err := builder(proj, flagOutDir)
		if err != nil {
			return err
		}
		dlog.Infof(ctx, "built %s", filename)
		fmt.Fprintln(cmd.OutOrStdout(), filename)
	}
	return nil
}

// selectedRoles applies the §6 default: with no flags, build sdist+wheel.
func selectedRoles() []string {
	if !flagSdist && !flagWheel && !flagBinary {
		return []string{"sdist", "wheel"}
	}
	var roles []string
	if flagSdist {
		roles = append(roles, "sdist")
	}
	if flagWheel {
		roles = append(roles, "wheel")
	}
	if flagBinary {
		roles = append(roles, "binary")
	}
	return roles
}

func builderNameFor(lp *loadedProject, role string) string {
	switch role {
	case "sdist":
		return lp.Tool.Builders.Sdist
	case "wheel":
		return lp.Tool.Builders.Wheel
	case "binary":
		return lp.Tool.Builders.Binary
	default:
		return ""
	}
}

// debugf logs a message at debug level when --verbose is set; otherwise
// it's a no-op, since dlog's default context logger already prints Info
// and above without any custom logger being installed.
func debugf(ctx context.Context, format string, args ...any) {
	if flagVerbose {
		dlog.Debugf(ctx, format, args...)
	}
}

func tracebackEnabled() bool {
	return flagTraceback || os.Getenv("WHEY_TRACEBACK") != ""
}
