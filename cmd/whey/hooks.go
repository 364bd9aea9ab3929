// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// PEP 517/660 front-ends invoke a build backend as a Python module, not a
// subprocess. Since whey is a Go binary, the equivalent surface is
// exposed as a set of hidden subcommands with the hooks' own names; a
// thin Python `build-backend` shim in a consumer's environment execs
// this binary rather than reimplementing any of C1-C10 in Python.
package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repo-helper/whey/internal/build"
	"github.com/repo-helper/whey/internal/cliutil"
)

func init() {
	argparser.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:    "hook",
	Hidden: true,
	Short:  "PEP 517/660 backend hook entry points",
	Args:   cliutil.OnlySubcommands,
	RunE:   cliutil.RunSubcommands,
}

func init() {
	hookCmd.AddCommand(
		hookSubcommand("build_sdist", hookBuildSdist),
		hookSubcommand("build_wheel", hookBuildWheel),
		hookSubcommand("build_editable", hookBuildEditable),
		hookSubcommand("prepare_metadata_for_build_wheel", hookPrepareMetadataForBuildWheel),
		hookSubcommand("prepare_metadata_for_build_editable", hookPrepareMetadataForBuildEditable),
		hookSubcommand("get_requires_for_build_sdist", hookGetRequiresForBuildSdist),
		hookSubcommand("get_requires_for_build_wheel", hookGetRequiresForBuildWheel),
		hookSubcommand("get_requires_for_build_editable", hookGetRequiresForBuildEditable),
	)
}

// configSettings is the opaque map PEP 517/660 hooks accept and currently
// ignore; it is parsed and carried in hookContext, but no builder receives
// or reads it.
type configSettings map[string]string

func hookSubcommand(name string, run func(ctx *hookContext) (string, error)) *cobra.Command {
	var outDir, metadataDir, configSettingsJSON string
	cmd := &cobra.Command{
		Use:   name + " PROJECT_DIR",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		Short: fmt.Sprintf("Implements the %s PEP 517/660 hook", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			var settings configSettings
			if configSettingsJSON != "" {
				if err := json.Unmarshal([]byte(configSettingsJSON), &settings); err != nil {
					return fmt.Errorf("whey: hook %s: config-settings: %w", name, err)
				}
			}

			root, err := findProjectRoot(args[0])
			if err != nil {
				return err
			}
			lp, err := load(cmd.Context(), root)
			if err != nil {
				return err
			}

			result, err := run(&hookContext{
				project:        lp,
				outDir:         outDir,
				metadataDir:    metadataDir,
				configSettings: settings,
				registry:       build.NewRegistry(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "dist", "Output directory")
	cmd.Flags().StringVar(&metadataDir, "metadata-directory", "", "Pre-built .dist-info directory, if any")
	cmd.Flags().StringVar(&configSettingsJSON, "config-settings", "", "Opaque config_settings, as a JSON object")
	return cmd
}

// hookContext bundles a hook invocation's arguments the way PEP 517/660
// pass them to the Python-side functions.
type hookContext struct {
	project        *loadedProject
	outDir         string
	metadataDir    string
	configSettings configSettings
	registry       *build.Registry
}

func hookBuildSdist(hc *hookContext) (string, error) {
	builder, err := hc.registry.Resolve("sdist", hc.project.Tool.Builders.Sdist)
	if err != nil {
		return "", err
	}
	path, err := builder(hc.project.buildProject(), hc.outDir)
	if err != nil {
		return "", err
	}
	return filenameOf(path), nil
}

func hookBuildWheel(hc *hookContext) (string, error) {
	builder, err := hc.registry.Resolve("wheel", hc.project.Tool.Builders.Wheel)
	if err != nil {
		return "", err
	}
	path, err := builder(hc.project.buildProject(), hc.outDir)
	if err != nil {
		return "", err
	}
	return filenameOf(path), nil
}

func hookBuildEditable(hc *hookContext) (string, error) {
	path, err := build.BuildEditableWheel(hc.project.buildProject(), hc.outDir)
	if err != nil {
		return "", err
	}
	return filenameOf(path), nil
}

// hookPrepareMetadataForBuildWheel builds a standalone
// {name}-{version}.dist-info directory under metadata-directory and
// returns its name, without producing a wheel (§6).
func hookPrepareMetadataForBuildWheel(hc *hookContext) (string, error) {
	return build.PrepareMetadata(hc.project.buildProject(), hc.metadataDir)
}

func hookPrepareMetadataForBuildEditable(hc *hookContext) (string, error) {
	return build.PrepareMetadata(hc.project.buildProject(), hc.metadataDir)
}

// The tool has no build-time requirements beyond itself (§6), so every
// get_requires_for_build_* hook returns an empty requirement list.
func hookGetRequiresForBuildSdist(_ *hookContext) (string, error)    { return "[]", nil }
func hookGetRequiresForBuildWheel(_ *hookContext) (string, error)    { return "[]", nil }
func hookGetRequiresForBuildEditable(_ *hookContext) (string, error) { return "[]", nil }

func filenameOf(path string) string {
	return filepath.Base(path)
}
