// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/repo-helper/whey/internal/build"
	"github.com/repo-helper/whey/internal/cliutil"
)

// showReport is what `whey show` dumps: the fully-normalized project and
// tool config plus what each configured builder would name its artifact,
// without writing anything to disk.
type showReport struct {
	Name           string   `yaml:"name"`
	Version        string   `yaml:"version"`
	RequiresPython string   `yaml:"requires_python"`
	Classifiers    []string `yaml:"classifiers"`
	Files          []string `yaml:"files"`
	SdistFilename  string   `yaml:"sdist_filename"`
	WheelFilename  string   `yaml:"wheel_filename"`
}

var showCmd = &cobra.Command{
	Use:   "show [PROJECT_DIR]",
	Short: "Show the normalized project config and computed artifact names, without building anything",
	Args:  cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
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

	report := showReport{
		Name:           lp.Project.Name,
		Version:        lp.Project.Version.String(),
		RequiresPython: lp.Project.RequiresPython.String(),
		Classifiers:    lp.Project.Classifiers,
		Files:          lp.Files,
		SdistFilename:  build.SdistFilename(lp.Project),
		WheelFilename:  build.WheelFilename(lp.Project),
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
