// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/repo-helper/whey/internal/build"
	"github.com/repo-helper/whey/internal/config"
	"github.com/repo-helper/whey/internal/fileselect"
	"github.com/repo-helper/whey/internal/readme"
	"github.com/repo-helper/whey/internal/synth"
)

// loadedProject is every intermediate result of the config pipeline
// (C1-C5), kept around so `whey show` can print each stage.
type loadedProject struct {
	Root    string
	Raw     config.RawConfig
	Project *config.ProjectConfig
	Tool    *config.ToolConfig
	Files   []string
}

// load runs C1-C5 against root's pyproject.toml: parse, validate project
// and tool tables, synthesize dynamic fields, and select files.
func load(ctx context.Context, root string) (*loadedProject, error) {
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return nil, fmt.Errorf("whey: %w", err)
	}
	raw, err := config.LoadRaw(data)
	if err != nil {
		return nil, fmt.Errorf("whey: %w", err)
	}

	proj, err := config.LoadProject(raw)
	if err != nil {
		return nil, fmt.Errorf("whey: %w", err)
	}
	tool, err := config.LoadTool(ctx, raw, proj.Name)
	if err != nil {
		return nil, fmt.Errorf("whey: %w", err)
	}

	if err := synthesizeDynamic(ctx, proj, tool); err != nil {
		return nil, fmt.Errorf("whey: %w", err)
	}

	files, err := fileselect.Select(root, tool)
	if err != nil {
		return nil, fmt.Errorf("whey: %w", err)
	}

	lp := &loadedProject{Root: root, Raw: raw, Project: proj, Tool: tool, Files: files}

	body, err := lp.buildProject().ReadmeBody()
	if err != nil {
		return nil, fmt.Errorf("whey: %w", err)
	}
	readme.Check(ctx, readme.NoopValidator{}, proj.Readme, body)

	return lp, nil
}

// synthesizeDynamic fills in every field proj.Dynamic names (§4.4).
func synthesizeDynamic(ctx context.Context, proj *config.ProjectConfig, tool *config.ToolConfig) error {
	if proj.Dynamic["requires-python"] {
		spec, err := synth.RequiresPython(tool.PythonVersions)
		if err != nil {
			return err
		}
		proj.RequiresPython = spec
	}
	if proj.Dynamic["classifiers"] {
		proj.Classifiers = synth.Classifiers(ctx, tool)
	}
	if proj.Dynamic["dependencies"] {
		proj.Dependencies = synth.Dependencies()
	}
	return nil
}

// buildProject adapts a loadedProject into build.Project, ready for a
// builder in internal/build.
func (lp *loadedProject) buildProject() *build.Project {
	return &build.Project{
		Root:    lp.Root,
		Project: lp.Project,
		Tool:    lp.Tool,
		Files:   lp.Files,
	}
}
