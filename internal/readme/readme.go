// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package readme defines the boundary to the README-validation external
// collaborator (§4.9 Non-goals, §6, §7.8): README rendering/linting is out
// of scope for this tool, so the validator is modeled as an interface a
// host can satisfy, not an implementation shipped here.
package readme

import (
	"context"
	"os"

	"github.com/datawire/dlib/dlog"

	"github.com/repo-helper/whey/internal/config"
)

// Diagnostic is one README-validation finding.
type Diagnostic struct {
	Line    int
	Message string
}

// Validator renders/lints a README and reports diagnostics; it never
// mutates the build, only warns.
type Validator interface {
	Validate(ctx context.Context, r *config.Readme, body string) ([]Diagnostic, error)
}

// NoopValidator reports no diagnostics. It is the default when no
// collaborator is wired in, and whenever CHECK_README=="0".
type NoopValidator struct{}

func (NoopValidator) Validate(context.Context, *config.Readme, string) ([]Diagnostic, error) {
	return nil, nil
}

// Check runs v against r unless CHECK_README=="0" (§6), logging any
// diagnostics as warnings. Validation failures never abort a build; per
// §7 they are advisory only.
func Check(ctx context.Context, v Validator, r *config.Readme, body string) {
	if os.Getenv("CHECK_README") == "0" || r == nil || v == nil {
		return
	}
	diags, err := v.Validate(ctx, r, body)
	if err != nil {
		dlog.Warnf(ctx, "readme validation failed: %v", err)
		return
	}
	for _, d := range diags {
		if d.Line > 0 {
			dlog.Warnf(ctx, "readme:%d: %s", d.Line, d.Message)
		} else {
			dlog.Warnf(ctx, "readme: %s", d.Message)
		}
	}
}
