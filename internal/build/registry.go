// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package build

import "fmt"

// Builder is one named archive builder, resolved by role (sdist, wheel,
// binary) against tool.whey.builders (§4.10).
type Builder func(p *Project, outDir string) (string, error)

// Registry maps builder name to implementation. The built-in names
// (whey_sdist, whey_wheel, whey_editable) are always registered;
// whey_binary is optional and absent unless a host adds one.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a Registry pre-populated with the built-in sdist,
// wheel, and editable-wheel builders.
func NewRegistry() *Registry {
	return &Registry{
		builders: map[string]Builder{
			"whey_sdist":    BuildSdist,
			"whey_wheel":    BuildWheel,
			"whey_editable": BuildEditableWheel,
		},
	}
}

// Register adds or overrides a named builder, for hosts embedding whey
// with their own binary builder.
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// Resolve looks up a builder by role-configured name, falling back to the
// built-in name for that role when configuredName is empty.
func (r *Registry) Resolve(role, configuredName string) (Builder, error) {
	name := configuredName
	if name == "" {
		name = "whey_" + role
	}
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("build: no builder registered for role %q under name %q (known: %s)",
			role, name, r.knownNames())
	}
	return b, nil
}

func (r *Registry) knownNames() string {
	var out string
	for name := range r.builders {
		if out != "" {
			out += ", "
		}
		out += name
	}
	return out
}
