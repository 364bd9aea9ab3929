// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package metadata emits Core Metadata 2.2 documents (§4.6, C6): the
// RFC 822-form PKG-INFO/METADATA text shared by sdists and wheels.
package metadata

import (
	"fmt"
	"strings"

	"github.com/repo-helper/whey/internal/config"
)

// Build assembles the Core Metadata 2.2 document for proj. readmeBody is
// the resolved text of proj.Readme (the caller has already read it off
// disk if it names a file); it is appended as the message body after a
// blank line, or omitted entirely when empty (§4.6).
func Build(proj *config.ProjectConfig, readmeBody string) []byte {
	var b strings.Builder

	hdr := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", name, value)
		}
	}
	multiHdr := func(name string, values []string) {
		for _, v := range values {
			fmt.Fprintf(&b, "%s: %s\n", name, v)
		}
	}

	hdr("Metadata-Version", "2.2")
	hdr("Name", proj.Name)
	hdr("Version", proj.Version.String())
	hdr("Summary", proj.Description)

	if author := joinPeople(proj.Authors); author != "" {
		hdr("Author", author)
	}
	if authorEmail := joinEmails(proj.Authors); authorEmail != "" {
		hdr("Author-email", authorEmail)
	}
	if maint := joinPeople(proj.Maintainers); maint != "" {
		hdr("Maintainer", maint)
	}
	if maintEmail := joinEmails(proj.Maintainers); maintEmail != "" {
		hdr("Maintainer-email", maintEmail)
	}

	if proj.License != nil && proj.License.Text != "" {
		hdr("License", proj.License.Text)
	}

	if len(proj.Keywords) > 0 {
		hdr("Keywords", strings.Join(proj.Keywords, ","))
	}

	multiHdr("Classifier", proj.Classifiers)

	if proj.RequiresPython != nil {
		hdr("Requires-Python", proj.RequiresPython.String())
	}

	if proj.URLs != nil {
		for pair := proj.URLs.Oldest(); pair != nil; pair = pair.Next() {
			hdr("Project-URL", fmt.Sprintf("%s, %s", pair.Key, pair.Value))
		}
	}

	for _, req := range proj.Dependencies {
		hdr("Requires-Dist", req.String())
	}
	if proj.OptionalDependencies != nil {
		for pair := proj.OptionalDependencies.Oldest(); pair != nil; pair = pair.Next() {
			hdr("Provides-Extra", pair.Key)
			for _, req := range pair.Value {
				hdr("Requires-Dist", req.WithExtraMarker(pair.Key).String())
			}
		}
	}

	if proj.Readme != nil && proj.Readme.ContentType != "" {
		ct := proj.Readme.ContentType
		if proj.Readme.Charset != "" {
			ct = fmt.Sprintf("%s; charset=%s", ct, proj.Readme.Charset)
		}
		hdr("Description-Content-Type", ct)
	}

	if readmeBody != "" {
		b.WriteString("\n")
		b.WriteString(readmeBody)
	}

	return []byte(b.String())
}

func joinPeople(people []config.Person) string {
	var names []string
	for _, p := range people {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}

func joinEmails(people []config.Person) string {
	var emails []string
	for _, p := range people {
		if p.Email != "" {
			emails = append(emails, p.Email)
		}
	}
	return strings.Join(emails, ", ")
}
