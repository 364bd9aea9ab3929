// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/repo-helper/whey/internal/fsutil"
	"github.com/repo-helper/whey/internal/python"
)

// RecordRow is one line of a wheel's RECORD file (PEP 376): path,
// url-safe-unpadded-base64 sha256 digest, and size. The RECORD's own row
// carries an empty hash and size.
type RecordRow struct {
	Path string
	Hash string
	Size int64
}

func (r RecordRow) String() string {
	return fmt.Sprintf("%s,%s,%s", r.Path, r.Hash, sizeField(r))
}

func sizeField(r RecordRow) string {
	if r.Hash == "" {
		return ""
	}
	return fmt.Sprintf("%d", r.Size)
}

// BuildRecord hashes every ref with sha256 and renders the RECORD document,
// LF-terminated, with recordPath itself appended as the empty-hash row
// (§4.8).
func BuildRecord(refs []fsutil.FileReference, recordPath string) ([]byte, error) {
	newHash, ok := python.HashAlgorithms["sha256"]
	if !ok {
		return nil, fmt.Errorf("metadata: no sha256 implementation registered")
	}

	var b strings.Builder
	for _, ref := range refs {
		h := newHash()
		f, err := ref.Open()
		if err != nil {
			return nil, fmt.Errorf("metadata: RECORD: %s: %w", ref.FullName(), err)
		}
		size, err := io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("metadata: RECORD: %s: %w", ref.FullName(), err)
		}
		digest := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
		row := RecordRow{Path: ref.FullName(), Hash: "sha256=" + digest, Size: size}
		b.WriteString(row.String())
		b.WriteString("\n")
	}
	b.WriteString(RecordRow{Path: recordPath}.String())
	b.WriteString("\n")
	return []byte(b.String()), nil
}
