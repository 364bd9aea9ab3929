// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

// Package fsutil provides the FileReference abstraction shared by the
// sdist and wheel builders: a uniform handle over files that may come from
// the project tree on disk or may be synthesized in memory (PKG-INFO,
// METADATA, WHEEL, entry_points.txt, RECORD, the editable-install
// redirector), all addressable by their archive-relative path.
package fsutil

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// FileReference is one member of a FileList (§3): a path relative to the
// archive root, stat-like metadata, and an opener for its content. A
// directory FileReference (fs.FileInfo.IsDir() == true) has no content.
type FileReference interface {
	fs.FileInfo

	// FullName returns the archive-relative path, forward-slash separated,
	// without a leading "/".
	FullName() string

	Open() (io.ReadCloser, error)
}

// OSFileReference is a FileReference backed by a real file on disk.
type OSFileReference struct {
	fs.FileInfo
	AbsPath  string
	ArchName string
}

func (fr *OSFileReference) FullName() string { return fr.ArchName }

func (fr *OSFileReference) Open() (io.ReadCloser, error) {
	return os.Open(fr.AbsPath)
}

// NewOSFileReference stats path on disk and returns a FileReference whose
// archive-relative name is archName.
func NewOSFileReference(absPath, archName string) (*OSFileReference, error) {
	fi, err := os.Lstat(absPath)
	if err != nil {
		return nil, err
	}
	return &OSFileReference{FileInfo: fi, AbsPath: absPath, ArchName: archName}, nil
}

// InMemFileReference is a FileReference whose content is already resident
// in memory, used for generated files like METADATA or RECORD.
type InMemFileReference struct {
	fs.FileInfo
	MFullName string
	MContent  []byte
}

func (fr *InMemFileReference) FullName() string { return fr.MFullName }
func (fr *InMemFileReference) Name() string      { return path.Base(fr.MFullName) }
func (fr *InMemFileReference) Size() int64       { return int64(len(fr.MContent)) }
func (fr *InMemFileReference) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(fr.MContent)), nil
}

// NewInMemFileReference builds an InMemFileReference carrying its own
// synthetic fs.FileInfo, so builders never have to guard against a nil
// embedded FileInfo when reading Mode()/ModTime().
func NewInMemFileReference(fullName string, content []byte, mode fs.FileMode, modTime time.Time) *InMemFileReference {
	return &InMemFileReference{
		FileInfo:  &syntheticFileInfo{name: path.Base(fullName), mode: mode, modTime: modTime, size: int64(len(content))},
		MFullName: fullName,
		MContent:  content,
	}
}

type syntheticFileInfo struct {
	name    string
	mode    fs.FileMode
	modTime time.Time
	size    int64
}

func (fi *syntheticFileInfo) Name() string       { return fi.name }
func (fi *syntheticFileInfo) Size() int64        { return fi.size }
func (fi *syntheticFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *syntheticFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *syntheticFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *syntheticFileInfo) Sys() any           { return nil }

var (
	_ FileReference = (*OSFileReference)(nil)
	_ FileReference = (*InMemFileReference)(nil)
)

// SortedFullNames returns refs sorted by FullName using a part-wise
// comparison (rather than a raw string compare) so that "-" < "/" < EOF
// ordering doesn't put e.g. "foo-bar" before "foo/bar" when a byte compare
// would disagree with a path-segment compare. This guarantees the
// deterministic archive-member order required by §5.
func SortedFullNames(refs []FileReference) []FileReference {
	sorted := append([]FileReference(nil), refs...)
	sort.Slice(sorted, func(i, j int) bool {
		iParts := strings.Split(sorted[i].FullName(), "/")
		jParts := strings.Split(sorted[j].FullName(), "/")
		for idx := 0; idx < len(iParts) || idx < len(jParts); idx++ {
			var iPart, jPart string
			if idx < len(iParts) {
				iPart = iParts[idx]
			}
			if idx < len(jParts) {
				jPart = jParts[idx]
			}
			if iPart != jPart {
				return iPart < jPart
			}
		}
		return false
	})
	return sorted
}
