// Copyright (C) 2021-2022  Ambassador Labs
// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package python

import (
	"crypto/sha256"
	"hash"
)

// HashAlgorithms mirrors the subset of Python `hashlib.algorithms_guaranteed`
// that PEP 376's RECORD format permits; this tool only ever writes sha256
// hashes, but the table is kept open-ended for the benefit of any future
// `--record-hash-algorithm` flag.
var HashAlgorithms = map[string]func() hash.Hash{ //nolint:gochecknoglobals
	"sha256": sha256.New,
}
