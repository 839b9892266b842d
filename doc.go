// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package splinter implements a compressed bitmap for small-to-mid
// cardinality sets of uint32 values.
//
// A value is decomposed big-endian into four bytes and descends a
// 4-level adaptive partition tree: three levels of Partition (one per
// high-order byte) bottoming out in a Block holding the low-order byte.
// Both Partition key-occupancy and Block membership use whichever of
// four storage classes — Vec, Bitmap, Run, Tree — encodes the same bits
// smallest; see internal/keyset.
//
// Splinter is the owning, mutable container; SplinterRef is a zero-copy,
// read-only view over an already-serialized byte slice, answering every
// query directly against the bytes without expanding them into a tree.
//
// Splinter assumes a single writer and leaves synchronization to the
// caller.
package splinter
