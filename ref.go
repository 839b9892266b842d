// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import "github.com/gaissmai/splinter/internal/node"

// Backer is any byte container a SplinterRef can borrow from — a plain
// []byte wrapped in RawBytes, a memory-mapped file, or a lazily
// decompressed buffer. It stands in for Rust's Deref<[u8]> bound: Go has
// no borrow checker, so SplinterRef just holds onto B until the caller
// lets it go and leans on the garbage collector instead of an explicit
// drop.
type Backer interface {
	Bytes() []byte
}

// RawBytes adapts a plain []byte to Backer.
type RawBytes []byte

func (r RawBytes) Bytes() []byte { return r }

// SplinterRef is a zero-copy, read-only view over a serialized Splinter.
// Constructing one never allocates or copies the backing bytes; every
// query parses directly from them on demand. SplinterRef never mutates
// the bytes it borrows.
type SplinterRef[B Backer] struct {
	backer     B
	nodeRegion []byte
	rootPos    int
	card       uint64
}

// ParseRef validates the header/trailer framing of backer's bytes and
// returns a zero-copy view over them. Node-level corruption beyond the
// outer framing is not validated up front; it is caught lazily, per
// query, and degrades a query to a failure answer rather than panicking
// (Contains and Select report false, Rank returns -1, Iter and Range stop
// early).
func ParseRef[B Backer](backer B) (SplinterRef[B], error) {
	data := backer.Bytes()
	nodeRegion, rootPos, card, err := parseTree(data)
	if err != nil {
		return SplinterRef[B]{}, err
	}
	return SplinterRef[B]{backer: backer, nodeRegion: nodeRegion, rootPos: rootPos, card: card}, nil
}

func (r SplinterRef[B]) Cardinality() uint64 { return r.card }

func (r SplinterRef[B]) IsEmpty() bool { return r.card == 0 }

func (r SplinterRef[B]) Contains(v uint32) bool {
	ok, err := node.ContainsBytes(r.nodeRegion, r.rootPos, v)
	return err == nil && ok
}

// Rank returns the number of members <= v, or -1 if the backing bytes
// are corrupted beyond the outer framing.
func (r SplinterRef[B]) Rank(v uint32) int {
	rank0, err := node.Rank0Bytes(r.nodeRegion, r.rootPos, v)
	if err != nil {
		return -1
	}
	return rank0 + 1
}

// Select returns the i-th member (0-based, ascending).
func (r SplinterRef[B]) Select(i uint64) (uint32, bool) {
	v, ok, err := node.SelectBytes(r.nodeRegion, r.rootPos, i)
	if err != nil {
		return 0, false
	}
	return v, ok
}

// Iter returns every member, ascending. A parse failure partway through
// (corrupted bytes) simply ends iteration early rather than panicking.
func (r SplinterRef[B]) Iter(yield func(uint32) bool) {
	_ = node.AllBytes(r.nodeRegion, r.rootPos, yield)
}

// Range returns every member in [lo, hi], ascending.
func (r SplinterRef[B]) Range(lo, hi uint32, yield func(uint32) bool) {
	_ = node.RangeBytes(r.nodeRegion, r.rootPos, lo, hi, yield)
}

// IntoOwned fully materializes the borrowed view into a new owning
// Splinter, propagating any structural parse error rather than
// swallowing it — unlike the lazy per-query methods above, a caller
// asking to take ownership is asking for a definitive answer.
func (r SplinterRef[B]) IntoOwned() (*Splinter, error) {
	tr, err := node.DecodeTree(r.nodeRegion, r.rootPos)
	if err != nil {
		return nil, translateNodeErr(headerSize, err)
	}
	return &Splinter{tree: *tr}, nil
}
