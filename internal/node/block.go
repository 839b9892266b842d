// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

import "github.com/gaissmai/splinter/internal/bitset"

// Block is a level-3 leaf: the set of lo-bytes present under one
// (hi, mid, lo) triple. Members are kept in memory as a plain BitSet256 —
// simplest to mutate — and the minimal-size wire class is derived from it
// on demand by internal/keyset at serialize time.
type Block struct {
	members bitset.BitSet256
}

func (b *Block) Contains(v uint8) bool {
	return b.members.Test(uint(v))
}

// Insert adds v, reporting whether it was newly added.
func (b *Block) Insert(v uint8) bool {
	if b.members.Test(uint(v)) {
		return false
	}
	b.members.MustSet(uint(v))
	return true
}

// Remove deletes v, reporting whether it was present.
func (b *Block) Remove(v uint8) bool {
	if !b.members.Test(uint(v)) {
		return false
	}
	b.members.MustClear(uint(v))
	return true
}

func (b *Block) Cardinality() int {
	return b.members.Size()
}

func (b *Block) IsEmpty() bool {
	return b.members.IsEmpty()
}

// Rank0 returns the number of members <= v, minus 1.
func (b *Block) Rank0(v uint8) int {
	return b.members.Rank0(uint(v))
}

// Select returns the i-th member (0-based, ascending).
func (b *Block) Select(i int) (uint8, bool) {
	bit, ok := b.members.Select(uint(i))
	return uint8(bit), ok
}

// All calls yield for every member, ascending.
func (b *Block) All(yield func(uint8) bool) {
	for _, m := range b.members.All() {
		if !yield(uint8(m)) {
			return
		}
	}
}

// Clone returns a deep (value) copy of b.
func (b *Block) Clone() *Block {
	clone := *b
	return &clone
}

func (b *Block) isNode() {}

// Bitset exposes the raw member set, used by the codec writer and by set
// operations.
func (b *Block) Bitset() *bitset.BitSet256 { return &b.members }
