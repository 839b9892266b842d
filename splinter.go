// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import "github.com/gaissmai/splinter/internal/node"

// Splinter is an owning, mutable set of uint32 values backed by a
// 4-level adaptive partition tree (internal/node). It is not safe for
// concurrent use: Splinter assumes a single writer and leaves
// synchronization to the caller.
type Splinter struct {
	tree node.Tree
}

// New returns an empty Splinter.
func New() *Splinter {
	return &Splinter{}
}

// Of returns a new Splinter containing vs.
func Of(vs ...uint32) *Splinter {
	s := New()
	for _, v := range vs {
		s.Insert(v)
	}
	return s
}

// Insert adds v, reporting whether it was newly added.
func (s *Splinter) Insert(v uint32) bool { return s.tree.Insert(v) }

// Remove deletes v, reporting whether it was present.
func (s *Splinter) Remove(v uint32) bool { return s.tree.Remove(v) }

// Contains reports whether v is a member.
func (s *Splinter) Contains(v uint32) bool { return s.tree.Contains(v) }

// Cardinality returns the number of distinct values stored.
func (s *Splinter) Cardinality() uint64 { return s.tree.Cardinality() }

func (s *Splinter) IsEmpty() bool { return s.tree.IsEmpty() }

// Rank returns the number of members <= v.
func (s *Splinter) Rank(v uint32) int { return s.tree.Rank0(v) + 1 }

// Select returns the i-th member (0-based, ascending).
func (s *Splinter) Select(i uint64) (uint32, bool) { return s.tree.Select(i) }

// Optimize is a deliberate no-op: occupancy is always held in memory as a
// plain bitset, and Serialize always derives the minimum-size wire class
// from it directly, so there is no cached class state for Optimize to
// repair. It exists so code written against the canonicalize-before-serialize
// contract still compiles and reads naturally.
func (s *Splinter) Optimize() {}

// Serialize returns the canonical wire encoding of s.
func (s *Splinter) Serialize() []byte {
	buf := getBuf()
	defer putBuf(buf)

	*buf = serializeTree((*buf)[:0], &s.tree)

	out := make([]byte, len(*buf))
	copy(out, *buf)
	return out
}

// Parse decodes data (as produced by Serialize) into a new owning
// Splinter. Every offset and length is bounds-checked; malformed input
// returns a *ParseError rather than panicking.
func Parse(data []byte) (*Splinter, error) {
	nodeRegion, rootPos, _, err := parseTree(data)
	if err != nil {
		return nil, err
	}

	tr, err := node.DecodeTree(nodeRegion, rootPos)
	if err != nil {
		return nil, translateNodeErr(headerSize, err)
	}

	return &Splinter{tree: *tr}, nil
}
