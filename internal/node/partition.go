// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

import "github.com/gaissmai/splinter/internal/sparse"

// Node is the closed set of node kinds in the tree: a Partition (levels
// 0-2) or a Block (level 3). There is no third, path-compressed variant;
// the tree's shape is fixed by depth, so the type switches in tree.go/
// union.go/intersect.go/diff.go are always two-way.
type Node interface {
	isNode()
}

// childEntry pairs a child node with its own value-cardinality, so a
// Partition's children and their cardinalities are always kept in the
// same popcount-compressed, rank-ordered array — no separate parallel
// slice to keep in sync by hand.
type childEntry struct {
	node Node
	card uint64
}

// Partition is a level-0/1/2 interior node: occupancy of child keys
// 0..255 (the sparse.Array256's embedded bitset) plus the children
// themselves, rank-ordered and paired with their own cardinality.
type Partition struct {
	children sparse.Array256[childEntry]
	total    uint64 // sum of children's card; aggregate value count under this node
}

func (p *Partition) isNode() {}

func (p *Partition) Cardinality() uint64 { return p.total }

func (p *Partition) IsEmpty() bool { return p.children.Len() == 0 }

func (p *Partition) NumChildren() int { return p.children.Len() }

// ChildAt returns the child stored at rank-ordered index i (0-based,
// ascending key order) along with its key.
func (p *Partition) ChildAt(i int) (key uint8, child Node, card uint64) {
	e := p.children.Items[i]
	k, _ := p.children.BitSet256.Select(uint(i))
	return uint8(k), e.node, e.card
}

// ChildByKey returns the child occupying key, if any.
func (p *Partition) ChildByKey(key uint8) (child Node, card uint64, ok bool) {
	e, ok := p.children.Get(uint(key))
	if !ok {
		return nil, 0, false
	}
	return e.node, e.card, true
}

// Contains reports whether key is occupied.
func (p *Partition) Contains(key uint8) bool {
	return p.children.Test(uint(key))
}

// setChild installs (or overwrites) the child at key with the given
// cardinality, adjusting the aggregate total accordingly.
func (p *Partition) setChild(key uint8, child Node, card uint64) {
	old, existed := p.children.Get(uint(key))
	p.children.InsertAt(uint(key), childEntry{node: child, card: card})
	if existed {
		p.total += card - old.card
	} else {
		p.total += card
	}
}

// removeChild vacates key, if occupied.
func (p *Partition) removeChild(key uint8) {
	old, ok := p.children.DeleteAt(uint(key))
	if ok {
		p.total -= old.card
	}
}

// Clone returns a deep copy of p and its subtree.
func (p *Partition) Clone() *Partition {
	clone := &Partition{
		children: sparse.Array256[childEntry]{
			BitSet256: p.children.BitSet256,
			Items:     append([]childEntry(nil), p.children.Items...),
		},
		total: p.total,
	}
	for i, e := range clone.children.Items {
		clone.children.Items[i] = childEntry{node: cloneNode(e.node), card: e.card}
	}
	return clone
}

func cloneNode(n Node) Node {
	switch x := n.(type) {
	case *Block:
		return x.Clone()
	case *Partition:
		return x.Clone()
	default:
		panic(LogicError("cloneNode: unknown node type"))
	}
}
