// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package node implements the adaptive multi-level partition tree: a
// 4-byte big-endian decomposition of a uint32 descending through three
// levels of Partition into one level of Block. Each operation is a small
// free function dispatching on a closed node-kind type switch and
// recursing one byte at a time, rather than a method set spread across
// the node types themselves.
package node

// Tree is the root of one 4-level adaptive partition tree.
type Tree struct {
	root Node // nil if empty
	card uint64
}

// Cardinality returns the number of distinct values stored.
func (t *Tree) Cardinality() uint64 { return t.card }

func (t *Tree) IsEmpty() bool { return t.card == 0 }

// Root exposes the root node (nil if empty), for the codec and set-op
// wrappers.
func (t *Tree) Root() Node { return t.root }

// SetRoot installs root directly, recomputing the cached cardinality from
// it. The codec parser and the set operations do not call it; they build
// their result Tree with root and cardinality already known.
func (t *Tree) SetRoot(root Node) {
	t.root = root
	t.card = cardOf(root)
}

func decompose(v uint32) [4]uint8 {
	return [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

func compose(path [4]uint8) uint32 {
	return uint32(path[0])<<24 | uint32(path[1])<<16 | uint32(path[2])<<8 | uint32(path[3])
}

func cardOf(n Node) uint64 {
	switch x := n.(type) {
	case nil:
		return 0
	case *Block:
		return uint64(x.Cardinality())
	case *Partition:
		return x.total
	default:
		return 0
	}
}

// Contains reports whether v is a member.
func (t *Tree) Contains(v uint32) bool {
	return contains(t.root, 0, decompose(v))
}

func contains(n Node, depth int, path [4]uint8) bool {
	switch x := n.(type) {
	case nil:
		return false
	case *Block:
		return x.Contains(path[3])
	case *Partition:
		child, _, ok := x.ChildByKey(path[depth])
		if !ok {
			return false
		}
		return contains(child, depth+1, path)
	}
	return false
}

// Insert adds v, reporting whether it was newly added.
func (t *Tree) Insert(v uint32) bool {
	path := decompose(v)
	newRoot, wasNew := insert(t.root, 0, path)
	t.root = newRoot
	if wasNew {
		t.card++
	}
	return wasNew
}

func insert(n Node, depth int, path [4]uint8) (result Node, inserted bool) {
	if depth == 3 {
		b, _ := n.(*Block)
		if b == nil {
			b = &Block{}
		}
		return b, b.Insert(path[3])
	}

	p, _ := n.(*Partition)
	if p == nil {
		p = &Partition{}
	}

	key := path[depth]
	child, card, exists := p.ChildByKey(key)
	newChild, wasNew := insert(child, depth+1, path)
	if wasNew {
		p.setChild(key, newChild, card+1)
	} else if !exists {
		p.setChild(key, newChild, 1)
	}
	return p, wasNew
}

// Remove deletes v, reporting whether it was present.
func (t *Tree) Remove(v uint32) bool {
	path := decompose(v)
	newRoot, removed := remove(t.root, 0, path)
	t.root = newRoot
	if removed {
		t.card--
	}
	return removed
}

func remove(n Node, depth int, path [4]uint8) (result Node, removed bool) {
	switch x := n.(type) {
	case nil:
		return nil, false
	case *Block:
		removed = x.Remove(path[3])
		if x.IsEmpty() {
			return nil, removed
		}
		return x, removed
	case *Partition:
		key := path[depth]
		child, card, exists := x.ChildByKey(key)
		if !exists {
			return x, false
		}
		newChild, rem := remove(child, depth+1, path)
		if !rem {
			return x, false
		}
		if newChild == nil {
			x.removeChild(key)
		} else {
			x.setChild(key, newChild, card-1)
		}
		if x.IsEmpty() {
			return nil, true
		}
		return x, true
	}
	return n, false
}

// Rank0 returns the number of members <= v, minus 1: the 0-based position
// v would occupy in ascending iteration order.
func (t *Tree) Rank0(v uint32) int {
	return int(rankWithin(t.root, 0, decompose(v))) - 1
}

func rankWithin(n Node, depth int, path [4]uint8) uint64 {
	switch x := n.(type) {
	case nil:
		return 0
	case *Block:
		return uint64(x.Rank0(path[3]) + 1)
	case *Partition:
		key := path[depth]
		var total uint64
		for i := 0; i < x.children.Len(); i++ {
			k, child, card := x.ChildAt(i)
			if k < key {
				total += card
				continue
			}
			if k == key {
				total += rankWithin(child, depth+1, path)
			}
			break
		}
		return total
	}
	return 0
}

// Select returns the i-th member (0-based, ascending).
func (t *Tree) Select(i uint64) (uint32, bool) {
	if i >= t.card {
		return 0, false
	}
	var path [4]uint8
	if !selectAt(t.root, 0, i, &path) {
		return 0, false
	}
	return compose(path), true
}

func selectAt(n Node, depth int, i uint64, path *[4]uint8) bool {
	switch x := n.(type) {
	case nil:
		return false
	case *Block:
		v, ok := x.Select(int(i))
		if !ok {
			return false
		}
		path[3] = v
		return true
	case *Partition:
		for j := 0; j < x.children.Len(); j++ {
			k, child, card := x.ChildAt(j)
			if i < card {
				path[depth] = k
				return selectAt(child, depth+1, i, path)
			}
			i -= card
		}
		return false
	}
	return false
}

// All calls yield for every member, ascending, stopping early if yield
// returns false.
func (t *Tree) All(yield func(uint32) bool) {
	var path [4]uint8
	walk(t.root, 0, &path, yield)
}

func walk(n Node, depth int, path *[4]uint8, yield func(uint32) bool) bool {
	switch x := n.(type) {
	case nil:
		return true
	case *Block:
		cont := true
		x.All(func(b uint8) bool {
			path[3] = b
			if !yield(compose(*path)) {
				cont = false
				return false
			}
			return true
		})
		return cont
	case *Partition:
		for i := 0; i < x.children.Len(); i++ {
			k, child, _ := x.ChildAt(i)
			path[depth] = k
			if !walk(child, depth+1, path, yield) {
				return false
			}
		}
		return true
	}
	return true
}

// Range calls yield for every member in [lo, hi], ascending, pruning
// subtrees that fall entirely outside the bound instead of walking and
// filtering the whole tree.
func (t *Tree) Range(lo, hi uint32, yield func(uint32) bool) {
	if lo > hi {
		return
	}
	var path [4]uint8
	rangeWalk(t.root, 0, &path, lo, hi, yield)
}

func rangeWalk(n Node, depth int, path *[4]uint8, lo, hi uint32, yield func(uint32) bool) bool {
	switch x := n.(type) {
	case nil:
		return true
	case *Block:
		base := compose(*path) &^ 0xFF
		loLocal, hiLocal := uint8(0), uint8(255)
		if base == (lo &^ 0xFF) {
			loLocal = uint8(lo)
		}
		if base == (hi &^ 0xFF) {
			hiLocal = uint8(hi)
		}
		cont := true
		x.All(func(b uint8) bool {
			if b < loLocal {
				return true
			}
			if b > hiLocal {
				return false
			}
			path[3] = b
			if !yield(compose(*path)) {
				cont = false
				return false
			}
			return true
		})
		return cont
	case *Partition:
		for i := 0; i < x.children.Len(); i++ {
			k, child, _ := x.ChildAt(i)
			path[depth] = k
			subLo, subHi := subtreeBounds(*path, depth)
			if subHi < lo || subLo > hi {
				continue
			}
			if !rangeWalk(child, depth+1, path, lo, hi, yield) {
				return false
			}
		}
		return true
	}
	return true
}

func subtreeBounds(prefix [4]uint8, depth int) (lo, hi uint32) {
	var loBytes, hiBytes [4]uint8
	for i := 0; i <= depth; i++ {
		loBytes[i] = prefix[i]
		hiBytes[i] = prefix[i]
	}
	for i := depth + 1; i < 4; i++ {
		loBytes[i] = 0x00
		hiBytes[i] = 0xFF
	}
	return compose(loBytes), compose(hiBytes)
}
