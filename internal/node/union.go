// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

// Union builds the union of two trees' roots as a fresh subtree (inputs
// are left untouched), zipping the two trees together recursively and
// handling the two same-level pairings (Block with Block, Partition with
// Partition) directly.
func Union(a, b *Tree) *Tree {
	root, card := unionNode(a.root, b.root)
	return &Tree{root: root, card: card}
}

func unionNode(a, b Node) (Node, uint64) {
	if a == nil {
		if b == nil {
			return nil, 0
		}
		c := cloneNode(b)
		return c, cardOf(c)
	}
	if b == nil {
		c := cloneNode(a)
		return c, cardOf(c)
	}

	switch x := a.(type) {
	case *Block:
		y := b.(*Block)
		merged := &Block{}
		bs := x.members.Union(&y.members)
		merged.members = bs
		if merged.IsEmpty() {
			return nil, 0
		}
		return merged, uint64(merged.Cardinality())

	case *Partition:
		y := b.(*Partition)
		out := &Partition{}
		for key := 0; key < 256; key++ {
			ca, cardA, okA := x.ChildByKey(uint8(key))
			cb, cardB, okB := y.ChildByKey(uint8(key))

			var child Node
			var card uint64
			switch {
			case okA && okB:
				child, card = unionNode(ca, cb)
			case okA:
				child, card = cloneNode(ca), cardA
			case okB:
				child, card = cloneNode(cb), cardB
			default:
				continue
			}

			if child != nil {
				out.setChild(uint8(key), child, card)
			}
		}
		if out.IsEmpty() {
			return nil, 0
		}
		return out, out.total
	}
	panic(LogicError("unionNode: unknown node type"))
}
