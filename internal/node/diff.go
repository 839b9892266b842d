// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

// Difference builds a - b as a fresh subtree: every member of a that is
// not a member of b.
func Difference(a, b *Tree) *Tree {
	root, card := diffNode(a.root, b.root)
	return &Tree{root: root, card: card}
}

func diffNode(a, b Node) (Node, uint64) {
	if a == nil {
		return nil, 0
	}
	if b == nil {
		c := cloneNode(a)
		return c, cardOf(c)
	}

	switch x := a.(type) {
	case *Block:
		y := b.(*Block)
		out := &Block{}
		out.members = x.members.Difference(&y.members)
		if out.IsEmpty() {
			return nil, 0
		}
		return out, uint64(out.Cardinality())

	case *Partition:
		y := b.(*Partition)
		out := &Partition{}
		for i := 0; i < x.children.Len(); i++ {
			key, ca, cardA := x.ChildAt(i)
			cb, _, ok := y.ChildByKey(key)

			var child Node
			var card uint64
			if !ok {
				child, card = cloneNode(ca), cardA
			} else {
				child, card = diffNode(ca, cb)
			}

			if child != nil {
				out.setChild(key, child, card)
			}
		}
		if out.IsEmpty() {
			return nil, 0
		}
		return out, out.total
	}
	panic(LogicError("diffNode: unknown node type"))
}
