// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

// Intersection builds the intersection of two trees' roots as a fresh
// subtree.
func Intersection(a, b *Tree) *Tree {
	root, card := intersectNode(a.root, b.root)
	return &Tree{root: root, card: card}
}

func intersectNode(a, b Node) (Node, uint64) {
	if a == nil || b == nil {
		return nil, 0
	}

	switch x := a.(type) {
	case *Block:
		y := b.(*Block)
		out := &Block{}
		out.members = x.members.Intersection(&y.members)
		if out.IsEmpty() {
			return nil, 0
		}
		return out, uint64(out.Cardinality())

	case *Partition:
		y := b.(*Partition)
		out := &Partition{}
		for i := 0; i < x.children.Len(); i++ {
			key, ca, _ := x.ChildAt(i)
			cb, _, ok := y.ChildByKey(key)
			if !ok {
				continue
			}
			child, card := intersectNode(ca, cb)
			if child != nil {
				out.setChild(key, child, card)
			}
		}
		if out.IsEmpty() {
			return nil, 0
		}
		return out, out.total
	}
	panic(LogicError("intersectNode: unknown node type"))
}
