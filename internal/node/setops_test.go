// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(tr *Tree) []uint32 {
	var out []uint32
	tr.All(func(v uint32) bool { out = append(out, v); return true })
	return out
}

func TestUnionIntersectionDifference(t *testing.T) {
	a := buildTree(t, []uint32{1, 3, 5, 0x01020304})
	b := buildTree(t, []uint32{3, 5, 7, 0x01020304})

	u := Union(a, b)
	require.Equal(t, []uint32{1, 3, 5, 7, 0x01020304}, collect(u))
	require.EqualValues(t, 5, u.Cardinality())

	i := Intersection(a, b)
	require.Equal(t, []uint32{3, 5, 0x01020304}, collect(i))
	require.EqualValues(t, 3, i.Cardinality())

	d := Difference(a, b)
	require.Equal(t, []uint32{1}, collect(d))
	require.EqualValues(t, 1, d.Cardinality())

	d2 := Difference(b, a)
	require.Equal(t, []uint32{7}, collect(d2))
}

func TestUnionIntersectionDifferenceWithEmpty(t *testing.T) {
	a := buildTree(t, []uint32{1, 2, 3})
	empty := &Tree{}

	require.Equal(t, []uint32{1, 2, 3}, collect(Union(a, empty)))
	require.Equal(t, []uint32{1, 2, 3}, collect(Union(empty, a)))
	require.Empty(t, collect(Intersection(a, empty)))
	require.Equal(t, []uint32{1, 2, 3}, collect(Difference(a, empty)))
	require.Empty(t, collect(Difference(empty, a)))
}

func TestSetOpsDoNotMutateInputs(t *testing.T) {
	a := buildTree(t, []uint32{1, 2, 3})
	b := buildTree(t, []uint32{3, 4, 5})

	_ = Union(a, b)
	_ = Intersection(a, b)
	_ = Difference(a, b)

	require.Equal(t, []uint32{1, 2, 3}, collect(a))
	require.Equal(t, []uint32{3, 4, 5}, collect(b))
}

func TestUnionCommutative(t *testing.T) {
	a := buildTree(t, []uint32{1, 10, 1000, 0xFFFFFFFF})
	b := buildTree(t, []uint32{2, 10, 2000, 0xFFFFFFFF})

	require.Equal(t, collect(Union(a, b)), collect(Union(b, a)))
}
