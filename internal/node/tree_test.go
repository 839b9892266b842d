// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func values() []uint32 {
	return []uint32{
		0,
		1,
		0x01020304,
		0x01020305,
		0x01020500,
		0x02000000,
		0xFFFFFFFF,
		100, 200, 300, 1_000_000,
	}
}

func buildTree(t *testing.T, vs []uint32) *Tree {
	t.Helper()
	tr := &Tree{}
	for _, v := range vs {
		inserted := tr.Insert(v)
		require.True(t, inserted, "expected %d to be newly inserted", v)
	}
	return tr
}

func TestTreeInsertContainsCardinality(t *testing.T) {
	vs := values()
	tr := buildTree(t, vs)

	require.EqualValues(t, len(vs), tr.Cardinality())
	for _, v := range vs {
		require.True(t, tr.Contains(v), "Contains(%d)", v)
	}
	require.False(t, tr.Contains(42))

	// re-inserting is a no-op
	require.False(t, tr.Insert(vs[0]))
	require.EqualValues(t, len(vs), tr.Cardinality())
}

func TestTreeRemove(t *testing.T) {
	vs := values()
	tr := buildTree(t, vs)

	require.True(t, tr.Remove(vs[0]))
	require.False(t, tr.Contains(vs[0]))
	require.EqualValues(t, len(vs)-1, tr.Cardinality())

	require.False(t, tr.Remove(vs[0]))

	for _, v := range vs[1:] {
		tr.Remove(v)
	}
	require.True(t, tr.IsEmpty())
	require.Nil(t, tr.Root())
}

func TestTreeRankSelectRoundTrip(t *testing.T) {
	vs := []uint32{5, 1, 3, 0x01020304, 0x01020305, 0xFFFFFFFF, 1000}
	tr := buildTree(t, vs)

	var sorted []uint32
	tr.All(func(v uint32) bool {
		sorted = append(sorted, v)
		return true
	})
	require.Len(t, sorted, len(vs))
	for i := 1; i < len(sorted); i++ {
		require.Less(t, sorted[i-1], sorted[i])
	}

	for i, v := range sorted {
		require.Equal(t, i, tr.Rank0(v), "Rank0(%d)", v)
		sel, ok := tr.Select(uint64(i))
		require.True(t, ok)
		require.Equal(t, v, sel, "Select(%d)", i)
	}

	_, ok := tr.Select(uint64(len(sorted)))
	require.False(t, ok)
}

func TestTreeRangePrunesCorrectly(t *testing.T) {
	vs := []uint32{0, 1, 100, 0x0000FFFF, 0x00010000, 0x00010005, 0xFFFFFFFF}
	tr := buildTree(t, vs)

	var got []uint32
	tr.Range(1, 0x00010005, func(v uint32) bool {
		got = append(got, v)
		return true
	})
	require.Equal(t, []uint32{1, 100, 0x0000FFFF, 0x00010000, 0x00010005}, got)
}

func TestTreeRangeEmptyAndSingleton(t *testing.T) {
	tr := &Tree{}
	var got []uint32
	tr.Range(0, 0xFFFFFFFF, func(v uint32) bool { got = append(got, v); return true })
	require.Empty(t, got)

	tr.Insert(42)
	got = nil
	tr.Range(42, 42, func(v uint32) bool { got = append(got, v); return true })
	require.Equal(t, []uint32{42}, got)

	got = nil
	tr.Range(43, 100, func(v uint32) bool { got = append(got, v); return true })
	require.Empty(t, got)
}

func TestTreeAllEarlyStop(t *testing.T) {
	tr := buildTree(t, []uint32{1, 2, 3, 4, 5})
	var got []uint32
	tr.All(func(v uint32) bool {
		got = append(got, v)
		return len(got) < 3
	})
	require.Equal(t, []uint32{1, 2, 3}, got)
}

func TestTreeCloneIsIndependent(t *testing.T) {
	tr := buildTree(t, []uint32{1, 2, 3})

	clone := cloneNode(tr.Root())
	tr.Insert(4)

	var cloneVals []uint32
	var path [4]uint8
	walk(clone, 0, &path, func(v uint32) bool { cloneVals = append(cloneVals, v); return true })
	require.NotContains(t, cloneVals, uint32(4))
	require.Contains(t, cloneVals, uint32(3))
}
