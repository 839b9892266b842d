// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockInsertRemoveContains(t *testing.T) {
	b := &Block{}
	require.True(t, b.IsEmpty())

	require.True(t, b.Insert(5))
	require.False(t, b.Insert(5))
	require.True(t, b.Contains(5))
	require.Equal(t, 1, b.Cardinality())

	require.True(t, b.Remove(5))
	require.False(t, b.Remove(5))
	require.True(t, b.IsEmpty())
}

func TestBlockRankSelectAll(t *testing.T) {
	b := &Block{}
	for _, v := range []uint8{1, 3, 5, 200} {
		b.Insert(v)
	}

	require.Equal(t, 0, b.Rank0(1))
	require.Equal(t, 1, b.Rank0(3))
	require.Equal(t, 3, b.Rank0(200))

	v, ok := b.Select(2)
	require.True(t, ok)
	require.Equal(t, uint8(5), v)

	_, ok = b.Select(4)
	require.False(t, ok)

	var got []uint8
	b.All(func(m uint8) bool { got = append(got, m); return true })
	require.Equal(t, []uint8{1, 3, 5, 200}, got)
}

func TestBlockFull(t *testing.T) {
	b := &Block{}
	for i := range 256 {
		b.Insert(uint8(i))
	}
	require.Equal(t, 256, b.Cardinality())

	clone := b.Clone()
	clone.Remove(0)
	require.Equal(t, 256, b.Cardinality())
	require.Equal(t, 255, clone.Cardinality())
}
