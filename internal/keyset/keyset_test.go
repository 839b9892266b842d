// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package keyset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaissmai/splinter/internal/bitset"
)

func setOf(members ...uint) *bitset.BitSet256 {
	var bm bitset.BitSet256
	for _, m := range members {
		bm.MustSet(m)
	}
	return &bm
}

func TestEncodeFull(t *testing.T) {
	var bm bitset.BitSet256
	for i := range uint(256) {
		bm.MustSet(i)
	}
	class, full, payload := Encode(&bm)
	require.True(t, full)
	require.Nil(t, payload)
	require.Equal(t, ClassBitmap, class)
}

func TestEncodeVecSmall(t *testing.T) {
	bm := setOf(1, 3, 5)
	class, full, payload := Encode(bm)
	require.False(t, full)
	require.Equal(t, ClassVec, class)
	require.Equal(t, []byte{1, 3, 5}, payload)
}

func TestEncodeRunDense(t *testing.T) {
	var bm bitset.BitSet256
	for i := uint(100); i <= 200; i++ {
		bm.MustSet(i)
	}
	class, full, payload := Encode(&bm)
	require.False(t, full)
	require.Equal(t, ClassRun, class)
	require.Equal(t, []byte{0, 100, 200}, payload)
}

func TestEncodeBitmapScattered(t *testing.T) {
	var bm bitset.BitSet256
	for i := uint(0); i < 256; i += 2 {
		bm.MustSet(i)
	}
	class, full, _ := Encode(&bm)
	require.False(t, full)
	require.Equal(t, ClassBitmap, class)
}

// treeWinningSet builds a BitSet256 that Encode is guaranteed to pick
// ClassTree for: 14 of the 16 sixteen-key groups each carry 3 members at
// non-adjacent offsets, so the tree payload (2 + 2*14 = 30 bytes) beats
// Vec (42 bytes), Bitmap (32 bytes, fixed), and Run (1 + 2*42 = 85 bytes,
// since every member is isolated and so its own run).
func treeWinningSet() *bitset.BitSet256 {
	b := setOf()
	for g := uint(0); g < 14; g++ {
		b.MustSet(g*16 + 0)
		b.MustSet(g*16 + 6)
		b.MustSet(g*16 + 12)
	}
	return b
}

func TestEncodeTreeWins(t *testing.T) {
	class, full, payload := Encode(treeWinningSet())
	require.False(t, full)
	require.Equal(t, ClassTree, class)
	require.Len(t, payload, 2+2*14)
}

func TestEncodeDecodeRoundTripAllClasses(t *testing.T) {
	cases := map[string]*bitset.BitSet256{
		"empty-ish single": setOf(42),
		"small one group":  setOf(1, 3, 5, 7, 9),
		"run dense":        func() *bitset.BitSet256 { b := setOf(); for i := uint(10); i <= 60; i++ { b.MustSet(i) }; return b }(),
		"scattered bitmap": func() *bitset.BitSet256 { b := setOf(); for i := uint(0); i < 256; i += 3 { b.MustSet(i) }; return b }(),
		"tree grouped":     treeWinningSet(),
	}

	for name, bm := range cases {
		t.Run(name, func(t *testing.T) {
			class, full, payload := Encode(bm)
			n := bm.Size()
			view, err := Parse(class, full, n, payload)
			require.NoError(t, err)
			require.Equal(t, n, view.Cardinality())

			want := bm.All()
			var got []uint8
			view.All(func(k uint8) bool {
				got = append(got, k)
				return true
			})
			require.Len(t, got, len(want))
			for i, w := range want {
				require.EqualValues(t, w, got[i])
			}

			for k := 0; k < 256; k++ {
				require.Equal(t, bm.Test(uint(k)), view.Contains(uint8(k)), "Contains(%d)", k)
			}

			for i, w := range want {
				require.Equal(t, i, view.Rank0(uint8(w)), "Rank0(%d)", w)
				sel, ok := view.Select(i)
				require.True(t, ok)
				require.EqualValues(t, w, sel, "Select(%d)", i)
			}

			_, ok := view.Select(len(want))
			require.False(t, ok)
		})
	}
}

func TestParseRejectsInconsistentPayload(t *testing.T) {
	_, err := Parse(ClassVec, false, 2, []byte{5, 5})
	require.Error(t, err)

	_, err = Parse(ClassBitmap, false, 1, []byte{0, 0})
	require.Error(t, err)

	_, err = Parse(ClassRun, false, 1, []byte{0, 10, 5})
	require.Error(t, err)

	_, err = Parse(ClassTree, false, 1, []byte{1})
	require.Error(t, err)

	_, err = Parse(Class(99), false, 1, []byte{1})
	require.Error(t, err)
}

func TestClassString(t *testing.T) {
	require.Equal(t, "Vec", ClassVec.String())
	require.Equal(t, "Bitmap", ClassBitmap.String())
	require.Equal(t, "Run", ClassRun.String())
	require.Equal(t, "Tree", ClassTree.String())
}
