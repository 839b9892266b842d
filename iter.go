// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import "iter"

// Iter returns every member, ascending, as a range-over-func iterator
// rather than an allocating Slice method.
func (s *Splinter) Iter() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		s.tree.All(yield)
	}
}

// Range returns every member in [lo, hi], ascending, pruning subtrees
// that fall entirely outside the bound.
func (s *Splinter) Range(lo, hi uint32) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		s.tree.Range(lo, hi, yield)
	}
}
