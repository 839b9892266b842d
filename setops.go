// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import "github.com/gaissmai/splinter/internal/node"

// Union returns a new Splinter containing every value in a or b. Neither
// input is modified.
func Union(a, b *Splinter) *Splinter {
	return &Splinter{tree: *node.Union(&a.tree, &b.tree)}
}

// Intersection returns a new Splinter containing every value in both a
// and b. Neither input is modified.
func Intersection(a, b *Splinter) *Splinter {
	return &Splinter{tree: *node.Intersection(&a.tree, &b.tree)}
}

// Difference returns a new Splinter containing every value in a that is
// not in b. Neither input is modified.
func Difference(a, b *Splinter) *Splinter {
	return &Splinter{tree: *node.Difference(&a.tree, &b.tree)}
}
