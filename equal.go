// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import "bytes"

// Equal reports whether s and other contain the same set of values,
// compared via their canonical serialized form rather than value-set
// iteration, which would be equivalent but slower for large sets since
// Serialize already performs the equivalent of a sorted walk.
func (s *Splinter) Equal(other *Splinter) bool {
	return bytes.Equal(s.Serialize(), other.Serialize())
}
