// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import (
	"fmt"
	"io"
	"strings"

	"github.com/gaissmai/splinter/internal/node"
)

// String returns a human-readable, indented dump of the tree structure.
func (s *Splinter) String() string {
	var b strings.Builder
	_ = s.Fprint(&b)
	return b.String()
}

// Fprint writes the same dump as String to w.
func (s *Splinter) Fprint(w io.Writer) error {
	return dumpNode(w, s.tree.Root(), "")
}

func dumpNode(w io.Writer, n node.Node, prefix string) error {
	switch x := n.(type) {
	case nil:
		_, err := fmt.Fprintln(w, "(empty)")
		return err

	case *node.Block:
		_, err := fmt.Fprintf(w, "%sblock card=%d\n", prefix, x.Cardinality())
		return err

	case *node.Partition:
		if _, err := fmt.Fprintf(w, "%spartition card=%d children=%d\n", prefix, x.Cardinality(), x.NumChildren()); err != nil {
			return err
		}
		for i := 0; i < x.NumChildren(); i++ {
			key, child, _ := x.ChildAt(i)
			if err := dumpNode(w, child, fmt.Sprintf("%s  [0x%02x] ", prefix, key)); err != nil {
				return err
			}
		}
	}
	return nil
}
