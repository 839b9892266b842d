// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

import (
	"encoding/binary"
	"errors"
	"math/bits"

	"github.com/gaissmai/splinter/internal/keyset"
)

// Sentinel parse errors, wrapped by the root package's ParseError taxonomy.
var (
	ErrTruncated          = errors.New("node: truncated")
	ErrInvalidClassTag    = errors.New("node: invalid class tag")
	ErrInvalidCardinality = errors.New("node: invalid cardinality")
	ErrUnalignedOffset    = errors.New("node: unaligned or out-of-range child offset")
)

// Frame is one parsed node header: the tag, cardinality, this node's own
// occupancy view, and — for Partition frames (depth < 3) — the decoded
// per-child cardinalities and absolute tag-byte positions of each child.
// Children are located purely by arithmetic on the backward offsets
// stored in the wire format; nothing below a frame's own bytes is ever
// read eagerly.
type Frame struct {
	Class       keyset.Class
	Full        bool
	OffsetWidth int
	Cardinality uint64
	NumChildren int
	Occupancy   keyset.View
	ChildCards  []uint64
	ChildPos    []int
	TagPos      int
}

func parseFrame(data []byte, pos int, depth int) (Frame, error) {
	if pos < 0 || pos >= len(data) {
		return Frame{}, ErrTruncated
	}

	tag := data[pos]
	class := keyset.Class(tag & 0x3)
	full := tag&0x4 != 0
	offsetWidth := int((tag >> 4) & 0x3)
	off := pos + 1

	cardMinus1, n, ok := readUvarint(data, off)
	if !ok {
		return Frame{}, ErrTruncated
	}
	off += n
	cardinality := cardMinus1 + 1

	numKeys := int(cardinality)
	numChildren := 0
	if depth < 3 {
		nMinus1, n2, ok := readUvarint(data, off)
		if !ok {
			return Frame{}, ErrTruncated
		}
		off += n2
		numChildren = int(nMinus1) + 1
		numKeys = numChildren
	}

	var view keyset.View
	if !full {
		plen, err := occupancyPayloadLen(data, off, class, numKeys)
		if err != nil {
			return Frame{}, err
		}
		if off+plen > len(data) {
			return Frame{}, ErrTruncated
		}
		view, err = keyset.Parse(class, false, numKeys, data[off:off+plen])
		if err != nil {
			return Frame{}, errors.Join(ErrInvalidCardinality, err)
		}
		off += plen
	} else {
		v, err := keyset.Parse(class, true, numKeys, nil)
		if err != nil {
			return Frame{}, errors.Join(ErrInvalidCardinality, err)
		}
		view = v
	}

	f := Frame{
		Class:       class,
		Full:        full,
		OffsetWidth: offsetWidth,
		Cardinality: cardinality,
		NumChildren: numChildren,
		Occupancy:   view,
		TagPos:      pos,
	}

	if depth < 3 {
		cards := make([]uint64, numChildren)
		for i := range cards {
			cm1, n3, ok := readUvarint(data, off)
			if !ok {
				return Frame{}, ErrTruncated
			}
			off += n3
			cards[i] = cm1 + 1
		}
		f.ChildCards = cards

		width := offsetByteWidth(offsetWidth)
		if width == 0 {
			return Frame{}, ErrInvalidClassTag
		}

		positions := make([]int, numChildren)
		for i := range positions {
			if off+width > len(data) {
				return Frame{}, ErrTruncated
			}
			var raw uint64
			switch width {
			case 1:
				raw = uint64(data[off])
			case 2:
				raw = uint64(binary.LittleEndian.Uint16(data[off:]))
			case 4:
				raw = uint64(binary.LittleEndian.Uint32(data[off:]))
			}
			off += width

			childPos := pos - int(raw)
			if childPos < 0 || childPos >= pos {
				return Frame{}, ErrUnalignedOffset
			}
			positions[i] = childPos
		}
		f.ChildPos = positions
	}

	return f, nil
}

func offsetByteWidth(code int) int {
	switch code {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 0 // reserved, invalid
	}
}

func occupancyPayloadLen(data []byte, off int, class keyset.Class, n int) (int, error) {
	switch class {
	case keyset.ClassVec:
		return n, nil
	case keyset.ClassBitmap:
		return 32, nil
	case keyset.ClassRun:
		if off >= len(data) {
			return 0, ErrTruncated
		}
		r := int(data[off]) + 1
		return 1 + 2*r, nil
	case keyset.ClassTree:
		if off+2 > len(data) {
			return 0, ErrTruncated
		}
		groupMask := binary.LittleEndian.Uint16(data[off:])
		g := bits.OnesCount16(groupMask)
		return 2 + 2*g, nil
	default:
		return 0, ErrInvalidClassTag
	}
}

func readUvarint(data []byte, off int) (val uint64, n int, ok bool) {
	if off > len(data) {
		return 0, 0, false
	}
	val, n = binary.Uvarint(data[off:])
	if n <= 0 {
		return 0, 0, false
	}
	return val, n, true
}

// --- writer ---

// SerializeTree appends t's encoding to the end of buf (post-order: every
// child's bytes precede its parent's), returning the updated buffer and
// the absolute position of the root node's tag byte, or -1 if t is empty.
func SerializeTree(buf []byte, t *Tree) (out []byte, rootPos int) {
	if t.root == nil {
		return buf, -1
	}
	rootPos = writeNode(&buf, t.root, 0)
	return buf, rootPos
}

func writeNode(buf *[]byte, n Node, depth int) int {
	switch x := n.(type) {
	case *Block:
		return writeBlock(buf, x)
	case *Partition:
		return writePartition(buf, x, depth)
	default:
		return 0
	}
}

func writeBlock(buf *[]byte, b *Block) int {
	class, full, payload := keyset.Encode(&b.members)

	var tag byte = byte(class)
	if full {
		tag |= 1 << 2
	}

	start := len(*buf)
	*buf = append(*buf, tag)
	*buf = binary.AppendUvarint(*buf, uint64(b.Cardinality()-1))
	if !full {
		*buf = append(*buf, payload...)
	}
	return start
}

func writePartition(buf *[]byte, p *Partition, depth int) int {
	n := p.children.Len()
	keysBM := p.children.BitSet256
	class, full, payload := keyset.Encode(&keysBM)

	childPos := make([]int, n)
	childCards := make([]uint64, n)
	for i := range n {
		_, child, card := p.ChildAt(i)
		childPos[i] = writeNode(buf, child, depth+1)
		childCards[i] = card
	}

	thisStart := len(*buf)

	maxOffset := 0
	for i := range n {
		off := thisStart - childPos[i]
		if off > maxOffset {
			maxOffset = off
		}
	}

	offsetWidth := 0
	switch {
	case maxOffset <= 0xFF:
		offsetWidth = 0
	case maxOffset <= 0xFFFF:
		offsetWidth = 1
	default:
		offsetWidth = 2
	}

	var tag byte = byte(class)
	if full {
		tag |= 1 << 2
	}
	tag |= byte(offsetWidth) << 4

	*buf = append(*buf, tag)
	*buf = binary.AppendUvarint(*buf, p.total-1)
	*buf = binary.AppendUvarint(*buf, uint64(n-1))
	if !full {
		*buf = append(*buf, payload...)
	}

	for i := range n {
		*buf = binary.AppendUvarint(*buf, childCards[i]-1)
	}

	width := offsetByteWidth(offsetWidth)
	for i := range n {
		off := uint64(thisStart - childPos[i])
		switch width {
		case 1:
			*buf = append(*buf, byte(off))
		case 2:
			*buf = append(*buf, byte(off), byte(off>>8))
		case 4:
			*buf = append(*buf, byte(off), byte(off>>8), byte(off>>16), byte(off>>24))
		}
	}

	return thisStart
}

// --- zero-copy readers ---

func ContainsBytes(data []byte, rootPos int, v uint32) (bool, error) {
	if rootPos < 0 {
		return false, nil
	}
	path := decompose(v)
	pos := rootPos
	for depth := 0; depth <= 3; depth++ {
		f, err := parseFrame(data, pos, depth)
		if err != nil {
			return false, err
		}
		if depth == 3 {
			return f.Occupancy.Contains(path[3]), nil
		}
		key := path[depth]
		if !f.Occupancy.Contains(key) {
			return false, nil
		}
		pos = f.ChildPos[f.Occupancy.Rank0(key)]
	}
	return false, nil
}

func CardinalityBytes(data []byte, rootPos int) (uint64, error) {
	if rootPos < 0 {
		return 0, nil
	}
	f, err := parseFrame(data, rootPos, 0)
	if err != nil {
		return 0, err
	}
	return f.Cardinality, nil
}

func Rank0Bytes(data []byte, rootPos int, v uint32) (int, error) {
	if rootPos < 0 {
		return -1, nil
	}
	total, err := rank0Bytes(data, rootPos, 0, decompose(v))
	if err != nil {
		return 0, err
	}
	return int(total) - 1, nil
}

func rank0Bytes(data []byte, pos int, depth int, path [4]uint8) (uint64, error) {
	f, err := parseFrame(data, pos, depth)
	if err != nil {
		return 0, err
	}
	if depth == 3 {
		return uint64(f.Occupancy.Rank0(path[3]) + 1), nil
	}
	key := path[depth]
	var total uint64
	for i := 0; i < f.NumChildren; i++ {
		mk, _ := f.Occupancy.Select(i)
		if mk < key {
			total += f.ChildCards[i]
			continue
		}
		if mk == key {
			sub, err := rank0Bytes(data, f.ChildPos[i], depth+1, path)
			if err != nil {
				return 0, err
			}
			total += sub
		}
		break
	}
	return total, nil
}

func SelectBytes(data []byte, rootPos int, i uint64) (uint32, bool, error) {
	if rootPos < 0 {
		return 0, false, nil
	}
	var path [4]uint8
	ok, err := selectBytes(data, rootPos, 0, i, &path)
	if err != nil || !ok {
		return 0, false, err
	}
	return compose(path), true, nil
}

func selectBytes(data []byte, pos int, depth int, i uint64, path *[4]uint8) (bool, error) {
	f, err := parseFrame(data, pos, depth)
	if err != nil {
		return false, err
	}
	if depth == 3 {
		v, ok := f.Occupancy.Select(int(i))
		if !ok {
			return false, nil
		}
		path[3] = v
		return true, nil
	}
	for idx := 0; idx < f.NumChildren; idx++ {
		card := f.ChildCards[idx]
		if i < card {
			mk, _ := f.Occupancy.Select(idx)
			path[depth] = mk
			return selectBytes(data, f.ChildPos[idx], depth+1, i, path)
		}
		i -= card
	}
	return false, nil
}

func AllBytes(data []byte, rootPos int, yield func(uint32) bool) error {
	if rootPos < 0 {
		return nil
	}
	var path [4]uint8
	_, err := walkBytes(data, rootPos, 0, &path, yield)
	return err
}

func walkBytes(data []byte, pos int, depth int, path *[4]uint8, yield func(uint32) bool) (bool, error) {
	f, err := parseFrame(data, pos, depth)
	if err != nil {
		return false, err
	}
	if depth == 3 {
		cont := true
		f.Occupancy.All(func(b uint8) bool {
			path[3] = b
			if !yield(compose(*path)) {
				cont = false
				return false
			}
			return true
		})
		return cont, nil
	}
	for i := 0; i < f.NumChildren; i++ {
		mk, _ := f.Occupancy.Select(i)
		path[depth] = mk
		cont, err := walkBytes(data, f.ChildPos[i], depth+1, path, yield)
		if err != nil {
			return false, err
		}
		if !cont {
			return false, nil
		}
	}
	return true, nil
}

func RangeBytes(data []byte, rootPos int, lo, hi uint32, yield func(uint32) bool) error {
	if rootPos < 0 || lo > hi {
		return nil
	}
	var path [4]uint8
	_, err := rangeWalkBytes(data, rootPos, 0, &path, lo, hi, yield)
	return err
}

func rangeWalkBytes(data []byte, pos int, depth int, path *[4]uint8, lo, hi uint32, yield func(uint32) bool) (bool, error) {
	f, err := parseFrame(data, pos, depth)
	if err != nil {
		return false, err
	}
	if depth == 3 {
		base := compose(*path) &^ 0xFF
		loLocal, hiLocal := uint8(0), uint8(255)
		if base == (lo &^ 0xFF) {
			loLocal = uint8(lo)
		}
		if base == (hi &^ 0xFF) {
			hiLocal = uint8(hi)
		}
		cont := true
		f.Occupancy.All(func(b uint8) bool {
			if b < loLocal {
				return true
			}
			if b > hiLocal {
				return false
			}
			path[3] = b
			if !yield(compose(*path)) {
				cont = false
				return false
			}
			return true
		})
		return cont, nil
	}
	for i := 0; i < f.NumChildren; i++ {
		mk, _ := f.Occupancy.Select(i)
		path[depth] = mk
		subLo, subHi := subtreeBounds(*path, depth)
		if subHi < lo || subLo > hi {
			continue
		}
		cont, err := rangeWalkBytes(data, f.ChildPos[i], depth+1, path, lo, hi, yield)
		if err != nil {
			return false, err
		}
		if !cont {
			return false, nil
		}
	}
	return true, nil
}

// --- decode into an owning Tree ---

// DecodeTree fully materializes the tree rooted at rootPos (or an empty
// Tree if rootPos < 0) into owned *Partition/*Block nodes. Used by
// SplinterRef.IntoOwned and by the top-level Parse that builds an owning
// Splinter directly.
func DecodeTree(data []byte, rootPos int) (*Tree, error) {
	if rootPos < 0 {
		return &Tree{}, nil
	}
	root, err := decodeNode(data, rootPos, 0)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root, card: cardOf(root)}, nil
}

func decodeNode(data []byte, pos int, depth int) (Node, error) {
	f, err := parseFrame(data, pos, depth)
	if err != nil {
		return nil, err
	}
	if depth == 3 {
		b := &Block{}
		f.Occupancy.All(func(v uint8) bool {
			b.members.MustSet(uint(v))
			return true
		})
		return b, nil
	}
	p := &Partition{}
	for i := 0; i < f.NumChildren; i++ {
		key, _ := f.Occupancy.Select(i)
		child, err := decodeNode(data, f.ChildPos[i], depth+1)
		if err != nil {
			return nil, err
		}
		p.setChild(key, child, f.ChildCards[i])
	}
	return p, nil
}
