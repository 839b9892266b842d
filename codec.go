// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import (
	"encoding/binary"
	"errors"

	"github.com/gaissmai/splinter/internal/node"
)

const (
	headerSize  = 5 // magic(2) + version(1) + reserved(1) + flags(1)
	trailerSize = 10 // total_cardinality(4) + root_offset(4) + magic2(2)

	formatVersion = 1
)

var (
	magic  = [2]byte{'S', 'P'}
	magic2 = [2]byte{'P', 'S'}
)

// serializeTree appends t's canonical wire encoding to buf and returns the
// result. An empty Tree serializes to the fixed-size empty blob
// (header + trailer, no node region).
func serializeTree(buf []byte, t *node.Tree) []byte {
	start := len(buf)
	buf = append(buf, magic[0], magic[1], formatVersion, 0, 0)

	nodeBuf, rootPos := node.SerializeTree(nil, t)
	buf = append(buf, nodeBuf...)

	var rootOffset uint32
	if rootPos >= 0 {
		rootOffset = uint32(rootPos)
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Cardinality()))
	buf = binary.LittleEndian.AppendUint32(buf, rootOffset)
	buf = append(buf, magic2[0], magic2[1])

	_ = start
	return buf
}

// parseTree validates the header/trailer framing of data and returns the
// node-region slice and the root's tag-byte offset within it (-1 if the
// encoded set is empty).
func parseTree(data []byte) (nodeRegion []byte, rootPos int, cardinality uint64, err error) {
	if len(data) < headerSize+trailerSize {
		return nil, 0, 0, &ParseError{Offset: 0, Err: ErrTruncated}
	}

	if data[0] != magic[0] || data[1] != magic[1] {
		return nil, 0, 0, &ParseError{Offset: 0, Err: ErrBadMagic}
	}
	// data[2] is format version, data[3] reserved, data[4] flags: this
	// writer never sets reserved bits, but a future-version reader should
	// not need to reject every nonzero flag — there is nothing defined
	// yet for it to act on, so it is only exposed for callers who want it
	// (not currently surfaced), not validated.

	trailerStart := len(data) - trailerSize
	nodeRegion = data[headerSize:trailerStart]

	trailer := data[trailerStart:]
	if trailer[8] != magic2[0] || trailer[9] != magic2[1] {
		return nil, 0, 0, &ParseError{Offset: trailerStart + 8, Err: ErrBadMagic}
	}

	cardinality = uint64(binary.LittleEndian.Uint32(trailer[0:4]))
	rootOffset := binary.LittleEndian.Uint32(trailer[4:8])

	if cardinality == 0 {
		return nodeRegion, -1, 0, nil
	}
	if int(rootOffset) >= len(nodeRegion) {
		return nil, 0, 0, &ParseError{Offset: trailerStart + 4, Err: ErrUnalignedOffset}
	}
	return nodeRegion, int(rootOffset), cardinality, nil
}

// translateNodeErr maps internal/node's sentinel errors onto the public
// ParseError taxonomy, preserving errors.Is compatibility.
func translateNodeErr(offset int, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, node.ErrTruncated):
		return &ParseError{Offset: offset, Err: ErrTruncated}
	case errors.Is(err, node.ErrInvalidClassTag):
		return &ParseError{Offset: offset, Err: ErrInvalidClassTag}
	case errors.Is(err, node.ErrInvalidCardinality):
		return &ParseError{Offset: offset, Err: ErrInvalidCardinality}
	case errors.Is(err, node.ErrUnalignedOffset):
		return &ParseError{Offset: offset, Err: ErrUnalignedOffset}
	default:
		return &ParseError{Offset: offset, Err: err}
	}
}
