// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import (
	"errors"
	"fmt"

	"github.com/gaissmai/splinter/internal/node"
)

// Sentinel errors returned by Parse and SplinterRef construction. Test
// against a specific failure with errors.Is; ParseError itself carries
// the byte offset at which parsing failed, for diagnostics.
var (
	ErrBadMagic           = errors.New("splinter: bad magic")
	ErrTruncated          = errors.New("splinter: truncated input")
	ErrInvalidClassTag    = errors.New("splinter: invalid storage-class tag")
	ErrInvalidCardinality = errors.New("splinter: invalid cardinality")
	ErrUnalignedOffset    = errors.New("splinter: child offset out of range")
)

// ParseError wraps one of the sentinel errors above with the byte offset
// at which the failure was detected. Parse always returns it as a
// *ParseError; callers compare it with errors.Is against the sentinels.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("splinter: parse error at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LogicError is panicked (never returned) for internal invariant
// violations — the tree reaching a state that would only happen from a
// bug in this package, not from untrusted input. It is an alias for
// internal/node's own LogicError so a caller recovering at this package's
// API boundary sees the same type regardless of which internal package
// raised it.
type LogicError = node.LogicError
