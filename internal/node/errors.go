// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package node

// LogicError is panicked (never returned) when a Node type switch falls
// through to a case that the closed Block/Partition interface should make
// unreachable. Seeing one means this package has a bug, not that the
// caller passed bad data.
type LogicError string

func (e LogicError) Error() string { return "node: logic error: " + string(e) }
