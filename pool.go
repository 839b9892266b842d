// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package splinter

import "sync"

// bufPool recycles the growing []byte backing array used by Serialize.
// It does not change Splinter's single-writer contract: the pool is only
// ever touched from the goroutine that owns the Splinter being
// serialized.
var bufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

func getBuf() *[]byte {
	return bufPool.Get().(*[]byte)
}

func putBuf(buf *[]byte) {
	*buf = (*buf)[:0]
	bufPool.Put(buf)
}
