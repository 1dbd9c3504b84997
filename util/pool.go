package util

import "sync"

// ReadBufSize is the per-read buffer capacity for relay sessions.  A
// hard cap per read call, not a message boundary: longer payloads are
// delivered as multiple fan-outs with no reassembly.
const ReadBufSize = 1024

// BufPool provides reusable read buffers for session loops, reducing
// GC pressure when many clients are chattering at once.
var BufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, ReadBufSize)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return BufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	BufPool.Put(buf)
}
