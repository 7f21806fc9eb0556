package codec

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 64 * 1024 // max pooled byte capacity
	poolInitCap = 256
)

// byte buffer pool for encoding scratch space
var bufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCap)
		return &buf
	},
}

func getBuf() *[]byte {
	return bufPool.Get().(*[]byte)
}

func putBuf(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	bufPool.Put(buf)
}
