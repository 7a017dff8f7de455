package pool

import (
	"bytes"
	"sync"
)

// BufferPool recycles byte buffers used to assemble snapshot frames.
type BufferPool struct {
	size int       // Initial capacity of each buffer.
	pool sync.Pool // Thread-safe pool of buffers.
}

// Creates a new buffer pool whose buffers start with the given capacity.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, size))
			},
		},
	}
}

// Retrieves an empty buffer from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	buf := bp.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Returns a buffer to the pool. Buffers that grew well past the configured
// size are dropped so one oversized frame does not pin memory.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > bp.size*2 {
		return
	}

	buf.Reset()
	bp.pool.Put(buf)
}

// Copy returns an independent copy of buf's contents and recycles buf.
func (bp *BufferPool) Copy(buf *bytes.Buffer) []byte {
	out := bytes.Clone(buf.Bytes())
	bp.Put(buf)
	return out
}
