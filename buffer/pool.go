package buffer

import "sync"

// Pool[T] is a sync.Pool-backed pool of BufferMut[T] builders, generalizing
// ByteBufferPool (internal/pool/byte_buffer_pool.go) from a fixed []byte
// payload to any element type. Compute kernels draw scratch buffers from
// a Pool instead of allocating on every call.
type Pool[T any] struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultSize elements.
// Buffers whose capacity exceeds maxThreshold elements when returned via
// Put are discarded rather than retained, bounding pool memory.
func NewPool[T any](defaultSize, maxThreshold int) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return NewMut[T](defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a BufferMut[T] from the pool, or allocates a new one.
func (p *Pool[T]) Get() *BufferMut[T] {
	buf, _ := p.pool.Get().(*BufferMut[T])

	return buf
}

// Put returns buf to the pool for reuse, discarding it if its capacity
// exceeds the configured maxThreshold.
func (p *Pool[T]) Put(buf *BufferMut[T]) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && buf.Cap() > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}
