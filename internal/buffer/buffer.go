// Package buffer provides pooled byte buffers for the stream layers.
package buffer

import "sync"

// DefaultSize is the alignment applied to the capacity of buffers allocated
// by New, so pooled buffers can be reused across small size differences.
const DefaultSize = 4096

// Buffer wraps a byte slice so it can be recycled through a Pool. The length
// of Data is the logical size of the buffer, its capacity may be larger.
type Buffer struct{ Data []byte }

func (buf *Buffer) Size() int64 {
	return int64(len(buf.Data))
}

// Len is Size as an int, which is what slice arithmetic wants.
func (buf *Buffer) Len() int {
	return len(buf.Data)
}

type Pool struct{ pool sync.Pool }

// Get returns a buffer of the given size. The content of the returned buffer
// is undefined.
func (p *Pool) Get(size int64) *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	if b != nil {
		if int(size) <= cap(b.Data) {
			b.Data = b.Data[:size]
			return b
		}
		p.Put(b)
		b = nil
	}
	return New(size)
}

func (p *Pool) Put(b *Buffer) {
	if b != nil {
		p.pool.Put(b)
	}
}

// Grow returns a buffer of the given size holding a copy of the first keep
// bytes of b, and releases b to the pool. The size must be larger than the
// size of b; buffers never shrink through Grow.
func (p *Pool) Grow(b *Buffer, size int64, keep int) *Buffer {
	if size <= b.Size() {
		panic("BUG: growing buffer to a smaller or equal size")
	}
	g := p.Get(size)
	copy(g.Data, b.Data[:keep])
	p.Put(b)
	return g
}

func New(size int64) *Buffer {
	return &Buffer{Data: make([]byte, size, Align(size, DefaultSize))}
}

// Release puts the buffer pointed to by buf back in the pool and clears the
// pointer. It does nothing if *buf is already nil.
func Release(buf **Buffer, pool *Pool) {
	if b := *buf; b != nil {
		*buf = nil
		pool.Put(b)
	}
}

func Align(size, to int64) int64 {
	return ((size + (to - 1)) / to) * to
}

// Move copies the n bytes starting at b[src] to b[dst] and returns n.
//
// The source and destination ranges may overlap, in which case the result is
// the same as if the source range had first been copied to a temporary
// location.
func Move(b []byte, dst, src, n int) int {
	if n == 0 || dst == src {
		return n
	}
	return copy(b[dst:dst+n], b[src:src+n])
}
