package bufstream

import (
	"io"

	"github.com/stealthrocket/bufstream/internal/buffer"
)

// Number of consecutive reads returning no data and no error that the stream
// tolerates from its source before giving up with io.ErrNoProgress.
const maxConsecutiveEmptyReads = 100

// refill reads more bytes from the source into the buffer. It must only be
// called when all buffered bytes have been consumed (pos == limit).
//
// Before reading, the buffer is reorganized depending on the mark:
//
//   - without a mark, the buffered bytes are all discarded
//   - with a mark past the start of the buffer, the marked bytes are moved to
//     the front to reclaim the space before them
//   - with a mark at the start of a full buffer, the buffer is grown by up to
//     ChunkSize bytes
//
// The method returns nil if at least one byte was added to the buffer, io.EOF
// if the source is exhausted, or the error returned by the source.
func (s *Stream) refill() error {
	if s.pos != s.limit {
		panic("BUG: refill called with unread bytes in the buffer")
	}
	if err := s.err; err != nil {
		s.err = nil
		return err
	}

	switch {
	case s.markPos < 0:
		s.pos, s.limit = 0, 0
	case s.markPos > 0:
		s.compact()
	case s.limit == s.buf.Len():
		s.grow()
	}

	return s.fill()
}

// compact moves the bytes [markPos, limit) to the front of the buffer.
func (s *Stream) compact() {
	n := s.limit - s.markPos
	buffer.Move(s.buf.Data, 0, s.markPos, n)
	s.pos -= s.markPos
	s.limit = n
	s.markPos = 0
}

// grow extends the buffer to retain more bytes of the mark, which must be at
// the start of the buffer.
//
// The buffer is sized one byte past the mark allowance, so that reading it to
// the end always moves the position past the read limit and invalidates the
// mark before the next refill. Since a valid mark implies markTarget >= limit,
// growing never exceeds markTarget+1 bytes.
func (s *Stream) grow() {
	size := s.buf.Len()
	if s.markTarget < size {
		panic("BUG: growing the buffer for a mark that should have been invalidated")
	}

	markLimit := s.markLimit
	for markLimit < size {
		markLimit += ChunkSize
		if markLimit > s.markTarget {
			markLimit = s.markTarget
		}
	}

	s.markLimit = markLimit
	s.buf = bufferPool.Grow(s.buf, int64(markLimit)+1, s.limit)
}

// fill issues one read to the source for the free space at the end of the
// buffer.
func (s *Stream) fill() error {
	b := s.buf.Data[s.limit:]
	if len(b) == 0 {
		panic("BUG: no space left in the buffer to read from the source")
	}

	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.src.Read(b)
		if s.closed.Load() {
			return ErrClosed
		}
		if n < 0 || n > len(b) {
			panic("bufstream: source returned an invalid count from Read")
		}
		if n > 0 {
			s.limit += n
			s.err = err
			return nil
		}
		if err != nil {
			return err
		}
	}

	return io.ErrNoProgress
}
