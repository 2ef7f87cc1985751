// Package bufstream implements buffered reading over byte sources that cannot
// seek, with support for marking a position in the stream and resetting back
// to it later.
//
// A Stream amortizes small reads into bulk reads of its underlying Source.
// Calling Mark records the current position along with a read limit; as long
// as no more than read limit bytes are consumed past the mark, Reset rewinds
// the stream to the marked position and the bytes are delivered again from
// memory. The buffer grows in steps of ChunkSize to retain marked bytes, and
// only when a mark requires it.
//
// Stream methods are safe to call from concurrent goroutines; each call is
// serialized with the others for its whole duration. Close may be called
// while another goroutine is blocked reading from the source, in which case
// the source is closed to interrupt the read and the reader observes
// ErrClosed.
package bufstream

import (
	"fmt"
	"io"
	"sync"

	"github.com/stealthrocket/bufstream/internal/buffer"
	"go.uber.org/atomic"
)

const (
	// DefaultSize is the buffer size of streams created by NewDefault.
	DefaultSize = 2048

	// ChunkSize is the step by which the buffer grows to retain the bytes of
	// a mark, and the initial allowance given to a new mark.
	ChunkSize = 1024
)

var bufferPool buffer.Pool

// Stream is a buffered reader with mark and reset support.
type Stream struct {
	mu  sync.Mutex
	src Source
	buf *buffer.Buffer
	err error // deferred source error, reported by the next refill

	// The buffer holds the bytes [markPos, limit) of the stream when a mark
	// is set, or [pos, limit) otherwise.
	limit int
	pos   int

	markPos    int // -1 when no mark is set
	markLimit  int // allowance the buffer has been grown for
	markTarget int // read limit requested by the last call to Mark

	closed atomic.Bool
}

// New constructs a Stream reading from src with a buffer of the given size.
func New(src Source, size int) (*Stream, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: buffer size must be positive: %d", ErrInvalidArgument, size)
	}
	s := &Stream{
		src:     src,
		buf:     bufferPool.Get(int64(size)),
		markPos: -1,
	}
	return s, nil
}

// NewDefault constructs a Stream reading from src with a buffer of
// DefaultSize bytes.
func NewDefault(src Source) *Stream {
	s, _ := New(src, DefaultSize)
	return s
}

// ReadByte reads and returns the next byte of the stream, or io.EOF when the
// source is exhausted.
func (s *Stream) ReadByte() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if s.pos == s.limit {
		if err := s.refill(); err != nil {
			return 0, err
		}
	}

	c := s.buf.Data[s.pos]
	s.pos++
	s.checkMark()
	return c, nil
}

// Read reads up to len(p) bytes into p. It calls ReadInto(p, 0, len(p)).
func (s *Stream) Read(p []byte) (int, error) {
	return s.ReadInto(p, 0, len(p))
}

// ReadInto reads up to length bytes into b[off:off+length].
//
// When no bytes are buffered, the method refills the buffer once from the
// source; it does not try to read the full length, and returns the number of
// bytes that were available. Use io.ReadFull to read an exact count. The
// method returns io.EOF if the source was exhausted before any bytes could be
// read.
func (s *Stream) ReadInto(b []byte, off, length int) (int, error) {
	if off < 0 || length < 0 || off > len(b)-length {
		return 0, fmt.Errorf("%w: offset %d and length %d out of bounds for buffer of length %d",
			ErrInvalidArgument, off, length, len(b))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if length == 0 {
		return 0, nil
	}
	if s.pos == s.limit {
		if err := s.refill(); err != nil {
			return 0, err
		}
	}

	n := copy(b[off:off+length], s.buf.Data[s.pos:s.limit])
	s.pos += n
	s.checkMark()
	return n, nil
}

// Available returns the number of bytes that can be read without blocking:
// the count of unread buffered bytes plus the availability hint of the source.
func (s *Stream) Available() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	n, err := s.src.Available()
	if err != nil {
		return 0, err
	}
	return (s.limit - s.pos) + n, nil
}

// Buffered returns the number of unread bytes held in the buffer. It returns
// zero after the stream was closed.
func (s *Stream) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkOpen() != nil {
		return 0
	}
	return s.limit - s.pos
}

// Mark records the current position of the stream. A later call to Reset
// rewinds the stream to this position, provided that no more than readLimit
// bytes were consumed in between. A read limit of zero is valid and allows
// resetting only until the next byte is consumed.
//
// Only one mark exists at a time; calling Mark replaces the previous mark.
func (s *Stream) Mark(readLimit int) error {
	if readLimit < 0 {
		return fmt.Errorf("%w: negative read limit: %d", ErrInvalidArgument, readLimit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	s.markTarget = readLimit
	s.markLimit = readLimit
	if s.markLimit > ChunkSize {
		s.markLimit = ChunkSize
	}
	s.markPos = s.pos
	return nil
}

// MarkSupported always returns true.
func (s *Stream) MarkSupported() bool { return true }

// Reset rewinds the stream to the position recorded by the last call to Mark.
//
// The method returns ErrInvalidMark if no mark was set or if the mark was
// invalidated by reading past its limit, and ErrClosed if the stream was
// closed. The mark remains set after a reset.
func (s *Stream) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.markPos < 0 {
		return ErrInvalidMark
	}
	s.pos = s.markPos
	return nil
}

// Skip discards up to n bytes from the stream and returns the number of bytes
// that were discarded.
//
// The count is short when the end of the stream is reached after skipping at
// least one byte. If the source was already exhausted, Skip returns io.EOF.
func (s *Stream) Skip(n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	var skipped int64
	for skipped < n {
		if s.pos == s.limit {
			if err := s.refill(); err != nil {
				if err == io.EOF && skipped > 0 {
					break
				}
				return skipped, err
			}
		}
		k := int64(s.limit - s.pos)
		if k > n-skipped {
			k = n - skipped
		}
		s.pos += int(k)
		skipped += k
		s.checkMark()
	}
	return skipped, nil
}

// Close releases the buffer and closes the source. Operations on the stream
// return ErrClosed afterwards. Calling Close more than once is a no-op.
func (s *Stream) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	// The source is closed before acquiring the lock so a reader blocked in
	// the source gets interrupted instead of holding the lock indefinitely.
	err := s.src.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	buffer.Release(&s.buf, &bufferPool)
	s.limit, s.pos = 0, 0
	s.markPos = -1
	s.err = nil
	return err
}

func (s *Stream) checkOpen() error {
	if s.buf == nil || s.closed.Load() {
		return ErrClosed
	}
	return nil
}

// checkMark invalidates the mark once more than its read limit was consumed.
func (s *Stream) checkMark() {
	if s.markPos >= 0 && s.pos-s.markPos > s.markTarget {
		s.markPos = -1
	}
}

var (
	_ io.ReadCloser = (*Stream)(nil)
	_ io.ByteReader = (*Stream)(nil)
)
