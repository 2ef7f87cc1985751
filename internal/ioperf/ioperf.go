// Package ioperf contains byte sources tuned for throughput.
package ioperf

import (
	"sync"

	"github.com/stealthrocket/bufstream/pkg/bufstream"
)

// ReadAhead returns a source reading from src in a background goroutine. The
// read-ahead buffer of the given size is split in two halves: one is filled
// from src while the other is consumed by Read.
//
// Available reports the number of bytes already read ahead. Closing the
// returned source closes src, which interrupts the background read if the
// source supports it.
func ReadAhead(src bufstream.Source, size int) bufstream.Source {
	if size < 2 {
		size = 2
	}

	bufs := make(chan []byte)
	errs := make(chan error, 1)
	done := make(chan []byte, 2)
	closed := make(chan struct{})

	split := size / 2
	buf := make([]byte, size)

	done <- buf[:split:split]
	done <- buf[split:]
	go readAhead(src, bufs, errs, done, closed)

	return &readAheadSource{
		src:    src,
		bufs:   bufs,
		errs:   errs,
		done:   done,
		closed: closed,
	}
}

type readAheadSource struct {
	src    bufstream.Source
	buffer []byte
	offset int
	err    error

	bufs   <-chan []byte
	errs   <-chan error
	done   chan<- []byte
	closed chan struct{}
	once   sync.Once
}

func (r *readAheadSource) Read(b []byte) (int, error) {
	if r.offset == len(r.buffer) {
		if r.err != nil {
			return 0, r.err
		}

		if r.buffer != nil {
			r.done <- r.buffer
			r.buffer = nil
			r.offset = 0
		}

		select {
		case buf, ok := <-r.bufs:
			if !ok {
				r.err = makeError(<-r.errs)
				return 0, r.err
			}
			r.buffer = buf
		case <-r.closed:
			return 0, bufstream.ErrClosed
		}
	}

	n := copy(b, r.buffer[r.offset:])
	r.offset += n
	return n, nil
}

func (r *readAheadSource) Available() (int, error) {
	return len(r.buffer) - r.offset, nil
}

func (r *readAheadSource) Close() (err error) {
	r.once.Do(func() {
		close(r.closed)
		err = r.src.Close()
	})
	return err
}

// readAhead fills the buffers received on done and passes them to the reader
// on bufs. Reads that produce no bytes are forwarded as empty buffers, so the
// reader observes the same sequence of results as if it were reading from src.
func readAhead(src bufstream.Source, bufs chan<- []byte, errs chan<- error, done <-chan []byte, closed <-chan struct{}) {
	defer close(errs)
	defer close(bufs)

	for {
		var b []byte
		select {
		case b = <-done:
		case <-closed:
			return
		}

		n, err := src.Read(b[:cap(b)])
		if n > 0 || err == nil {
			select {
			case bufs <- b[:n]:
			case <-closed:
				return
			}
		}
		if err != nil {
			errs <- err
			return
		}
	}
}

func makeError(err error) error {
	if err == nil {
		// The background goroutine only exits without an error when the
		// source was closed.
		return bufstream.ErrClosed
	}
	return err
}
