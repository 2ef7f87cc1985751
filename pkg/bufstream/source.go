package bufstream

import (
	"io"
	"io/fs"
)

// Source is the interface of byte producers that a Stream reads from.
//
// Read follows the io.Reader contract: it returns as much data as is
// currently available, blocking only until some data is ready, and returns
// io.EOF once the source is exhausted.
//
// Available returns an estimate of the number of bytes that can be read
// without blocking. It must not block itself.
//
// Close releases the resources held by the source. A Stream may call Close
// concurrently with an in-flight Read to interrupt it; sources like *os.File
// or net.Conn support this.
type Source interface {
	io.Reader
	io.Closer
	Available() (int, error)
}

// FromReader adapts r to the Source interface.
//
// The availability hint is taken from a Len method (as on *bytes.Reader or
// *strings.Reader), a Buffered method (as on *bufio.Reader), or from the size
// and offset of regular files (as on *os.File), and is zero otherwise.
// Closing the source closes r if it implements io.Closer.
func FromReader(r io.Reader) Source {
	if s, ok := r.(Source); ok {
		return s
	}
	return &readerSource{reader: r}
}

type readerSource struct{ reader io.Reader }

func (s *readerSource) Read(b []byte) (int, error) {
	return s.reader.Read(b)
}

func (s *readerSource) Available() (int, error) {
	switch r := s.reader.(type) {
	case interface{ Len() int }:
		return r.Len(), nil
	case interface{ Buffered() int }:
		return r.Buffered(), nil
	case seekStater:
		return fileAvailable(r)
	default:
		return 0, nil
	}
}

func (s *readerSource) Close() error {
	if c, ok := s.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type seekStater interface {
	Stat() (fs.FileInfo, error)
	Seek(offset int64, whence int) (int64, error)
}

func fileAvailable(f seekStater) (int, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, nil
	}
	offset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	if n := info.Size() - offset; n > 0 {
		return int(n), nil
	}
	return 0, nil
}
