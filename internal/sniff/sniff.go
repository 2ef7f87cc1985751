// Package sniff detects the compression format of byte streams by peeking at
// their first bytes, and constructs decoders for the formats it detects.
package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/stealthrocket/bufstream/pkg/bufstream"
)

// Format is the compression format of a stream.
type Format string

const (
	None   Format = "none"
	Gzip   Format = "gzip"
	Zstd   Format = "zstd"
	Snappy Format = "snappy"
	S2     Format = "s2"
)

func (f Format) String() string { return string(f) }

// Formats lists the formats supported by the package.
func Formats() []Format {
	return []Format{None, Gzip, Zstd, Snappy, S2}
}

var magics = [...]struct {
	format Format
	prefix []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{Snappy, []byte("\xff\x06\x00\x00sNaPpY")},
	{S2, []byte("\xff\x06\x00\x00S2sTwO")},
}

// MagicSize is the number of bytes that Detect needs to look at.
const MagicSize = 10

// Match returns the format identified by the given stream prefix.
func Match(prefix []byte) Format {
	for _, m := range magics {
		if bytes.HasPrefix(prefix, m.prefix) {
			return m.format
		}
	}
	return None
}

// Detect returns the format of the stream without consuming any of its
// bytes. It replaces any mark previously set on the stream.
//
// Streams shorter than MagicSize are matched on the bytes they have; an empty
// stream is reported as None.
func Detect(s *bufstream.Stream) (Format, error) {
	if err := s.Mark(MagicSize); err != nil {
		return None, err
	}
	var b [MagicSize]byte
	n, err := io.ReadFull(s, b[:])
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
	default:
		return None, err
	}
	if err := s.Reset(); err != nil {
		return None, err
	}
	return Match(b[:n]), nil
}

// NewDecoder returns a reader decompressing r according to the format.
func NewDecoder(f Format, r io.Reader) (io.ReadCloser, error) {
	switch f {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return z, nil
	case Zstd:
		d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unknown compression format: %q", f)
	}
}

// ErrUnknownFormat is returned by ParseFormat for names that do not match a
// supported format.
var ErrUnknownFormat = errors.New("unknown compression format")

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}
