package chaos

import "github.com/stealthrocket/bufstream/pkg/bufstream"

// Chunk wraps the base source to return one that reads at most one byte at a
// time. The intent is to exercise paths that handle successful but partial
// completion of reads.
//
// This fault injector defeats the amortization of reads that buffering
// layers are built for, which may cause measurable slow downs if triggered
// too often.
func Chunk(base bufstream.Source) bufstream.Source {
	return &chunkSource{Source: base}
}

type chunkSource struct {
	bufstream.Source
}

func (s *chunkSource) Read(b []byte) (int, error) {
	if len(b) > 1 {
		b = b[:1]
	}
	return s.Source.Read(b)
}

// Available reports at most one byte since that is all a read returns.
func (s *chunkSource) Available() (int, error) {
	n, err := s.Source.Available()
	if n > 1 {
		n = 1
	}
	return n, err
}
