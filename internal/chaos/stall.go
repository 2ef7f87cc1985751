package chaos

import "github.com/stealthrocket/bufstream/pkg/bufstream"

// Stall wraps the base source to return one where reads complete without
// producing data nor reporting an error.
//
// Readers are allowed to behave this way by the io.Reader contract, even if
// it is discouraged; consumers must not mistake it for the end of the stream.
func Stall(base bufstream.Source) bufstream.Source {
	return &stallSource{Source: base}
}

type stallSource struct {
	bufstream.Source
}

func (s *stallSource) Read(b []byte) (int, error) {
	return 0, nil
}
