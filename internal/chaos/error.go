package chaos

import "github.com/stealthrocket/bufstream/pkg/bufstream"

// Error wraps the base source to return one that fails all reads with err.
//
// The base source is not read from, so no data is lost when the error is
// injected; a consumer that retries after the error observes the same bytes
// it would have read without fault injection.
func Error(base bufstream.Source, err error) bufstream.Source {
	return &errorSource{Source: base, err: err}
}

type errorSource struct {
	bufstream.Source
	err error
}

func (s *errorSource) Read(b []byte) (int, error) {
	return 0, s.err
}
