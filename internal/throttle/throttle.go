// Package throttle limits the throughput of byte sources.
package throttle

import (
	"context"

	"github.com/stealthrocket/bufstream/pkg/bufstream"
	"golang.org/x/time/rate"
)

// Source wraps src so that reads consume one token of the limiter per byte.
//
// Reads are capped to the burst size of the limiter, and the tokens for the
// bytes returned by a read are waited for before the read returns. The wait
// is aborted if ctx is canceled, in which case the read returns the bytes it
// obtained along with the context error.
func Source(ctx context.Context, src bufstream.Source, limiter *rate.Limiter) bufstream.Source {
	return &source{Source: src, ctx: ctx, limiter: limiter}
}

type source struct {
	bufstream.Source
	ctx     context.Context
	limiter *rate.Limiter
}

func (s *source) Read(b []byte) (int, error) {
	if s.limiter.Limit() == rate.Inf {
		return s.Source.Read(b)
	}
	if burst := s.limiter.Burst(); len(b) > burst {
		b = b[:burst]
	}
	n, err := s.Source.Read(b)
	if n > 0 {
		if waitErr := s.limiter.WaitN(s.ctx, n); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}
