package bufstream

import "errors"

var (
	// ErrInvalidArgument is returned when an operation is called with
	// arguments outside of its domain, such as a non-positive buffer size or
	// out-of-bounds offsets. Errors returned by the package wrap it with more
	// details, use errors.Is to test for it.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrClosed is returned by operations on a stream that was closed.
	ErrClosed = errors.New("stream closed")

	// ErrInvalidMark is returned by Reset when no mark was set, or when the
	// mark was invalidated because more bytes than its read limit were
	// consumed past it.
	ErrInvalidMark = errors.New("invalid mark")
)
