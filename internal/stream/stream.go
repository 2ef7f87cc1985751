// Package stream declares generic interfaces for streams of values.
package stream

import "io"

// Writer is an interface implemented by types that consume a stream of
// values of type T.
type Writer[T any] interface {
	// Writes values to the stream, returning the number of values written and
	// any error that occurred.
	Write(values []T) (int, error)
}

// WriteCloser represents a closable stream of values of T.
//
// WriteCloser is like io.WriteCloser for values of any type. Writers that
// buffer values flush them when closed.
type WriteCloser[T any] interface {
	Writer[T]
	io.Closer
}

// Write writes all values to w.
func Write[T any](w Writer[T], values ...T) error {
	for len(values) > 0 {
		n, err := w.Write(values)
		if err != nil {
			return err
		}
		values = values[n:]
	}
	return nil
}
