// Package jsonprint renders values as a stream of indented JSON documents.
package jsonprint

import (
	"encoding/json"
	"io"

	"github.com/stealthrocket/bufstream/internal/stream"
)

// NewWriter returns a writer encoding each value as a JSON document on w.
// HTML characters are not escaped.
func NewWriter[T any](w io.Writer) stream.WriteCloser[T] {
	e := json.NewEncoder(w)
	e.SetEscapeHTML(false)
	e.SetIndent("", "  ")
	return &writer[T]{encoder: e}
}

type writer[T any] struct {
	encoder *json.Encoder
}

func (w *writer[T]) Write(values []T) (int, error) {
	for i := range values {
		if err := w.encoder.Encode(&values[i]); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

func (w *writer[T]) Close() error { return nil }
