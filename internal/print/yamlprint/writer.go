// Package yamlprint renders values as a stream of YAML documents.
package yamlprint

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/stealthrocket/bufstream/internal/stream"
)

// NewWriter returns a writer encoding each value as a YAML document on w.
// Documents are separated by "---" lines.
func NewWriter[T any](w io.Writer) stream.WriteCloser[T] {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	return &writer[T]{encoder: e}
}

type writer[T any] struct {
	encoder *yaml.Encoder
	count   int
}

func (w *writer[T]) Write(values []T) (int, error) {
	for i := range values {
		if err := w.encoder.Encode(&values[i]); err != nil {
			return i, err
		}
		w.count++
	}
	return len(values), nil
}

// Close flushes the encoder. Closing a writer which encoded no values does
// not produce any output.
func (w *writer[T]) Close() error {
	if w.count == 0 {
		return nil
	}
	return w.encoder.Close()
}
