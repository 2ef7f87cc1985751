package textprint

import (
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/stealthrocket/bufstream/internal/stream"
)

type TableOption[T any] func(*tableWriter[T])

// Header controls whether the column names are written before the rows.
func Header[T any](enable bool) TableOption[T] {
	return func(t *tableWriter[T]) { t.header = enable }
}

// NewTableWriter returns a writer that renders values of the struct type T
// as rows of a table. Column names come from the "text" struct tag, or the
// field name when the tag is absent; fields tagged "-" are skipped.
//
// Rows are buffered until the writer is closed, so the columns can be
// aligned.
func NewTableWriter[T any](w io.Writer, opts ...TableOption[T]) stream.WriteCloser[T] {
	t := &tableWriter[T]{
		output: w,
		header: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type tableWriter[T any] struct {
	output io.Writer
	values []T
	header bool
}

func (t *tableWriter[T]) Write(values []T) (int, error) {
	t.values = append(t.values, values...)
	return len(values), nil
}

func (t *tableWriter[T]) Close() error {
	valueOf := func(values []T, index int) reflect.Value {
		return reflect.ValueOf(&values[index]).Elem()
	}

	valueType := reflect.TypeOf(new(T)).Elem()
	if valueType.Kind() == reflect.Pointer {
		valueType = valueType.Elem()
		valueOf = func(values []T, index int) reflect.Value {
			return reflect.ValueOf(values[index]).Elem()
		}
	}

	var columns []string
	var encoders []encodeFunc
	for _, f := range reflect.VisibleFields(valueType) {
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("text"), ","); tag != "" {
			name = tag
		}
		if name == "-" {
			continue
		}
		columns = append(columns, name)
		encoders = append(encoders, encodeFuncOfStructField(f.Type, f.Index))
	}

	tw := tabwriter.NewWriter(t.output, 0, 4, 2, ' ', 0)

	if t.header {
		if _, err := io.WriteString(tw, strings.Join(columns, "\t")+"\n"); err != nil {
			return err
		}
	}

	for n := range t.values {
		v := valueOf(t.values, n)

		for i, enc := range encoders {
			if i != 0 {
				if _, err := io.WriteString(tw, "\t"); err != nil {
					return err
				}
			}
			if err := enc(tw, v); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(tw, "\n"); err != nil {
			return err
		}
	}

	return tw.Flush()
}
