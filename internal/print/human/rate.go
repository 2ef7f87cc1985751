package human

import (
	"encoding"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Rate represents a throughput in bytes per second.
//
// The type supports parsing values like:
//
//	64KiB/s
//	1.5 MB / second
//	10Mi/minute
//	...
//
// A value without a time unit is interpreted per second. Rates are always
// formatted per second.
type Rate float64

func ParseRate(s string) (Rate, error) {
	text, unit := s, ""
	if i := strings.IndexByte(s, '/'); i >= 0 {
		text = s[:i]
		unit = strings.TrimSpace(s[i+1:])
	}

	b, err := parseBytesFloat64(text)
	if err != nil || b < 0 {
		return 0, fmt.Errorf("malformed rate representation: %q", s)
	}

	var per time.Duration
	switch {
	case unit == "", match(unit, "second"):
		per = time.Second
	case unit == "ms", match(unit, "millisecond"):
		per = time.Millisecond
	case match(unit, "minute"):
		per = time.Minute
	case match(unit, "hour"):
		per = time.Hour
	default:
		return 0, fmt.Errorf("malformed rate unit: %q", s)
	}
	return Rate(b * float64(time.Second) / float64(per)), nil
}

func (r Rate) String() string {
	u := Bytes(r).unitOf(bytes1024[:])
	return ftoa(float64(r), float64(u.scale)) + " " + u.unit + "/s"
}

func (r Rate) GoString() string {
	return fmt.Sprintf("human.Rate(%v)", float64(r))
}

// Format satisfies the fmt.Formatter interface.
//
// The method supports the following formatting verbs:
//
//	f	base 10, unit-less, decimal notation
//	s	base 10, with units (same as calling String)
//	v	same as the 's' format, unless '#' is set to print the go value
func (r Rate) Format(w fmt.State, v rune) {
	_, _ = io.WriteString(w, r.format(w, v))
}

func (r Rate) format(w fmt.State, v rune) string {
	switch v {
	case 'f':
		return strconv.FormatFloat(float64(r), 'f', -1, 64)
	case 's':
		return r.String()
	case 'v':
		if w.Flag('#') {
			return r.GoString()
		}
		return r.format(w, 's')
	default:
		return printError(v, r, float64(r))
	}
}

func (r *Rate) Set(s string) error {
	p, err := ParseRate(s)
	if err != nil {
		return err
	}
	*r = p
	return nil
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(r))
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		return r.Set(s)
	}
	return json.Unmarshal(b, (*float64)(r))
}

func (r Rate) MarshalYAML() (any, error) {
	return r.String(), nil
}

func (r *Rate) UnmarshalYAML(y *yaml.Node) error {
	var s string
	if err := y.Decode(&s); err != nil {
		return err
	}
	return r.Set(s)
}

func (r Rate) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rate) UnmarshalText(b []byte) error {
	return r.Set(string(b))
}

var (
	_ fmt.Formatter  = Rate(0)
	_ fmt.GoStringer = Rate(0)
	_ fmt.Stringer   = Rate(0)

	_ json.Marshaler   = Rate(0)
	_ json.Unmarshaler = (*Rate)(nil)

	_ yaml.Marshaler   = Rate(0)
	_ yaml.Unmarshaler = (*Rate)(nil)

	_ encoding.TextMarshaler   = Rate(0)
	_ encoding.TextUnmarshaler = (*Rate)(nil)

	_ flag.Value = (*Rate)(nil)
)
