// Package human provides types that support parsing and formatting
// human-friendly representations of byte sizes, throughputs, and paths.
//
// The types implement flag.Value as well as the text, JSON, and YAML
// marshaling interfaces, so they can be used directly as command line flags
// and configuration fields:
//
//	type streamConfig struct {
//		BufferSize human.Bytes `yaml:"buffer-size"`
//		Rate       human.Rate  `yaml:"rate"`
//	}
package human

import (
	"fmt"
	"strings"
	"unicode"
)

// parseUnit splits s into its numeric head and trailing unit.
func parseUnit(s string) (head, unit string) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if i < 0 {
		return s, ""
	}
	return strings.TrimRightFunc(s[:i+1], unicode.IsSpace), s[i+1:]
}

// match reports whether s is a case-insensitive prefix of pattern.
func match(s, pattern string) bool {
	return len(s) <= len(pattern) && strings.EqualFold(s, pattern[:len(s)])
}

func ftoa(value, scale float64) string {
	if value == 0 {
		return "0"
	}
	if value < 0 {
		return "-" + ftoa(-value, scale)
	}

	var format string
	switch {
	case value/scale >= 100:
		format = "%.0f"
	case value/scale >= 10:
		format = "%.1f"
	default:
		format = "%.2f"
	}

	s := fmt.Sprintf(format, value/scale)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func printError(verb rune, typ, val any) string {
	return fmt.Sprintf("%%!%c(%T=%v)", verb, typ, val)
}
