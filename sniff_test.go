package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stealthrocket/bufstream/internal/assert"
)

var sniffTests = tests{
	"show the sniff command help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "sniff", "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream sniff ")
		assert.Equal(t, stderr, "")
	},

	"sniff files of each format": func(t *testing.T) {
		var paths []string
		var sizes []int
		for _, format := range []string{"none", "gzip", "zstd", "snappy", "s2"} {
			data := compress(t, format, text)
			paths = append(paths, writeFile(t, format, data))
			sizes = append(sizes, len(data))
		}

		stdout, stderr, exitCode := runBufstream(t, append([]string{"sniff", "-o", "json"}, paths...)...)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stderr, "")

		d := json.NewDecoder(strings.NewReader(stdout))
		for i, format := range []string{"none", "gzip", "zstd", "snappy", "s2"} {
			var report struct {
				Input     string `json:"input"`
				Format    string `json:"format"`
				Available int    `json:"available"`
			}
			assert.OK(t, d.Decode(&report))
			assert.Equal(t, report.Input, paths[i])
			assert.Equal(t, report.Format, format)
			assert.Equal(t, report.Available, sizes[i])
		}
		assert.False(t, d.More())
	},

	"sniff prints a table by default": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstreamWithInput(t, compress(t, "gzip", []byte("hello")), "sniff")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stderr, "")

		lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
		assert.Equal(t, len(lines), 2)
		assert.Equal(t, strings.Join(strings.Fields(lines[0]), " "), "INPUT FORMAT AVAILABLE")
		assert.HasPrefix(t, strings.Join(strings.Fields(lines[1]), " "), "- gzip ")
	},

	"sniff prints yaml": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstreamWithInput(t, nil, "sniff", "-o", "yaml")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stderr, "")
		assert.HasPrefix(t, stdout, "input: ")
		assert.Contains(t, stdout, "\nformat: none\n")
		assert.Contains(t, stdout, "\navailable: ")
	},

	"sniff does not decompress inputs": func(t *testing.T) {
		path := writeFile(t, "data.txt", []byte("\x1f\x8bnot really gzip"))
		stdout, stderr, exitCode := runBufstream(t, "sniff", "-o", "json", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stderr, "")
		assert.Contains(t, stdout, `"format": "gzip"`)
	},

	"sniff a missing file": func(t *testing.T) {
		_, stderr, exitCode := runBufstream(t, "sniff", "does-not-exist")
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: bufstream sniff: open does-not-exist: ")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "sniff", "--nope")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "bufstream sniff: flag provided but not defined: -nope")
	},

	"sniff with an unsupported output format": func(t *testing.T) {
		_, stderr, exitCode := runBufstream(t, "sniff", "-o", "xml")
		assert.Equal(t, exitCode, 2)
		assert.Contains(t, stderr, `unsupported output format: "xml"`)
	},

	"sniff in verbose mode prints diagnostics": func(t *testing.T) {
		_, stderr, exitCode := runBufstreamWithInput(t, compress(t, "s2", text), "sniff", "--verbose")
		assert.Equal(t, exitCode, 0)
		assert.Contains(t, stderr, `level=debug msg="sniffed input" input=- format=s2`)
	},
}
