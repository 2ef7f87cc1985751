package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stealthrocket/bufstream/internal/assert"
)

var catTests = tests{
	"show the cat command help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "cat", "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream cat ")
		assert.Equal(t, strings.Count(stdout, "Usage:"), 1)
		assert.Equal(t, stderr, "")
	},

	"show the cat command help with the long option": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "cat", "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream cat ")
		assert.Equal(t, stderr, "")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "cat", "-_")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "bufstream cat: flag provided but not defined: -_")
	},

	"cat a plain file": func(t *testing.T) {
		path := writeFile(t, "data.txt", text)
		stdout, stderr, exitCode := runBufstream(t, "cat", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(text))
		assert.Equal(t, stderr, "")
	},

	"cat compressed files": func(t *testing.T) {
		for _, format := range []string{"gzip", "zstd", "snappy", "s2"} {
			path := writeFile(t, "data."+format, compress(t, format, text))
			stdout, stderr, exitCode := runBufstream(t, "cat", path)
			assert.Equal(t, exitCode, 0)
			assert.Equal(t, stdout, string(text))
			assert.Equal(t, stderr, "")
		}
	},

	"cat multiple files concatenates their content": func(t *testing.T) {
		first := writeFile(t, "first.gz", compress(t, "gzip", []byte("hello ")))
		second := writeFile(t, "second.txt", []byte("world\n"))
		stdout, stderr, exitCode := runBufstream(t, "cat", first, second)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "hello world\n")
		assert.Equal(t, stderr, "")
	},

	"cat reads stdin without arguments": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstreamWithInput(t, compress(t, "zstd", text), "cat")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(text))
		assert.Equal(t, stderr, "")
	},

	"cat reads stdin from the dash argument": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstreamWithInput(t, []byte("hello"), "cat", "-")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "hello")
		assert.Equal(t, stderr, "")
	},

	"cat an empty input": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstreamWithInput(t, nil, "cat")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "")
	},

	"cat with an explicit format does not decompress other formats": func(t *testing.T) {
		compressed := compress(t, "gzip", text)
		path := writeFile(t, "data.gz", compressed)
		stdout, stderr, exitCode := runBufstream(t, "cat", "-f", "none", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(compressed))
		assert.Equal(t, stderr, "")
	},

	"cat with a mismatching explicit format fails": func(t *testing.T) {
		path := writeFile(t, "data.txt", text)
		stdout, stderr, exitCode := runBufstream(t, "cat", "--format", "gzip", path)
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "ERR: bufstream cat: "+path+": ")
	},

	"cat with an unsupported format": func(t *testing.T) {
		_, stderr, exitCode := runBufstream(t, "cat", "-f", "lz4")
		assert.Equal(t, exitCode, 2)
		assert.Contains(t, stderr, `unsupported input format: "lz4"`)
	},

	"cat a missing file": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "cat", "does-not-exist")
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "ERR: bufstream cat: open does-not-exist: ")
	},

	"cat with buffer sizes smaller than the magic numbers": func(t *testing.T) {
		path := writeFile(t, "data.zst", compress(t, "zstd", text))
		for _, size := range []string{"1", "3", "9 B", "1KiB"} {
			stdout, stderr, exitCode := runBufstream(t, "cat", "-b", size, path)
			assert.Equal(t, exitCode, 0)
			assert.Equal(t, stdout, string(text))
			assert.Equal(t, stderr, "")
		}
	},

	"cat with a zero buffer size": func(t *testing.T) {
		_, stderr, exitCode := runBufstream(t, "cat", "--buffer-size", "0")
		assert.Equal(t, exitCode, 2)
		assert.HasPrefix(t, stderr, "bufstream cat: buffer size must be greater than zero")
	},

	"cat with a rate limit": func(t *testing.T) {
		path := writeFile(t, "data.s2", compress(t, "s2", text))
		stdout, stderr, exitCode := runBufstream(t, "cat", "--rate", "100MiB/s", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(text))
		assert.Equal(t, stderr, "")
	},

	"cat in verbose mode prints diagnostics": func(t *testing.T) {
		path := writeFile(t, "data.gz", compress(t, "gzip", text))
		stdout, stderr, exitCode := runBufstream(t, "cat", "-v", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(text))
		assert.Contains(t, stderr, `level=debug msg="reading input"`)
		assert.Contains(t, stderr, "format=gzip")
		assert.Contains(t, stderr, "bytes="+strconv.Itoa(len(text)))
	},

	"cat applies the input format of the configuration": func(t *testing.T) {
		writeConfig(t, map[string]any{
			"input": map[string]any{"format": "none"},
		})
		compressed := compress(t, "snappy", text)
		path := writeFile(t, "data.sz", compressed)
		stdout, stderr, exitCode := runBufstream(t, "cat", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(compressed))
		assert.Equal(t, stderr, "")
	},

	"cat with an invalid configuration": func(t *testing.T) {
		writeConfig(t, map[string]any{
			"stream": map[string]any{"buffer-size": "lots"},
		})
		_, stderr, exitCode := runBufstream(t, "cat", "-")
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: bufstream cat: ")
	},

	"cat with read ahead": func(t *testing.T) {
		path := writeFile(t, "data.zst", compress(t, "zstd", text))
		stdout, stderr, exitCode := runBufstream(t, "cat", "--read-ahead", "64", "--rate", "10MiB/s", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(text))
		assert.Equal(t, stderr, "")
	},
}
