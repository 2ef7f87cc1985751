package main

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stealthrocket/bufstream/internal/assert"
)

var rootTests = tests{
	"invoking bufstream without a command prints the introduction message": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t)
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "bufstream - Buffered byte streams with mark and reset\n")
		assert.Equal(t, stderr, "")
	},

	"show the bufstream help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream <command> ")
		assert.Equal(t, stderr, "")
	},

	"show the bufstream help with the long option": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream <command> ")
		assert.Equal(t, strings.Count(stdout, "Usage:"), 1)
		assert.Equal(t, stderr, "")
	},

	"an unknown home directory fails to resolve the default configuration path": func(t *testing.T) {
		if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
			t.Skip("home directory lookup depends on HOME on this platform only")
		}
		t.Setenv("BUFSTREAMCONFIG", "")
		t.Setenv("HOME", "")

		stdout, stderr, exitCode := runBufstream(t, "version")
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "ERR: bufstream: configuration path: expanding ~/.bufstream/config.yaml: ")
	},

	"passing an unsupported flag before the command causes an error": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "-_", "version")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "bufstream: flag provided but not defined: -_")
	},
}
