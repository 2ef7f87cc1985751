package main

import (
	"testing"

	"github.com/stealthrocket/bufstream/internal/assert"
)

var helpTests = tests{
	"calling help with an unknown command causes an error": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "whatever")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "bufstream help whatever: unknown command\n")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		_, _, exitCode := runBufstream(t, "help", "-_")
		assert.Equal(t, exitCode, 2)
	},

	"show the help command help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream <command> ")
		assert.Equal(t, stderr, "")
	},

	"show the help command help with the long option": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream <command> ")
		assert.Equal(t, stderr, "")
	},

	"show the help command help after a command name": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "cat", "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream <command> ")
		assert.Equal(t, stderr, "")
	},

	"bufstream help cat": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "cat")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream cat ")
		assert.Equal(t, stderr, "")
	},

	"bufstream help config": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "config")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream config ")
		assert.Equal(t, stderr, "")
	},

	"bufstream help help": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream <command> ")
		assert.Equal(t, stderr, "")
	},

	"bufstream help sniff": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "sniff")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream sniff ")
		assert.Equal(t, stderr, "")
	},

	"bufstream help version": func(t *testing.T) {
		stdout, stderr, exitCode := runBufstream(t, "help", "version")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tbufstream version\n")
		assert.Equal(t, stderr, "")
	},
}
