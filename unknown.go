package main

import (
	"context"
)

const unknownCommand = `bufstream %s: unknown command
For a list of commands available, run 'bufstream help'.`

func unknown(ctx context.Context, cmd string) error {
	return usageError(unknownCommand, cmd)
}
