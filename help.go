package main

import (
	"context"
	"fmt"
	"strings"
)

const helpUsage = `
Usage:	bufstream <command> [options]

Stream Commands:
   cat      Write inputs to stdout, decompressing them on the fly
   sniff    Detect the compression format of inputs

Other Commands:
   config   Show or edit the bufstream configuration
   help     Show usage information about bufstream commands
   version  Show the bufstream version information

For a description of each command, run 'bufstream help <command>'.`

func help(ctx context.Context, args []string) error {
	flagSet := newFlagSet("bufstream help", helpUsage)

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}

	var cmd string
	var msg string

	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "cat":
		msg = catUsage
	case "config":
		msg = configUsage
	case "help", "":
		msg = helpUsage
	case "sniff":
		msg = sniffUsage
	case "version":
		msg = versionUsage
	default:
		return usageError("bufstream help %s: unknown command", cmd)
	}

	fmt.Fprintln(stdout, strings.TrimSpace(msg))
	return nil
}
