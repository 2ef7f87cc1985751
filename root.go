package main

// Notes on program structure
// --------------------------
//
// bufstream uses subcommands to invoke specific functionalities of the program.
// Each subcommand is implemented by a function named after the command, in a
// file of the same name (e.g. the "help" command is implemented by the help
// function in help.go).
//
// The usage message for each command is declared by a constant starting with
// the command name and followed by the suffix "Usage". For example, the usage
// message for the "help" command is declared by the constant helpUsage.
//
// The usage message contains a "Usage:	bufstream <command>" section presenting
// the structure of the command. Note the tabulation separating "Usage:" and
// "bufstream".
//
// Commands write to the stdout and stderr variables declared in main.go rather
// than the os package globals, which lets tests run them in process.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/stealthrocket/bufstream/internal/config"
	"github.com/stealthrocket/bufstream/internal/print/human"
	"github.com/stealthrocket/bufstream/internal/sniff"
	"golang.org/x/exp/slices"
)

const rootUsage = `bufstream - Buffered byte streams with mark and reset

   bufstream reads inputs through a buffered stream which can be rewound to a
   mark. It uses the capability to detect the compression format of its inputs
   by peeking at their first bytes, and decompress them on the fly.

Example:

   $ bufstream cat access.log.zst
   ...

   $ bufstream sniff *.gz
   INPUT        FORMAT  AVAILABLE
   access.gz    gzip    1.2 MiB
   ...

For a list of commands available, run 'bufstream help'.`

// configPath is the path to the configuration file, set by the -c/--config
// option of each command.
var configPath human.Path

// root is the bufstream entrypoint.
func root(ctx context.Context, args ...string) int {
	path, err := config.Path()
	if err != nil {
		return exit("", err)
	}
	configPath = path

	flagSet := newFlagSet("bufstream", helpUsage)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(flagSet)
			return 0
		}
		fmt.Fprintf(stderr, "bufstream: %s\n", err)
		return 2
	}

	if args = flagSet.Args(); len(args) == 0 {
		fmt.Fprintln(stdout, rootUsage)
		return 0
	}

	cmd, args := args[0], args[1:]

	switch cmd {
	case "cat":
		err = cat(ctx, args)
	case "config":
		err = configCmd(ctx, args)
	case "help":
		err = help(ctx, args)
	case "sniff":
		err = sniffCmd(ctx, args)
	case "version":
		err = version(ctx, args)
	default:
		err = unknown(ctx, cmd)
	}
	return exit(cmd, err)
}

func exit(cmd string, err error) int {
	var code exitCode
	var usg usage

	switch {
	case err == nil:
		return 0
	case errors.As(err, &code):
		return int(code)
	case errors.As(err, &usg):
		fmt.Fprintf(stderr, "%s\n", usg)
		return 2
	default:
		name := "bufstream"
		if cmd != "" {
			name += " " + cmd
		}
		fmt.Fprintf(stderr, "ERR: %s: %s\n", name, err)
		return 1
	}
}

// exitCode is an error type returned from command functions to indicate the
// exit code that should be returned by the program.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit: %d", e)
}

// usage is an error type returned from command functions to indicate a usage
// error.
//
// Usage errors cause the program to exit with status code 2.
type usage string

func usageError(msg string, args ...any) error {
	return usage(fmt.Sprintf(msg, args...))
}

func (e usage) Error() string {
	return string(e)
}

func setEnum[T ~string](enum *T, typ string, value string, options ...string) error {
	for _, option := range options {
		if option == value {
			*enum = T(option)
			return nil
		}
	}
	return fmt.Errorf("unsupported %s: %q (not one of %s)", typ, value, strings.Join(options, ", "))
}

type outputFormat string

func (o outputFormat) String() string {
	return string(o)
}

func (o *outputFormat) Set(value string) error {
	return setEnum(o, "output format", value, "text", "json", "yaml")
}

// inputFormat is the compression format of command inputs, or "auto" to
// detect it.
type inputFormat string

func (f inputFormat) String() string {
	return string(f)
}

func (f *inputFormat) Set(value string) error {
	options := []string{config.AutoFormat}
	for _, format := range sniff.Formats() {
		options = append(options, string(format))
	}
	return setEnum(f, "input format", value, options...)
}

func newFlagSet(cmd, usage string) *flag.FlagSet {
	usage = strings.TrimSpace(usage)
	flagSet := flag.NewFlagSet(cmd, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() { fmt.Fprintln(flagSet.Output(), usage) }
	customVar(flagSet, &configPath, "c", "config")
	return flagSet
}

// printUsage writes the usage message of f to stdout. The output of flag sets
// is discarded otherwise, since the flag package calls Usage on every parse
// error.
func printUsage(f *flag.FlagSet) {
	f.SetOutput(stdout)
	defer f.SetOutput(io.Discard)
	f.Usage()
}

// parseFlags is a greedy parser which consumes all options known to f and
// returns the remaining arguments. Arguments after "--" are never interpreted
// as options.
//
// When the help option is passed, the usage message is printed and the
// returned error is exitCode(0).
func parseFlags(f *flag.FlagSet, args []string) ([]string, error) {
	var remainingArgs, trailingArgs []string
	if i := slices.Index(args, "--"); i >= 0 {
		args, trailingArgs = args[:i], args[i+1:]
	}
	for {
		if err := f.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				printUsage(f)
				return nil, exitCode(0)
			}
			return nil, usageError("%s: %s", f.Name(), err)
		}
		if args = f.Args(); len(args) == 0 {
			return append(remainingArgs, trailingArgs...), nil
		}
		i := slices.IndexFunc(args, func(s string) bool {
			return strings.HasPrefix(s, "-") && s != "-"
		})
		if i < 0 {
			i = len(args)
		}
		if i == 0 {
			panic("parsing command line arguments did not error on " + args[0])
		}
		remainingArgs = append(remainingArgs, args[:i]...)
		args = args[i:]
	}
}

// isSet reports whether one of the named options was passed on the command
// line.
func isSet(f *flag.FlagSet, names ...string) (set bool) {
	f.Visit(func(fl *flag.Flag) {
		if slices.Contains(names, fl.Name) {
			set = true
		}
	})
	return set
}

func boolVar(f *flag.FlagSet, dst *bool, name string, alias ...string) {
	f.BoolVar(dst, name, *dst, "")
	for _, name := range alias {
		f.BoolVar(dst, name, *dst, "")
	}
}

func customVar(f *flag.FlagSet, dst flag.Value, name string, alias ...string) {
	f.Var(dst, name, "")
	for _, name := range alias {
		f.Var(dst, name, "")
	}
}
