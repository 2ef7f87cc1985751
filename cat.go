package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stealthrocket/bufstream/internal/print/human"
	"github.com/stealthrocket/bufstream/internal/sniff"
)

const catUsage = `
Usage:	bufstream cat [options] [file...]

   The cat command writes the content of each file to stdout, reading from
   stdin when no file is given or the file name is "-". Compressed inputs are
   detected and decompressed, unless the input format is set explicitly.

Example:

   $ bufstream cat access.log.gz
   ...

   $ curl -s https://example.com/data.zst | bufstream cat --rate 1MiB/s
   ...

Options:
   -b, --buffer-size size  Initial size of the stream buffer (default: 2 KiB)
   -c, --config path       Path to the configuration file (overrides BUFSTREAMCONFIG)
   -f, --format name       Format of the inputs, one of: auto, none, gzip, zstd, snappy, s2
   -h, --help              Show this usage information
       --rate rate         Limit the read throughput of each input (e.g. 512KiB/s)
       --read-ahead size   Read inputs ahead in the background with a buffer of this size
   -v, --verbose           Print diagnostic messages to stderr
`

func cat(ctx context.Context, args []string) error {
	var (
		bufferSize human.Bytes
		format     inputFormat
		readRate   human.Rate
		readAhead  human.Bytes
		verbose    bool
	)

	flagSet := newFlagSet("bufstream cat", catUsage)
	customVar(flagSet, &bufferSize, "b", "buffer-size")
	customVar(flagSet, &format, "f", "format")
	customVar(flagSet, &readRate, "rate")
	customVar(flagSet, &readAhead, "read-ahead")
	boolVar(flagSet, &verbose, "v", "verbose")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}

	opts, err := loadInputOptions(flagSet, bufferSize, format, readRate)
	if err != nil {
		return err
	}
	opts.readAhead = readAhead
	logger := newLogger(verbose)

	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		if err := catInput(ctx, logger, path, opts); err != nil {
			return err
		}
	}
	return nil
}

func catInput(ctx context.Context, logger log.Logger, path string, opts inputOptions) error {
	s, err := openInput(ctx, path, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	format, err := detectFormat(s, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	level.Debug(logger).Log("msg", "reading input", "input", path, "format", format, "buffer-size", opts.bufferSize)

	r, err := sniff.NewDecoder(format, s)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	n, err := io.Copy(stdout, r)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	level.Debug(logger).Log("msg", "done reading input", "input", path, "bytes", n)
	return nil
}
