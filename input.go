package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stealthrocket/bufstream/internal/config"
	"github.com/stealthrocket/bufstream/internal/ioperf"
	"github.com/stealthrocket/bufstream/internal/print/human"
	"github.com/stealthrocket/bufstream/internal/sniff"
	"github.com/stealthrocket/bufstream/internal/throttle"
	"github.com/stealthrocket/bufstream/pkg/bufstream"
	"golang.org/x/time/rate"
)

// inputOptions are the settings applied to each input, merged from the
// configuration file and the command line.
type inputOptions struct {
	bufferSize human.Bytes
	format     inputFormat
	rate       human.Rate
	readAhead  human.Bytes
}

// loadInputOptions loads the configuration file and overrides its values
// with the options set on the command line.
func loadInputOptions(f *flag.FlagSet, bufferSize human.Bytes, format inputFormat, readRate human.Rate) (inputOptions, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return inputOptions{}, err
	}

	opts := inputOptions{
		bufferSize: c.Stream.BufferSize,
		format:     inputFormat(c.Input.Format),
	}
	if r, ok := c.Input.Rate.Value(); ok {
		opts.rate = r
	}

	if isSet(f, "b", "buffer-size") {
		if bufferSize == 0 {
			return opts, usageError("%s: buffer size must be greater than zero", f.Name())
		}
		opts.bufferSize = bufferSize
	}
	if isSet(f, "f", "format") {
		opts.format = format
	}
	if isSet(f, "rate") {
		opts.rate = readRate
	}
	return opts, nil
}

// openInput opens the file at path, or stdin if path is "-", and returns a
// stream reading from it.
func openInput(ctx context.Context, path string, opts inputOptions) (*bufstream.Stream, error) {
	var r io.Reader
	if path == "-" {
		r = io.NopCloser(stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r = f
	}

	src := bufstream.FromReader(r)
	if opts.rate > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.rate), int(opts.bufferSize))
		src = throttle.Source(ctx, src, limiter)
	}
	if opts.readAhead > 0 {
		src = ioperf.ReadAhead(src, int(opts.readAhead))
	}

	s, err := bufstream.New(src, int(opts.bufferSize))
	if err != nil {
		src.Close()
		return nil, err
	}
	return s, nil
}

func detectFormat(s *bufstream.Stream, opts inputOptions) (sniff.Format, error) {
	if opts.format == config.AutoFormat || opts.format == "" {
		return sniff.Detect(s)
	}
	return sniff.ParseFormat(string(opts.format))
}

// newLogger returns the logger used for diagnostic messages; debug messages
// are only emitted in verbose mode.
func newLogger(verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowWarn())
}
