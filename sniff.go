package main

import (
	"context"

	"github.com/go-kit/log/level"
	"github.com/stealthrocket/bufstream/internal/config"
	"github.com/stealthrocket/bufstream/internal/print/human"
	"github.com/stealthrocket/bufstream/internal/print/jsonprint"
	"github.com/stealthrocket/bufstream/internal/print/textprint"
	"github.com/stealthrocket/bufstream/internal/print/yamlprint"
	"github.com/stealthrocket/bufstream/internal/sniff"
	"github.com/stealthrocket/bufstream/internal/stream"
)

const sniffUsage = `
Usage:	bufstream sniff [options] [file...]

   The sniff command detects the compression format of each file by peeking
   at its first bytes, reading from stdin when no file is given or the file
   name is "-". AVAILABLE is the number of bytes that could be read from the
   input without blocking.

Example:

   $ bufstream sniff access.log.gz events.zst
   INPUT           FORMAT  AVAILABLE
   access.log.gz   gzip    1.2 MiB
   events.zst      zstd    310 KiB

Options:
   -b, --buffer-size size  Initial size of the stream buffer (default: 2 KiB)
   -c, --config path       Path to the configuration file (overrides BUFSTREAMCONFIG)
   -h, --help              Show this usage information
   -o, --output format     Output format, one of: text, json, yaml
   -v, --verbose           Print diagnostic messages to stderr
`

type sniffReport struct {
	Input     string       `json:"input"     yaml:"input"     text:"INPUT"`
	Format    sniff.Format `json:"format"    yaml:"format"    text:"FORMAT"`
	Available human.Bytes  `json:"available" yaml:"available" text:"AVAILABLE"`
}

func sniffCmd(ctx context.Context, args []string) error {
	var (
		bufferSize human.Bytes
		output     = outputFormat("text")
		verbose    bool
	)

	flagSet := newFlagSet("bufstream sniff", sniffUsage)
	customVar(flagSet, &bufferSize, "b", "buffer-size")
	customVar(flagSet, &output, "o", "output")
	boolVar(flagSet, &verbose, "v", "verbose")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}

	opts, err := loadInputOptions(flagSet, bufferSize, config.AutoFormat, 0)
	if err != nil {
		return err
	}
	// Sniffing reads a few bytes at most, the input options which shape the
	// stream of content do not apply.
	opts.format, opts.rate = config.AutoFormat, 0
	logger := newLogger(verbose)

	var writer stream.WriteCloser[sniffReport]
	switch output {
	case "json":
		writer = jsonprint.NewWriter[sniffReport](stdout)
	case "yaml":
		writer = yamlprint.NewWriter[sniffReport](stdout)
	default:
		writer = textprint.NewTableWriter[sniffReport](stdout)
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		report, err := sniffInput(ctx, path, opts)
		if err != nil {
			writer.Close()
			return err
		}
		level.Debug(logger).Log("msg", "sniffed input", "input", path, "format", report.Format, "available", report.Available)
		if err := stream.Write[sniffReport](writer, report); err != nil {
			writer.Close()
			return err
		}
	}
	return writer.Close()
}

func sniffInput(ctx context.Context, path string, opts inputOptions) (sniffReport, error) {
	s, err := openInput(ctx, path, opts)
	if err != nil {
		return sniffReport{}, err
	}
	defer s.Close()

	format, err := sniff.Detect(s)
	if err != nil {
		return sniffReport{}, err
	}
	available, err := s.Available()
	if err != nil {
		return sniffReport{}, err
	}
	return sniffReport{
		Input:     path,
		Format:    format,
		Available: human.Bytes(available),
	}, nil
}
