package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stealthrocket/bufstream/internal/config"
	"github.com/stealthrocket/bufstream/internal/print/jsonprint"
	"github.com/stealthrocket/bufstream/internal/print/yamlprint"
	"github.com/stealthrocket/bufstream/internal/stream"
)

const configUsage = `
Usage:	bufstream config [options]

   The config command prints the configuration in effect. The text output is
   the content of the configuration file, or the defaults when the file does
   not exist.

Example:

   $ bufstream config -o yaml
   stream:
     buffer-size: 2 KiB
   input:
     format: auto
     rate: null

Options:
   -c, --config path    Path to the configuration file (overrides BUFSTREAMCONFIG)
       --edit           Open $EDITOR to edit the configuration
   -h, --help           Show usage information
   -o, --output format  Output format, one of: text, json, yaml
`

func configCmd(ctx context.Context, args []string) error {
	var (
		edit   bool
		output = outputFormat("text")
	)

	flagSet := newFlagSet("bufstream config", configUsage)
	boolVar(flagSet, &edit, "edit")
	customVar(flagSet, &output, "o", "output")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return usageError("bufstream config: unexpected arguments: %q", args)
	}

	if edit {
		if err := editConfig(string(configPath)); err != nil {
			return err
		}
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var writer stream.WriteCloser[*config.Config]
	switch output {
	case "json":
		writer = jsonprint.NewWriter[*config.Config](stdout)
	case "yaml":
		writer = yamlprint.NewWriter[*config.Config](stdout)
	default:
		r, err := config.Open(configPath)
		if err != nil {
			return err
		}
		defer r.Close()
		_, err = io.Copy(stdout, r)
		return err
	}

	if err := stream.Write[*config.Config](writer, c); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

func editConfig(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New(`$EDITOR is not set`)
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	r, err := config.Open(configPath)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return err
		}
	}

	tmp, err := createTempFile(path, r)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	p, err := os.StartProcess(shell, []string{shell, "-c", editor + " " + tmp}, &os.ProcAttr{
		Files: []*os.File{
			0: os.Stdin,
			1: os.Stdout,
			2: os.Stderr,
		},
	})
	if err != nil {
		return err
	}
	if _, err := p.Wait(); err != nil {
		return err
	}

	f, err := os.Open(tmp)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := config.Read(f); err != nil {
		return fmt.Errorf("not applying configuration updates because the file is invalid: %w", err)
	}
	return os.Rename(tmp, path)
}

func createTempFile(path string, r io.Reader) (string, error) {
	dir, file := filepath.Split(path)
	w, err := os.CreateTemp(dir, "."+file+".*")
	if err != nil {
		return "", err
	}
	defer w.Close()
	_, err = io.Copy(w, r)
	return w.Name(), err
}
