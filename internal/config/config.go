// Package config loads the bufstream configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/stealthrocket/bufstream/internal/print/human"
	"github.com/stealthrocket/bufstream/internal/sniff"
	"github.com/stealthrocket/bufstream/pkg/bufstream"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the location of the configuration file when neither the
	// command line nor the environment point to another one.
	DefaultPath = "~/.bufstream/config.yaml"

	// PathEnv is the environment variable overriding DefaultPath.
	PathEnv = "BUFSTREAMCONFIG"

	// AutoFormat lets the input format be detected from the first bytes of
	// each input.
	AutoFormat = "auto"
)

// Path returns the path of the configuration file, taken from the environment
// or DefaultPath.
func Path() (human.Path, error) {
	path := DefaultPath
	if v := os.Getenv(PathEnv); v != "" {
		path = v
	}
	var p human.Path
	if err := p.Set(path); err != nil {
		return "", fmt.Errorf("configuration path: %w", err)
	}
	return p, nil
}

// Load opens and reads the configuration file at path.
func Load(path human.Path) (*Config, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Read(r)
}

// Open opens the configuration file at path. When the file does not exist,
// the returned reader produces the default configuration.
func Open(path human.Path) (io.ReadCloser, error) {
	f, err := os.Open(string(path))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		b, _ := yaml.Marshal(Default())
		return io.NopCloser(bytes.NewReader(b)), nil
	}
	return f, nil
}

// Read reads and validates configuration. Fields absent from r keep their
// default values.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default is the default configuration.
func Default() *Config {
	c := new(Config)
	c.Stream.BufferSize = human.Bytes(bufstream.DefaultSize)
	c.Input.Format = AutoFormat
	return c
}

// Config is the bufstream configuration.
type Config struct {
	Stream struct {
		BufferSize human.Bytes `json:"buffer-size" yaml:"buffer-size"`
	} `json:"stream" yaml:"stream"`
	Input struct {
		Format string               `json:"format" yaml:"format"`
		Rate   Nullable[human.Rate] `json:"rate" yaml:"rate"`
	} `json:"input" yaml:"input"`
}

func (c *Config) validate() error {
	if c.Stream.BufferSize == 0 {
		return fmt.Errorf("stream.buffer-size: must be greater than zero")
	}
	if c.Input.Format != AutoFormat {
		if _, err := sniff.ParseFormat(c.Input.Format); err != nil {
			return fmt.Errorf("input.format: %w", err)
		}
	}
	if rate, ok := c.Input.Rate.Value(); ok && rate <= 0 {
		return fmt.Errorf("input.rate: must be greater than zero, or null for unlimited")
	}
	return nil
}

// Nullable is a configuration value which may be explicitly unset.
type Nullable[T any] struct {
	value T
	exist bool
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{exist: false}
}

func NullableValue[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, exist: true}
}

func (v Nullable[T]) Value() (T, bool) {
	return v.value, v.exist
}

func (v Nullable[T]) MarshalJSON() ([]byte, error) {
	if !v.exist {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

func (v Nullable[T]) MarshalYAML() (any, error) {
	if !v.exist {
		return nil, nil
	}
	return v.value, nil
}

func (v *Nullable[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		v.exist = false
		return nil
	}
	if err := json.Unmarshal(b, &v.value); err != nil {
		v.exist = false
		return err
	}
	v.exist = true
	return nil
}

func (v *Nullable[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Value == "~" || node.Value == "null" {
		v.exist = false
		return nil
	}
	if err := node.Decode(&v.value); err != nil {
		v.exist = false
		return err
	}
	v.exist = true
	return nil
}
