package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/metadata"
	"github.com/spaghettifunk/offmesh/engine/off"
)

/** @brief Logging settings. */
type LogConfig struct {
	/** @brief One of debug, info, warn, error. */
	Level string `toml:"level"`
}

/** @brief How colours are read from vertex and face lines. */
type ParseConfig struct {
	VertexColor    string `toml:"vertex_color"`
	VertexChannels int    `toml:"vertex_channels"`
	FaceColor      string `toml:"face_color"`
	FaceChannels   int    `toml:"face_channels"`
}

/** @brief Worker pool used when several files are parsed at once. */
type JobsConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

type Config struct {
	Log   LogConfig   `toml:"log"`
	Parse ParseConfig `toml:"parse"`
	Jobs  JobsConfig  `toml:"jobs"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Parse: ParseConfig{
			VertexColor:    metadata.ColorNone.String(),
			VertexChannels: 3,
			FaceColor:      metadata.ColorNone.String(),
			FaceChannels:   3,
		},
		Jobs: JobsConfig{Workers: 4, QueueSize: 16},
	}
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applies the rules of the command line: channel counts are 3 or
// 4, and vertex and face colours are not both mandatory.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	vm, err := metadata.ParseColorMode(c.Parse.VertexColor)
	if err != nil {
		return fmt.Errorf("parse.vertex_color: %w", err)
	}
	fm, err := metadata.ParseColorMode(c.Parse.FaceColor)
	if err != nil {
		return fmt.Errorf("parse.face_color: %w", err)
	}
	if !validChannels(c.Parse.VertexChannels) {
		return fmt.Errorf("parse.vertex_channels=%d: %w", c.Parse.VertexChannels, core.ErrInvalidChannels)
	}
	if !validChannels(c.Parse.FaceChannels) {
		return fmt.Errorf("parse.face_channels=%d: %w", c.Parse.FaceChannels, core.ErrInvalidChannels)
	}
	if vm == metadata.ColorMandatory && fm == metadata.ColorMandatory {
		return core.ErrBothColorsMandatory
	}
	if c.Jobs.Workers < 1 {
		return fmt.Errorf("jobs.workers=%d: %w", c.Jobs.Workers, core.ErrNoWorkers)
	}
	if c.Jobs.QueueSize < 0 {
		return fmt.Errorf("jobs.queue_size=%d: %w", c.Jobs.QueueSize, core.ErrNegativeQueueSize)
	}
	return nil
}

func validChannels(n int) bool {
	return n == 3 || n == 4
}

// Options converts the parse section. The config must be valid.
func (c *Config) Options() off.Options {
	vm, _ := metadata.ParseColorMode(c.Parse.VertexColor)
	fm, _ := metadata.ParseColorMode(c.Parse.FaceColor)
	return off.Options{
		VertexColor:    vm,
		VertexChannels: c.Parse.VertexChannels,
		FaceColor:      fm,
		FaceChannels:   c.Parse.FaceChannels,
	}
}

// Marshal encodes the configuration, e.g. to write a starter file.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
