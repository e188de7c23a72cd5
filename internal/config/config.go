// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings shared by the report commands.
//
// Settings are layered: built-in defaults, then an optional YAML file,
// then DCFBENCH_* environment variables, then explicitly set flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/3dcf-labs/dcfbench/binning"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DCFBENCH"

// Config is the full set of report settings.
type Config struct {
	Bins   string `yaml:"bins" envconfig:"BINS"`
	Metric string `yaml:"metric" envconfig:"METRIC" validate:"oneof=cer wer CER WER"`
	DPI    int    `yaml:"dpi" envconfig:"DPI" validate:"min=10,max=2400"`
	DB     DB     `yaml:"db" envconfig:"DB"`
	Log    Log    `yaml:"log" envconfig:"LOG"`
}

// DB configures the optional summary history database. An empty DSN
// disables recording.
type DB struct {
	Driver string `yaml:"driver" envconfig:"DRIVER" validate:"oneof=sqlite3 mysql"`
	DSN    string `yaml:"dsn" envconfig:"DSN"`
}

// Log configures diagnostic logging.
type Log struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Bins:   binning.Default,
		Metric: "cer",
		DPI:    200,
		DB:     DB{Driver: "sqlite3"},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load returns the defaults overlaid with the YAML file at path, if
// path is not empty, and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate reports the first invalid setting, if any.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Set assigns the setting bound to the named command-line flag. It
// reports whether name is a known flag.
func (c *Config) Set(name, value string) (bool, error) {
	switch name {
	case "bins":
		c.Bins = value
	case "metric":
		c.Metric = value
	case "dpi":
		dpi, err := strconv.Atoi(value)
		if err != nil {
			return true, fmt.Errorf("invalid -dpi %q", value)
		}
		c.DPI = dpi
	case "db-driver":
		c.DB.Driver = value
	case "dsn":
		c.DB.DSN = value
	case "log-level":
		c.Log.Level = value
	case "log-format":
		c.Log.Format = value
	default:
		return false, nil
	}
	return true, nil
}

// ApplyFlags overlays every flag that was set on the command line.
// Flags left at their defaults do not override earlier layers.
func (c *Config) ApplyFlags(fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		_, err = c.Set(f.Name, f.Value.String())
	})
	return err
}
