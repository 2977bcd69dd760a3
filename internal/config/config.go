// Package config loads the settings of the rmsmeter command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-rms/measure/rms"
)

const (
	defaultWindowMs   = 300
	defaultSampleRate = 48000
	defaultChannels   = 2
	defaultFrames     = 512
	defaultPrintEvery = 10
)

// Units selects how levels are printed.
type Units string

const (
	UnitsDB     Units = "db"
	UnitsLinear Units = "linear"
)

// Config holds the resolved meter settings.
type Config struct {
	// Window is either a duration or a fixed sample count.
	WindowDuration time.Duration
	WindowSamples  int

	SampleRate  float64
	Channels    int
	Frames      int
	PrintEvery  int
	Units       Units
	Passthrough bool
}

type yamlConfig struct {
	Window struct {
		Duration string `yaml:"duration"`
		Samples  int    `yaml:"samples"`
	} `yaml:"window"`
	Stream struct {
		SampleRate float64 `yaml:"sample_rate"`
		Channels   int     `yaml:"channels"`
		Frames     int     `yaml:"frames"`
	} `yaml:"stream"`
	Output struct {
		PrintEvery  int    `yaml:"print_every"`
		Units       string `yaml:"units"`
		Passthrough bool   `yaml:"passthrough"`
	} `yaml:"output"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		WindowDuration: defaultWindowMs * time.Millisecond,
		SampleRate:     defaultSampleRate,
		Channels:       defaultChannels,
		Frames:         defaultFrames,
		PrintEvery:     defaultPrintEvery,
		Units:          UnitsDB,
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML settings on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Window
	if yc.Window.Duration != "" && yc.Window.Samples != 0 {
		return Config{}, errors.New("window.duration and window.samples are mutually exclusive")
	}
	if yc.Window.Duration != "" {
		d, err := time.ParseDuration(yc.Window.Duration)
		if err != nil {
			return Config{}, fmt.Errorf("invalid window.duration: %w", err)
		}
		cfg.WindowDuration = d
	}
	if yc.Window.Samples != 0 {
		cfg.WindowDuration = 0
		cfg.WindowSamples = yc.Window.Samples
	}

	// Stream
	if yc.Stream.SampleRate != 0 {
		cfg.SampleRate = yc.Stream.SampleRate
	}
	if yc.Stream.Channels != 0 {
		cfg.Channels = yc.Stream.Channels
	}
	if yc.Stream.Frames != 0 {
		cfg.Frames = yc.Stream.Frames
	}

	// Output
	if yc.Output.PrintEvery != 0 {
		cfg.PrintEvery = yc.Output.PrintEvery
	}
	if yc.Output.Units != "" {
		cfg.Units = Units(strings.ToLower(yc.Output.Units))
	}
	cfg.Passthrough = yc.Output.Passthrough

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting, named by its YAML key.
func (c Config) Validate() error {
	switch {
	case c.WindowSamples < 0:
		return fmt.Errorf("window.samples must be > 0, got %d", c.WindowSamples)
	case c.WindowSamples == 0 && c.WindowDuration <= 0:
		return fmt.Errorf("window.duration must be > 0, got %v", c.WindowDuration)
	case c.SampleRate <= 0:
		return fmt.Errorf("stream.sample_rate must be > 0, got %v", c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("stream.channels must be > 0, got %d", c.Channels)
	case c.Frames <= 0:
		return fmt.Errorf("stream.frames must be > 0, got %d", c.Frames)
	case c.PrintEvery <= 0:
		return fmt.Errorf("output.print_every must be > 0, got %d", c.PrintEvery)
	case c.Units != UnitsDB && c.Units != UnitsLinear:
		return fmt.Errorf("output.units must be 'db' or 'linear', got %q", c.Units)
	}

	return nil
}

// WindowSize converts the window settings for the engine.
func (c Config) WindowSize() rms.WindowSize {
	if c.WindowSamples > 0 {
		return rms.Samples(c.WindowSamples)
	}

	return rms.Duration(c.WindowDuration)
}
