// Package config loads the pptool configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/santanalab/pptool/gcode"
	"github.com/santanalab/pptool/setup"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no config file is named explicitly.
const DefaultPath = "pptool.yaml"

type Config struct {
	Output   Output   `yaml:"output"`
	Machine  Machine  `yaml:"machine"`
	Extruder Extruder `yaml:"extruder"`
	Server   Server   `yaml:"server"`
}

type Output struct {
	Dir       string `yaml:"dir"`
	Precision int    `yaml:"precision"`
}

type Machine struct {
	Home     bool    `yaml:"home"`
	InitFeed float64 `yaml:"init_feed"`
	Tool     int     `yaml:"tool"`
	Dwell    float64 `yaml:"dwell"`
}

type Extruder struct {
	// Reverse negates the entered extrusion rate of line and circle tests.
	Reverse bool `yaml:"reverse"`
}

type Server struct {
	Addr string `yaml:"addr"`
	Dir  string `yaml:"dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	opt := setup.DefaultOptions()
	return Config{
		Output: Output{Dir: ".", Precision: gcode.DefaultPrecision},
		Machine: Machine{
			Home:     opt.Home,
			InitFeed: opt.InitFeed,
			Tool:     opt.Tool,
			Dwell:    opt.Dwell,
		},
		Extruder: Extruder{Reverse: true},
		Server:   Server{Addr: ":9091", Dir: "./data"},
	}
}

// Setup returns the header options described by the machine section.
func (c Config) Setup() setup.Options {
	return setup.Options{
		Home:     c.Machine.Home,
		InitFeed: c.Machine.InitFeed,
		Tool:     c.Machine.Tool,
		Dwell:    c.Machine.Dwell,
	}
}

func (c Config) Validate() error {
	if c.Output.Precision < -1 || c.Output.Precision > 10 {
		return zerr.With(zerr.New("output precision must be -1 (exact) or between 0 and 10"), "precision", c.Output.Precision)
	}
	if c.Machine.InitFeed <= 0 {
		return zerr.With(zerr.New("machine init_feed must be positive"), "init_feed", c.Machine.InitFeed)
	}
	if c.Machine.Dwell < 0 {
		return zerr.With(zerr.New("machine dwell must not be negative"), "dwell", c.Machine.Dwell)
	}
	if c.Machine.Tool < 0 {
		return zerr.With(zerr.New("machine tool must not be negative"), "tool", c.Machine.Tool)
	}
	return nil
}

// Parse decodes YAML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the config at path. A missing file is only an error when
// required is set; otherwise the defaults are returned.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) && !required {
		cfg := Default()
		return &cfg, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}
