// Package config holds the batch renderer configuration: which instances to plot, where their
// convergence tables live, where charts go and how they look.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Image formats understood by the chart renderer.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// DefaultInstances is the benchmark set reported on by default.
var DefaultInstances = []string{"eil22.txt", "a48.txt", "c50.txt", "f72.txt", "tai75A.txt"}

// Config is read once at start and treated as immutable afterwards.
type Config struct {
	Instances []string `yaml:"instances"`
	InputDir  string   `yaml:"input_dir"`
	OutputDir string   `yaml:"output_dir"`

	// TableSuffix is appended to the instance name to find its table (a48.txt -> a48.txt.csv).
	TableSuffix    string `yaml:"table_suffix"`
	// InstanceSuffix is replaced by the image extension to name the chart (a48.txt -> a48.png).
	InstanceSuffix string `yaml:"instance_suffix"`

	Delimiter       string `yaml:"delimiter"`
	IterationColumn string `yaml:"iteration_column"`
	ProfitColumn    string `yaml:"profit_column"`

	ImageFormat  string  `yaml:"image_format"`
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
	DPI          float64 `yaml:"dpi"`
	Annotate     bool    `yaml:"annotate"`

	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the configuration the solver's output layout expects.
func Default() Config {
	return Config{
		Instances:       append([]string(nil), DefaultInstances...),
		InputDir:        "results",
		OutputDir:       "graficos",
		TableSuffix:     ".csv",
		InstanceSuffix:  ".txt",
		Delimiter:       ",",
		IterationColumn: "Iteracion",
		ProfitColumn:    "Profit",
		ImageFormat:     FormatPNG,
		WidthInches:     6,
		HeightInches:    4,
		DPI:             300,
	}
}

// Load overlays the YAML file at path on top of Default. Keys absent from the file keep their
// default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem that would make a run meaningless.
func (c Config) Validate() error {
	if len(c.Instances) == 0 {
		return errors.New("no instances configured")
	}
	for i, name := range c.Instances {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("instance %d has an empty name", i)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("instance %q must be a plain file name", name)
		}
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("input and output directories must be set")
	}
	if filepath.Clean(c.InputDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("output directory %q must differ from the input directory", c.OutputDir)
	}
	if c.IterationColumn == "" || c.ProfitColumn == "" {
		return errors.New("iteration and profit column names must be set")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	switch c.ImageFormat {
	case FormatPNG, FormatSVG:
	default:
		return fmt.Errorf("unsupported image format %q (want png|svg)", c.ImageFormat)
	}
	if c.WidthInches <= 0 || c.HeightInches <= 0 || c.DPI <= 0 {
		return fmt.Errorf("figure size and dpi must be positive (got %gx%g in @ %g dpi)", c.WidthInches, c.HeightInches, c.DPI)
	}
	return nil
}

// DelimiterRune returns the table column separator.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// TablePath is where the solver leaves the convergence table for instance.
func (c Config) TablePath(instance string) string {
	return filepath.Join(c.InputDir, instance+c.TableSuffix)
}

// ImageName derives the chart file name from the instance name.
func (c Config) ImageName(instance string) string {
	base := instance
	if c.InstanceSuffix != "" {
		base = strings.TrimSuffix(instance, c.InstanceSuffix)
	}
	return base + "." + c.ImageFormat
}

// PixelSize converts the figure size to pixels.
func (c Config) PixelSize() (int, int) {
	return int(c.WidthInches*c.DPI + 0.5), int(c.HeightInches*c.DPI + 0.5)
}
