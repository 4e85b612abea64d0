// =============================================================================
// XML Contract Corrector - Configuration Module
// =============================================================================
//
// Loads the application configuration from a YAML file, applies defaults,
// and validates it. One file configures everything:
//
//   reference:
//     url: https://raw.githubusercontent.com/.../commandes.csv
//     path: ""               # local .csv or .xlsx, used when url is empty
//     cache_ttl: 15m
//     timeout: 10s
//     allow_demo_data: false # substitute the demonstration dataset on failure
//   input_dir: ./input
//   output_dir: ./output
//   input_archive_dir: ./input_archive
//   pad_width: 6
//   max_concurrency: 4
//   log_level: info
//   archive_inputs: true
//
// The reference source is built here as an explicit strategy: URL, local
// path, or demonstration data, with fallback only when allow_demo_data is
// set. No component falls back implicitly.
//
// =============================================================================

package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/younessemlali/xml-contract-corrector/internal/refdata"
)

// =============================================================================
// DURATION
// =============================================================================

// Duration is a time.Duration that unmarshals from YAML strings such as
// "15m" or "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// ReferenceConfig configures the reference table source.
type ReferenceConfig struct {
	// URL is the location of the published reference CSV. When set, the
	// HTTP source is used.
	URL string `yaml:"url"`

	// Path is a local reference table file (.csv or .xlsx), used when URL
	// is empty.
	Path string `yaml:"path"`

	// CacheTTL is how long a fetched table is reused without refetching.
	CacheTTL Duration `yaml:"cache_ttl"`

	// Timeout bounds one HTTP fetch.
	Timeout Duration `yaml:"timeout"`

	// AllowDemoData substitutes the built-in demonstration dataset when
	// the configured source fails. Off by default: without it, a load
	// failure is fatal to the batch.
	AllowDemoData bool `yaml:"allow_demo_data"`
}

// Config is the application configuration.
type Config struct {
	// Reference configures where the reference table comes from.
	Reference ReferenceConfig `yaml:"reference"`

	// InputDir is scanned for *.xml files when no files are given on the
	// command line.
	InputDir string `yaml:"input_dir"`

	// OutputDir receives corrected documents and the batch archive.
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives successfully corrected input files.
	InputArchiveDir string `yaml:"input_archive_dir"`

	// PadWidth is the identifier normalization width.
	PadWidth int `yaml:"pad_width"`

	// MaxConcurrency bounds the correction worker pool.
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogLevel is the zap level: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// ArchiveInputs moves corrected input files to InputArchiveDir after a
	// successful run.
	ArchiveInputs *bool `yaml:"archive_inputs"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads, defaults and validates the configuration file.
//
// PARAMETERS:
//   - path: The YAML configuration file path.
//
// RETURNS:
//   - The configuration.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.PadWidth == 0 {
		cfg.PadWidth = 6
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Reference.CacheTTL == 0 {
		cfg.Reference.CacheTTL = Duration(refdata.DefaultCacheTTL)
	}
	if cfg.Reference.Timeout == 0 {
		cfg.Reference.Timeout = Duration(10 * time.Second)
	}
	if cfg.ArchiveInputs == nil {
		archive := true
		cfg.ArchiveInputs = &archive
	}
}

// validate rejects configurations the engine cannot run with.
func validate(cfg *Config) error {
	if cfg.PadWidth < 1 {
		return fmt.Errorf("pad_width must be at least 1, got %d", cfg.PadWidth)
	}
	if cfg.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", cfg.MaxConcurrency)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.Reference.URL == "" && cfg.Reference.Path == "" && !cfg.Reference.AllowDemoData {
		return fmt.Errorf("no reference source configured: set reference.url, reference.path or reference.allow_demo_data")
	}
	return nil
}

// =============================================================================
// SOURCE CONSTRUCTION
// =============================================================================

// Source builds the reference data source this configuration describes.
// The demonstration dataset is only attached as a fallback when
// allow_demo_data is set, and is the sole source only when neither a URL
// nor a path is configured.
func (c *Config) Source(logger *zap.Logger) refdata.Source {
	var primary refdata.Source
	switch {
	case c.Reference.URL != "":
		primary = &refdata.HTTPSource{
			URL:    c.Reference.URL,
			TTL:    c.Reference.CacheTTL.Std(),
			Client: &http.Client{Timeout: c.Reference.Timeout.Std()},
			Logger: logger,
		}
	case c.Reference.Path != "":
		primary = &refdata.FileSource{Path: c.Reference.Path, Logger: logger}
	default:
		return refdata.DemoSource{}
	}

	if c.Reference.AllowDemoData {
		return &refdata.Chain{
			Primary:  primary,
			Fallback: refdata.DemoSource{},
			Logger:   logger,
		}
	}
	return primary
}
