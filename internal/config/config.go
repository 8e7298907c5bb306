package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix for all environment variable overrides.
const envPrefix = "PENGUIN"

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout stderr file"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	// DataFile is an optional CSV dataset path. When empty the embedded
	// penguin dataset is used.
	DataFile  string `yaml:"data_file" envconfig:"DATA_FILE"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
}

// AnalysisConfig contains parameters for the analysis pipeline
type AnalysisConfig struct {
	// MissingTokens are the cell values treated as missing when parsing.
	MissingTokens []string `yaml:"missing_tokens" envconfig:"MISSING_TOKENS"`
	// JitterSeed seeds the deterministic jitter used in the category plot.
	JitterSeed int64 `yaml:"jitter_seed" envconfig:"JITTER_SEED"`
}

// ReportConfig contains report rendering configuration
type ReportConfig struct {
	// Formats selects which artifacts to render.
	Formats []string `yaml:"formats" envconfig:"FORMATS" validate:"min=1,dive,oneof=text csv xlsx html plots all"`
	// CSVBOMPrefix adds a UTF-8 BOM to CSV output for Excel compatibility.
	CSVBOMPrefix bool   `yaml:"csv_bom_prefix" envconfig:"CSV_BOM_PREFIX"`
	HTMLTitle    string `yaml:"html_title" envconfig:"HTML_TITLE" validate:"required"`
}

// Load loads configuration from defaults, an optional YAML file, and
// environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	// Load from config file if present
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables override file values. The envconfig tags carry
	// no defaults so unset variables leave the struct untouched.
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file over the given config
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Logging.Output == "file" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging file_path is required when output is file")
	}

	if len(c.Analysis.MissingTokens) == 0 {
		return fmt.Errorf("at least one missing-value token must be configured")
	}

	return nil
}

// WantsFormat reports whether the given artifact format was requested.
func (c *Config) WantsFormat(format string) bool {
	for _, f := range c.Report.Formats {
		if f == "all" || f == format {
			return true
		}
	}
	return false
}

// PlotsDir returns the directory plots are rendered into.
func (c *Config) PlotsDir() string {
	return filepath.Join(c.Paths.OutputDir, "plots")
}

// findConfigFile returns the path to the config file
func findConfigFile() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "stderr",
			FilePath: "logs/penguin-report.log",
		},
		Paths: PathsConfig{
			DataFile:  "",
			OutputDir: "reports",
		},
		Analysis: AnalysisConfig{
			MissingTokens: []string{"NA", ""},
			JitterSeed:    1,
		},
		Report: ReportConfig{
			Formats:      []string{"all"},
			CSVBOMPrefix: true,
			HTMLTitle:    "Penguin Morphometrics Report",
		},
	}
}
