package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dockroute/ordersheet/internal/extract"
)

const (
	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the order sheet extractor
type Config struct {
	// Input configuration
	InputFile string // Single report file to extract
	InputDir  string // Directory of report files to extract

	// Output configuration
	OutputPath string // JSON output path, stdout when empty

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum report file size in bytes

	// Geometric tolerances, in PDF points
	RowBucket       float64
	HeaderBand      float64
	RowBand         float64
	ColumnTolerance float64
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		InputDir:        currentDir,
		Version:         "1.0.0",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
		RowBucket:       extract.DefaultRowBucket,
		HeaderBand:      extract.DefaultHeaderBand,
		RowBand:         extract.DefaultRowBand,
		ColumnTolerance: extract.DefaultColumnTolerance,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDir); err == nil {
			cfg.InputDir = expandedPath
		}
	}
	if cfg.InputFile != "" {
		if expandedPath, err := filepath.Abs(cfg.InputFile); err == nil {
			cfg.InputFile = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("ORDERSHEET")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("file", cfg.InputFile)
	viper.SetDefault("dir", cfg.InputDir)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("rowbucket", cfg.RowBucket)
	viper.SetDefault("headerband", cfg.HeaderBand)
	viper.SetDefault("rowband", cfg.RowBand)
	viper.SetDefault("coltolerance", cfg.ColumnTolerance)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("file", cfg.InputFile, "Single report PDF to extract")
	pflag.String("dir", cfg.InputDir, "Directory containing report PDF files")
	pflag.String("out", cfg.OutputPath, "Output file for extracted orders (JSON), stdout if empty")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum report file size in bytes")
	pflag.Float64("rowbucket", cfg.RowBucket, "Row clustering bucket height in points")
	pflag.Float64("headerband", cfg.HeaderBand, "Column header vertical band in points")
	pflag.Float64("rowband", cfg.RowBand, "Quantity row vertical band in points")
	pflag.Float64("coltolerance", cfg.ColumnTolerance, "Quantity column horizontal tolerance in points")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("file", pflag.Lookup("file"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("rowbucket", pflag.Lookup("rowbucket"))
	_ = viper.BindPFlag("headerband", pflag.Lookup("headerband"))
	_ = viper.BindPFlag("rowband", pflag.Lookup("rowband"))
	_ = viper.BindPFlag("coltolerance", pflag.Lookup("coltolerance"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOrdersheet - extract structured orders from order summary PDF reports\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --file=summary.pdf                       "+
			"# extract one report to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/reports                   "+
			"# extract every report in a directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/reports --out=orders.json # write orders to a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  ORDERSHEET_FILE         Single report file\n")
		fmt.Fprintf(os.Stderr, "  ORDERSHEET_DIR          Report directory\n")
		fmt.Fprintf(os.Stderr, "  ORDERSHEET_OUT          Output file\n")
		fmt.Fprintf(os.Stderr, "  ORDERSHEET_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  ORDERSHEET_MAXFILESIZE  Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.InputFile = viper.GetString("file")
	cfg.InputDir = viper.GetString("dir")
	cfg.OutputPath = viper.GetString("out")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.RowBucket = viper.GetFloat64("rowbucket")
	cfg.HeaderBand = viper.GetFloat64("headerband")
	cfg.RowBand = viper.GetFloat64("rowband")
	cfg.ColumnTolerance = viper.GetFloat64("coltolerance")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// A single file takes precedence; the directory is only required
	// when no file is given.
	if c.InputFile == "" && c.InputDir == "" {
		return errors.New("either a report file or a report directory is required")
	}

	if c.InputFile != "" {
		info, err := os.Stat(c.InputFile)
		if os.IsNotExist(err) {
			return fmt.Errorf("report file does not exist: %s", c.InputFile)
		}
		if err != nil {
			return fmt.Errorf("cannot access report file %s: %w", c.InputFile, err)
		}
		if info.IsDir() {
			return fmt.Errorf("report file is a directory: %s", c.InputFile)
		}
	} else {
		info, err := os.Stat(c.InputDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("report directory does not exist: %s", c.InputDir)
		}
		if err != nil {
			return fmt.Errorf("cannot access report directory %s: %w", c.InputDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("report directory is not a directory: %s", c.InputDir)
		}
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate tolerances
	if c.RowBucket <= 0 || c.HeaderBand <= 0 || c.RowBand <= 0 || c.ColumnTolerance <= 0 {
		return errors.New("geometric tolerances must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// ExtractOptions returns the extraction options this configuration describes
func (c *Config) ExtractOptions() extract.Options {
	opts := extract.DefaultOptions()
	opts.RowBucket = c.RowBucket
	opts.HeaderBand = c.HeaderBand
	opts.RowBand = c.RowBand
	opts.ColumnTolerance = c.ColumnTolerance
	opts.Debug = c.IsDebug()
	return opts
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{InputFile: %s, InputDir: %s, OutputPath: %s, LogLevel: %s, MaxFileSize: %d}",
		c.InputFile, c.InputDir, c.OutputPath, c.LogLevel, c.MaxFileSize)
}
