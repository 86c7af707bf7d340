package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/bytedance/sonic"

	"github.com/dockroute/ordersheet/internal/config"
	"github.com/dockroute/ordersheet/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the log level
func setupLogging(cfg *config.Config) {
	// Orders go to stdout; diagnostics stay on stderr.
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// extractOrders runs the extraction the configuration describes: one file
// when --file is set, otherwise every report in the input directory.
func extractOrders(cfg *config.Config, service *pdf.Service) (any, error) {
	if cfg.InputFile != "" {
		return service.ParseFile(pdf.ParseFileRequest{Path: cfg.InputFile})
	}
	return service.ParseDirectory(pdf.ParseDirectoryRequest{Directory: cfg.InputDir})
}

// writeOutput marshals the extraction result and writes it to the configured
// destination, stdout by default
func writeOutput(cfg *config.Config, result any) error {
	data, err := sonic.ConfigDefault.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}
	data = append(data, '\n')

	if cfg.OutputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(cfg.OutputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.OutputPath, err)
	}
	return nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	service := pdf.NewService(cfg.MaxFileSize, cfg.ExtractOptions())

	result, err := extractOrders(cfg, service)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	if err := writeOutput(cfg, result); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Ordersheet\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
