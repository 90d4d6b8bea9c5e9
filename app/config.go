package app

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"fwdash/core"
	"fwdash/output"
)

// Common errors
var (
	ErrInvalidLogDir    = errors.New("invalid log directory")
	ErrInvalidDaysBack  = errors.New("days_back must be a non-negative number")
	ErrProcessingFailed = errors.New("processing failed")
)

// SupportedExportFormats defines the optional report export formats
var SupportedExportFormats = []string{"csv", "sqlite"}

// Config holds the configuration for a run
type Config struct {
	// Input settings
	LogDir   string // Directory containing the firewall dump files
	DaysBack int    // Recency window in days for files and records

	// Extraction settings
	SchemaPath string // Optional YAML file overriding column indices
	Workers    int    // Number of worker goroutines

	// Report settings
	TopN              int    // Entries kept in ranked source/destination lists
	NumericPriorities bool   // Sort priority labels numerically instead of lexically
	EventsPath        string // Path of the ranked events artifact
	SourcesPath       string // Path of the full threat-sources artifact
	ExportFormat      string // Optional secondary export format ("", "csv", "sqlite")
	ExportPath        string // Path of the secondary export

	// UI settings
	Verbose bool // Enable verbose logging
	Silent  bool // Disable all console output except errors
}

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		TopN:        core.DefaultTopN,
		EventsPath:  output.DefaultEventsPath,
		SourcesPath: output.DefaultSourcesPath,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LogDir == "" {
		return ErrInvalidLogDir
	}

	if c.DaysBack < 0 {
		return ErrInvalidDaysBack
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.TopN <= 0 {
		c.TopN = core.DefaultTopN
	}

	if c.EventsPath == "" {
		c.EventsPath = output.DefaultEventsPath
	}

	if c.SourcesPath == "" {
		c.SourcesPath = output.DefaultSourcesPath
	}

	if c.ExportFormat != "" {
		c.ExportFormat = strings.ToLower(c.ExportFormat)
		valid := false
		for _, format := range SupportedExportFormats {
			if c.ExportFormat == format {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: %s (supported formats: %s)",
				output.ErrUnsupportedFormat, c.ExportFormat, strings.Join(SupportedExportFormats, ", "))
		}
		if c.ExportPath == "" {
			return fmt.Errorf("export format %q requires an export path", c.ExportFormat)
		}
	}

	return nil
}
