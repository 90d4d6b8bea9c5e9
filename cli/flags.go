package cli

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"fwdash/app"
	"fwdash/core"
	"fwdash/output"
)

// Config holds the command-line configuration
type Config struct {
	LogDir   string // First positional argument
	DaysBack int    // Second positional argument

	SchemaPath        string
	Workers           int
	TopN              int
	NumericPriorities bool
	EventsPath        string
	SourcesPath       string
	ExportFormat      string
	ExportPath        string
	Verbose           bool
	Silent            bool
	JSONStatus        bool

	// Logging flags
	LogFile       string
	LogMaxSize    int
	LogMaxAge     int
	LogMaxBackups int
	LogCompress   bool
}

// ParseFlags parses command-line flags and the two positional arguments and
// returns a Config. Usage errors are returned, not printed.
func ParseFlags() (*Config, error) {
	config := &Config{}

	flag.StringVar(&config.SchemaPath, "schema", "", "Path to YAML file overriding column indices")
	flag.IntVar(&config.Workers, "workers", runtime.NumCPU(), "Number of worker goroutines")
	flag.IntVar(&config.TopN, "top", core.DefaultTopN, "Number of entries in ranked source/destination lists")
	flag.BoolVar(&config.NumericPriorities, "numeric-priorities", false, "Sort priority labels numerically instead of lexically")
	flag.StringVar(&config.EventsPath, "events-out", output.DefaultEventsPath, "Path for the ranked events artifact")
	flag.StringVar(&config.SourcesPath, "sources-out", output.DefaultSourcesPath, "Path for the full threat-sources artifact")
	flag.StringVar(&config.ExportFormat, "export", "", "Optional secondary export format (csv, sqlite)")
	flag.StringVar(&config.ExportPath, "export-path", "", "Path for the secondary export")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&config.Silent, "silent", false, "Disable all console output except errors")
	flag.BoolVar(&config.JSONStatus, "json-status", false, "Print a JSON status block to stdout on completion")

	flag.StringVar(&config.LogFile, "log-file", "", "Path to log file (if empty, logs to stdout)")
	flag.IntVar(&config.LogMaxSize, "log-max-size", 100, "Maximum size of log file in megabytes before rotation")
	flag.IntVar(&config.LogMaxAge, "log-max-age", 7, "Maximum age of log file in days before rotation")
	flag.IntVar(&config.LogMaxBackups, "log-max-backups", 5, "Maximum number of old log files to retain")
	flag.BoolVar(&config.LogCompress, "log-compress", true, "Compress rotated log files")

	flag.Usage = PrintUsage
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		return nil, fmt.Errorf("expected exactly two arguments <path_to_log_files> <days_back>, got %d", len(args))
	}

	config.LogDir = args[0]

	daysBack, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("<days_back> must be a number, got %q", args[1])
	}
	if daysBack < 0 {
		return nil, fmt.Errorf("<days_back> must be a non-negative number, got %d", daysBack)
	}
	config.DaysBack = daysBack

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	if config.ExportFormat != "" {
		config.ExportFormat = strings.ToLower(config.ExportFormat)
		valid := false
		for _, format := range app.SupportedExportFormats {
			if config.ExportFormat == format {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("unsupported export format: %s (supported formats: %s)",
				config.ExportFormat, strings.Join(app.SupportedExportFormats, ", "))
		}
		if config.ExportPath == "" {
			return nil, fmt.Errorf("-export requires -export-path")
		}
	}

	return config, nil
}

// PrintUsage prints the usage information
func PrintUsage() {
	fmt.Fprintf(os.Stderr, "fwdash - firewall dump dashboard aggregator\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <path_to_log_files> <days_back>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Arguments:\n")
	fmt.Fprintf(os.Stderr, "  <path_to_log_files>  Directory containing fwddmp.log.tmp* files\n")
	fmt.Fprintf(os.Stderr, "  <days_back>          Non-negative recency window in days\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
