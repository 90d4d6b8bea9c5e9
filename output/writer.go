package output

import (
	"errors"
	"fmt"
	"strings"

	"fwdash/core"
)

// Common errors
var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrWritingFailed     = errors.New("failed to write output")
)

// Writer defines the interface for optional report exporters. The two
// canonical JSON artifacts are always written separately; exporters add a
// secondary copy of the report in another format.
type Writer interface {
	// Write writes the report to the output
	Write(report *core.Report) error

	// Close closes the writer and performs any necessary cleanup
	Close() error
}

// GetWriter returns the appropriate exporter for the given format
func GetWriter(format, outputPath string) (Writer, error) {
	format = strings.ToLower(format)

	switch format {
	case "csv":
		return NewCSVWriter(outputPath)
	case "sqlite":
		return NewSQLiteWriter(outputPath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
