package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fwdash/core"
	"fwdash/internal/logger"
	"fwdash/internal/processor"
	"fwdash/internal/scanner"
	"fwdash/output"
	"fwdash/parsers"
)

// RunStatus summarizes a completed run.
type RunStatus struct {
	RunID           string                `json:"run_id"`
	FilesSelected   int                   `json:"files_selected"`
	FilesFailed     []processor.FileError `json:"files_failed,omitempty"`
	DurationMs      int64                 `json:"duration_ms"`
	DistinctSources int                   `json:"distinct_sources"`
}

// App represents the aggregator application
type App struct {
	Config *Config
	schema parsers.Schema
}

// New creates a new application instance
func New(config *Config) *App {
	return &App{
		Config: config,
		schema: parsers.DefaultSchema,
	}
}

// Initialize validates the configuration and loads the column schema.
func (a *App) Initialize() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	logger.Init(a.Config.Verbose, a.Config.Silent)

	if a.Config.SchemaPath != "" {
		schema, err := parsers.LoadSchema(a.Config.SchemaPath)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		a.schema = schema
		logger.Debug("Loaded column schema from %s", a.Config.SchemaPath)
	}

	return nil
}

// Run executes one aggregation batch: select files, extract and fold
// aggregates, rank, and write the artifacts.
//
// Current time is captured exactly once here; the file-selection cutoff and
// the record cutoff both derive from it, so a run is internally consistent
// even when it straddles midnight.
func (a *App) Run(ctx context.Context) (*RunStatus, error) {
	startTime := time.Now()
	runID := uuid.NewString()

	cutoff := startTime.Add(-time.Duration(a.Config.DaysBack) * 24 * time.Hour)

	logger.Info("Run %s: scanning %s for files newer than %s",
		runID, a.Config.LogDir, cutoff.Format(time.RFC3339))

	files, err := scanner.SelectFiles(a.Config.LogDir, cutoff)
	if err != nil {
		return nil, err
	}
	logger.Info("Found %d matching files", len(files))

	parser := parsers.NewFwdumpParser(a.schema, cutoff)
	proc := processor.NewProcessor(parser, a.Config.Workers)

	global, failedFiles, err := proc.Run(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	for _, fe := range failedFiles {
		logger.Warn("Skipped unreadable file: %v", fe)
	}

	report := core.BuildReport(global, core.ReportOptions{
		TopN:              a.Config.TopN,
		NumericPriorities: a.Config.NumericPriorities,
	})

	if err := output.WriteEventsJSON(report, a.Config.EventsPath); err != nil {
		return nil, err
	}
	if err := output.WriteThreatSourcesJSON(report, a.Config.SourcesPath); err != nil {
		return nil, err
	}

	if a.Config.ExportFormat != "" {
		if err := a.export(report); err != nil {
			return nil, err
		}
	}

	status := &RunStatus{
		RunID:           runID,
		FilesSelected:   len(files),
		FilesFailed:     failedFiles,
		DurationMs:      time.Since(startTime).Milliseconds(),
		DistinctSources: len(report.AllSources.Labels),
	}

	logger.Info("Finished processing %d files (%d failed) in %d ms. Output saved to %s and %s",
		status.FilesSelected, len(status.FilesFailed), status.DurationMs,
		a.Config.EventsPath, a.Config.SourcesPath)

	return status, nil
}

// export writes the secondary report copy in the configured format.
func (a *App) export(report *core.Report) error {
	writer, err := output.GetWriter(a.Config.ExportFormat, a.Config.ExportPath)
	if err != nil {
		return err
	}

	if err := writer.Write(report); err != nil {
		writer.Close()
		return fmt.Errorf("failed to export report: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize export: %w", err)
	}

	logger.Info("Exported report to %s (%s)", a.Config.ExportPath, a.Config.ExportFormat)
	return nil
}
