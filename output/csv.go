package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"fwdash/core"
)

// Section names used in flat exports.
const (
	sectionPriorities   = "priorities"
	sectionSources      = "threat_sources"
	sectionDestinations = "threat_destinations"
	sectionAware        = "aware_threats"
	sectionAllSources   = "all_threat_sources"
)

// CSVWriter implements the Writer interface for CSV report exports. Each
// report entry becomes one section,label,count row.
type CSVWriter struct {
	mu        sync.Mutex
	file      *os.File
	bufWriter *bufio.Writer
	writer    *csv.Writer
}

// NewCSVWriter creates a new CSV export writer
func NewCSVWriter(outputPath string) (*CSVWriter, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	bufWriter := bufio.NewWriter(file)
	writer := csv.NewWriter(bufWriter)

	if err := writer.Write([]string{"section", "label", "count"}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return &CSVWriter{
		file:      file,
		bufWriter: bufWriter,
		writer:    writer,
	}, nil
}

// Write writes the report to the CSV file
func (w *CSVWriter) Write(report *core.Report) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	sections := []struct {
		name string
		list core.RankedList
	}{
		{sectionPriorities, report.Priorities},
		{sectionSources, report.TopSources},
		{sectionDestinations, report.TopDestinations},
		{sectionAware, report.AwareThreats},
		{sectionAllSources, report.AllSources},
	}

	for _, section := range sections {
		for i, label := range section.list.Labels {
			record := []string{section.name, label, strconv.Itoa(section.list.Counts[i])}
			if err := w.writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	return nil
}

// Close closes the CSV writer
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	if err := w.bufWriter.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return w.file.Close()
}
