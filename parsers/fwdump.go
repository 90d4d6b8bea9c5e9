package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fwdash/core"
	"fwdash/internal/logger"
)

// TimestampLayout is the event timestamp format used by the fwddmp export.
const TimestampLayout = "2006/01/02 15:04:05"

// awareMarker flags a record as an AWARE event when it appears anywhere in
// the flags field (substring match, case-sensitive).
const awareMarker = "AWARE"

// awareBucketLayout is the date part of the AM/PM bucket key. Zero-padded so
// lexicographic order equals date order.
const awareBucketLayout = "2006-01-02"

// FwdumpParser extracts a per-file aggregate from one comma-delimited
// firewall dump file. Rows whose event timestamp is not strictly after Cutoff
// are ignored.
type FwdumpParser struct {
	Schema Schema
	Cutoff time.Time
}

// NewFwdumpParser creates a parser with the given column schema and record
// cutoff. The cutoff is captured once per run by the caller, never
// recomputed per file or per row.
func NewFwdumpParser(schema Schema, cutoff time.Time) *FwdumpParser {
	return &FwdumpParser{Schema: schema, Cutoff: cutoff}
}

// Parse reads a dump file and returns its partial aggregate.
//
// Rows are tolerated aggressively: a malformed row is logged and skipped, a
// row with an unparsable timestamp is silently skipped, and a row shorter
// than the schema's highest index yields empty strings for the missing
// fields. Only failure to open or read the file itself is an error.
func (p *FwdumpParser) Parse(filePath string) (*core.AggregatedData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows may have any number of columns; missing fields read as "".
	reader.FieldsPerRecord = -1

	data := core.NewAggregatedData()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Malformed row. The reader recovers at the next
				// line, so keep going.
				logger.Warn("Skipping malformed record in %s: %v", filePath, err)
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		eventTime, err := time.ParseInLocation(TimestampLayout, field(record, p.Schema.Timestamp), time.Local)
		if err != nil {
			continue
		}
		if !eventTime.After(p.Cutoff) {
			continue
		}

		data.PrioritiesCount[field(record, p.Schema.Priority)]++
		data.ThreatSources[field(record, p.Schema.Source)]++
		data.ThreatDestinations[field(record, p.Schema.Destination)]++

		if strings.Contains(field(record, p.Schema.Flags), awareMarker) {
			data.AwareThreats[awareBucket(eventTime)]++
		}
	}

	return data, nil
}

// field returns the column at idx, or "" when the row is too short. Empty
// values still count toward the aggregates; dropping them is a data-quality
// decision left to the dashboard.
func field(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

// awareBucket derives the half-day bucket key, e.g. "2024-03-01 AM".
// AM covers hours [0,12), PM covers [12,24).
func awareBucket(t time.Time) string {
	period := "AM"
	if t.Hour() >= 12 {
		period = "PM"
	}
	return t.Format(awareBucketLayout) + " " + period
}
