package output

import (
	"encoding/json"
	"fmt"
	"os"

	"fwdash/core"
)

// Default artifact paths, relative to the working directory.
const (
	DefaultEventsPath  = "events.json"
	DefaultSourcesPath = "threat_sources.json"
)

// The dashboard consumes parallel index-aligned arrays: element i of the
// label array corresponds to element i of the count array.

type priorityColumns struct {
	Priority []string `json:"Priority"`
	Count    []int    `json:"Count"`
}

type sourceColumns struct {
	Source []string `json:"Source"`
	Count  []int    `json:"Count"`
}

type destinationColumns struct {
	Destination []string `json:"Destination"`
	Count       []int    `json:"Count"`
}

type dateColumns struct {
	Date  []string `json:"Date"`
	Count []int    `json:"Count"`
}

type eventsDocument struct {
	Priorities         priorityColumns    `json:"Priorities"`
	ThreatSources      sourceColumns      `json:"Threat Sources"`
	ThreatDestinations destinationColumns `json:"Threat Destinations"`
	AwareThreats       dateColumns        `json:"AWARE Threats"`
}

type threatSourcesDocument struct {
	ThreatSources sourceColumns `json:"Threat Sources"`
}

// WriteEventsJSON writes the ranked events artifact: all priorities, the
// top-N sources and destinations, and the AWARE buckets.
func WriteEventsJSON(report *core.Report, path string) error {
	doc := eventsDocument{
		Priorities: priorityColumns{
			Priority: report.Priorities.Labels,
			Count:    report.Priorities.Counts,
		},
		ThreatSources: sourceColumns{
			Source: report.TopSources.Labels,
			Count:  report.TopSources.Counts,
		},
		ThreatDestinations: destinationColumns{
			Destination: report.TopDestinations.Labels,
			Count:       report.TopDestinations.Counts,
		},
		AwareThreats: dateColumns{
			Date:  report.AwareThreats.Labels,
			Count: report.AwareThreats.Counts,
		},
	}
	return writePretty(doc, path)
}

// WriteThreatSourcesJSON writes the complete, unranked source artifact: every
// observed source IP with its summed count, no truncation.
func WriteThreatSourcesJSON(report *core.Report, path string) error {
	doc := threatSourcesDocument{
		ThreatSources: sourceColumns{
			Source: report.AllSources.Labels,
			Count:  report.AllSources.Counts,
		},
	}
	return writePretty(doc, path)
}

func writePretty(doc interface{}, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWritingFailed, err)
	}
	return nil
}
