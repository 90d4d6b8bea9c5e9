package core

import "strconv"

// Seeded priority labels. These always appear in the final report, even with
// zero observations, so the dashboard renders a stable priority axis.
const (
	MinPriority = 0
	MaxPriority = 5
)

// AggregatedData holds the counters extracted from firewall dump records:
// occurrences per priority label, per source IP, per destination IP, and per
// AWARE time bucket ("YYYY-MM-DD AM" / "YYYY-MM-DD PM").
type AggregatedData struct {
	PrioritiesCount    map[string]int
	ThreatSources      map[string]int
	ThreatDestinations map[string]int
	AwareThreats       map[string]int
}

// NewAggregatedData creates an empty per-file aggregate.
func NewAggregatedData() *AggregatedData {
	return &AggregatedData{
		PrioritiesCount:    make(map[string]int),
		ThreatSources:      make(map[string]int),
		ThreatDestinations: make(map[string]int),
		AwareThreats:       make(map[string]int),
	}
}

// NewGlobalAggregates creates the run-wide aggregate with priority labels
// "0" through "5" pre-seeded to zero. Absent priorities still surface in the
// output with a count of 0.
func NewGlobalAggregates() *AggregatedData {
	g := NewAggregatedData()
	for p := MinPriority; p <= MaxPriority; p++ {
		g.PrioritiesCount[strconv.Itoa(p)] = 0
	}
	return g
}

// Merge folds a partial aggregate into the receiver in place. For every map,
// every key in partial is added to the receiver's count, inserting with the
// partial's value when absent. Commutative and associative, so the result is
// independent of file-processing order.
func (a *AggregatedData) Merge(partial *AggregatedData) {
	if partial == nil {
		return
	}
	for priority, count := range partial.PrioritiesCount {
		a.PrioritiesCount[priority] += count
	}
	for ip, count := range partial.ThreatSources {
		a.ThreatSources[ip] += count
	}
	for ip, count := range partial.ThreatDestinations {
		a.ThreatDestinations[ip] += count
	}
	for bucket, count := range partial.AwareThreats {
		a.AwareThreats[bucket] += count
	}
}
