package core

import (
	"sort"
	"strconv"
)

// DefaultTopN is the number of entries kept in the ranked source and
// destination views.
const DefaultTopN = 10

// RankedList is a pair of index-aligned slices: Labels[i] occurred Counts[i]
// times. Slices are always non-nil so they serialize as [] rather than null.
type RankedList struct {
	Labels []string
	Counts []int
}

// Report is the ranked, serializable view of the run-wide aggregates,
// consumed by the output writers.
type Report struct {
	Priorities      RankedList // every priority label, sorted per ReportOptions
	TopSources      RankedList // top-N source IPs by count
	TopDestinations RankedList // top-N destination IPs by count
	AwareThreats    RankedList // AM/PM buckets, key ascending
	AllSources      RankedList // every observed source IP, unbounded
}

// ReportOptions control ranking behavior.
type ReportOptions struct {
	// TopN bounds the ranked source/destination lists. Zero or negative
	// means DefaultTopN.
	TopN int

	// NumericPriorities sorts priority labels by numeric value instead of
	// the historical descending string comparison. The string comparison is
	// only numerically correct for single-digit labels; the default keeps
	// it for compatibility with existing dashboards.
	NumericPriorities bool
}

// BuildReport ranks the global aggregates into a Report.
//
// Priorities sort descending (lexicographic by default, numeric when
// configured). Sources and destinations sort by count descending with label
// ascending as tie-break, truncated to TopN. AWARE buckets sort by key
// ascending, which is date order given the zero-padded bucket format. The
// full source list shares the count-descending order of the ranked view but
// is never truncated.
func BuildReport(global *AggregatedData, opts ReportOptions) *Report {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	return &Report{
		Priorities:      rankPriorities(global.PrioritiesCount, opts.NumericPriorities),
		TopSources:      truncate(rankByCount(global.ThreatSources), topN),
		TopDestinations: truncate(rankByCount(global.ThreatDestinations), topN),
		AwareThreats:    rankByLabel(global.AwareThreats),
		AllSources:      rankByCount(global.ThreatSources),
	}
}

func rankPriorities(counts map[string]int, numeric bool) RankedList {
	labels := sortedKeys(counts)
	if numeric {
		sort.Slice(labels, func(i, j int) bool {
			a, aErr := strconv.Atoi(labels[i])
			b, bErr := strconv.Atoi(labels[j])
			if aErr == nil && bErr == nil {
				return a > b
			}
			// Non-numeric labels sort after numeric ones, descending
			// among themselves.
			if aErr == nil {
				return true
			}
			if bErr == nil {
				return false
			}
			return labels[i] > labels[j]
		})
	} else {
		sort.Sort(sort.Reverse(sort.StringSlice(labels)))
	}
	return collect(labels, counts)
}

// rankByCount orders by count descending, label ascending on ties. The
// tie-break makes output reproducible across runs and map iteration orders.
func rankByCount(counts map[string]int) RankedList {
	labels := sortedKeys(counts)
	sort.SliceStable(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return collect(labels, counts)
}

func rankByLabel(counts map[string]int) RankedList {
	return collect(sortedKeys(counts), counts)
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func collect(labels []string, counts map[string]int) RankedList {
	list := RankedList{
		Labels: labels,
		Counts: make([]int, 0, len(labels)),
	}
	for _, label := range labels {
		list.Counts = append(list.Counts, counts[label])
	}
	return list
}

func truncate(list RankedList, n int) RankedList {
	if len(list.Labels) <= n {
		return list
	}
	return RankedList{
		Labels: list.Labels[:n],
		Counts: list.Counts[:n],
	}
}
