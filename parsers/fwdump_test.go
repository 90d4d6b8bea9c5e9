package parsers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Columns per DefaultSchema: 1=priority, 3=flags, 4=timestamp, 6=source,
// 12=destination.
func dumpRow(priority, flags, timestamp, source, destination string) string {
	return "x," + priority + ",x," + flags + "," + timestamp + ",x," + source +
		",x,x,x,x,x," + destination
}

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fwddmp.log.tmp.1")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCountsIncludedRows(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	content := dumpRow("1", "TCP", "2024/03/01 09:00:00", "10.0.0.1", "192.168.0.1") + "\n" +
		dumpRow("1", "TCP", "2024/03/01 10:00:00", "10.0.0.1", "192.168.0.2") + "\n" +
		dumpRow("3", "UDP", "2024/03/01 11:00:00", "10.0.0.2", "192.168.0.1") + "\n"

	parser := NewFwdumpParser(DefaultSchema, cutoff)
	data, err := parser.Parse(writeDump(t, content))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"1": 2, "3": 1}, data.PrioritiesCount)
	assert.Equal(t, map[string]int{"10.0.0.1": 2, "10.0.0.2": 1}, data.ThreatSources)
	assert.Equal(t, map[string]int{"192.168.0.1": 2, "192.168.0.2": 1}, data.ThreatDestinations)
	assert.Empty(t, data.AwareThreats)
}

func TestParseCutoffIsStrict(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	content := dumpRow("1", "TCP", "2024/03/01 12:00:00", "10.0.0.1", "192.168.0.1") + "\n" + // exactly at cutoff: excluded
		dumpRow("2", "TCP", "2024/03/01 12:00:01", "10.0.0.2", "192.168.0.2") + "\n" + // one second after: included
		dumpRow("3", "TCP", "2024/02/28 12:00:00", "10.0.0.3", "192.168.0.3") + "\n" // before: excluded

	parser := NewFwdumpParser(DefaultSchema, cutoff)
	data, err := parser.Parse(writeDump(t, content))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"2": 1}, data.PrioritiesCount)
	assert.Equal(t, map[string]int{"10.0.0.2": 1}, data.ThreatSources)
}

func TestParseSkipsUnparsableTimestamps(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	content := dumpRow("1", "TCP", "not-a-timestamp", "10.0.0.1", "192.168.0.1") + "\n" +
		dumpRow("1", "TCP", "2024-03-01 09:00:00", "10.0.0.1", "192.168.0.1") + "\n" + // wrong separator
		dumpRow("1", "TCP", "", "10.0.0.1", "192.168.0.1") + "\n"

	parser := NewFwdumpParser(DefaultSchema, cutoff)
	data, err := parser.Parse(writeDump(t, content))
	require.NoError(t, err)

	assert.Empty(t, data.PrioritiesCount)
	assert.Empty(t, data.ThreatSources)
	assert.Empty(t, data.ThreatDestinations)
	assert.Empty(t, data.AwareThreats)
}

func TestParseAwareBuckets(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	content := dumpRow("1", "AWARE-HIGH", "2024/03/01 09:00:00", "10.0.0.1", "192.168.0.1") + "\n" +
		dumpRow("1", "AWARE-HIGH", "2024/03/01 13:00:00", "10.0.0.1", "192.168.0.1") + "\n" +
		dumpRow("1", "AWARE", "2024/03/01 00:00:00", "10.0.0.1", "192.168.0.1") + "\n" +
		dumpRow("1", "aware", "2024/03/01 09:30:00", "10.0.0.1", "192.168.0.1") + "\n" // marker is case-sensitive

	parser := NewFwdumpParser(DefaultSchema, cutoff)
	data, err := parser.Parse(writeDump(t, content))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"2024-03-01 AM": 2,
		"2024-03-01 PM": 1,
	}, data.AwareThreats)
	// The non-matching row still counts toward the other aggregates
	assert.Equal(t, 4, data.PrioritiesCount["1"])
}

func TestParseShortRowsYieldEmptyFields(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	// Row ends right after the source column; the destination reads as "".
	content := "x,1,x,TCP,2024/03/01 09:00:00,x,10.0.0.1\n"

	parser := NewFwdumpParser(DefaultSchema, cutoff)
	data, err := parser.Parse(writeDump(t, content))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"10.0.0.1": 1}, data.ThreatSources)
	assert.Equal(t, map[string]int{"": 1}, data.ThreatDestinations)
}

func TestParseSkipsMalformedRowsAndContinues(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	content := dumpRow("1", "TCP", "2024/03/01 09:00:00", "10.0.0.1", "192.168.0.1") + "\n" +
		"x,broken\"quote,x\n" +
		dumpRow("2", "TCP", "2024/03/01 10:00:00", "10.0.0.2", "192.168.0.2") + "\n"

	parser := NewFwdumpParser(DefaultSchema, cutoff)
	data, err := parser.Parse(writeDump(t, content))
	require.NoError(t, err)

	assert.Equal(t, 1, data.PrioritiesCount["1"])
	assert.Equal(t, 1, data.PrioritiesCount["2"])
}

func TestParseMissingFileReturnsError(t *testing.T) {
	parser := NewFwdumpParser(DefaultSchema, time.Now())
	_, err := parser.Parse(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestParseWithCustomSchema(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	schema := Schema{Priority: 0, Flags: 1, Timestamp: 2, Source: 3, Destination: 4}
	content := "4,AWARE,2024/03/01 09:00:00,10.0.0.5,192.168.0.5\n"

	parser := NewFwdumpParser(schema, cutoff)
	data, err := parser.Parse(writeDump(t, content))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"4": 1}, data.PrioritiesCount)
	assert.Equal(t, map[string]int{"10.0.0.5": 1}, data.ThreatSources)
	assert.Equal(t, map[string]int{"192.168.0.5": 1}, data.ThreatDestinations)
	assert.Equal(t, map[string]int{"2024-03-01 AM": 1}, data.AwareThreats)
}
