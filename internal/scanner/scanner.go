// Package scanner selects the firewall dump files a run will process.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FilePrefix is the fixed name prefix of rotated firewall dump files.
const FilePrefix = "fwddmp.log.tmp"

// SelectFiles lists dir and returns the paths of regular entries whose name
// starts with FilePrefix and whose modification time is strictly after
// cutoff. A file modified exactly at the cutoff is excluded.
//
// Entries whose metadata cannot be read are treated as non-matching rather
// than failing the listing. Order follows directory enumeration order; no
// ordering is guaranteed.
func SelectFiles(dir string, cutoff time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), FilePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}
