// Package scanner lists the text files eligible for indexing. The contract:
// regular .txt files directly inside the data directory, each at most
// 200 MiB, returned sorted ascending by file size.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxScanFileSize is the per-file eligibility bound.
const maxScanFileSize = 200 * 1024 * 1024

// ScanTxtFiles returns the eligible file paths under dir, smallest first.
// A missing or unreadable directory yields an empty list with a warning.
func ScanTxtFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Str("dir", dir).Err(err).Msg("could not read data directory")
		return nil
	}

	type candidate struct {
		path string
		size int64
	}
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if info.Size() > maxScanFileSize {
			continue
		}
		candidates = append(candidates, candidate{
			path: filepath.Join(dir, entry.Name()),
			size: info.Size(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].size < candidates[j].size
	})

	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}
	return paths
}
