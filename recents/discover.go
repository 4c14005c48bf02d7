package recents

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SessionFile is one discovered session record file: the scan result a
// Source applies to rebuild its snapshot. Opaque outside the package --
// hosts shuttle scan results from a goroutine into Apply without looking
// inside.
type SessionFile struct {
	Path    string
	ModTime time.Time
	meta    metaRecord
}

// DefaultDir returns the default state directory, ~/.taskdeck/sessions.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck", "sessions"), nil
}

// discover scans dir for .jsonl session files, newest first. Files that
// can't be stat'd or whose first line isn't a meta record are skipped.
// When two files carry the same session id, the newer one wins.
func discover(dir string, read func(path string, modTime time.Time) (metaRecord, bool)) ([]SessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []SessionFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		meta, ok := read(filepath.Join(dir, entry.Name()), info.ModTime())
		if !ok {
			continue
		}
		files = append(files, SessionFile{
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime(),
			meta:    meta,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	// Dedupe by session id, keeping the newest file.
	seen := make(map[int]bool, len(files))
	deduped := files[:0]
	for _, f := range files {
		if seen[f.meta.ID] {
			continue
		}
		seen[f.meta.ID] = true
		deduped = append(deduped, f)
	}
	return deduped, nil
}
