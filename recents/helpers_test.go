package recents

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeSession writes a session record file into dir and returns its path.
// The meta line is built from the arguments; outputs become one output
// record per line.
func writeSession(t *testing.T, dir, name string, meta metaRecord, outputs ...string) string {
	t.Helper()

	var sb strings.Builder
	metaLine, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal meta: %v", err)
	}
	sb.Write(metaLine)
	sb.WriteByte('\n')
	for _, out := range outputs {
		line, err := json.Marshal(outputRecord{Text: out})
		if err != nil {
			t.Fatalf("marshal output: %v", err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write session file: %v", err)
	}
	return path
}

// touch sets a file's modtime so discovery ordering is deterministic.
func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}
