// Package recents supplies the recently used session list and its
// asynchronous enrichment. Sessions live as JSONL record files in a state
// directory: the first line is a meta record describing the session, every
// later line is one chunk of captured output. File modtime tracks last use.
package recents

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
)

// metaRecord is the first line of a session file.
// {"id":12,"title":"api server","kind":"shell","command":["tmux","attach","-t","api"]}
type metaRecord struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Kind    string   `json:"kind"`
	Command []string `json:"command"`
	Notes   string   `json:"notes"`
}

// outputRecord is any line after the first: one chunk of session output.
type outputRecord struct {
	Text string `json:"text"`
}

const (
	// Output chunks can be long (full-screen redraws), so the scanner
	// buffer is bumped from the 64KB default.
	initialBufSize = 64 * 1024
	maxLineSize    = 4 * 1024 * 1024
)

var errNotSession = errors.New("recents: not a session record file")

// readMeta parses the meta record from the first non-empty line of a
// session file. Files whose first line is not a meta record with a
// positive id are rejected with errNotSession.
func readMeta(path string) (metaRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return metaRecord{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, initialBufSize), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var meta metaRecord
		if err := json.Unmarshal(line, &meta); err != nil || meta.ID <= 0 {
			return metaRecord{}, errNotSession
		}
		return meta, nil
	}
	if err := scanner.Err(); err != nil {
		return metaRecord{}, err
	}
	return metaRecord{}, errNotSession
}

// readTail returns the last n output lines of a session file, oldest
// first. Blank output records and unparseable lines are skipped; the meta
// line is not output.
func readTail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, initialBufSize), maxLineSize)

	// Ring of the last n texts; cheaper than keeping the whole file when
	// long-running sessions accumulate output.
	ring := make([]string, n)
	total := 0
	first := true

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if first {
			first = false // meta line
			continue
		}
		var out outputRecord
		if err := json.Unmarshal(line, &out); err != nil || out.Text == "" {
			continue
		}
		ring[total%n] = out.Text
		total++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	count := total
	if count > n {
		count = n
	}
	lines := make([]string, 0, count)
	for i := total - count; i < total; i++ {
		lines = append(lines, ring[i%n])
	}
	return lines, nil
}
