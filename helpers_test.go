package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlowery2/taskdeck/binder"
	"github.com/mlowery2/taskdeck/recents"
)

// key constructs a tea.KeyMsg from a string like "j", "enter", "ctrl+c".
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestQueue(t *testing.T) *binder.Queue {
	t.Helper()
	q := binder.NewQueue()
	t.Cleanup(q.Close)
	return q
}

func newTestSource(dir string, q *binder.Queue) *recents.Source {
	return recents.NewSource(dir, q)
}

// writeSession writes a session record file and returns its path.
func writeSession(t *testing.T, dir, name string, id int, title, kind string, outputs ...string) string {
	t.Helper()
	var sb strings.Builder
	fmt.Fprintf(&sb, `{"id":%d,"title":%q,"kind":%q,"command":["true"]}`+"\n", id, title, kind)
	for _, out := range outputs {
		fmt.Fprintf(&sb, `{"text":%q}`+"\n", out)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write session: %v", err)
	}
	return path
}

// deckModel builds a model over a temp state dir containing two sessions
// ("api" newest, "notes" older), scanned and bound, with all enrichment
// completions applied. width=100, height=40.
func deckModel(t *testing.T) model {
	t.Helper()
	dir := t.TempDir()
	api := writeSession(t, dir, "api.jsonl", 1, "api", "shell", "$ make", "ok")
	notes := writeSession(t, dir, "notes.jsonl", 2, "notes", "editor", "saved")
	if err := os.Chtimes(notes, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(api, time.Now(), time.Now()); err != nil {
		t.Fatal(err)
	}

	queue := newTestQueue(t)
	source := newTestSource(dir, queue)
	m := initialModel(source, queue, true)
	m.width = 100
	m.height = 40

	m = scanNow(t, m)
	drainEnrichment(t, m)
	return m
}

// scanNow runs a synchronous scan and feeds the result through Update.
func scanNow(t *testing.T, m model) model {
	t.Helper()
	files, err := m.source.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	next, _ := m.Update(scanDoneMsg{files: files})
	return next.(model)
}

// drainEnrichment waits for and applies two completions per bound slot.
// Every issued load completes (failures substitute defaults), so this is
// bounded.
func drainEnrichment(t *testing.T, m model) {
	t.Helper()
	for i := 0; i < 2*m.bound; i++ {
		fn, ok := m.queue.Wait()
		if !ok {
			t.Fatal("queue closed while draining enrichment")
		}
		fn()
	}
}
