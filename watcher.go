package main

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/mlowery2/taskdeck/recents"
)

// watcherDebounce is the delay after the last membership event before
// rescanning. 500ms coalesces bursts (a session manager rewriting several
// record files) into a single rescan.
const watcherDebounce = 500 * time.Millisecond

// deckRefreshMsg delivers rescanned session files from the watcher.
type deckRefreshMsg struct {
	files []recents.SessionFile
}

// fileChangedMsg reports a write to a single session file, so the host can
// re-enrich the attached card without a full rescan.
type fileChangedMsg struct {
	path string
}

// deckWatcher watches the state directory for session record changes.
// Create/remove/rename events mean deck membership or ordering changed and
// debounce into a full rescan pushed through sub; writes to individual
// .jsonl files are forwarded through changes. Scans run on the watcher's
// own goroutines -- Source.Scan is IO plus a mutex-guarded cache, so that
// is safe; the host applies results on its update loop.
type deckWatcher struct {
	source  *recents.Source
	sub     chan []recents.SessionFile
	changes chan string
	done    chan struct{}

	// Guards the debounce timer so stop() can cancel it safely.
	mu       sync.Mutex
	debounce *time.Timer
}

func newDeckWatcher(source *recents.Source) *deckWatcher {
	return &deckWatcher{
		source:  source,
		sub:     make(chan []recents.SessionFile, 1),
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
}

// run blocks until stop() is called. Intended as a goroutine.
func (w *deckWatcher) run() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.source.Dir()); err != nil {
		return
	}

	for {
		select {
		case <-w.done:
			w.mu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.mu.Unlock()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(filepath.Base(event.Name), ".jsonl") {
				continue
			}

			if event.Has(fsnotify.Write) {
				// Non-blocking send: a pending change for another file is
				// rare and the next write will retrigger anyway.
				select {
				case w.changes <- event.Name:
				default:
				}
				continue
			}

			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.mu.Lock()
				if w.debounce != nil {
					w.debounce.Stop()
				}
				w.debounce = time.AfterFunc(watcherDebounce, w.rescan)
				w.mu.Unlock()
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep going.
		}
	}
}

// rescan runs a scan and pushes the result, dropping a stale pending
// refresh if the host hasn't consumed it yet. Fired from the debounce
// timer, which can outlive stop(), so every blocking point also watches
// done.
func (w *deckWatcher) rescan() {
	select {
	case <-w.done:
		return
	default:
	}
	files, err := w.source.Scan()
	if err != nil {
		return
	}
	select {
	case w.sub <- files:
		return
	default:
	}
	select {
	case <-w.sub:
	default:
	}
	select {
	case w.sub <- files:
	case <-w.done:
	}
}

// stop signals the watcher goroutine to exit.
func (w *deckWatcher) stop() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}

// waitForDeckRefresh blocks on the rescan subscription and wraps the
// result for the Bubble Tea runtime. Returns nil when the watcher stopped.
func waitForDeckRefresh(sub chan []recents.SessionFile) tea.Cmd {
	return func() tea.Msg {
		files, ok := <-sub
		if !ok {
			return nil
		}
		return deckRefreshMsg{files: files}
	}
}

// waitForFileChange blocks on the per-file change channel.
func waitForFileChange(changes chan string) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}
