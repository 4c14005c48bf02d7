package recents

import (
	"os"

	"github.com/mlowery2/taskdeck/binder"
)

// Source implements binder.Source over a state directory of session record
// files. Scan performs the IO and is safe from any goroutine (the meta
// cache is mutex-guarded); Apply, Current, and Tasks touch the snapshot and
// belong to the single consuming thread. Enrichment loads do their IO on
// background goroutines and post completion thunks to the queue; the thunk
// applies the derived fields and fires done, so records are only ever
// mutated on that thread.
type Source struct {
	dir   string
	queue *binder.Queue
	cache *metaCache
	tasks []*Task
}

// NewSource returns a source over dir posting completions to queue.
func NewSource(dir string, queue *binder.Queue) *Source {
	return &Source{
		dir:   dir,
		queue: queue,
		cache: newMetaCache(),
	}
}

// Dir returns the state directory this source scans.
func (s *Source) Dir() string { return s.dir }

// Scan discovers the current session files. IO only; call Apply with the
// result to update the snapshot.
func (s *Source) Scan() ([]SessionFile, error) {
	return discover(s.dir, s.cache.getOrRead)
}

// Apply rebuilds the snapshot from a scan. Tasks that survive keep their
// *Task identity (and whatever enrichment has already been applied) so
// in-flight completions still match the live record by key.
func (s *Source) Apply(files []SessionFile) {
	prev := make(map[int]*Task, len(s.tasks))
	for _, t := range s.tasks {
		prev[t.ID] = t
	}

	tasks := make([]*Task, 0, len(files))
	for _, f := range files {
		t := prev[f.meta.ID]
		if t == nil {
			t = &Task{ID: f.meta.ID}
		}
		t.Path = f.Path
		t.Title = f.meta.Title
		t.Kind = Kind(f.meta.Kind)
		t.Command = f.meta.Command
		t.Notes = f.meta.Notes
		t.LastUsed = f.ModTime
		tasks = append(tasks, t)
	}
	s.tasks = tasks
}

// Tasks returns the current snapshot, newest first.
func (s *Source) Tasks() []*Task { return s.tasks }

// TaskByPath returns the snapshot task backed by the given file, or nil.
func (s *Source) TaskByPath(path string) *Task {
	for _, t := range s.tasks {
		if t.Path == path {
			return t
		}
	}
	return nil
}

// ReloadMeta re-reads a changed session file's meta line and applies it to
// the snapshot task, so a single-file change doesn't leave title or notes
// stale until the next full scan. Call from the consuming thread. Read
// failures and id changes leave the task alone; the next scan sorts
// membership out.
func (s *Source) ReloadMeta(t *Task) {
	info, err := os.Stat(t.Path)
	if err != nil {
		return
	}
	meta, ok := s.cache.getOrRead(t.Path, info.ModTime())
	if !ok || meta.ID != t.ID {
		return
	}
	t.Title = meta.Title
	t.Kind = Kind(meta.Kind)
	t.Command = meta.Command
	t.Notes = meta.Notes
	t.LastUsed = info.ModTime()
}

// Current implements binder.Source.
func (s *Source) Current() []binder.Record {
	recs := make([]binder.Record, len(s.tasks))
	for i, t := range s.tasks {
		recs[i] = t
	}
	return recs
}

// LoadIconAndLabel implements binder.Source: derive the kind glyph and
// display label on a background goroutine, then post a completion that
// applies them to the record and fires done. The goroutine only does the
// IO; record mutation happens inside the posted thunk, on the consuming
// thread, so frame renders never race an in-flight load. Read failures
// fall back to defaults (generic glyph, file basename) before completing
// -- the binder has no failure channel and every issued load completes.
func (s *Source) LoadIconAndLabel(rec binder.Record, done func()) {
	t, ok := rec.(*Task)
	if !ok {
		return
	}
	path := t.Path
	go func() {
		icon, label := deriveIconLabel(path)
		s.queue.Post(func() {
			t.icon, t.label = icon, label
			done()
		})
	}()
}

// LoadThumbnail implements binder.Source: read the tail of the session's
// output on a background goroutine, then post a completion that applies
// the sanitized lines to the record and fires done. Failures complete with
// an empty thumbnail.
func (s *Source) LoadThumbnail(rec binder.Record, done func()) {
	t, ok := rec.(*Task)
	if !ok {
		return
	}
	path := t.Path
	go func() {
		thumb := deriveThumbnail(path)
		s.queue.Post(func() {
			t.thumbnail = thumb
			done()
		})
	}()
}
