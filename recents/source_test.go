package recents

import (
	"testing"
	"time"

	"github.com/mlowery2/taskdeck/binder"
)

// scanAndApply runs one full refresh against the source's directory.
func scanAndApply(t *testing.T, s *Source) {
	t.Helper()
	files, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	s.Apply(files)
}

func TestSourceScanApply(t *testing.T) {
	t.Run("snapshot is ordered newest first", func(t *testing.T) {
		dir := t.TempDir()
		old := writeSession(t, dir, "old.jsonl", metaRecord{ID: 1, Title: "old"})
		fresh := writeSession(t, dir, "fresh.jsonl", metaRecord{ID: 2, Title: "fresh"})
		touch(t, old, time.Now().Add(-2*time.Hour))
		touch(t, fresh, time.Now().Add(-time.Minute))

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)

		tasks := s.Tasks()
		if len(tasks) != 2 {
			t.Fatalf("tasks = %d, want 2", len(tasks))
		}
		if tasks[0].Title != "fresh" || tasks[1].Title != "old" {
			t.Errorf("order = [%s %s], want newest first", tasks[0].Title, tasks[1].Title)
		}
	})

	t.Run("non-session files are skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "good.jsonl", metaRecord{ID: 1, Title: "good"})
		writeSession(t, dir, "bad.jsonl", metaRecord{ID: 0})
		writeSession(t, dir, "ignored.txt", metaRecord{ID: 3, Title: "wrong ext"})

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)
		if got := len(s.Tasks()); got != 1 {
			t.Errorf("tasks = %d, want 1", got)
		}
	})

	t.Run("duplicate ids keep the newest file", func(t *testing.T) {
		dir := t.TempDir()
		old := writeSession(t, dir, "a.jsonl", metaRecord{ID: 5, Title: "stale copy"})
		fresh := writeSession(t, dir, "b.jsonl", metaRecord{ID: 5, Title: "live copy"})
		touch(t, old, time.Now().Add(-time.Hour))
		touch(t, fresh, time.Now())

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)

		tasks := s.Tasks()
		if len(tasks) != 1 || tasks[0].Title != "live copy" {
			t.Errorf("tasks = %v, want only the live copy", tasks)
		}
	})

	t.Run("task identity survives a refresh", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "s.jsonl", metaRecord{ID: 7, Title: "first title"})

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)
		before := s.Tasks()[0]
		before.icon = IconShell // simulate applied enrichment

		path := writeSession(t, dir, "s.jsonl", metaRecord{ID: 7, Title: "renamed"})
		touch(t, path, time.Now().Add(time.Minute))
		scanAndApply(t, s)

		after := s.Tasks()[0]
		if after != before {
			t.Fatal("refresh replaced the *Task for an unchanged id")
		}
		if after.Title != "renamed" {
			t.Errorf("Title = %q, want refreshed meta applied", after.Title)
		}
		if after.Icon() != IconShell {
			t.Errorf("Icon = %q, want prior enrichment preserved", after.Icon())
		}
	})

	t.Run("task by path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSession(t, dir, "s.jsonl", metaRecord{ID: 1, Title: "s"})

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)

		if got := s.TaskByPath(path); got == nil || got.ID != 1 {
			t.Errorf("TaskByPath = %v, want task 1", got)
		}
		if got := s.TaskByPath(path + ".missing"); got != nil {
			t.Errorf("TaskByPath for unknown path = %v, want nil", got)
		}
	})
}

func TestReloadMeta(t *testing.T) {
	t.Run("applies rewritten meta fields", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSession(t, dir, "s.jsonl", metaRecord{ID: 3, Title: "old", Kind: "shell"})

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)
		task := s.Tasks()[0]

		writeSession(t, dir, "s.jsonl", metaRecord{ID: 3, Title: "new", Kind: "editor", Notes: "now with notes"})
		touch(t, path, time.Now().Add(time.Minute))

		s.ReloadMeta(task)
		if task.Title != "new" || task.Kind != KindEditor || task.Notes != "now with notes" {
			t.Errorf("task = %+v, want rewritten meta applied", task)
		}
	})

	t.Run("id change leaves the task alone", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSession(t, dir, "s.jsonl", metaRecord{ID: 3, Title: "old"})

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)
		task := s.Tasks()[0]

		writeSession(t, dir, "s.jsonl", metaRecord{ID: 9, Title: "different session"})
		touch(t, path, time.Now().Add(time.Minute))

		s.ReloadMeta(task)
		if task.Title != "old" {
			t.Errorf("Title = %q, want unchanged for an id change", task.Title)
		}
	})

	t.Run("deleted file leaves the task alone", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "s.jsonl", metaRecord{ID: 3, Title: "old"})

		s := NewSource(dir, binder.NewQueue())
		scanAndApply(t, s)
		task := s.Tasks()[0]
		task.Path = task.Path + ".removed"

		s.ReloadMeta(task)
		if task.Title != "old" {
			t.Errorf("Title = %q, want unchanged for an unreadable file", task.Title)
		}
	})
}

func TestSourceEnrichment(t *testing.T) {
	// drainOne blocks for the next completion and runs it on this thread.
	drainOne := func(t *testing.T, q *binder.Queue) {
		t.Helper()
		fn, ok := q.Wait()
		if !ok {
			t.Fatal("queue closed before completion arrived")
		}
		fn()
	}

	t.Run("icon and label land via the queue", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "api.jsonl", metaRecord{ID: 1, Title: "api server", Kind: "shell"})

		q := binder.NewQueue()
		s := NewSource(dir, q)
		scanAndApply(t, s)
		task := s.Tasks()[0]

		completed := false
		s.LoadIconAndLabel(task, func() { completed = true })
		drainOne(t, q)

		if !completed {
			t.Fatal("completion never fired")
		}
		if task.Icon() != IconShell || task.Label() != "api server" {
			t.Errorf("enriched = (%q, %q), want (%q, %q)",
				task.Icon(), task.Label(), IconShell, "api server")
		}
	})

	t.Run("thumbnail lands via the queue", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "s.jsonl", metaRecord{ID: 1, Title: "s"},
			"$ make test", "ok  \t 12 passed")

		q := binder.NewQueue()
		s := NewSource(dir, q)
		scanAndApply(t, s)
		task := s.Tasks()[0]

		s.LoadThumbnail(task, func() {})
		drainOne(t, q)

		thumb := task.Thumbnail()
		if len(thumb) != 2 || thumb[0] != "$ make test" {
			t.Errorf("thumbnail = %v", thumb)
		}
	})

	t.Run("deleted file completes with defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "gone.jsonl", metaRecord{ID: 1, Title: "gone"})

		q := binder.NewQueue()
		s := NewSource(dir, q)
		scanAndApply(t, s)
		task := s.Tasks()[0]
		task.Path = task.Path + ".removed"

		s.LoadIconAndLabel(task, func() {})
		drainOne(t, q)
		if task.Icon() != IconSession || task.Label() == "" {
			t.Errorf("defaults = (%q, %q), want generic glyph and non-empty label",
				task.Icon(), task.Label())
		}

		s.LoadThumbnail(task, func() {})
		drainOne(t, q)
		if len(task.Thumbnail()) != 0 {
			t.Errorf("thumbnail = %v, want empty for unreadable file", task.Thumbnail())
		}
	})

	t.Run("in-flight loads leave the record untouched", func(t *testing.T) {
		dir := t.TempDir()
		writeSession(t, dir, "s.jsonl", metaRecord{ID: 1, Title: "busy", Kind: "shell"}, "out")

		q := binder.NewQueue()
		s := NewSource(dir, q)
		scanAndApply(t, s)
		task := s.Tasks()[0]

		s.LoadIconAndLabel(task, func() {})
		s.LoadThumbnail(task, func() {})

		// These reads run concurrently with the loader goroutines; only
		// the completions drained below may write the fields, so nothing
		// can land before then (and the race detector holds us to it).
		for i := 0; i < 64; i++ {
			if task.Icon() != "" || task.Label() != "" || task.Thumbnail() != nil {
				t.Fatal("record mutated before its completion ran")
			}
		}

		drainOne(t, q)
		drainOne(t, q)
		if task.Icon() != IconShell || task.Label() != "busy" || len(task.Thumbnail()) != 1 {
			t.Errorf("enriched = (%q, %q, %v) after draining both completions",
				task.Icon(), task.Label(), task.Thumbnail())
		}
	})
}
