package recents

import "time"

// Kind classifies a session for icon selection.
type Kind string

const (
	KindShell  Kind = "shell"
	KindEditor Kind = "editor"
	KindRepl   Kind = "repl"
	KindBuild  Kind = "build"
)

// Task is one recently used session. Identity is the ID carried in the meta
// record -- two Task values with the same ID are the same session even when
// their display fields differ. The enrichment fields start empty and are
// written only by queued completion thunks, so all mutation happens on the
// consuming thread and renders never race an in-flight load.
type Task struct {
	ID       int
	Path     string
	Title    string
	Kind     Kind
	Command  []string
	Notes    string
	LastUsed time.Time

	icon      string
	label     string
	thumbnail []string
}

// Key implements binder.Record.
func (t *Task) Key() int { return t.ID }

// Icon implements binder.Record.
func (t *Task) Icon() string { return t.icon }

// Label implements binder.Record.
func (t *Task) Label() string { return t.label }

// Thumbnail implements binder.Record.
func (t *Task) Thumbnail() []string { return t.thumbnail }
