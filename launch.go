package main

import (
	"os/exec"

	"github.com/mlowery2/taskdeck/binder"
	"github.com/mlowery2/taskdeck/recents"
)

// deckLauncher implements binder.Launcher. Launch stages the activated
// session's resume command; the update loop collects it with take() and
// hands it to tea.ExecProcess, which suspends the TUI while the session
// runs. Staging instead of executing keeps the launcher callable from the
// binder without threading Bubble Tea commands through it.
type deckLauncher struct {
	pending *exec.Cmd
}

func (l *deckLauncher) Launch(rec binder.Record) {
	t, ok := rec.(*recents.Task)
	if !ok || len(t.Command) == 0 {
		return
	}
	l.pending = exec.Command(t.Command[0], t.Command[1:]...)
}

// take returns and clears the staged command, nil when nothing is staged.
func (l *deckLauncher) take() *exec.Cmd {
	cmd := l.pending
	l.pending = nil
	return cmd
}
