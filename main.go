package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/mlowery2/taskdeck/binder"
	"github.com/mlowery2/taskdeck/recents"
)

// View states
type viewState int

const (
	viewDeck    viewState = iota // the card deck (main view)
	viewInspect                  // full-screen single session
)

// scanDoneMsg delivers the result of a state-directory scan.
type scanDoneMsg struct {
	files []recents.SessionFile
	err   error
}

// applyMsg carries one enrichment completion off the queue. Executing it
// on the update loop is what serializes completions with everything else.
type applyMsg struct {
	fn func()
}

// execFinishedMsg fires when a launched session's process exits and the
// TUI resumes.
type execFinishedMsg struct {
	err error
}

type model struct {
	source   *recents.Source
	binder   *binder.Binder
	queue    *binder.Queue
	launcher *deckLauncher
	watcher  *deckWatcher

	// Slot pool. Slots are created lazily up to the binder's cap and
	// recycled across refreshes; cards are the surfaces behind them.
	slots []*binder.Slot
	cards []*card
	bound int // slots bound during the last rebind pass

	cursor    int
	width     int
	height    int
	view      viewState
	inspect   *recents.Task
	statusErr string

	md        *mdRenderer
	hl        *jsonHL
	hasDarkBg bool
}

func initialModel(source *recents.Source, queue *binder.Queue, hasDarkBg bool) model {
	launcher := &deckLauncher{}
	m := model{
		source:    source,
		binder:    binder.New(source, launcher),
		queue:     queue,
		launcher:  launcher,
		md:        newMDRenderer(hasDarkBg),
		hl:        newJSONHL(hasDarkBg),
		hasDarkBg: hasDarkBg,
	}
	// Placeholder mode until the first scan lands.
	m.binder.SetLoading(true)
	m.rebind()
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		scanCmd(m.source),
		waitForApply(m.queue),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForDeckRefresh(m.watcher.sub), waitForFileChange(m.watcher.changes))
	}
	return tea.Batch(cmds...)
}

// scanCmd runs one state-directory scan off the update loop.
func scanCmd(source *recents.Source) tea.Cmd {
	return func() tea.Msg {
		files, err := source.Scan()
		return scanDoneMsg{files: files, err: err}
	}
}

// waitForApply blocks for the next enrichment completion and wraps it for
// the Bubble Tea runtime. Returns nil when the queue is closed.
func waitForApply(q *binder.Queue) tea.Cmd {
	return func() tea.Msg {
		fn, ok := q.Wait()
		if !ok {
			return nil
		}
		return applyMsg{fn: fn}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case scanDoneMsg:
		m.binder.SetLoading(false)
		if msg.err != nil {
			m.statusErr = msg.err.Error()
			m.rebind() // drops the placeholder cards
			return m, nil
		}
		m.statusErr = ""
		m.source.Apply(msg.files)
		m.rebind()
		return m, nil

	case deckRefreshMsg:
		m.source.Apply(msg.files)
		m.rebind()
		if m.watcher == nil {
			return m, nil
		}
		return m, waitForDeckRefresh(m.watcher.sub)

	case fileChangedMsg:
		m.refreshChanged(msg.path)
		if m.watcher == nil {
			return m, nil
		}
		return m, waitForFileChange(m.watcher.changes)

	case applyMsg:
		msg.fn()
		return m, waitForApply(m.queue)

	case execFinishedMsg:
		if msg.err != nil {
			m.statusErr = msg.err.Error()
		}
		// Last-use times moved while we were away; rescan.
		return m, scanCmd(m.source)

	case tea.KeyMsg:
		switch m.view {
		case viewInspect:
			return m.updateInspect(msg)
		default:
			return m.updateDeck(msg)
		}
	}

	return m, nil
}

// rebind runs a full recycling pass: detach everything, bind the current
// count by position (growing the pool lazily), then reattach. The binder's
// contract expects attached slots to be detached before they are rebound.
func (m *model) rebind() {
	for i := 0; i < m.bound; i++ {
		m.binder.Detach(m.slots[i])
	}

	count := m.binder.Count()
	for len(m.slots) < count {
		c := &card{}
		m.cards = append(m.cards, c)
		m.slots = append(m.slots, m.binder.NewSlot(c))
	}
	for i := 0; i < count; i++ {
		m.binder.Bind(m.slots[i], i)
	}
	m.bound = count
	for i := 0; i < count; i++ {
		m.binder.Attach(m.slots[i])
	}

	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// refreshChanged reapplies the changed file's meta to its snapshot task
// and re-binds the slot showing it, if any is on screen, so its enrichment
// is re-issued. Off-screen sessions keep the reloaded meta but wait for
// the next full rescan to re-enrich.
func (m *model) refreshChanged(path string) {
	task := m.source.TaskByPath(path)
	if task == nil {
		return
	}
	m.source.ReloadMeta(task)
	if m.binder.Attached(task.Key()) == nil {
		return
	}
	tasks := m.source.Tasks()
	for i := 0; i < m.bound && i < len(tasks); i++ {
		if tasks[i].Key() == task.Key() {
			m.binder.Bind(m.slots[i], i)
			return
		}
	}
}

// selectedTask returns the task under the cursor, or nil.
func (m model) selectedTask() *recents.Task {
	if m.cursor < 0 || m.cursor >= m.bound {
		return nil
	}
	task, _ := m.slots[m.cursor].Record().(*recents.Task)
	return task
}

func (m model) stopBackground() {
	if m.watcher != nil {
		m.watcher.stop()
	}
	m.queue.Close()
}

func main() {
	dumpMode := false
	dir := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--dump":
			dumpMode = true
		case args[i] == "--dir" && i+1 < len(args):
			i++
			dir = args[i]
		case strings.HasPrefix(args[i], "-"):
			fmt.Fprintf(os.Stderr, "unknown flag: %s\n", args[i])
			os.Exit(1)
		}
	}

	if dir == "" {
		var err error
		dir, err = recents.DefaultDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	queue := binder.NewQueue()
	source := recents.NewSource(dir, queue)
	m := initialModel(source, queue, termenv.HasDarkBackground())

	if dumpMode {
		renderDump(&m)
		return
	}

	watcher := newDeckWatcher(source)
	go watcher.run()
	m.watcher = watcher

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// renderDump prints one fully enriched frame and exits. Headless use of
// the queue: every issued load completes, so waiting for two completions
// per bound slot is bounded.
func renderDump(m *model) {
	files, err := m.source.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	m.binder.SetLoading(false)
	m.source.Apply(files)
	m.rebind()

	for i := 0; i < 2*m.bound; i++ {
		fn, ok := m.queue.Wait()
		if !ok {
			break
		}
		fn()
	}

	m.width = 100
	m.height = 1_000_000
	fmt.Println(m.View())
}
