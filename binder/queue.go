package binder

// queueCap buffers posted completions so loader goroutines rarely block
// while the host is between drains. Two loads per slot times the default
// cap leaves generous headroom.
const queueCap = 32

// Queue serializes enrichment completions onto one logical thread. Sources
// post completion thunks from their worker goroutines; the host consumes
// them from a single place -- a Bubble Tea update loop pumping Wait, or a
// dedicated goroutine running Run. The binder's staleness guard is only
// correct under that serialization.
type Queue struct {
	thunks chan func()
	done   chan struct{}
}

// NewQueue returns an empty queue ready for use.
func NewQueue() *Queue {
	return &Queue{
		thunks: make(chan func(), queueCap),
		done:   make(chan struct{}),
	}
}

// Post enqueues fn for execution on the consuming thread. Safe to call
// from any goroutine. Posts after Close are dropped.
func (q *Queue) Post(fn func()) {
	// Checked first: a ready buffer would otherwise race the closed state
	// in the select below.
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case <-q.done:
	case q.thunks <- fn:
	}
}

// Wait blocks until the next thunk is available and returns it. Returns
// (nil, false) once the queue is closed.
func (q *Queue) Wait() (func(), bool) {
	select {
	case <-q.done:
		return nil, false
	default:
	}
	select {
	case <-q.done:
		return nil, false
	case fn := <-q.thunks:
		return fn, true
	}
}

// Drain executes every thunk currently queued without blocking and returns
// the number executed. Must be called from the consuming thread.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.thunks:
			fn()
			n++
		default:
			return n
		}
	}
}

// Run consumes and executes thunks until the queue is closed. For headless
// hosts; TUI hosts pump Wait from their own event loop instead.
func (q *Queue) Run() {
	for {
		fn, ok := q.Wait()
		if !ok {
			return
		}
		fn()
	}
}

// Close shuts the queue down. Pending thunks are discarded; blocked Wait
// calls return false.
func (q *Queue) Close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
