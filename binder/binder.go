// Package binder reconciles a capped, continuously refreshed list of recents
// records with a pool of reusable on-screen slots. The hosting runtime owns
// slot creation and recycling; the binder owns slot content: it decides what
// each slot displays and issues the asynchronous enrichment loads that fill
// a slot in after binding.
//
// Everything here assumes serialized execution: all binder methods and all
// enrichment completions run on one logical thread (in practice the Bubble
// Tea update loop, fed by a Queue). The staleness guard in Bind relies on
// that serialization, not on locks.
package binder

// Record is one entry in the source's current list. Identity is the key;
// the display fields are mutable over time -- the source fills them in
// before an enrichment completion fires, and the binder re-reads them at
// completion time rather than receiving a payload.
type Record interface {
	Key() int
	Icon() string
	Label() string
	Thumbnail() []string
}

// Surface is the visual face of a slot. The binder never renders; it only
// pushes content into whatever container the hosting runtime supplies.
type Surface interface {
	// ShowLoading renders the global loading-placeholder visual.
	ShowLoading()
	// Reset renders the non-animated placeholder for a fresh binding,
	// clearing any content left over from the previous record.
	Reset()
	SetIcon(icon string)
	SetLabel(label string)
	SetThumbnail(lines []string)
}

// Source supplies the current recents list and performs asynchronous
// enrichment. Current returns a snapshot that may change between calls.
// The load methods fire their completion with no payload -- callers re-read
// fields off the record -- and must marshal the completion onto the same
// logical thread the binder runs on.
type Source interface {
	Current() []Record
	LoadIconAndLabel(rec Record, done func())
	LoadThumbnail(rec Record, done func())
}

// Launcher receives launch intents for activated slots.
type Launcher interface {
	Launch(rec Record)
}

// DefaultMaxVisible caps how many records are concurrently displayable.
const DefaultMaxVisible = 6

// Option configures a Binder.
type Option func(*Binder)

// WithMaxVisible overrides the display cap. Values below 1 are ignored.
func WithMaxVisible(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.maxVisible = n
		}
	}
}

// Binder maps list positions to slot content and maintains the attachment
// index from record key to on-screen slot.
type Binder struct {
	source     Source
	launcher   Launcher
	maxVisible int
	loading    bool
	attached   map[int]*Slot
}

// New returns a binder over the given source and launcher.
func New(source Source, launcher Launcher, opts ...Option) *Binder {
	b := &Binder{
		source:     source,
		launcher:   launcher,
		maxVisible: DefaultMaxVisible,
		attached:   make(map[int]*Slot),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetLoading toggles placeholder mode. It only changes what Count reports;
// the hosting runtime is responsible for re-binding slots afterwards.
func (b *Binder) SetLoading(on bool) {
	b.loading = on
}

// Loading reports whether placeholder mode is active.
func (b *Binder) Loading() bool {
	return b.loading
}

// Count reports the number of bindable positions: the full cap in loading
// mode, otherwise the capped length of the source's current list.
func (b *Binder) Count() int {
	if b.loading {
		return b.maxVisible
	}
	n := len(b.source.Current())
	if n > b.maxVisible {
		n = b.maxVisible
	}
	return n
}

// NewSlot wraps a surface in a reusable slot. Slots are created lazily by
// the hosting runtime and rebound indefinitely; the binder never discards
// them.
func (b *Binder) NewSlot(surface Surface) *Slot {
	return &Slot{surface: surface}
}

// Activate dispatches a launch intent for the slot's currently bound
// record -- the binding at activation time, not at slot creation time.
// No-op for unbound slots.
func (b *Binder) Activate(s *Slot) {
	if s.rec == nil {
		return
	}
	b.launcher.Launch(s.rec)
}

// Bind points the slot at the record for the given position and issues the
// two enrichment loads. In loading mode the slot is cleared and shows the
// loading placeholder instead, with no loads issued. A position at or past
// the end of the current list (the list shrank since Count was read) is a
// silent no-op that leaves the slot untouched.
func (b *Binder) Bind(s *Slot, pos int) {
	if b.loading {
		s.rec = nil
		s.surface.ShowLoading()
		return
	}

	current := b.source.Current()
	if pos >= len(current) {
		// List updated between Count and Bind.
		return
	}

	rec := current[pos]
	key := rec.Key()
	s.rec = rec
	s.surface.Reset()

	// Each completion re-checks, by key, that the slot still holds the
	// record the load was issued for. A slot recycled to a different record
	// mid-flight drops the stale result -- no error, no retry.
	b.source.LoadIconAndLabel(rec, func() {
		if s.rec == nil || s.rec.Key() != key {
			return
		}
		s.surface.SetIcon(rec.Icon())
		s.surface.SetLabel(rec.Label())
	})
	b.source.LoadThumbnail(rec, func() {
		if s.rec == nil || s.rec.Key() != key {
			return
		}
		s.surface.SetThumbnail(rec.Thumbnail())
	})
}

// Attach records the slot in the attachment index under its bound record's
// key. No-op for unbound slots.
func (b *Binder) Attach(s *Slot) {
	if s.rec == nil {
		return
	}
	b.attached[s.rec.Key()] = s
}

// Detach removes the slot's attachment entry. The entry is removed only
// when it still maps to this slot -- a slot detaching after its key was
// attached elsewhere must not evict the other slot's entry.
func (b *Binder) Detach(s *Slot) {
	if s.rec == nil {
		return
	}
	key := s.rec.Key()
	if b.attached[key] == s {
		delete(b.attached, key)
	}
}

// Attached returns the on-screen slot currently bound to key, or nil.
func (b *Binder) Attached(key int) *Slot {
	return b.attached[key]
}
