package binder

// Slot is a reusable visual container bound to at most one record at a
// time. The hosting runtime creates slots (via Binder.NewSlot), hands them
// out for positions, and recycles them as the list changes; a slot's bound
// record changes over its lifetime and is nil while empty or in loading
// mode.
type Slot struct {
	surface Surface
	rec     Record
}

// Record returns the currently bound record, or nil.
func (s *Slot) Record() Record {
	return s.rec
}

// Surface returns the visual container this slot wraps.
func (s *Slot) Surface() Surface {
	return s.surface
}
