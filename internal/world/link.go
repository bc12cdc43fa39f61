package world

// Link is a weak reference held by the entity that created or grabbed the
// target. It never keeps the target alive and reads as empty once the
// target left the world.
type Link struct {
	h Handle
}

// Set points the link at h.
func (l *Link) Set(h Handle) {
	l.h = h
}

// Clear empties the link.
func (l *Link) Clear() {
	l.h = Handle{}
}

// Handle returns the raw handle, which may be stale.
func (l *Link) Handle() Handle {
	return l.h
}

// Get resolves the link. A stale link is cleared on access.
func (l *Link) Get(w Lookup) (*Entity, bool) {
	if l.h.IsZero() {
		return nil, false
	}
	e, ok := w.Get(l.h)
	if !ok {
		l.h = Handle{}
	}
	return e, ok
}

// Empty reports whether the link has no live target.
func (l *Link) Empty(w Lookup) bool {
	_, ok := l.Get(w)
	return !ok
}
