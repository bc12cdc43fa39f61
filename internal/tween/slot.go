package tween

// Slot owns at most one sequence driving a given output.
type Slot struct {
	seq *Sequence
}

// Set replaces the current sequence. The previous one is cancelled before
// Set returns.
func (s *Slot) Set(seq *Sequence) {
	if s.seq != nil && s.seq != seq {
		s.seq.Cancel()
	}
	s.seq = seq
}

// Clear cancels and forgets the current sequence.
func (s *Slot) Clear() {
	s.Set(nil)
}

// Active reports whether a running sequence is installed.
func (s *Slot) Active() bool {
	return s.seq != nil && !s.seq.Done()
}

// Update advances the current sequence. Finished sequences are released
// unless their completion callback installed a replacement.
func (s *Slot) Update(dt float64) {
	seq := s.seq
	if seq == nil {
		return
	}
	seq.Update(dt)
	if seq.Done() && s.seq == seq {
		s.seq = nil
	}
}
