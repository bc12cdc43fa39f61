package combo

import "sync"

// Ledger receives every score change produced by the simulation.
type Ledger interface {
	AddScore(combo uint, points int, floating bool)
}

// Floating reports a floating score for an entity with the given combo.
// Entities without a combo award nothing; sources that are not entities
// award with a combo of one.
func Floating(l Ledger, c uint, points int, fromEntity bool) {
	if !fromEntity {
		l.AddScore(1, points, true)
		return
	}
	if c > 0 {
		l.AddScore(c, points, true)
	}
}

// Award is one score change kept by a Tally.
type Award struct {
	Combo    uint
	Points   int
	Floating bool
}

// Tally is an in-memory ledger. The total never drops below zero.
// It is safe for concurrent use so the viewer can read it between ticks.
type Tally struct {
	mu        sync.Mutex
	total     int
	bestCombo uint
	awards    []Award
	keep      int
}

// NewTally creates a ledger remembering the last keep awards.
func NewTally(keep int) *Tally {
	return &Tally{keep: keep}
}

// AddScore implements Ledger.
func (t *Tally) AddScore(c uint, points int, floating bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delta := Points(c, points)
	if delta < 0 && t.total < -delta {
		t.total = 0
	} else {
		t.total += delta
	}
	if c > t.bestCombo {
		t.bestCombo = c
	}

	if t.keep <= 0 {
		return
	}
	t.awards = append(t.awards, Award{Combo: c, Points: points, Floating: floating})
	if len(t.awards) > t.keep {
		t.awards = t.awards[len(t.awards)-t.keep:]
	}
}

// Total returns the current score.
func (t *Tally) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// BestCombo returns the highest combo awarded so far.
func (t *Tally) BestCombo() uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bestCombo
}

// Awards returns a copy of the most recent awards, oldest first.
func (t *Tally) Awards() []Award {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Award, len(t.awards))
	copy(out, t.awards)
	return out
}

// Reset clears the ledger.
func (t *Tally) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = 0
	t.bestCombo = 0
	t.awards = nil
}
