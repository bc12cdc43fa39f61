package tween

// Segment interpolates from From to To over Duration seconds.
type Segment struct {
	From     float64
	To       float64
	Duration float64
	Ease     Ease
	OnValue  func(v float64)
}

// Value returns the eased value after elapsed seconds.
// The progress ratio is clamped to [0,1].
func (s Segment) Value(elapsed float64) float64 {
	ratio := 1.0
	if s.Duration > 0 {
		ratio = elapsed / s.Duration
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	ease := s.Ease
	if ease == nil {
		ease = Linear
	}
	return s.From + (s.To-s.From)*ease(ratio)
}

func (s Segment) emit(elapsed float64) {
	if s.OnValue != nil {
		s.OnValue(s.Value(elapsed))
	}
}

// Sequence plays segments in order.
type Sequence struct {
	segments   []Segment
	sink       func(float64)
	onFinished func()
	loop       bool

	index     int
	elapsed   float64
	done      bool
	cancelled bool
}

// NewSequence creates an empty sequence. Segments added with Add report
// their values to sink.
func NewSequence(sink func(v float64)) *Sequence {
	return &Sequence{sink: sink}
}

// Add appends a segment reporting to the sequence sink.
func (s *Sequence) Add(from, to, duration float64, ease Ease) *Sequence {
	return s.AddSegment(Segment{From: from, To: to, Duration: duration, Ease: ease, OnValue: s.sink})
}

// AddSegment appends a segment with its own callback.
func (s *Sequence) AddSegment(seg Segment) *Sequence {
	s.segments = append(s.segments, seg)
	return s
}

// Loop makes the sequence restart from its first segment once finished.
// OnFinished still fires at the end of every round.
func (s *Sequence) Loop() *Sequence {
	s.loop = true
	return s
}

// OnFinished sets the callback run when the last segment completes.
// The callback may install a new sequence in the slot owning this one.
func (s *Sequence) OnFinished(fn func()) *Sequence {
	s.onFinished = fn
	return s
}

// Duration returns the sum of the segment durations.
func (s *Sequence) Duration() float64 {
	var d float64
	for _, seg := range s.segments {
		d += seg.Duration
	}
	return d
}

// Done reports whether the sequence finished or was cancelled.
func (s *Sequence) Done() bool {
	return s.done || s.cancelled
}

// Cancel stops the sequence immediately. No callback fires afterward.
func (s *Sequence) Cancel() {
	s.cancelled = true
}

// Update consumes dt seconds.
func (s *Sequence) Update(dt float64) {
	if s.Done() || len(s.segments) == 0 {
		return
	}

	remaining := dt
	for !s.cancelled {
		seg := s.segments[s.index]
		left := seg.Duration - s.elapsed
		if remaining < left {
			s.elapsed += remaining
			seg.emit(s.elapsed)
			return
		}

		remaining -= left
		seg.emit(seg.Duration)
		if s.cancelled {
			return
		}
		s.elapsed = 0
		s.index++
		if s.index < len(s.segments) {
			continue
		}

		s.index = 0
		if !s.loop {
			s.done = true
		}
		if s.onFinished != nil {
			s.onFinished()
		}
		if s.Done() || s.Duration() <= 0 {
			return
		}
	}
}
