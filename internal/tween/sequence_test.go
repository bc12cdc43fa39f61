package tween

import (
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	tests := []struct {
		name string
		ease Ease
	}{
		{"linear", Linear},
		{"sine_in", SineIn},
		{"sine_out", SineOut},
		{"sine_in_out", SineInOut},
		{"quad_in", QuadIn},
		{"quad_out", QuadOut},
		{"quad_in_out", QuadInOut},
		{"quart_in", QuartIn},
		{"quart_out", QuartOut},
		{"back_out", BackOut},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ease(0); math.Abs(got) > 1e-9 {
				t.Errorf("%s(0) = %v, expected 0", tc.name, got)
			}
			if got := tc.ease(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("%s(1) = %v, expected 1", tc.name, got)
			}
			if got := ByName(tc.name)(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("ByName(%q)(1) = %v, expected 1", tc.name, got)
			}
		})
	}
}

func TestSegmentValueClamps(t *testing.T) {
	seg := Segment{From: 10, To: 20, Duration: 2, Ease: Linear}

	tests := []struct {
		elapsed  float64
		expected float64
	}{
		{-1, 10},
		{0, 10},
		{1, 15},
		{2, 20},
		{5, 20},
	}

	for _, tc := range tests {
		if got := seg.Value(tc.elapsed); got != tc.expected {
			t.Errorf("Value(%v) = %v, expected %v", tc.elapsed, got, tc.expected)
		}
	}
}

func TestSequenceFinishesAtTotalDuration(t *testing.T) {
	var finished int
	var last float64
	seq := NewSequence(func(v float64) { last = v }).
		Add(0, 40, 0.25, SineOut).
		Add(40, -20, 0.5, SineInOut).
		Add(-20, 0, 0.25, SineIn).
		OnFinished(func() { finished++ })

	if d := seq.Duration(); d != 1.0 {
		t.Fatalf("Duration() = %v, expected 1", d)
	}

	// 0.125 is exact in binary so the sum hits D precisely.
	const dt = 0.125
	elapsed := 0.0
	for i := 0; i < 7; i++ {
		seq.Update(dt)
		elapsed += dt
		if finished != 0 {
			t.Fatalf("finished after %v, expected not before 1.0", elapsed)
		}
	}

	seq.Update(dt)
	if finished != 1 {
		t.Fatalf("finished = %d after 1.0s, expected 1", finished)
	}
	if !seq.Done() {
		t.Error("Done() = false, expected true")
	}
	if math.Abs(last) > 1e-9 {
		t.Errorf("last value = %v, expected 0", last)
	}

	seq.Update(dt)
	if finished != 1 {
		t.Errorf("finished = %d after extra update, expected 1", finished)
	}
}

func TestSequenceCarriesTimeOver(t *testing.T) {
	var values []float64
	seq := NewSequence(func(v float64) { values = append(values, v) }).
		Add(0, 10, 1, Linear).
		Add(10, 20, 1, Linear)

	seq.Update(1.5)

	// First segment reports its end value, second picks up the remaining 0.5s.
	if len(values) != 2 || values[0] != 10 || values[1] != 15 {
		t.Errorf("values = %v, expected [10 15]", values)
	}
}

func TestSequenceSingleLargeStep(t *testing.T) {
	finished := false
	seq := NewSequence(nil).
		Add(0, 1, 0.3, Linear).
		Add(1, 0, 0.3, Linear).
		OnFinished(func() { finished = true })

	seq.Update(10)
	if !finished {
		t.Error("a step longer than the whole sequence should finish it")
	}
}

func TestSequenceLoop(t *testing.T) {
	rounds := 0
	seq := NewSequence(nil).
		Add(0, 50, 0.5, SineOut).
		Add(50, 0, 0.5, SineIn).
		Loop().
		OnFinished(func() { rounds++ })

	for i := 0; i < 20; i++ {
		seq.Update(0.25)
	}

	if rounds != 5 {
		t.Errorf("rounds = %d, expected 5", rounds)
	}
	if seq.Done() {
		t.Error("looping sequence should never be done")
	}
}

func TestSequenceZeroDurationLoopDoesNotSpin(t *testing.T) {
	rounds := 0
	seq := NewSequence(nil).Add(1, 2, 0, Linear).Loop().OnFinished(func() { rounds++ })

	seq.Update(0.1)
	if rounds != 1 {
		t.Errorf("rounds = %d, expected 1", rounds)
	}
}

func TestSlotReplacementCancelsPrevious(t *testing.T) {
	var slot Slot
	oldCalls, newCalls := 0, 0

	old := NewSequence(func(float64) { oldCalls++ }).Add(0, 1, 1, Linear).
		OnFinished(func() { oldCalls += 100 })
	slot.Set(old)
	slot.Update(0.5)

	slot.Set(NewSequence(func(float64) { newCalls++ }).Add(0, 1, 1, Linear))
	before := oldCalls

	// Driving the old sequence directly must not reach its callbacks any more.
	old.Update(2)
	slot.Update(0.5)

	if oldCalls != before {
		t.Errorf("old sequence fired after replacement: %d calls, expected %d", oldCalls, before)
	}
	if newCalls != 1 {
		t.Errorf("new sequence calls = %d, expected 1", newCalls)
	}
}

func TestSlotChainsFromOnFinished(t *testing.T) {
	var slot Slot
	stage := 0

	var second *Sequence
	first := NewSequence(nil).Add(0, 1, 1, Linear).OnFinished(func() {
		stage = 1
		second = NewSequence(nil).Add(1, 2, 1, Linear).OnFinished(func() { stage = 2 })
		slot.Set(second)
	})
	slot.Set(first)

	slot.Update(1)
	if stage != 1 || !slot.Active() {
		t.Fatalf("stage = %d active = %v, expected chained second stage", stage, slot.Active())
	}

	slot.Update(1)
	if stage != 2 {
		t.Errorf("stage = %d, expected 2", stage)
	}
	if slot.Active() {
		t.Error("slot should be empty once the chain ends")
	}
}

func TestSlotClearIsSynchronous(t *testing.T) {
	var slot Slot
	fired := false
	slot.Set(NewSequence(nil).Add(0, 1, 0.1, Linear).OnFinished(func() { fired = true }))

	slot.Clear()
	slot.Update(1)

	if fired {
		t.Error("cleared sequence should not finish")
	}
}
