package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X', ColorRed)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected X/red", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A', ColorDefault)
	s.Set(100, 0, 'A', ColorDefault)
	s.Set(0, -1, 'A', ColorDefault)
	s.Set(0, 100, 'A', ColorDefault)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc", ColorDefault)
	s.DrawHLine(0, 1, 3, '-', ColorGray)

	expected := "abc\n---"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestProjectionFlipsY(t *testing.T) {
	p := Projection{View: NewRect(0, 0, 100, 50), Width: 10, Height: 5}

	tests := []struct {
		name  string
		point Vec
		x, y  int
	}{
		{"top-left", V(0, 49.9), 0, 0},
		{"bottom-left", V(0, 0.1), 0, 4},
		{"center", V(50, 25), 5, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := p.Cell(tc.point)
			if x != tc.x || y != tc.y {
				t.Errorf("Cell(%v) = (%d, %d), expected (%d, %d)", tc.point, x, y, tc.x, tc.y)
			}
		})
	}
}

func TestFillRectPaintsAtLeastOneCell(t *testing.T) {
	s := NewScreen(10, 5)
	p := Projection{View: NewRect(0, 0, 100, 50), Width: 10, Height: 5}

	s.FillRect(p, NewRect(51, 21, 1, 1), '*', ColorYellow)

	if !strings.Contains(s.String(), "*") {
		t.Error("FillRect should paint a tiny rectangle")
	}
}
