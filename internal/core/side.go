package core

// Side is the coarse zone of an entity touched by a contact.
// The box is split in thirds on both axes.
type Side uint8

const (
	SideNone Side = iota
	SideTopLeft
	SideTop
	SideTopRight
	SideMiddleLeft
	SideMiddle
	SideMiddleRight
	SideBottomLeft
	SideBottom
	SideBottomRight
)

var sideNames = [...]string{
	SideNone:        "none",
	SideTopLeft:     "top-left",
	SideTop:         "top",
	SideTopRight:    "top-right",
	SideMiddleLeft:  "middle-left",
	SideMiddle:      "middle",
	SideMiddleRight: "middle-right",
	SideBottomLeft:  "bottom-left",
	SideBottom:      "bottom",
	SideBottomRight: "bottom-right",
}

// String returns a human-readable name for the side.
func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return "unknown"
}

// IsTop reports whether the side belongs to the upper band.
func (s Side) IsTop() bool {
	return s == SideTopLeft || s == SideTop || s == SideTopRight
}

// IsBottom reports whether the side belongs to the lower band.
func (s Side) IsBottom() bool {
	return s == SideBottomLeft || s == SideBottom || s == SideBottomRight
}

// IsLeft reports whether the side belongs to the left column.
func (s Side) IsLeft() bool {
	return s == SideTopLeft || s == SideMiddleLeft || s == SideBottomLeft
}

// IsRight reports whether the side belongs to the right column.
func (s Side) IsRight() bool {
	return s == SideTopRight || s == SideMiddleRight || s == SideBottomRight
}

// ClassifySide returns the zone of self touched by other, using the center
// of their overlap. Non-overlapping boxes fall back to other's center.
func ClassifySide(self, other Rect) Side {
	if self.W <= 0 || self.H <= 0 {
		return SideNone
	}

	p := other.Center()
	if in := self.Intersection(other); in.W > 0 && in.H > 0 {
		p = in.Center()
	}

	col := zone(p.X, self.X, self.W)
	row := zone(p.Y, self.Y, self.H)

	// row 0 is the bottom band, col 0 the left column
	switch row {
	case 2:
		return [...]Side{SideTopLeft, SideTop, SideTopRight}[col]
	case 1:
		return [...]Side{SideMiddleLeft, SideMiddle, SideMiddleRight}[col]
	default:
		return [...]Side{SideBottomLeft, SideBottom, SideBottomRight}[col]
	}
}

func zone(v, origin, extent float64) int {
	t := (v - origin) / extent
	switch {
	case t < 1.0/3:
		return 0
	case t < 2.0/3:
		return 1
	default:
		return 2
	}
}
