// Package combo implements the score multiplier carried by entities and
// passed along chains of destruction.
package combo

// Next returns the combo an entity takes when hit by a source.
// A running combo is extended by one; a seed event with no running combo
// starts a chain at 1; anything else leaves the target without combo.
func Next(source uint, seed bool) uint {
	if source > 0 {
		return source + 1
	}
	if seed {
		return 1
	}
	return 0
}

// Reset returns the combo of an entity hit by the player avatar.
func Reset() uint {
	return 0
}

// Merge settles the combos of two entities destroying each other.
// When neither has a combo nothing changes. Otherwise the weaker side takes
// the stronger side's value plus one, and equal values both grow by one.
func Merge(a, b *uint) {
	switch {
	case *a == 0 && *b == 0:
	case *a > *b:
		*b = *a + 1
	case *b > *a:
		*a = *b + 1
	default:
		*a++
		*b++
	}
}

// Points returns the score delta of points awarded at the given combo.
func Points(c uint, points int) int {
	return int(c) * points
}
