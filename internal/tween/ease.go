// Package tween interpolates values over time through chained segments.
//
// A Sequence is advanced by the caller once per tick. Time left over when a
// segment ends flows into the next one within the same call, so a sequence
// whose segments add up to D finishes as soon as D seconds were consumed.
package tween

import "math"

// Ease maps a progress ratio in [0,1] to an eased ratio.
// Every easing must satisfy f(0) = 0 and f(1) = 1.
type Ease func(t float64) float64

// Linear keeps the ratio unchanged.
func Linear(t float64) float64 { return t }

// SineIn starts slow.
func SineIn(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

// SineOut ends slow.
func SineOut(t float64) float64 { return math.Sin(t * math.Pi / 2) }

// SineInOut is slow at both ends.
func SineInOut(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

// QuadIn accelerates quadratically.
func QuadIn(t float64) float64 { return t * t }

// QuadOut decelerates quadratically.
func QuadOut(t float64) float64 { return 1 - (1-t)*(1-t) }

// QuadInOut accelerates then decelerates.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// QuartIn accelerates sharply.
func QuartIn(t float64) float64 { return t * t * t * t }

// QuartOut decelerates sharply.
func QuartOut(t float64) float64 { return 1 - math.Pow(1-t, 4) }

// BackOut overshoots the target slightly before settling.
func BackOut(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// ByName resolves an easing from its config name. Unknown names are linear.
func ByName(name string) Ease {
	switch name {
	case "sine_in":
		return SineIn
	case "sine_out":
		return SineOut
	case "sine_in_out":
		return SineInOut
	case "quad_in":
		return QuadIn
	case "quad_out":
		return QuadOut
	case "quad_in_out":
		return QuadInOut
	case "quart_in":
		return QuartIn
	case "quart_out":
		return QuartOut
	case "back_out":
		return BackOut
	default:
		return Linear
	}
}
