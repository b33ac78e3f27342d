package systems

import "math"

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// NormalizeHeading wraps a heading angle to [0, 2*Pi).
func NormalizeHeading(h float64) float64 {
	const twoPi = 2 * math.Pi
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

// maxInt returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minInt returns the smaller of a and b.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
