package systems

import (
	"fmt"
	"math"
)

// DecayMode selects how coverage values fade between ticks.
type DecayMode uint8

const (
	// DecayMultiplicative scales every cell by a factor in (0,1] per
	// tick, giving an exponential fade that never quite reaches zero.
	DecayMultiplicative DecayMode = iota
	// DecayLinear subtracts a fixed rate per tick and clamps at zero,
	// giving a linear fade that holds at zero once reached.
	DecayLinear
)

// ParseDecayMode maps a config string to a DecayMode.
func ParseDecayMode(s string) (DecayMode, error) {
	switch s {
	case "multiplicative":
		return DecayMultiplicative, nil
	case "linear":
		return DecayLinear, nil
	default:
		return 0, fmt.Errorf("unknown decay mode %q", s)
	}
}

// CoverageGrid tracks per-cell survey intensity in [0,1] over the same
// dimensions as its obstacle field. 1.0 means the cell was surveyed
// this tick-window; values fade toward 0 via Decay. Obstructed cells
// are never marked.
type CoverageGrid struct {
	width  int
	height int
	values []float64
	field  *ObstacleField // non-owning, read-only
}

// NewCoverageGrid creates a zeroed coverage grid over the given field.
func NewCoverageGrid(field *ObstacleField) *CoverageGrid {
	return &CoverageGrid{
		width:  field.Width(),
		height: field.Height(),
		values: make([]float64, field.Width()*field.Height()),
		field:  field,
	}
}

// Width returns the grid width in cells.
func (g *CoverageGrid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *CoverageGrid) Height() int { return g.height }

// MarkCovered sets a single cell to fully covered. Marking an
// obstructed or out-of-bounds cell is a no-op.
func (g *CoverageGrid) MarkCovered(col, row int) {
	if g.field.IsBlocked(col, row) {
		return
	}
	g.values[row*g.width+col] = 1.0
}

// MarkDisc marks every unobstructed cell whose center lies within
// radius of the continuous point (cx, cy). Only the bounding box of
// the disc is visited.
func (g *CoverageGrid) MarkDisc(cx, cy, radius float64) {
	minCol := maxInt(0, int(math.Floor(cx-radius)))
	maxCol := minInt(g.width-1, int(math.Ceil(cx+radius)))
	minRow := maxInt(0, int(math.Floor(cy-radius)))
	maxRow := minInt(g.height-1, int(math.Ceil(cy+radius)))

	rr := radius * radius
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			center := distanceSq(float64(col)+0.5, float64(row)+0.5, cx, cy)
			if center <= rr {
				g.MarkCovered(col, row)
			}
		}
	}
}

// MarkSquare marks the (2*radius+1)-sided square neighborhood around
// the given cell. Cells outside the grid or obstructed are skipped.
func (g *CoverageGrid) MarkSquare(col, row, radius int) {
	for r := row - radius; r <= row+radius; r++ {
		for c := col - radius; c <= col+radius; c++ {
			g.MarkCovered(c, r)
		}
	}
}

// Decay fades every cell by one tick. For DecayMultiplicative, amount
// is the per-tick factor in (0,1]; for DecayLinear, amount is the
// per-tick rate subtracted from each cell. Values stay in [0,1].
func (g *CoverageGrid) Decay(mode DecayMode, amount float64) {
	switch mode {
	case DecayMultiplicative:
		for i, v := range g.values {
			g.values[i] = clamp01(v * amount)
		}
	case DecayLinear:
		for i, v := range g.values {
			g.values[i] = clamp01(v - amount)
		}
	}
}

// CoveredCount returns the number of cells with value > threshold.
func (g *CoverageGrid) CoveredCount(threshold float64) int {
	n := 0
	for _, v := range g.values {
		if v > threshold {
			n++
		}
	}
	return n
}

// Clear resets every cell to zero.
func (g *CoverageGrid) Clear() {
	for i := range g.values {
		g.values[i] = 0
	}
}

// Values returns the underlying coverage slice in row-major order.
// The slice is shared with the grid and must be treated as read-only.
func (g *CoverageGrid) Values() []float64 { return g.values }
