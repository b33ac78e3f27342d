package systems

import "math/rand"

// ObstacleField stores a static occupancy grid for the survey area.
// Cells are marked as blocked (true) or free (false). The field is
// immutable after generation; callers regenerate instead of mutating.
type ObstacleField struct {
	width  int
	height int
	cells  []bool // true = blocked, row-major
	free   []int  // flat indices of free cells, built once at generation
}

// Shape size bounds used by GenerateObstacles. Rectangles draw their
// width and height from [RectMinSize, RectMaxSize); circles draw their
// radius from [CircleMinRadius, CircleMaxRadius). Both are capped so
// the shape fits inside the grid.
const (
	RectMinSize     = 4
	RectMaxSize     = 30
	CircleMinRadius = 3
	CircleMaxRadius = 18
)

// GenerateObstacles creates an obstacle field of the given dimensions
// by stamping count random shapes into the grid. Each shape is a
// rectangle with probability 0.6, otherwise a circle. Shapes may
// overlap; overlapping regions are simply OR-ed together.
func GenerateObstacles(width, height, count int, rng *rand.Rand) *ObstacleField {
	f := &ObstacleField{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}

	for i := 0; i < count; i++ {
		if rng.Float64() < 0.6 {
			f.stampRect(rng)
		} else {
			f.stampCircle(rng)
		}
	}

	f.rebuildFreeList()
	return f
}

// NewObstacleField builds a field from an explicit occupancy mask in
// row-major order. Used for replaying snapshots and in tests; len(cells)
// must be width*height.
func NewObstacleField(width, height int, cells []bool) *ObstacleField {
	f := &ObstacleField{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
	copy(f.cells, cells)
	f.rebuildFreeList()
	return f
}

// stampRect marks a random axis-aligned rectangle as blocked.
func (f *ObstacleField) stampRect(rng *rand.Rand) {
	w := randRange(rng, RectMinSize, RectMaxSize)
	h := randRange(rng, RectMinSize, RectMaxSize)
	if w > f.width {
		w = f.width
	}
	if h > f.height {
		h = f.height
	}
	x := rng.Intn(f.width - w + 1)
	y := rng.Intn(f.height - h + 1)

	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			f.cells[row*f.width+col] = true
		}
	}
}

// stampCircle marks a random circle as blocked. The center is
// constrained so the full circle fits inside the grid.
func (f *ObstacleField) stampCircle(rng *rand.Rand) {
	maxR := minInt(f.width, f.height) / 2
	r := randRange(rng, CircleMinRadius, CircleMaxRadius)
	if r > maxR {
		r = maxR
	}
	if r < 1 {
		r = 1
	}
	cx := randRange(rng, r, f.width-r)
	cy := randRange(rng, r, f.height-r)

	for row := cy - r; row <= cy+r; row++ {
		for col := cx - r; col <= cx+r; col++ {
			if row < 0 || row >= f.height || col < 0 || col >= f.width {
				continue
			}
			dx := col - cx
			dy := row - cy
			if dx*dx+dy*dy <= r*r {
				f.cells[row*f.width+col] = true
			}
		}
	}
}

// randRange returns a uniform int in [lo, hi). Degenerate ranges
// collapse to lo.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// rebuildFreeList rebuilds the flat index list of free cells.
func (f *ObstacleField) rebuildFreeList() {
	f.free = f.free[:0]
	for i, blocked := range f.cells {
		if !blocked {
			f.free = append(f.free, i)
		}
	}
}

// Width returns the grid width in cells.
func (f *ObstacleField) Width() int { return f.width }

// Height returns the grid height in cells.
func (f *ObstacleField) Height() int { return f.height }

// IsBlocked reports whether the given cell is an obstacle.
// Out-of-bounds queries return true.
func (f *ObstacleField) IsBlocked(col, row int) bool {
	if col < 0 || col >= f.width || row < 0 || row >= f.height {
		return true
	}
	return f.cells[row*f.width+col]
}

// InBounds reports whether a continuous position lies inside the grid.
func (f *ObstacleField) InBounds(x, y float64) bool {
	return x >= 0 && x < float64(f.width) && y >= 0 && y < float64(f.height)
}

// FreeCellCount returns the number of unobstructed cells.
func (f *ObstacleField) FreeCellCount() int { return len(f.free) }

// sampleAttempts bounds rejection sampling in SampleFreePosition.
const sampleAttempts = 10000

// SampleFreePosition draws a uniform continuous position whose cell is
// free. After a bounded number of rejection-sampling attempts it falls
// back to picking uniformly from the free-cell list and returns that
// cell's center. ok is false only when the field has no free cell.
func (f *ObstacleField) SampleFreePosition(rng *rand.Rand) (x, y float64, ok bool) {
	for i := 0; i < sampleAttempts; i++ {
		x = rng.Float64() * float64(f.width)
		y = rng.Float64() * float64(f.height)
		if !f.IsBlocked(int(x), int(y)) {
			return x, y, true
		}
	}

	if len(f.free) == 0 {
		return 0, 0, false
	}
	idx := f.free[rng.Intn(len(f.free))]
	col := idx % f.width
	row := idx / f.width
	return float64(col) + 0.5, float64(row) + 0.5, true
}

// Data returns the underlying occupancy slice in row-major order.
// The slice is shared with the field and must be treated as read-only.
func (f *ObstacleField) Data() []bool { return f.cells }
