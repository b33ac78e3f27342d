package systems

// Lane is a contiguous vertical column range [Start, End) assigned
// exclusively to one sweeping agent.
type Lane struct {
	Start int
	End   int
}

// Width returns the lane width in columns.
func (l Lane) Width() int { return l.End - l.Start }

// Contains reports whether the column lies inside the lane.
func (l Lane) Contains(col int) bool { return col >= l.Start && col < l.End }

// PartitionLanes divides gridWidth columns into swarmSize contiguous,
// non-overlapping lanes. Lane width is gridWidth/swarmSize (integer
// division); the final lane absorbs the remainder so the union of all
// lanes is exactly [0, gridWidth). swarmSize must be >= 1; callers
// validate at configuration time.
func PartitionLanes(gridWidth, swarmSize int) []Lane {
	laneWidth := gridWidth / swarmSize
	lanes := make([]Lane, swarmSize)
	for i := 0; i < swarmSize; i++ {
		start := i * laneWidth
		end := start + laneWidth
		if i == swarmSize-1 {
			end = gridWidth
		}
		lanes[i] = Lane{Start: start, End: end}
	}
	return lanes
}
