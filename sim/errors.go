package sim

import "errors"

// Error kinds surfaced by the engine. Blocked moves, lane-boundary
// hits, and local traps are recovered internally by the movement
// policies and never surface as errors.
var (
	// ErrNoFreeSpace means obstacle density left no placeable cell.
	// Fatal for the current reset or placement call; the caller can
	// retry with fewer obstacles.
	ErrNoFreeSpace = errors.New("no free space for agent placement")

	// ErrInvalidConfiguration means a parameter was rejected at
	// configuration time (non-positive dimensions, swarm size, speed,
	// or radius). Invalid configurations are never partially applied.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
