package systems

import "testing"

func TestPartitionLanes(t *testing.T) {
	tests := []struct {
		name      string
		gridWidth int
		swarmSize int
		want      []Lane
	}{
		{"even split", 10, 2, []Lane{{0, 5}, {5, 10}}},
		{"single lane", 10, 1, []Lane{{0, 10}}},
		{"remainder to last", 10, 3, []Lane{{0, 3}, {3, 6}, {6, 10}}},
		{"one column each", 4, 4, []Lane{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartitionLanes(tt.gridWidth, tt.swarmSize)
			if len(got) != len(tt.want) {
				t.Fatalf("lane count = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("lane %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPartitionLanesExactCover(t *testing.T) {
	// Every column belongs to exactly one lane, for every swarm size
	// up to one agent per column.
	const gridWidth = 37
	for size := 1; size <= gridWidth; size++ {
		lanes := PartitionLanes(gridWidth, size)
		for col := 0; col < gridWidth; col++ {
			owners := 0
			for _, l := range lanes {
				if l.Contains(col) {
					owners++
				}
			}
			if owners != 1 {
				t.Fatalf("size=%d: column %d owned by %d lanes, want 1", size, col, owners)
			}
		}
		if lanes[0].Start != 0 || lanes[len(lanes)-1].End != gridWidth {
			t.Fatalf("size=%d: lanes span [%d, %d), want [0, %d)",
				size, lanes[0].Start, lanes[len(lanes)-1].End, gridWidth)
		}
	}
}

func TestLaneWidth(t *testing.T) {
	l := Lane{Start: 3, End: 8}
	if l.Width() != 5 {
		t.Errorf("width = %d, want 5", l.Width())
	}
	if l.Contains(2) || !l.Contains(3) || !l.Contains(7) || l.Contains(8) {
		t.Error("Contains does not respect the half-open interval")
	}
}
