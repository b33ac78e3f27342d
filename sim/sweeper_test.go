package sim

import (
	"testing"

	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

func emptyField(w, h int) *systems.ObstacleField {
	return systems.NewObstacleField(w, h, make([]bool, w*h))
}

func TestSweeperBoustrophedonFullCoverage(t *testing.T) {
	// One agent, zero-radius footprint, full-width lane: after
	// width*height ticks every cell has been visited exactly once, row
	// by row in alternating directions.
	const w, h = 10, 10
	field := emptyField(w, h)
	cov := systems.NewCoverageGrid(field)
	sw := NewSweeper(field, cov, systems.Lane{Start: 0, End: w}, 1, 0, 1)

	visited := make(map[[2]int]int)
	var order [][2]int
	for i := 0; i < w*h; i++ {
		visited[[2]int{sw.Col, sw.Row}]++
		order = append(order, [2]int{sw.Col, sw.Row})
		sw.Step(0.1)
	}

	if len(visited) != w*h {
		t.Fatalf("visited %d distinct cells, want %d", len(visited), w*h)
	}
	for cell, n := range visited {
		if n != 1 {
			t.Errorf("cell %v visited %d times, want 1", cell, n)
		}
	}
	if got := cov.CoveredCount(0.5); got != w*h {
		t.Errorf("covered count = %d, want %d", got, w*h)
	}

	// Row 0 runs left to right, row 1 right to left.
	if order[0] != [2]int{0, 0} || order[w-1] != [2]int{w - 1, 0} {
		t.Errorf("row 0 sweep = %v..%v, want (0,0)..(%d,0)", order[0], order[w-1], w-1)
	}
	if order[w] != [2]int{w - 1, 1} || order[2*w-1] != [2]int{0, 1} {
		t.Errorf("row 1 sweep = %v..%v, want (%d,1)..(0,1)", order[w], order[2*w-1], w-1)
	}

	if !sw.Halted() {
		t.Error("sweeper not halted after exhausting the grid")
	}
}

func TestSweeperStaysInLane(t *testing.T) {
	field := emptyField(20, 20)
	cov := systems.NewCoverageGrid(field)
	lane := systems.Lane{Start: 5, End: 10}
	sw := NewSweeper(field, cov, lane, 1, 1, 1)

	for i := 0; i < 500; i++ {
		sw.Step(0.1)
		if !lane.Contains(sw.Col) {
			t.Fatalf("tick %d: column %d outside lane [%d, %d)", i, sw.Col, lane.Start, lane.End)
		}
	}
}

func TestSweeperDescendsAtObstacle(t *testing.T) {
	// A wall in row 0 at column 5 forces an early reverse and descent.
	mask := make([]bool, 100)
	mask[0*10+5] = true
	field := systems.NewObstacleField(10, 10, mask)
	cov := systems.NewCoverageGrid(field)
	sw := NewSweeper(field, cov, systems.Lane{Start: 0, End: 10}, 1, 0, 2)

	for i := 0; i < 5; i++ {
		sw.Step(0.1)
	}
	// Fifth step sees the blocked cell ahead and descends instead.
	if sw.Col != 4 || sw.Row != 2 {
		t.Errorf("position = (%d, %d), want (4, 2)", sw.Col, sw.Row)
	}
	if sw.Halted() {
		t.Error("sweeper halted with free rows below")
	}
}

func TestSweeperHaltsWhenDescentBlocked(t *testing.T) {
	// Single-row grid: the first reverse has nowhere to descend.
	field := emptyField(10, 1)
	cov := systems.NewCoverageGrid(field)
	sw := NewSweeper(field, cov, systems.Lane{Start: 0, End: 10}, 1, 0, 1)

	for i := 0; i < 10; i++ {
		sw.Step(0.1)
	}
	if !sw.Halted() {
		t.Fatal("sweeper not halted at the bottom of a one-row grid")
	}

	// A halted sweeper holds position but keeps marking its footprint.
	col, row := sw.Col, sw.Row
	cov.Clear()
	sw.Step(0.1)
	if sw.Col != col || sw.Row != row {
		t.Errorf("halted sweeper moved to (%d, %d)", sw.Col, sw.Row)
	}
	if got := cov.Values()[row*10+col]; got != 1.0 {
		t.Errorf("halted sweeper footprint = %g, want 1.0", got)
	}
}

func TestSweeperMarksSquareFootprint(t *testing.T) {
	field := emptyField(10, 10)
	cov := systems.NewCoverageGrid(field)
	lane := systems.Lane{Start: 0, End: 10}
	sw := NewSweeper(field, cov, lane, 1, 1, 1)
	sw.Col, sw.Row = 5, 5

	sw.Step(0.1)
	for row := 4; row <= 6; row++ {
		for col := 4; col <= 6; col++ {
			if got := cov.Values()[row*10+col]; got != 1.0 {
				t.Errorf("footprint cell (%d,%d) = %g, want 1.0", col, row, got)
			}
		}
	}
	if got := cov.Values()[3*10+5]; got != 0 {
		t.Errorf("cell outside footprint = %g, want 0", got)
	}
}

func TestSweeperSetSpeed(t *testing.T) {
	field := emptyField(10, 10)
	cov := systems.NewCoverageGrid(field)
	sw := NewSweeper(field, cov, systems.Lane{Start: 0, End: 10}, 1, 0, 1)

	sw.SetSpeed(2.4)
	sw.Step(0.1)
	if sw.Col != 2 {
		t.Errorf("column after speed 2.4 step = %d, want 2", sw.Col)
	}

	// Speeds round down to a floor of one cell per tick.
	sw.SetSpeed(0.2)
	sw.Step(0.1)
	if sw.Col != 3 {
		t.Errorf("column after speed 0.2 step = %d, want 3", sw.Col)
	}
}

func TestDescendRuleRows(t *testing.T) {
	tests := []struct {
		rule   DescendRule
		radius int
		want   int
	}{
		{DescendHalfRadius, 4, 2},
		{DescendHalfRadius, 1, 1},
		{DescendHalfRadius, 0, 1},
		{DescendRadius, 3, 3},
		{DescendRadius, 0, 1},
	}
	for _, tt := range tests {
		if got := tt.rule.Rows(tt.radius); got != tt.want {
			t.Errorf("rule %v radius %d: rows = %d, want %d", tt.rule, tt.radius, got, tt.want)
		}
	}
}
