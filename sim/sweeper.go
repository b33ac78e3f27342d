package sim

import (
	"math"

	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

// Sweeper is the deterministic lawnmower agent. It is confined to its
// lane, sweeps columns in alternating directions, and descends a fixed
// number of rows when it hits the lane boundary or an obstacle. A
// sweeper that cannot descend halts for the remainder of the run.
type Sweeper struct {
	Col, Row int

	lane        systems.Lane
	dir         int // +1 right, -1 left
	speed       int // cells per tick
	radius      int // square half-width marked per tick
	descendRows int
	halted      bool

	field *systems.ObstacleField
	cov   *systems.CoverageGrid
}

// NewSweeper creates a sweeper at the top-left corner of its lane,
// moving right.
func NewSweeper(field *systems.ObstacleField, cov *systems.CoverageGrid, lane systems.Lane, speed, radius, descendRows int) *Sweeper {
	return &Sweeper{
		Col:         lane.Start,
		Row:         0,
		lane:        lane,
		dir:         1,
		speed:       speed,
		radius:      radius,
		descendRows: descendRows,
		field:       field,
		cov:         cov,
	}
}

// Step marks the square neighborhood of the current cell, then tries
// to advance within the lane. dt is ignored; the sweep policy is
// tick-based.
func (s *Sweeper) Step(dt float64) {
	s.cov.MarkSquare(s.Col, s.Row, s.radius)
	if s.halted {
		return
	}

	next := s.Col + s.dir*s.speed
	if s.lane.Contains(next) && !s.field.IsBlocked(next, s.Row) {
		s.Col = next
		return
	}

	// Lane boundary or obstacle ahead: reverse and move down a band.
	nextRow := s.Row + s.descendRows
	if nextRow < s.field.Height() && !s.field.IsBlocked(s.Col, nextRow) {
		s.Row = nextRow
		s.dir = -s.dir
		return
	}

	s.halted = true
}

// Position returns the sweeper's cell position.
func (s *Sweeper) Position() (float64, float64) {
	return float64(s.Col), float64(s.Row)
}

// SetSpeed updates the sweeper's speed in cells per tick (minimum 1).
func (s *Sweeper) SetSpeed(speed float64) {
	v := int(math.Round(speed))
	if v < 1 {
		v = 1
	}
	s.speed = v
}

// Halted reports whether the sweeper has stopped for the run.
func (s *Sweeper) Halted() bool { return s.halted }

// State returns a snapshot of the sweeper.
func (s *Sweeper) State() AgentState {
	return AgentState{X: float64(s.Col), Y: float64(s.Row), Halted: s.halted}
}
