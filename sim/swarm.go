package sim

import (
	"fmt"
	"math/rand"

	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

// DescendRule selects how many rows a sweeper descends when it
// reverses at a lane boundary or obstacle.
type DescendRule uint8

const (
	// DescendHalfRadius descends max(1, radius/2) rows, overlapping
	// successive bands for gap-free coverage.
	DescendHalfRadius DescendRule = iota
	// DescendRadius descends max(1, radius) rows.
	DescendRadius
)

// ParseDescendRule maps a config string to a DescendRule.
func ParseDescendRule(s string) (DescendRule, error) {
	switch s {
	case "half_radius":
		return DescendHalfRadius, nil
	case "radius":
		return DescendRadius, nil
	default:
		return 0, fmt.Errorf("unknown descend rule %q", s)
	}
}

// Rows returns the descent band height for a given search radius.
func (r DescendRule) Rows(radius int) int {
	rows := radius
	if r == DescendHalfRadius {
		rows = radius / 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Swarm is an ordered collection of agents of one policy type writing
// into one shared coverage grid. Iteration order is insertion order;
// coverage marking is idempotent, so order never affects semantics.
type Swarm struct {
	policy Policy
	agents []Agent

	field *systems.ObstacleField
	cov   *systems.CoverageGrid
	rng   *rand.Rand // parent stream; per-drone streams are seeded from it

	speed        float64
	sensorRadius float64
	searchRadius int
	descend      DescendRule
}

// NewReactiveSwarm creates size drones at free positions, each with an
// independent random stream seeded from rng.
func NewReactiveSwarm(field *systems.ObstacleField, cov *systems.CoverageGrid, rng *rand.Rand, size int, speed, sensorRadius float64) (*Swarm, error) {
	s := &Swarm{
		policy:       PolicyReactive,
		field:        field,
		cov:          cov,
		rng:          rng,
		speed:        speed,
		sensorRadius: sensorRadius,
	}
	for i := 0; i < size; i++ {
		if err := s.addDrone(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewSweepSwarm partitions the grid into size lanes and creates one
// sweeper at the top of each lane.
func NewSweepSwarm(field *systems.ObstacleField, cov *systems.CoverageGrid, size int, speed float64, searchRadius int, descend DescendRule) *Swarm {
	s := &Swarm{
		policy:       PolicySweep,
		field:        field,
		cov:          cov,
		speed:        speed,
		searchRadius: searchRadius,
		descend:      descend,
	}
	s.buildSweepers(size)
	return s
}

// addDrone appends one freshly placed drone.
func (s *Swarm) addDrone() error {
	droneRNG := rand.New(rand.NewSource(s.rng.Int63()))
	d, err := NewDrone(s.field, s.cov, droneRNG, s.speed, s.sensorRadius)
	if err != nil {
		return err
	}
	s.agents = append(s.agents, d)
	return nil
}

// buildSweepers rebuilds the full sweeper list from a fresh partition.
func (s *Swarm) buildSweepers(size int) {
	speed := int(s.speed)
	if speed < 1 {
		speed = 1
	}
	lanes := systems.PartitionLanes(s.field.Width(), size)
	s.agents = make([]Agent, 0, size)
	for _, lane := range lanes {
		s.agents = append(s.agents, NewSweeper(s.field, s.cov, lane, speed, s.searchRadius, s.descend.Rows(s.searchRadius)))
	}
}

// Step advances every agent by one tick in insertion order.
func (s *Swarm) Step(dt float64) {
	for _, a := range s.agents {
		a.Step(dt)
	}
}

// Resize changes the swarm to n agents. The reactive variant adds or
// removes only the delta, preserving existing agents; the sweep
// variant repartitions the grid and rebuilds every agent, since lane
// assignments shift.
func (s *Swarm) Resize(n int) error {
	switch s.policy {
	case PolicyReactive:
		for len(s.agents) > n {
			s.agents = s.agents[:len(s.agents)-1]
		}
		for len(s.agents) < n {
			if err := s.addDrone(); err != nil {
				return err
			}
		}
	case PolicySweep:
		s.buildSweepers(n)
	}
	return nil
}

// SetSpeed updates every agent's speed.
func (s *Swarm) SetSpeed(speed float64) {
	s.speed = speed
	for _, a := range s.agents {
		a.SetSpeed(speed)
	}
}

// Policy returns the swarm's movement policy.
func (s *Swarm) Policy() Policy { return s.policy }

// Size returns the number of agents.
func (s *Swarm) Size() int { return len(s.agents) }

// States returns a snapshot of every agent in insertion order.
func (s *Swarm) States() []AgentState {
	states := make([]AgentState, len(s.agents))
	for i, a := range s.agents {
		states[i] = a.State()
	}
	return states
}

// Teleports returns the total local-trap escapes across all drones.
// Always zero for the sweep policy.
func (s *Swarm) Teleports() int {
	n := 0
	for _, a := range s.agents {
		if d, ok := a.(*Drone); ok {
			n += d.Teleports
		}
	}
	return n
}

// HaltedCount returns the number of halted sweepers. Always zero for
// the reactive policy.
func (s *Swarm) HaltedCount() int {
	n := 0
	for _, a := range s.agents {
		if sw, ok := a.(*Sweeper); ok && sw.Halted() {
			n++
		}
	}
	return n
}
