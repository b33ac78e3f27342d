package sim

import (
	"fmt"
	"math/rand"

	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

// Options configures a Simulation.
type Options struct {
	Width  int
	Height int

	ObstacleCount int
	SwarmSize     int
	Speed         float64
	Policy        Policy

	// Reactive policy: sensor disc radius in grid units.
	SensorRadius float64

	// Sweep policy: square half-widths for the swarm and the single
	// comparison agent, plus the descent rule.
	SearchRadius       int
	SingleSearchRadius int
	Descend            DescendRule

	DecayMode   systems.DecayMode
	DecayAmount float64

	Seed int64
}

// Validate rejects invalid options wholesale; a failed configuration
// is never partially applied.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidConfiguration, o.Width, o.Height)
	}
	if o.ObstacleCount < 0 {
		return fmt.Errorf("%w: obstacle count %d", ErrInvalidConfiguration, o.ObstacleCount)
	}
	if o.SwarmSize <= 0 {
		return fmt.Errorf("%w: swarm size %d", ErrInvalidConfiguration, o.SwarmSize)
	}
	if o.Speed <= 0 {
		return fmt.Errorf("%w: speed %g", ErrInvalidConfiguration, o.Speed)
	}
	switch o.Policy {
	case PolicyReactive:
		if o.SensorRadius <= 0 {
			return fmt.Errorf("%w: sensor radius %g", ErrInvalidConfiguration, o.SensorRadius)
		}
	case PolicySweep:
		if o.SearchRadius < 0 || o.SingleSearchRadius < 0 {
			return fmt.Errorf("%w: search radius %d/%d", ErrInvalidConfiguration, o.SearchRadius, o.SingleSearchRadius)
		}
		if o.SwarmSize > o.Width {
			return fmt.Errorf("%w: swarm size %d exceeds grid width %d", ErrInvalidConfiguration, o.SwarmSize, o.Width)
		}
	}
	switch o.DecayMode {
	case systems.DecayMultiplicative:
		if o.DecayAmount <= 0 || o.DecayAmount > 1 {
			return fmt.Errorf("%w: decay factor %g", ErrInvalidConfiguration, o.DecayAmount)
		}
	case systems.DecayLinear:
		if o.DecayAmount < 0 {
			return fmt.Errorf("%w: decay rate %g", ErrInvalidConfiguration, o.DecayAmount)
		}
	}
	return nil
}

// ResetParams carries the optional overrides for Reset. Nil fields
// keep the current value.
type ResetParams struct {
	ObstacleCount *int
	SwarmSize     *int
	Speed         *float64
}

// Simulation owns one obstacle field shared by two coverage grids: one
// observed by a single agent, one by a swarm of the same policy. It
// advances all agents and applies decay once per tick. All state is
// explicit and owned; there are no process-wide singletons.
type Simulation struct {
	opts Options
	rng  *rand.Rand

	field     *systems.ObstacleField
	singleCov *systems.CoverageGrid
	swarmCov  *systems.CoverageGrid

	single *Swarm // size 1, for side-by-side comparison
	swarm  *Swarm

	tick int
	time float64
}

// New creates a simulation from validated options. Fails with
// ErrNoFreeSpace when the generated obstacle layout covers the whole
// grid.
func New(opts Options) (*Simulation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild regenerates the field, grids, and agents from s.opts into
// temporaries and commits them only when everything succeeded.
func (s *Simulation) rebuild() error {
	field := systems.GenerateObstacles(s.opts.Width, s.opts.Height, s.opts.ObstacleCount, s.rng)
	if field.FreeCellCount() == 0 {
		return fmt.Errorf("generating %d obstacles: %w", s.opts.ObstacleCount, ErrNoFreeSpace)
	}

	singleCov := systems.NewCoverageGrid(field)
	swarmCov := systems.NewCoverageGrid(field)

	var single, swarm *Swarm
	var err error
	switch s.opts.Policy {
	case PolicyReactive:
		single, err = NewReactiveSwarm(field, singleCov, s.rng, 1, s.opts.Speed, s.opts.SensorRadius)
		if err != nil {
			return err
		}
		swarm, err = NewReactiveSwarm(field, swarmCov, s.rng, s.opts.SwarmSize, s.opts.Speed, s.opts.SensorRadius)
		if err != nil {
			return err
		}
	case PolicySweep:
		single = NewSweepSwarm(field, singleCov, 1, s.opts.Speed, s.opts.SingleSearchRadius, s.opts.Descend)
		swarm = NewSweepSwarm(field, swarmCov, s.opts.SwarmSize, s.opts.Speed, s.opts.SearchRadius, s.opts.Descend)
	}

	s.field = field
	s.singleCov = singleCov
	s.swarmCov = swarmCov
	s.single = single
	s.swarm = swarm
	s.tick = 0
	s.time = 0
	return nil
}

// Step advances the simulation by one tick: every agent steps in
// insertion order, then one decay pass runs over both coverage grids,
// then the time accumulator advances by dt.
func (s *Simulation) Step(dt float64) {
	s.single.Step(dt)
	s.swarm.Step(dt)
	s.singleCov.Decay(s.opts.DecayMode, s.opts.DecayAmount)
	s.swarmCov.Decay(s.opts.DecayMode, s.opts.DecayAmount)
	s.tick++
	s.time += dt
}

// Reset regenerates the obstacle field with a new random layout,
// clears all coverage, and recreates every agent at fresh free
// positions. Optional overrides apply atomically: on error the
// previous state is kept untouched.
func (s *Simulation) Reset(p ResetParams) error {
	next := s.opts
	if p.ObstacleCount != nil {
		next.ObstacleCount = *p.ObstacleCount
	}
	if p.SwarmSize != nil {
		next.SwarmSize = *p.SwarmSize
	}
	if p.Speed != nil {
		next.Speed = *p.Speed
	}
	if err := next.Validate(); err != nil {
		return err
	}

	prev := s.opts
	s.opts = next
	if err := s.rebuild(); err != nil {
		s.opts = prev
		return err
	}
	return nil
}

// ResizeSwarm changes the swarm size between ticks. The reactive
// variant preserves already-placed agents and only adds or removes the
// delta; the sweep variant repartitions and rebuilds its agents.
func (s *Simulation) ResizeSwarm(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: swarm size %d", ErrInvalidConfiguration, n)
	}
	if s.opts.Policy == PolicySweep && n > s.opts.Width {
		return fmt.Errorf("%w: swarm size %d exceeds grid width %d", ErrInvalidConfiguration, n, s.opts.Width)
	}
	if err := s.swarm.Resize(n); err != nil {
		return err
	}
	s.opts.SwarmSize = n
	return nil
}

// SetSpeed updates every agent's speed between ticks.
func (s *Simulation) SetSpeed(speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("%w: speed %g", ErrInvalidConfiguration, speed)
	}
	s.opts.Speed = speed
	s.single.SetSpeed(speed)
	s.swarm.SetSpeed(speed)
	return nil
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int { return s.tick }

// Time returns the elapsed simulated seconds.
func (s *Simulation) Time() float64 { return s.time }

// Options returns the currently applied options.
func (s *Simulation) Options() Options { return s.opts }

// Field returns the shared obstacle field (read-only).
func (s *Simulation) Field() *systems.ObstacleField { return s.field }

// SingleGrid returns the single-agent coverage grid (read-only).
func (s *Simulation) SingleGrid() *systems.CoverageGrid { return s.singleCov }

// SwarmGrid returns the swarm coverage grid (read-only).
func (s *Simulation) SwarmGrid() *systems.CoverageGrid { return s.swarmCov }

// Obstacles returns the obstacle matrix in row-major order. Read-only.
func (s *Simulation) Obstacles() []bool { return s.field.Data() }

// SingleAgents returns snapshots of the single-agent configuration.
func (s *Simulation) SingleAgents() []AgentState { return s.single.States() }

// SwarmAgents returns snapshots of the swarm configuration.
func (s *Simulation) SwarmAgents() []AgentState { return s.swarm.States() }

// Teleports returns total local-trap escapes across both configurations.
func (s *Simulation) Teleports() int {
	return s.single.Teleports() + s.swarm.Teleports()
}

// HaltedAgents returns the number of halted sweepers across both
// configurations.
func (s *Simulation) HaltedAgents() int {
	return s.single.HaltedCount() + s.swarm.HaltedCount()
}
