package telemetry

import "github.com/anbu-05/InnovAct-Hackathon/sim"

// Collector tracks stats windows and turns engine snapshots into
// WindowStats rows at window boundaries.
type Collector struct {
	windowTicks int
	dt          float64

	windowStartTick int
	teleportsPrev   int
}

// NewCollector creates a collector flushing every windowSec simulated
// seconds. dt is the seconds-per-tick used for conversion.
func NewCollector(windowSec, dt float64) *Collector {
	ticks := int(windowSec / dt)
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{windowTicks: ticks, dt: dt}
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush reads the simulation and produces one WindowStats row,
// starting a new window. Teleports are reported per window; halted
// agents are a point-in-time count.
func (c *Collector) Flush(s *sim.Simulation) WindowStats {
	single := Report(s.SingleGrid(), s.Field())
	swarm := Report(s.SwarmGrid(), s.Field())

	teleports := s.Teleports()
	row := WindowStats{
		WindowEndTick: s.Tick(),
		SimTimeSec:    s.Time(),

		FreeCells: single.FreeCells,

		SingleCovered: single.CoveredCells,
		SinglePct:     single.PercentCovered,
		SingleMean:    single.MeanValue,

		SwarmSize:    s.Options().SwarmSize,
		SwarmCovered: swarm.CoveredCells,
		SwarmPct:     swarm.PercentCovered,
		SwarmMean:    swarm.MeanValue,

		Teleports:    teleports - c.teleportsPrev,
		HaltedAgents: s.HaltedAgents(),
	}

	c.windowStartTick = s.Tick()
	c.teleportsPrev = teleports
	return row
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int { return c.windowTicks }
