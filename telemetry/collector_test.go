package telemetry

import (
	"testing"

	"github.com/anbu-05/InnovAct-Hackathon/sim"
	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

func testSim(t *testing.T) *sim.Simulation {
	t.Helper()
	s, err := sim.New(sim.Options{
		Width:              40,
		Height:             40,
		ObstacleCount:      3,
		SwarmSize:          4,
		Speed:              1.0,
		Policy:             sim.PolicySweep,
		SearchRadius:       1,
		SingleSearchRadius: 3,
		Descend:            sim.DescendHalfRadius,
		DecayMode:          systems.DecayLinear,
		DecayAmount:        0.02,
		Seed:               42,
	})
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	return s
}

func TestCollectorWindowTicks(t *testing.T) {
	tests := []struct {
		windowSec float64
		dt        float64
		want      int
	}{
		{5.0, 0.1, 50},
		{1.0, 0.1, 10},
		{0.05, 0.1, 1}, // window shorter than a tick collapses to one tick
	}
	for _, tt := range tests {
		c := NewCollector(tt.windowSec, tt.dt)
		if got := c.WindowTicks(); got != tt.want {
			t.Errorf("NewCollector(%g, %g): ticks = %d, want %d", tt.windowSec, tt.dt, got, tt.want)
		}
	}
}

func TestCollectorFlushCadence(t *testing.T) {
	s := testSim(t)
	c := NewCollector(1.0, 0.1) // 10 ticks per window

	flushes := 0
	for i := 0; i < 35; i++ {
		s.Step(0.1)
		if c.ShouldFlush(s.Tick()) {
			row := c.Flush(s)
			flushes++
			if row.WindowEndTick != s.Tick() {
				t.Errorf("window end = %d, want %d", row.WindowEndTick, s.Tick())
			}
		}
	}
	if flushes != 3 {
		t.Errorf("flushes = %d over 35 ticks, want 3", flushes)
	}
}

func TestCollectorRow(t *testing.T) {
	s := testSim(t)
	c := NewCollector(1.0, 0.1)

	for i := 0; i < 10; i++ {
		s.Step(0.1)
	}
	row := c.Flush(s)

	if row.WindowEndTick != 10 {
		t.Errorf("window end = %d, want 10", row.WindowEndTick)
	}
	if row.SwarmSize != 4 {
		t.Errorf("swarm size = %d, want 4", row.SwarmSize)
	}
	if row.FreeCells <= 0 {
		t.Errorf("free cells = %d, want > 0", row.FreeCells)
	}
	if row.SwarmCovered <= 0 {
		t.Error("swarm covered = 0 after 10 sweep ticks")
	}
	if row.Teleports != 0 {
		t.Errorf("teleports = %d for sweep policy, want 0", row.Teleports)
	}
}
