// Package telemetry derives scalar coverage metrics from the engine
// and handles structured output. It only reads engine state; nothing
// here mutates the simulation.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

// CoverageThreshold is the value above which a cell counts as covered.
const CoverageThreshold = 0.5

// CoverageStats holds scalar metrics for one coverage grid.
type CoverageStats struct {
	FreeCells      int     `csv:"free_cells" json:"free_cells"`
	CoveredCells   int     `csv:"covered_cells" json:"covered_cells"`
	PercentCovered float64 `csv:"percent_covered" json:"percent_covered"`

	// Distribution of coverage values over free cells.
	MeanValue   float64 `csv:"mean_value" json:"mean_value"`
	StdDevValue float64 `csv:"stddev_value" json:"stddev_value"`
	MedianValue float64 `csv:"median_value" json:"median_value"`
}

// Report computes coverage statistics for one grid against the shared
// obstacle field. PercentCovered is 0 when no free cell exists.
func Report(cov *systems.CoverageGrid, field *systems.ObstacleField) CoverageStats {
	s := CoverageStats{
		FreeCells:    field.FreeCellCount(),
		CoveredCells: cov.CoveredCount(CoverageThreshold),
	}
	if s.FreeCells > 0 {
		s.PercentCovered = 100 * float64(s.CoveredCells) / float64(s.FreeCells)
	}

	values := freeCellValues(cov, field)
	if len(values) > 0 {
		s.MeanValue = stat.Mean(values, nil)
		if len(values) > 1 {
			s.StdDevValue = stat.StdDev(values, nil)
		}
		sort.Float64s(values)
		s.MedianValue = stat.Quantile(0.5, stat.Empirical, values, nil)
	}
	return s
}

// freeCellValues collects coverage values of unobstructed cells.
func freeCellValues(cov *systems.CoverageGrid, field *systems.ObstacleField) []float64 {
	data := cov.Values()
	mask := field.Data()
	values := make([]float64, 0, field.FreeCellCount())
	for i, v := range data {
		if !mask[i] {
			values = append(values, v)
		}
	}
	return values
}

// WindowStats is one telemetry row, flushed at the end of each stats
// window and written as CSV.
type WindowStats struct {
	WindowEndTick int     `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	FreeCells int `csv:"free_cells"`

	SingleCovered int     `csv:"single_covered"`
	SinglePct     float64 `csv:"single_pct"`
	SingleMean    float64 `csv:"single_mean"`

	SwarmSize    int     `csv:"swarm_size"`
	SwarmCovered int     `csv:"swarm_covered"`
	SwarmPct     float64 `csv:"swarm_pct"`
	SwarmMean    float64 `csv:"swarm_mean"`

	// Events during the window
	Teleports    int `csv:"teleports"`
	HaltedAgents int `csv:"halted_agents"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("free_cells", s.FreeCells),
		slog.Int("single_covered", s.SingleCovered),
		slog.Float64("single_pct", s.SinglePct),
		slog.Float64("single_mean", s.SingleMean),
		slog.Int("swarm_size", s.SwarmSize),
		slog.Int("swarm_covered", s.SwarmCovered),
		slog.Float64("swarm_pct", s.SwarmPct),
		slog.Float64("swarm_mean", s.SwarmMean),
		slog.Int("teleports", s.Teleports),
		slog.Int("halted_agents", s.HaltedAgents),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"free_cells", s.FreeCells,
		"single_covered", s.SingleCovered,
		"single_pct", s.SinglePct,
		"single_mean", s.SingleMean,
		"swarm_size", s.SwarmSize,
		"swarm_covered", s.SwarmCovered,
		"swarm_pct", s.SwarmPct,
		"swarm_mean", s.SwarmMean,
		"teleports", s.Teleports,
		"halted_agents", s.HaltedAgents,
	)
}
