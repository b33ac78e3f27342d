package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anbu-05/InnovAct-Hackathon/sim"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a presentation-side export of the engine's observable
// state. The engine itself persists nothing; this file format belongs
// to the telemetry layer.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick    int     `json:"tick"`
	TimeSec float64 `json:"time_sec"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Policy string  `json:"policy"`
	Speed  float64 `json:"speed"`

	Obstacles      []bool    `json:"obstacles"`
	SingleCoverage []float64 `json:"single_coverage"`
	SwarmCoverage  []float64 `json:"swarm_coverage"`

	SingleAgents []sim.AgentState `json:"single_agents"`
	SwarmAgents  []sim.AgentState `json:"swarm_agents"`

	Stats StatsPair `json:"stats"`
}

// StatsPair holds the side-by-side coverage stats of both
// configurations at capture time.
type StatsPair struct {
	Single CoverageStats `json:"single"`
	Swarm  CoverageStats `json:"swarm"`
}

// Capture copies the engine's observable state into a Snapshot. The
// matrices are copied so later ticks cannot mutate the snapshot.
func Capture(s *sim.Simulation, seed int64) *Snapshot {
	opts := s.Options()

	obstacles := make([]bool, len(s.Obstacles()))
	copy(obstacles, s.Obstacles())
	single := make([]float64, len(s.SingleGrid().Values()))
	copy(single, s.SingleGrid().Values())
	swarm := make([]float64, len(s.SwarmGrid().Values()))
	copy(swarm, s.SwarmGrid().Values())

	return &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: seed,

		Tick:    s.Tick(),
		TimeSec: s.Time(),

		Width:  opts.Width,
		Height: opts.Height,

		Policy: opts.Policy.String(),
		Speed:  opts.Speed,

		Obstacles:      obstacles,
		SingleCoverage: single,
		SwarmCoverage:  swarm,

		SingleAgents: s.SingleAgents(),
		SwarmAgents:  s.SwarmAgents(),

		Stats: StatsPair{
			Single: Report(s.SingleGrid(), s.Field()),
			Swarm:  Report(s.SwarmGrid(), s.Field()),
		},
	}
}

// SaveSnapshot writes a snapshot to dir and returns the file path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
