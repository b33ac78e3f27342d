package sim

import "fmt"

// Agent is one mobile survey unit. Exactly two implementations exist:
// the reactive random-walk Drone and the lane-sweeping Sweeper,
// selected at swarm-construction time.
type Agent interface {
	// Step advances the agent by one tick, marking coverage as it goes.
	Step(dt float64)
	// Position returns the agent's current position in grid units.
	Position() (x, y float64)
	// SetSpeed updates the agent's movement speed between ticks.
	SetSpeed(speed float64)
	// State returns a snapshot of the agent for the presentation layer.
	State() AgentState
}

// AgentState is a read-only snapshot of one agent. Heading is only
// meaningful for the reactive policy; Halted only for the sweep policy.
type AgentState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading,omitempty"`
	Halted  bool    `json:"halted,omitempty"`
}

// Policy selects the movement rule a swarm's agents follow.
type Policy uint8

const (
	// PolicyReactive is the stochastic random-walk obstacle avoider.
	PolicyReactive Policy = iota
	// PolicySweep is the deterministic lane-partitioned lawnmower.
	PolicySweep
)

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reactive":
		return PolicyReactive, nil
	case "sweep":
		return PolicySweep, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

// String returns the config spelling of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyReactive:
		return "reactive"
	case PolicySweep:
		return "sweep"
	default:
		return "unknown"
	}
}
