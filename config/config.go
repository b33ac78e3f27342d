// Package config provides configuration loading and access for the
// survey simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anbu-05/InnovAct-Hackathon/sim"
	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Reactive  ReactiveConfig  `yaml:"reactive"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Decay     DecayConfig     `yaml:"decay"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds survey grid dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ObstaclesConfig holds obstacle generation parameters.
type ObstaclesConfig struct {
	Count int `yaml:"count"`
}

// SwarmConfig selects the movement policy and swarm size.
type SwarmConfig struct {
	Policy string `yaml:"policy"` // reactive | sweep
	Size   int    `yaml:"size"`
}

// PhysicsConfig holds tick timing and agent speed.
type PhysicsConfig struct {
	DT    float64 `yaml:"dt"`    // simulated seconds per tick
	Speed float64 `yaml:"speed"` // grid units per second (cells per tick for sweep)
}

// ReactiveConfig holds reactive-policy parameters.
type ReactiveConfig struct {
	SensorRadius float64 `yaml:"sensor_radius"`
}

// SweepConfig holds lawnmower-policy parameters. SingleRadius applies
// to the single comparison agent, SearchRadius to the swarm agents.
type SweepConfig struct {
	SearchRadius int    `yaml:"search_radius"`
	SingleRadius int    `yaml:"single_radius"`
	DescendBy    string `yaml:"descend_by"` // half_radius | radius
}

// DecayConfig selects the coverage fade semantics. Factor is used in
// multiplicative mode, Rate in linear mode.
type DecayConfig struct {
	Mode   string  `yaml:"mode"` // multiplicative | linear
	Factor float64 `yaml:"factor"`
	Rate   float64 `yaml:"rate"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // simulated seconds per stats row
}

// DerivedConfig holds typed values parsed from the loaded config.
type DerivedConfig struct {
	Policy      sim.Policy
	Descend     sim.DescendRule
	DecayMode   systems.DecayMode
	DecayAmount float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults, and rejects invalid configurations wholesale. If path is
// empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.SimOptions(0).Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived parses the string-typed fields into engine types.
func (c *Config) computeDerived() error {
	policy, err := sim.ParsePolicy(c.Swarm.Policy)
	if err != nil {
		return fmt.Errorf("%w: %v", sim.ErrInvalidConfiguration, err)
	}
	descend, err := sim.ParseDescendRule(c.Sweep.DescendBy)
	if err != nil {
		return fmt.Errorf("%w: %v", sim.ErrInvalidConfiguration, err)
	}
	mode, err := systems.ParseDecayMode(c.Decay.Mode)
	if err != nil {
		return fmt.Errorf("%w: %v", sim.ErrInvalidConfiguration, err)
	}

	c.Derived.Policy = policy
	c.Derived.Descend = descend
	c.Derived.DecayMode = mode
	c.Derived.DecayAmount = c.Decay.Factor
	if mode == systems.DecayLinear {
		c.Derived.DecayAmount = c.Decay.Rate
	}

	if c.Physics.DT <= 0 {
		return fmt.Errorf("%w: dt %g", sim.ErrInvalidConfiguration, c.Physics.DT)
	}
	return nil
}

// SimOptions maps the configuration to engine options with the given
// RNG seed.
func (c *Config) SimOptions(seed int64) sim.Options {
	return sim.Options{
		Width:  c.Grid.Width,
		Height: c.Grid.Height,

		ObstacleCount: c.Obstacles.Count,
		SwarmSize:     c.Swarm.Size,
		Speed:         c.Physics.Speed,
		Policy:        c.Derived.Policy,

		SensorRadius: c.Reactive.SensorRadius,

		SearchRadius:       c.Sweep.SearchRadius,
		SingleSearchRadius: c.Sweep.SingleRadius,
		Descend:            c.Derived.Descend,

		DecayMode:   c.Derived.DecayMode,
		DecayAmount: c.Derived.DecayAmount,

		Seed: seed,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
