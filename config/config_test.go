package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/anbu-05/InnovAct-Hackathon/sim"
	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Width != 100 || cfg.Grid.Height != 100 {
		t.Errorf("grid = %dx%d, want 100x100", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Swarm.Policy != "reactive" || cfg.Swarm.Size != 5 {
		t.Errorf("swarm = %q/%d, want reactive/5", cfg.Swarm.Policy, cfg.Swarm.Size)
	}
	if cfg.Derived.Policy != sim.PolicyReactive {
		t.Errorf("derived policy = %v, want reactive", cfg.Derived.Policy)
	}
	if cfg.Derived.DecayMode != systems.DecayMultiplicative || cfg.Derived.DecayAmount != 0.995 {
		t.Errorf("derived decay = %v/%g, want multiplicative/0.995", cfg.Derived.DecayMode, cfg.Derived.DecayAmount)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMergesWithDefaults(t *testing.T) {
	path := writeConfig(t, `
grid:
  width: 60
swarm:
  policy: sweep
  size: 3
decay:
  mode: linear
  rate: 0.01
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Width != 60 {
		t.Errorf("width = %d, want 60", cfg.Grid.Width)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Grid.Height != 100 {
		t.Errorf("height = %d, want default 100", cfg.Grid.Height)
	}
	if cfg.Physics.DT != 0.1 {
		t.Errorf("dt = %g, want default 0.1", cfg.Physics.DT)
	}
	if cfg.Derived.Policy != sim.PolicySweep {
		t.Errorf("derived policy = %v, want sweep", cfg.Derived.Policy)
	}
	if cfg.Derived.DecayMode != systems.DecayLinear || cfg.Derived.DecayAmount != 0.01 {
		t.Errorf("derived decay = %v/%g, want linear/0.01", cfg.Derived.DecayMode, cfg.Derived.DecayAmount)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown policy", "swarm:\n  policy: warp\n"},
		{"unknown decay mode", "decay:\n  mode: quadratic\n"},
		{"unknown descend rule", "sweep:\n  descend_by: diagonal\n"},
		{"zero dt", "physics:\n  dt: 0\n"},
		{"zero swarm size", "swarm:\n  size: 0\n"},
		{"negative obstacles", "obstacles:\n  count: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			if _, err := Load(path); !errors.Is(err, sim.ErrInvalidConfiguration) {
				t.Errorf("Load: err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load on a missing file succeeded")
	}
}

func TestSimOptions(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.SimOptions(77)
	if opts.Seed != 77 {
		t.Errorf("seed = %d, want 77", opts.Seed)
	}
	if opts.Width != cfg.Grid.Width || opts.Height != cfg.Grid.Height {
		t.Errorf("dims = %dx%d, want %dx%d", opts.Width, opts.Height, cfg.Grid.Width, cfg.Grid.Height)
	}
	if opts.SensorRadius != cfg.Reactive.SensorRadius {
		t.Errorf("sensor radius = %g, want %g", opts.SensorRadius, cfg.Reactive.SensorRadius)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("options from defaults invalid: %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Swarm.Size = 9

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if reloaded.Swarm.Size != 9 {
		t.Errorf("swarm size = %d, want 9", reloaded.Swarm.Size)
	}
}
