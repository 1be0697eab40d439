package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/galaxy"
	"github.com/ckopec-dev/Computational-Astronomy/internal/sim"
)

const (
	DefaultBodies        = 1000
	DefaultRadius        = 100.0
	DefaultBodyMass      = 1.0
	DefaultCenterMass    = 5000.0
	DefaultWorldSize     = 1000.0
	DefaultTheta         = 0.5
	DefaultG             = 0.1
	DefaultDt            = 0.1
	DefaultSteps         = 1000
	DefaultSnapshotEvery = 10
)

type Config struct {
	Scenario      string         `yaml:"scenario"`
	Bodies        int            `yaml:"bodies"`
	Radius        float64        `yaml:"radius"`
	BodyMass      float64        `yaml:"body_mass"`
	CenterMass    float64        `yaml:"center_mass"`
	WorldSize     float64        `yaml:"world_size"`
	Theta         float64        `yaml:"theta"`
	G             float64        `yaml:"g"`
	Dt            float64        `yaml:"dt"`
	Steps         int            `yaml:"steps"`
	SnapshotEvery int            `yaml:"snapshot_every"`
	Seed          int64          `yaml:"seed"`
	Workers       int            `yaml:"workers"`
	Snapshot      SnapshotConfig  `yaml:"snapshot"`
	Collision     CollisionConfig `yaml:"collision"`
}

type SnapshotConfig struct {
	Dir    string  `yaml:"dir"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type CollisionConfig struct {
	Separation    float64 `yaml:"separation"`
	ApproachSpeed float64 `yaml:"approach_speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      "disk",
		Bodies:        DefaultBodies,
		Radius:        DefaultRadius,
		BodyMass:      DefaultBodyMass,
		CenterMass:    DefaultCenterMass,
		WorldSize:     DefaultWorldSize,
		Theta:         DefaultTheta,
		G:             DefaultG,
		Dt:            DefaultDt,
		Steps:         DefaultSteps,
		SnapshotEvery: DefaultSnapshotEvery,
		Snapshot: SnapshotConfig{
			Dir:    "frames",
			Width:  512,
			Height: 512,
			Scale:  0.5,
		},
		Collision: CollisionConfig{
			Separation:    250.0,
			ApproachSpeed: 2.0,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto unmarshals a config file over an existing base, such as a preset.
// Fields absent from the file keep the base's values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects invalid configuration before a run starts. The stepper
// re-checks its own subset; this covers the full surface.
func (c *Config) Validate() error {
	switch c.Scenario {
	case "disk", "collision", "binary":
	default:
		return fmt.Errorf("unknown scenario: %s", c.Scenario)
	}
	if c.Bodies <= 0 {
		return fmt.Errorf("bodies must be positive, got %d", c.Bodies)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %f", c.Radius)
	}
	if c.BodyMass <= 0 || c.CenterMass <= 0 {
		return fmt.Errorf("masses must be positive")
	}
	if c.G <= 0 {
		return fmt.Errorf("g must be positive, got %f", c.G)
	}
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.SnapshotEvery > 0 {
		if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
			return fmt.Errorf("snapshot frame size must be positive")
		}
		if c.Snapshot.Scale <= 0 {
			return fmt.Errorf("snapshot scale must be positive")
		}
	}
	return nil
}

// SimConfig extracts the parameters the stepper consumes.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Theta:         c.Theta,
		G:             c.G,
		Dt:            c.Dt,
		Steps:         c.Steps,
		WorldSize:     c.WorldSize,
		SnapshotEvery: c.SnapshotEvery,
		Workers:       c.Workers,
	}
}

// Particles samples the configured scenario with the given seed.
func (c *Config) Particles(seed int64) []*body.Particle {
	rng := rand.New(rand.NewSource(seed))
	params := galaxy.DiskParams{
		Bodies:     c.Bodies,
		Radius:     c.Radius,
		BodyMass:   c.BodyMass,
		CenterMass: c.CenterMass,
		G:          c.G,
	}

	switch c.Scenario {
	case "collision":
		return galaxy.Collision(params, c.Collision.Separation, c.Collision.ApproachSpeed, rng)
	case "binary":
		return galaxy.Binary(c.CenterMass, c.Collision.Separation, c.G)
	default:
		return galaxy.Disk(params, rng)
	}
}
