package sim

import (
	"fmt"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
)

// Observer is handed the particle list on the snapshot cadence. The list is
// consistent (all of the step's integration writes applied) whenever OnStep
// runs. Errors are collected in the Result, not fatal to the run.
type Observer interface {
	OnStep(particles []*body.Particle, step int) error
}

// Metric accumulates a diagnostic over a run.
type Metric interface {
	Name() string
	Observe(particles []*body.Particle, step int)
	Value() float64
	Reset()
}

// Config holds the per-run parameters consumed by the Stepper.
type Config struct {
	// Theta is the multipole acceptance threshold; 0 forces exact pairwise
	// evaluation.
	Theta float64
	// G is the gravitational constant.
	G float64
	// Dt is the fixed integration time step.
	Dt float64
	// Steps is the total number of steps to run.
	Steps int
	// WorldSize is the side length of the root region, centered on the
	// origin. Particles that drift outside are dropped from the tree.
	WorldSize float64
	// SnapshotEvery invokes observers and metrics every Nth step; 0 disables
	// them.
	SnapshotEvery int
	// Workers bounds the force-evaluation fan-out; 0 means GOMAXPROCS.
	Workers int
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.WorldSize <= 0 {
		return fmt.Errorf("world size must be positive, got %f", c.WorldSize)
	}
	if c.Theta < 0 {
		return fmt.Errorf("theta must be non-negative, got %f", c.Theta)
	}
	if c.SnapshotEvery < 0 {
		return fmt.Errorf("snapshot cadence must be non-negative, got %d", c.SnapshotEvery)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// Result reports what a run actually did.
type Result struct {
	StepsTaken int
	Metrics    map[string]float64
	// Errors holds observer failures (snapshot I/O and the like); the run
	// continues past them.
	Errors []error
}
