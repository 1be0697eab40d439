// Package metrics provides run diagnostics observed on the snapshot cadence.
package metrics

import (
	"math"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/quadtree"
)

// TotalEnergy is the kinetic plus softened pairwise potential energy of the
// system. The pairwise sum is O(n²), which is why metrics run on the snapshot
// cadence rather than every step.
func TotalEnergy(particles []*body.Particle, g float64) float64 {
	ke := 0.0
	pe := 0.0
	eps := quadtree.Softening

	for i, p := range particles {
		ke += 0.5 * p.Mass * (p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y)

		for _, q := range particles[i+1:] {
			d := q.Pos.Sub(p.Pos)
			r := math.Sqrt(d.X*d.X+d.Y*d.Y) + eps
			pe -= g * p.Mass * q.Mass / r
		}
	}

	return ke + pe
}

// EnergyDrift tracks the relative deviation of total energy from its first
// observation. History keeps every observed energy for post-run plotting.
type EnergyDrift struct {
	g        float64
	initial  float64
	maxDrift float64
	samples  int
	history  []float64
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{g: g}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(particles []*body.Particle, step int) {
	energy := TotalEnergy(particles, e.g)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	e.history = append(e.history, energy)

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) History() []float64 { return e.history }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
	e.history = nil
}
