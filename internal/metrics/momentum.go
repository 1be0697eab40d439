package metrics

import (
	"math"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
)

// Momentum reports the magnitude of the system's total linear momentum at the
// latest observation.
type Momentum struct {
	latest float64
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(particles []*body.Particle, step int) {
	px, py := 0.0, 0.0
	for _, p := range particles {
		px += p.Mass * p.Vel.X
		py += p.Mass * p.Vel.Y
	}
	m.latest = math.Sqrt(px*px + py*py)
}

func (m *Momentum) Value() float64 { return m.latest }
func (m *Momentum) Reset()         { m.latest = 0 }

// AngularMomentum reports the system's total angular momentum about the
// origin at the latest observation.
type AngularMomentum struct {
	latest float64
}

func NewAngularMomentum() *AngularMomentum { return &AngularMomentum{} }

func (m *AngularMomentum) Name() string { return "angular_momentum" }

func (m *AngularMomentum) Observe(particles []*body.Particle, step int) {
	l := 0.0
	for _, p := range particles {
		l += p.Mass * (p.Pos.X*p.Vel.Y - p.Pos.Y*p.Vel.X)
	}
	m.latest = l
}

func (m *AngularMomentum) Value() float64 { return m.latest }
func (m *AngularMomentum) Reset()         { m.latest = 0 }
