// Package body defines the particle record shared by the tree, the stepper
// and the initial-condition samplers.
package body

import "github.com/ckopec-dev/Computational-Astronomy/internal/geom"

// Particle is a point mass. Its velocity and position are updated in place
// every step; mass and the Star flag are fixed at creation. Particles are
// owned by the simulation's particle list and never destroyed during a run.
type Particle struct {
	Pos  geom.Vec2
	Vel  geom.Vec2
	Mass float64
	Star bool
}

func New(pos, vel geom.Vec2, mass float64, star bool) *Particle {
	return &Particle{Pos: pos, Vel: vel, Mass: mass, Star: star}
}

// TotalMass sums the masses of all particles in the list.
func TotalMass(particles []*Particle) float64 {
	total := 0.0
	for _, p := range particles {
		total += p.Mass
	}
	return total
}

// Centroid returns the mass-weighted mean position of the particles, or the
// zero vector for an empty or massless list.
func Centroid(particles []*Particle) geom.Vec2 {
	var weighted geom.Vec2
	total := 0.0
	for _, p := range particles {
		weighted = weighted.Add(p.Pos.Scale(p.Mass))
		total += p.Mass
	}
	if total == 0 {
		return geom.Vec2{}
	}
	return weighted.Scale(1 / total)
}
