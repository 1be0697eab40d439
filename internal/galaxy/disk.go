// Package galaxy samples initial conditions for a run. All randomness flows
// through an explicitly seeded *rand.Rand so runs are reproducible.
package galaxy

import (
	"math"
	"math/rand"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
)

// DiskParams describes a rotating disk of bodies around a central star.
type DiskParams struct {
	Bodies     int
	Radius     float64
	BodyMass   float64
	CenterMass float64
	G          float64
}

// Disk samples a disk of point masses with uniform surface density (radius
// drawn as R·√u) and tangential velocities for approximately circular orbits
// around the enclosed mass. The first particle is the central star.
func Disk(p DiskParams, rng *rand.Rand) []*body.Particle {
	return disk(p, geom.Vec2{}, geom.Vec2{}, rng)
}

// Collision places two half-populated disks a fixed separation apart on the
// x-axis, drifting toward each other at the given approach speed.
func Collision(p DiskParams, separation, approachSpeed float64, rng *rand.Rand) []*body.Particle {
	half := p
	half.Bodies = p.Bodies / 2

	left := disk(half, geom.Vec2{X: -separation / 2}, geom.Vec2{X: approachSpeed / 2}, rng)
	right := disk(half, geom.Vec2{X: separation / 2}, geom.Vec2{X: -approachSpeed / 2}, rng)

	return append(left, right...)
}

func disk(p DiskParams, center, drift geom.Vec2, rng *rand.Rand) []*body.Particle {
	particles := make([]*body.Particle, 0, p.Bodies)
	particles = append(particles, body.New(center, drift, p.CenterMass, true))

	for i := 1; i < p.Bodies; i++ {
		r := p.Radius * math.Sqrt(rng.Float64())
		angle := rng.Float64() * 2 * math.Pi

		pos := geom.Vec2{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		}

		// Circular orbit speed under the mass enclosed within r, assuming the
		// disk's own mass is spread uniformly.
		enclosed := p.CenterMass + p.BodyMass*float64(p.Bodies-1)*(r*r)/(p.Radius*p.Radius)
		speed := 0.0
		if r > 0 {
			speed = math.Sqrt(p.G * enclosed / r)
		}

		vel := geom.Vec2{
			X: drift.X - speed*math.Sin(angle),
			Y: drift.Y + speed*math.Cos(angle),
		}

		particles = append(particles, body.New(pos, vel, p.BodyMass, false))
	}

	return particles
}
