package galaxy

import (
	"math"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
)

// Binary places two equal masses in a mutual circular orbit about the origin,
// separated by the given distance along the x-axis.
func Binary(mass, separation, g float64) []*body.Particle {
	// v²/(d/2) = G·m/d² for a circular orbit about the barycenter.
	speed := math.Sqrt(g * mass / (2 * separation))

	return []*body.Particle{
		body.New(geom.Vec2{X: -separation / 2}, geom.Vec2{Y: -speed}, mass, true),
		body.New(geom.Vec2{X: separation / 2}, geom.Vec2{Y: speed}, mass, true),
	}
}
