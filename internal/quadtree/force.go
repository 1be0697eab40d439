package quadtree

import (
	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
)

// Softening is added to every separation before inverting it, so zero
// separation never produces a singular force or a zero-length normalization.
const Softening = 1e-9

// Force approximates the gravitational acceleration on p from everything in
// the subtree rooted at n, using the multipole acceptance criterion: a
// subtree whose size/distance ratio is below theta is treated as a single
// point mass at its center of mass. theta = 0 degenerates to the exact
// pairwise sum. The returned vector is per unit mass of p, with g already
// applied.
func (n *Node) Force(p *body.Particle, theta, g float64) geom.Vec2 {
	if n.mass == 0 {
		return geom.Vec2{}
	}
	if n.state == Leaf && n.particle == p {
		return geom.Vec2{}
	}

	dir := n.com.Sub(p.Pos)
	dist := dir.Norm() + Softening

	if n.state != Internal || n.region.Size/dist < theta {
		return dir.Scale(g * n.mass / (dist * dist * dist))
	}

	var sum geom.Vec2
	for _, c := range n.children {
		sum = sum.Add(c.Force(p, theta, g))
	}
	return sum
}

// BruteForce is the exact O(n²) pairwise evaluation, with the same softening
// as the tree walk. It backs the theta=0 regression tests and the bench
// command.
func BruteForce(particles []*body.Particle, p *body.Particle, g float64) geom.Vec2 {
	var sum geom.Vec2
	for _, other := range particles {
		if other == p {
			continue
		}
		dir := other.Pos.Sub(p.Pos)
		dist := dir.Norm() + Softening
		sum = sum.Add(dir.Scale(g * other.Mass / (dist * dist * dist)))
	}
	return sum
}
