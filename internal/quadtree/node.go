// Package quadtree implements the Barnes-Hut spatial decomposition: a
// quadtree over a square region whose nodes aggregate the mass and center of
// mass of everything beneath them, and a force evaluator that approximates
// distant subtrees as single point masses.
package quadtree

import (
	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
)

// State is the structural state of a node. A node is exactly one of: empty,
// a leaf holding one particle, or an internal node with four children.
type State int

const (
	Empty State = iota
	Leaf
	Internal
)

// maxDepth bounds subdivision. Particles closer together than the smallest
// cell can separate, including exact position coincidence, stop splitting
// there and accumulate into that leaf's aggregate instead.
const maxDepth = 64

// Node is one cell of the quadtree. It owns its four children exclusively;
// the particle reference held in leaf state is non-owning.
type Node struct {
	region   geom.Region
	state    State
	particle *body.Particle
	children [4]*Node
	mass     float64
	com      geom.Vec2
}

func NewNode(region geom.Region) *Node {
	return &Node{region: region}
}

// Build constructs a fully aggregated tree for one step by inserting the
// particles in list order. Particles outside the region are dropped.
func Build(region geom.Region, particles []*body.Particle) *Node {
	root := NewNode(region)
	for _, p := range particles {
		root.Insert(p)
	}
	return root
}

func (n *Node) Region() geom.Region { return n.region }
func (n *Node) State() State        { return n.state }

// Mass is the total mass of all particles inserted into this subtree.
func (n *Node) Mass() float64 { return n.mass }

// CenterOfMass is meaningful only when Mass() > 0.
func (n *Node) CenterOfMass() geom.Vec2 { return n.com }

// Child returns the i-th child (SW, SE, NW, NE), or nil for non-internal
// nodes.
func (n *Node) Child(i int) *Node {
	if n.state != Internal {
		return nil
	}
	return n.children[i]
}

// Insert adds p to the subtree rooted at n. A particle whose position lies
// outside n's region is silently dropped and leaves every aggregate
// untouched.
func (n *Node) Insert(p *body.Particle) {
	if !n.region.Contains(p.Pos) {
		return
	}
	n.insert(p, 0)
}

// insert descends without re-checking containment so a particle clamped by
// childFor is still stored rather than dropped partway down.
func (n *Node) insert(p *body.Particle, depth int) {
	switch n.state {
	case Empty:
		n.particle = p
		n.state = Leaf
		n.mass = p.Mass
		n.com = p.Pos
		return
	case Leaf:
		if depth >= maxDepth {
			n.accumulate(p)
			return
		}
		n.subdivide(depth)
	}

	n.childFor(p.Pos).insert(p, depth+1)
	n.accumulate(p)
}

// accumulate folds p into the node's aggregates: mass-weighted running
// average using the mass before this insertion.
func (n *Node) accumulate(p *body.Particle) {
	total := n.mass + p.Mass
	n.com = n.com.Scale(n.mass).Add(p.Pos.Scale(p.Mass)).Scale(1 / total)
	n.mass = total
}

// subdivide splits a leaf into four equal quadrants and pushes the held
// particle down into the matching child. The node's own aggregates already
// account for that particle and are left alone.
func (n *Node) subdivide(depth int) {
	for i := range n.children {
		n.children[i] = NewNode(n.region.Quadrant(i))
	}
	n.state = Internal

	held := n.particle
	n.particle = nil
	n.childFor(held.Pos).insert(held, depth+1)
}

// childFor picks the child whose region contains pos, testing quadrants in a
// fixed SW, SE, NW, NE order so a particle on an interior boundary lands in
// exactly one child. If rounding at the parent's edge makes every containment
// test fail, the particle is clamped to the child with the nearest center
// rather than dropped, keeping aggregates consistent with what was inserted.
func (n *Node) childFor(pos geom.Vec2) *Node {
	for _, c := range n.children {
		if c.region.Contains(pos) {
			return c
		}
	}

	nearest := n.children[0]
	best := distSq(nearest.region.Center, pos)
	for _, c := range n.children[1:] {
		if d := distSq(c.region.Center, pos); d < best {
			nearest, best = c, d
		}
	}
	return nearest
}

func distSq(a, b geom.Vec2) float64 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}
