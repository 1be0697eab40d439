package quadtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
)

func testRegion() geom.Region {
	return geom.NewRegion(geom.Vec2{}, 200)
}

func randomParticles(n int, seed int64) []*body.Particle {
	rng := rand.New(rand.NewSource(seed))
	particles := make([]*body.Particle, n)
	for i := range particles {
		particles[i] = body.New(
			geom.Vec2{X: rng.Float64()*180 - 90, Y: rng.Float64()*180 - 90},
			geom.Vec2{},
			rng.Float64()*9+1,
			false,
		)
	}
	return particles
}

// countParticles walks the tree counting leaf-held particles.
func countParticles(n *Node) int {
	switch n.State() {
	case Leaf:
		return 1
	case Internal:
		total := 0
		for i := 0; i < 4; i++ {
			total += countParticles(n.Child(i))
		}
		return total
	}
	return 0
}

func TestInsert_SingleParticle(t *testing.T) {
	root := NewNode(testRegion())
	p := body.New(geom.Vec2{X: 3, Y: -7}, geom.Vec2{}, 5, false)

	root.Insert(p)

	assert.Equal(t, Leaf, root.State())
	assert.Equal(t, 5.0, root.Mass())
	assert.Equal(t, p.Pos, root.CenterOfMass())
	assert.Nil(t, root.Child(0))
}

func TestInsert_MassConservation(t *testing.T) {
	particles := randomParticles(500, 1)
	root := Build(testRegion(), particles)

	assert.InDelta(t, body.TotalMass(particles), root.Mass(), 1e-9)

	centroid := body.Centroid(particles)
	assert.InDelta(t, centroid.X, root.CenterOfMass().X, 1e-9)
	assert.InDelta(t, centroid.Y, root.CenterOfMass().Y, 1e-9)

	assert.Equal(t, len(particles), countParticles(root))
}

func TestInsert_LeafPushedIntoChild(t *testing.T) {
	root := NewNode(testRegion())
	a := body.New(geom.Vec2{X: -50, Y: -50}, geom.Vec2{}, 1, false)
	b := body.New(geom.Vec2{X: 50, Y: 50}, geom.Vec2{}, 1, false)

	root.Insert(a)
	root.Insert(b)

	// Subdivision must clear the directly held particle; both live in
	// children now.
	require.Equal(t, Internal, root.State())
	assert.Equal(t, 2, countParticles(root))
	assert.Equal(t, 2.0, root.Mass())
}

func TestInsert_BoundaryParticleLandsInExactlyOneChild(t *testing.T) {
	root := NewNode(testRegion())

	// The origin sits on all four interior quadrant boundaries.
	onBoundary := body.New(geom.Vec2{}, geom.Vec2{}, 1, false)
	other := body.New(geom.Vec2{X: 70, Y: 70}, geom.Vec2{}, 1, false)

	root.Insert(onBoundary)
	root.Insert(other)

	require.Equal(t, Internal, root.State())

	held := 0
	for i := 0; i < 4; i++ {
		held += countParticles(root.Child(i))
	}
	assert.Equal(t, 2, held)
	assert.InDelta(t, 2.0, root.Mass(), 1e-12)
}

// treeDepth walks to the deepest node.
func treeDepth(n *Node) int {
	if n.State() != Internal {
		return 1
	}
	deepest := 0
	for i := 0; i < 4; i++ {
		if d := treeDepth(n.Child(i)); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func TestInsert_CoincidentParticlesShareDeepestLeaf(t *testing.T) {
	pos := geom.Vec2{X: 1, Y: 1}
	a := body.New(pos, geom.Vec2{}, 2, false)
	b := body.New(pos, geom.Vec2{}, 3, false)

	root := Build(testRegion(), []*body.Particle{a, b})

	// Identical positions can never be separated by subdivision; the second
	// particle must end up folded into the deepest leaf's aggregate rather
	// than splitting forever.
	assert.InDelta(t, 5.0, root.Mass(), 1e-12)
	assert.InDelta(t, pos.X, root.CenterOfMass().X, 1e-12)
	assert.InDelta(t, pos.Y, root.CenterOfMass().Y, 1e-12)
	assert.Equal(t, 1, countParticles(root))
	assert.LessOrEqual(t, treeDepth(root), maxDepth+1)
}

func TestInsert_NearCoincidentParticlesStaySeparated(t *testing.T) {
	a := body.New(geom.Vec2{X: 1, Y: 1}, geom.Vec2{}, 1, false)
	b := body.New(geom.Vec2{X: 1 + 1e-13, Y: 1}, geom.Vec2{}, 1, false)

	root := Build(testRegion(), []*body.Particle{a, b})

	assert.Equal(t, 2, countParticles(root))
	assert.InDelta(t, 2.0, root.Mass(), 1e-12)
}

func TestInsert_OutOfRegionDropped(t *testing.T) {
	particles := randomParticles(50, 2)
	root := Build(testRegion(), particles)

	massBefore := root.Mass()
	comBefore := root.CenterOfMass()

	root.Insert(body.New(geom.Vec2{X: 1000, Y: 0}, geom.Vec2{}, 99, false))

	assert.Equal(t, massBefore, root.Mass())
	assert.Equal(t, comBefore, root.CenterOfMass())
	assert.Equal(t, len(particles), countParticles(root))
}

func TestInsert_EmptyRootDropsOutsideParticle(t *testing.T) {
	root := NewNode(testRegion())
	root.Insert(body.New(geom.Vec2{X: 500, Y: 500}, geom.Vec2{}, 1, false))

	assert.Equal(t, Empty, root.State())
	assert.Equal(t, 0.0, root.Mass())
}

func compareTrees(t *testing.T, a, b *Node) {
	t.Helper()
	assert.Equal(t, a.State(), b.State())
	assert.InDelta(t, a.Mass(), b.Mass(), 1e-9)
	if a.Mass() > 0 {
		assert.InDelta(t, a.CenterOfMass().X, b.CenterOfMass().X, 1e-9)
		assert.InDelta(t, a.CenterOfMass().Y, b.CenterOfMass().Y, 1e-9)
	}
	if a.State() == Internal && b.State() == Internal {
		for i := 0; i < 4; i++ {
			compareTrees(t, a.Child(i), b.Child(i))
		}
	}
}

func TestBuild_OrderIndependentAggregates(t *testing.T) {
	particles := randomParticles(200, 3)

	reversed := make([]*body.Particle, len(particles))
	for i, p := range particles {
		reversed[len(particles)-1-i] = p
	}

	forward := Build(testRegion(), particles)
	backward := Build(testRegion(), reversed)

	compareTrees(t, forward, backward)
}

func TestBuild_RebuildIsIdempotent(t *testing.T) {
	particles := randomParticles(100, 4)

	first := Build(testRegion(), particles)
	second := Build(testRegion(), particles)

	compareTrees(t, first, second)
}
