package quadtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
)

func TestForce_ThetaZeroMatchesBruteForce(t *testing.T) {
	const g = 0.1
	particles := randomParticles(200, 7)
	root := Build(testRegion(), particles)

	for i, p := range particles {
		tree := root.Force(p, 0, g)
		brute := BruteForce(particles, p, g)

		tol := 1e-10 * (1 + brute.Norm())
		require.InDelta(t, brute.X, tree.X, tol, "particle %d x", i)
		require.InDelta(t, brute.Y, tree.Y, tol, "particle %d y", i)
	}
}

func TestForce_TwoBody(t *testing.T) {
	const (
		g = 0.1
		m = 100.0
	)
	left := body.New(geom.Vec2{X: -10}, geom.Vec2{}, m, false)
	right := body.New(geom.Vec2{X: 10}, geom.Vec2{}, m, false)
	root := Build(testRegion(), []*body.Particle{left, right})

	onLeft := root.Force(left, 0.5, g)
	onRight := root.Force(right, 0.5, g)

	// Per unit mass: G·m/d² with d = 20, ignoring softening.
	expected := g * m / 400

	assert.InDelta(t, expected, onLeft.Norm(), 1e-9)
	assert.InDelta(t, expected, onRight.Norm(), 1e-9)

	assert.Greater(t, onLeft.X, 0.0, "left body pulled right")
	assert.Less(t, onRight.X, 0.0, "right body pulled left")
	assert.InDelta(t, 0.0, onLeft.Y, 1e-12)
	assert.InDelta(t, onLeft.X, -onRight.X, 1e-12)
}

func TestForce_SelfExclusion(t *testing.T) {
	p := body.New(geom.Vec2{X: 5, Y: 5}, geom.Vec2{}, 10, false)
	root := Build(testRegion(), []*body.Particle{p})

	f := root.Force(p, 0.5, 1.0)
	assert.Equal(t, geom.Vec2{}, f)
}

func TestForce_EmptyTree(t *testing.T) {
	root := NewNode(testRegion())
	p := body.New(geom.Vec2{}, geom.Vec2{}, 1, false)

	assert.Equal(t, geom.Vec2{}, root.Force(p, 0.5, 1.0))
}

func TestForce_LargeThetaPointsTowardMass(t *testing.T) {
	const g = 1.0
	particles := randomParticles(100, 9)
	probe := body.New(geom.Vec2{X: -95, Y: -95}, geom.Vec2{}, 1, false)
	all := append(particles, probe)

	root := Build(testRegion(), all)

	// Huge theta collapses everything but the nearest structure to a single
	// point mass; the pull must still point toward the cluster's centroid.
	f := root.Force(probe, 10, g)
	toward := body.Centroid(particles).Sub(probe.Pos)

	dot := f.X*toward.X + f.Y*toward.Y
	assert.Greater(t, dot, 0.0)
}

func TestForce_SofteningPreventsBlowup(t *testing.T) {
	a := body.New(geom.Vec2{X: 1, Y: 1}, geom.Vec2{}, 10, false)
	root := Build(testRegion(), []*body.Particle{a})

	// A probe at exactly a's position is a distinct particle, so it is not
	// excluded as self-interaction; only the softening keeps the zero
	// separation finite.
	probe := body.New(geom.Vec2{X: 1, Y: 1}, geom.Vec2{}, 1, false)
	f := root.Force(probe, 0, 1.0)
	require.False(t, math.IsNaN(f.X) || math.IsNaN(f.Y))
	require.False(t, math.IsInf(f.X, 0) || math.IsInf(f.Y, 0))
}
