// Package sim drives the per-step Barnes-Hut pipeline: rebuild the tree,
// evaluate forces, integrate, and periodically hand the particle list to
// observers.
package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
	"github.com/ckopec-dev/Computational-Astronomy/internal/quadtree"
)

// Stepper owns the particle list for the duration of a run. Each step has two
// phases: while the tree is being built the particle positions are frozen,
// and once it is built the tree is read-only until the next rebuild. Forces
// for the whole step are computed before any position or velocity is touched.
type Stepper struct {
	particles []*body.Particle
	cfg       Config
	region    geom.Region
	workers   int
	observers []Observer
	metrics   []Metric
	forces    *ForcePool
}

func NewStepper(particles []*body.Particle, cfg Config) *Stepper {
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Stepper{
		particles: particles,
		cfg:       cfg,
		region:    geom.NewRegion(geom.Vec2{}, cfg.WorldSize),
		workers:   workers,
		forces:    NewForcePool(len(particles)),
	}
}

func (s *Stepper) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Stepper) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }

// Particles exposes the stepper's particle list. Callers must not mutate it
// while a step is in flight.
func (s *Stepper) Particles() []*body.Particle { return s.particles }

// Step executes one full BUILD then EVALUATE then INTEGRATE cycle. The
// particle list is consistent again by the time it returns.
func (s *Stepper) Step() {
	root := quadtree.Build(s.region, s.particles)

	forces := s.forces.Get()
	s.evaluate(root, forces)
	s.integrate(forces)
	s.forces.Put(forces)
}

// Run executes the configured number of steps. Cancellation is honored at
// step boundaries only, so the particle list is never left half-integrated.
func (s *Stepper) Run(ctx context.Context) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}

	for step := 0; step < s.cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.Step()
		result.StepsTaken++

		if s.cfg.SnapshotEvery > 0 && step%s.cfg.SnapshotEvery == 0 {
			for _, m := range s.metrics {
				m.Observe(s.particles, step)
			}
			for _, o := range s.observers {
				if err := o.OnStep(s.particles, step); err != nil {
					result.Errors = append(result.Errors, err)
				}
			}
		}
	}

	s.finish(result)
	return result, nil
}

// evaluate fans the force computation out across workers. The tree is
// read-only here and each worker writes disjoint force slots, so no locking
// is needed.
func (s *Stepper) evaluate(root *quadtree.Node, forces []geom.Vec2) {
	n := len(s.particles)
	workers := s.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i, p := range s.particles {
			forces[i] = root.Force(p, s.cfg.Theta, s.cfg.G)
		}
		return
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < n; i += workers {
				forces[i] = root.Force(s.particles[i], s.cfg.Theta, s.cfg.G)
			}
		}(w)
	}
	wg.Wait()
}

// integrate applies semi-implicit Euler: velocity from the batched forces
// first, then position from the updated velocity.
func (s *Stepper) integrate(forces []geom.Vec2) {
	dt := s.cfg.Dt
	for i, p := range s.particles {
		p.Vel = p.Vel.Add(forces[i].Scale(dt))
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}
}

func (s *Stepper) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
