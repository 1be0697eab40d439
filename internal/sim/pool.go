package sim

import (
	"sync"

	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
)

// ForcePool recycles per-step force buffers so the hot loop does not allocate
// a fresh slice every step.
type ForcePool struct {
	pool sync.Pool
	size int
}

func NewForcePool(size int) *ForcePool {
	return &ForcePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]geom.Vec2, size)
			},
		},
	}
}

func (p *ForcePool) Get() []geom.Vec2 {
	return p.pool.Get().([]geom.Vec2)
}

func (p *ForcePool) Put(buf []geom.Vec2) {
	if len(buf) != p.size {
		return
	}
	for i := range buf {
		buf[i] = geom.Vec2{}
	}
	p.pool.Put(buf)
}
