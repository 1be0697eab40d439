// Package snapshot renders particle positions to PNG frames on the stepper's
// snapshot cadence.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
)

var (
	background = color.Black
	starColor  = color.RGBA{255, 255, 220, 255}
	bodyColor  = color.RGBA{90, 140, 255, 255}
)

// Writer rasterizes the particle list into fixed-size frames named by their
// zero-padded step index. Simulation coordinates are scaled to pixels with
// the origin at the frame center; particles falling outside the frame are
// skipped. I/O failures are returned to the caller.
type Writer struct {
	dir    string
	width  int
	height int
	scale  float64
}

// NewWriter creates the output directory if needed. scale is simulation units
// per pixel.
func NewWriter(dir string, width, height int, scale float64) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", width, height)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %f", scale)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Writer{dir: dir, width: width, height: height, scale: scale}, nil
}

// Filename returns the frame path for a step index.
func (w *Writer) Filename(step int) string {
	return filepath.Join(w.dir, fmt.Sprintf("step_%08d.png", step))
}

func (w *Writer) OnStep(particles []*body.Particle, step int) error {
	frame := image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, p := range particles {
		px := w.width/2 + int(p.Pos.X/w.scale)
		py := w.height/2 - int(p.Pos.Y/w.scale)
		if px < 0 || px >= w.width || py < 0 || py >= w.height {
			continue
		}
		if p.Star {
			frame.Set(px, py, starColor)
		} else {
			frame.Set(px, py, bodyColor)
		}
	}

	file, err := os.Create(w.Filename(step))
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, frame); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}
