package sink

import (
	"math"

	"github.com/matzehuels/nnetplot/pkg/geom"
	"github.com/matzehuels/nnetplot/pkg/render/scene"
)

// Defaults shared by the sinks.
const (
	DefaultScale  = 100.0 // pixels per diagram unit
	DefaultMargin = 0.2   // diagram units around the scene bounds
	minExtent     = 1.0
)

// frame maps y-up diagram coordinates onto a y-down pixel canvas.
type frame struct {
	bounds geom.Bounds
	scale  float64
}

func newFrame(s *scene.Scene, scale, margin float64) frame {
	if scale <= 0 {
		scale = DefaultScale
	}
	b := s.Bounds()
	if b.IsEmpty() {
		b = geom.Bounds{MaxX: minExtent, MaxY: minExtent}
	}
	return frame{bounds: b.Pad(math.Max(margin, 0)), scale: scale}
}

func (f frame) width() float64  { return f.bounds.Width() * f.scale }
func (f frame) height() float64 { return f.bounds.Height() * f.scale }

func (f frame) x(x float64) float64 { return (x - f.bounds.MinX) * f.scale }
func (f frame) y(y float64) float64 { return (f.bounds.MaxY - y) * f.scale }

func (f frame) pt(p geom.Point) (float64, float64) { return f.x(p.X), f.y(p.Y) }

// length scales a diagram length to pixels.
func (f frame) length(d float64) float64 { return d * f.scale }

// points scales a size given in points at the default scale.
func (f frame) points(p float64) float64 { return p * f.scale / DefaultScale }

// rect returns the pixel-space upper-left corner and size of r.
func (f frame) rect(r geom.Rect) (x, y, w, h float64) {
	b := r.Bounds()
	return f.x(b.MinX), f.y(b.MaxY), f.length(b.Width()), f.length(b.Height())
}
