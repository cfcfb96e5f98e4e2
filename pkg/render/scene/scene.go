// Package scene records drawing calls so they can be rendered to several
// output formats.
//
// A [Scene] implements [render.Surface]. Each call becomes an [Op] carrying
// its z-order and insertion sequence; [Scene.Ops] returns them in paint order
// (ascending z, insertion order within equal z), which is the order every
// sink in pkg/render/sink draws them.
//
// A Scene is not safe for concurrent use.
package scene

import (
	"cmp"
	"slices"

	"github.com/matzehuels/nnetplot/pkg/geom"
	"github.com/matzehuels/nnetplot/pkg/render"
)

// Kind identifies the primitive an [Op] draws.
type Kind string

const (
	KindCircle Kind = "circle"
	KindRect   Kind = "rect"
	KindLine   Kind = "line"
	KindCurve  Kind = "curve"
	KindText   Kind = "text"
)

// Op is one recorded primitive. Only the fields relevant to Kind are set.
type Op struct {
	Kind Kind    `json:"kind"`
	Z    float64 `json:"z"`
	Seq  int     `json:"-"`

	Circle geom.Circle  `json:"circle,omitzero"`
	Rect   geom.Rect    `json:"rect,omitzero"`
	Points []geom.Point `json:"points,omitempty"`
	Clip   render.Clip  `json:"clip,omitzero"`
	Text   string       `json:"text,omitempty"`

	Shape     render.ShapeStyle `json:"shape,omitzero"`
	Line      render.LineStyle  `json:"line,omitzero"`
	TextStyle render.TextStyle  `json:"text_style,omitzero"`
}

// Bounds returns the extent the op covers in data space. Text is treated as
// a point. Clipped curves contribute their clip region.
func (o Op) Bounds() geom.Bounds {
	switch o.Kind {
	case KindCircle:
		return o.Circle.Bounds()
	case KindRect:
		return o.Rect.Bounds()
	case KindCurve:
		if o.Clip.Kind != render.ClipNone {
			return o.Clip.Bounds()
		}
	}
	b := geom.EmptyBounds()
	for _, p := range o.Points {
		b = b.Extend(p)
	}
	return b
}

// Scene is an in-memory recording of [render.Surface] calls.
type Scene struct {
	ops []Op
}

var _ render.Surface = (*Scene)(nil)

// New returns an empty scene.
func New() *Scene { return &Scene{} }

func (s *Scene) add(op Op) {
	op.Seq = len(s.ops)
	s.ops = append(s.ops, op)
}

func (s *Scene) Circle(c geom.Circle, st render.ShapeStyle) {
	s.add(Op{Kind: KindCircle, Z: st.Z, Circle: c, Shape: st})
}

func (s *Scene) Rect(r geom.Rect, st render.ShapeStyle) {
	s.add(Op{Kind: KindRect, Z: st.Z, Rect: r, Shape: st})
}

func (s *Scene) Line(from, to geom.Point, st render.LineStyle) {
	s.add(Op{Kind: KindLine, Z: st.Z, Points: []geom.Point{from, to}, Line: st})
}

// Curve records a polyline. The points are copied.
func (s *Scene) Curve(pts []geom.Point, clip render.Clip, st render.LineStyle) {
	if len(pts) == 0 {
		return
	}
	s.add(Op{Kind: KindCurve, Z: st.Z, Points: slices.Clone(pts), Clip: clip, Line: st})
}

func (s *Scene) Text(at geom.Point, text string, st render.TextStyle) {
	s.add(Op{Kind: KindText, Z: st.Z, Points: []geom.Point{at}, Text: text, TextStyle: st})
}

// Len returns the number of recorded ops.
func (s *Scene) Len() int { return len(s.ops) }

// Ops returns a copy of the recorded ops in paint order.
func (s *Scene) Ops() []Op {
	ops := slices.Clone(s.ops)
	slices.SortStableFunc(ops, func(a, b Op) int { return cmp.Compare(a.Z, b.Z) })
	return ops
}

// Count returns the number of ops of the given kind.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, op := range s.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Bounds returns the union of every op's extent.
func (s *Scene) Bounds() geom.Bounds {
	b := geom.EmptyBounds()
	for _, op := range s.ops {
		b = b.Union(op.Bounds())
	}
	return b
}

// Reset discards all recorded ops.
func (s *Scene) Reset() { s.ops = s.ops[:0] }
