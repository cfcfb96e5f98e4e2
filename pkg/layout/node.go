package layout

import (
	"iter"

	"github.com/matzehuels/nnetplot/pkg/activation"
	"github.com/matzehuels/nnetplot/pkg/geom"
)

// Node is a single glyph derived from a layer's grid at draw time.
type Node struct {
	Center     geom.Point
	Radius     float64
	Activation activation.Activation
	Special    Special
}

// Circle returns the node's outline.
func (n Node) Circle() geom.Circle { return geom.Circle{Center: n.Center, Radius: n.Radius} }

// DrawsCurve reports whether the node carries an activation curve.
func (n Node) DrawsCurve() bool { return !n.Special.IsSpecial() && n.Activation.Valid() }

// Curve yields the node's activation curve, or nothing when [Node.DrawsCurve]
// is false.
func (n Node) Curve() iter.Seq[geom.Point] {
	if !n.DrawsCurve() {
		return func(func(geom.Point) bool) {}
	}
	return n.Activation.Samples(n.Center, n.Radius)
}
