package render

import (
	"slices"

	"github.com/matzehuels/nnetplot/pkg/activation"
	"github.com/matzehuels/nnetplot/pkg/layout"
)

// DrawNode draws one node and, unless the node is special or has no
// activation, its activation curve clipped to the node.
func DrawNode(s Surface, n layout.Node, st NodeStyle) {
	face := st.Face
	if n.Special.IsSpecial() {
		face = st.SpecialFace
	}
	c := n.Circle()
	s.Circle(c, face)
	if !n.DrawsCurve() {
		return
	}
	s.Curve(slices.Collect(n.Curve()), CircleClip(c), st.Curve)
}

// DrawNodes draws every node of l and returns the number drawn.
func DrawNodes(s Surface, l *layout.Layer, st NodeStyle) int {
	n := 0
	for node := range l.Nodes() {
		DrawNode(s, node, st)
		n++
	}
	return n
}

// DrawRect draws the layer's rectangle and, if requested, one activation
// curve of the layer's radius centered in it and clipped to it.
func DrawRect(s Surface, l *layout.Layer, opts RectOptions) {
	r := l.Rect(opts.Pad)
	s.Rect(r, opts.Shape)
	if !opts.Activation || l.Special.IsSpecial() || !l.Activation.Valid() {
		return
	}
	pts := slices.Collect(l.Activation.Samples(r.Center(), l.Radius))
	s.Curve(pts, RectClip(r), opts.Curve)
}

// AnnotateNodes places texts at the node centers of l, pairing them in
// [layout.Layer.NodeCenters] order. Extra texts or nodes are ignored.
func AnnotateNodes(s Surface, l *layout.Layer, texts []string, st TextStyle) int {
	n := 0
	for c := range l.NodeCenters() {
		if n == len(texts) {
			break
		}
		s.Text(c, texts[n], st)
		n++
	}
	return n
}

// AnnotateRect places text below the layer's unpadded rectangle, left
// aligned at its left edge, shifted left by xpad and down by ypad.
func AnnotateRect(s Surface, l *layout.Layer, text string, xpad, ypad float64, st TextStyle) {
	r := l.Rect(0)
	st.HAlign = AlignLeft
	st.VAlign = AlignTop
	s.Text(r.Corner().Add(-xpad, r.H-ypad), text, st)
}

// ActivationLabel returns the name shown for a layer's activation, or "" if
// there is none.
func ActivationLabel(a activation.Activation) string {
	if !a.Valid() {
		return ""
	}
	return a.String()
}
