package render

import (
	"iter"

	"github.com/matzehuels/nnetplot/pkg/layout"
)

// ConnectNodesToNodes draws a line from every node of l0 to every node of l1.
func ConnectNodesToNodes(s Surface, l0, l1 *layout.Layer, st LineStyle) int {
	return drawSegments(s, layout.NodesToNodes(l0, l1), st)
}

// ConnectNodesToRect draws a line from every node of l0 to the two inbound
// slots of l1's rectangle.
func ConnectNodesToRect(s Surface, l0, l1 *layout.Layer, in layout.RectConn, st LineStyle) int {
	return drawSegments(s, layout.NodesToRect(l0, l1, in), st)
}

// ConnectRectToNodes draws a line from the two outbound slots of l0's
// rectangle to every node of l1.
func ConnectRectToNodes(s Surface, l0, l1 *layout.Layer, out layout.RectConn, st LineStyle) int {
	return drawSegments(s, layout.RectToNodes(l0, l1, out), st)
}

// ConnectRectToRect draws the four lines between the slots of two rectangles.
func ConnectRectToRect(s Surface, l0, l1 *layout.Layer, out, in layout.RectConn, st LineStyle) int {
	return drawSegments(s, layout.RectToRect(l0, l1, out, in), st)
}

// Connect draws the connector variant selected by m.
func Connect(s Surface, m layout.Mode, l0, l1 *layout.Layer, out, in layout.RectConn, st LineStyle) int {
	return drawSegments(s, layout.Connect(m, l0, l1, out, in), st)
}

func drawSegments(s Surface, segs iter.Seq[layout.Segment], st LineStyle) int {
	n := 0
	for seg := range segs {
		s.Line(seg.From, seg.To, st)
		n++
	}
	return n
}
