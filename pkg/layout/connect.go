package layout

import (
	"iter"
	"slices"

	"github.com/matzehuels/nnetplot/pkg/geom"
)

// Segment is a straight connector between two attachment points.
type Segment struct {
	From geom.Point `json:"from"`
	To   geom.Point `json:"to"`
}

// Mode names the four connector variants by how each side is drawn.
type Mode int

const (
	NodesToNodesMode Mode = iota
	NodesToRectMode
	RectToNodesMode
	RectToRectMode
)

func (m Mode) String() string {
	switch m {
	case NodesToRectMode:
		return "nodes->rect"
	case RectToNodesMode:
		return "rect->nodes"
	case RectToRectMode:
		return "rect->rect"
	default:
		return "nodes->nodes"
	}
}

// ModeFor picks the connector variant for a pair of layers drawn as nodes
// (rect false) or rectangles (rect true).
func ModeFor(fromRect, toRect bool) Mode {
	switch {
	case fromRect && toRect:
		return RectToRectMode
	case fromRect:
		return RectToNodesMode
	case toRect:
		return NodesToRectMode
	default:
		return NodesToNodesMode
	}
}

// NodesToNodes pairs every outbound node point of l0 with every inbound node
// point of l1.
func NodesToNodes(l0, l1 *Layer) iter.Seq[Segment] {
	return product(l0.OutboundNodeConnections(), l1.InboundNodeConnections())
}

// NodesToRect pairs every outbound node point of l0 with the inbound slots of
// l1's rectangle.
func NodesToRect(l0, l1 *Layer, in RectConn) iter.Seq[Segment] {
	slots := l1.InboundRectConnections(in)
	return product(l0.OutboundNodeConnections(), slices.Values(slots[:]))
}

// RectToNodes pairs the outbound slots of l0's rectangle with every inbound
// node point of l1.
func RectToNodes(l0, l1 *Layer, out RectConn) iter.Seq[Segment] {
	slots := l0.OutboundRectConnections(out)
	return product(slices.Values(slots[:]), l1.InboundNodeConnections())
}

// RectToRect pairs the outbound slots of l0's rectangle with the inbound
// slots of l1's rectangle.
func RectToRect(l0, l1 *Layer, out, in RectConn) iter.Seq[Segment] {
	src := l0.OutboundRectConnections(out)
	dst := l1.InboundRectConnections(in)
	return product(slices.Values(src[:]), slices.Values(dst[:]))
}

// Connect dispatches to the enumerator selected by m.
func Connect(m Mode, l0, l1 *Layer, out, in RectConn) iter.Seq[Segment] {
	switch m {
	case NodesToRectMode:
		return NodesToRect(l0, l1, in)
	case RectToNodesMode:
		return RectToNodes(l0, l1, out)
	case RectToRectMode:
		return RectToRect(l0, l1, out, in)
	default:
		return NodesToNodes(l0, l1)
	}
}

func product(from, to iter.Seq[geom.Point]) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for a := range from {
			for b := range to {
				if !yield(Segment{From: a, To: b}) {
					return
				}
			}
		}
	}
}
