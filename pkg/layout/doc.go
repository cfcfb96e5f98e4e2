// Package layout computes the geometry of neural-network diagrams.
//
// # Layers
//
// A [Layer] is a rows × columns grid of circular nodes anchored at its
// upper-left corner. Everything else is derived on demand from the layer's
// fields, so a query after an alignment always reflects the new anchor:
//
//   - [Layer.NodeCenters]: centers, column-major, growing down and right
//   - [Layer.Rect]: bounding rectangle with optional padding (negative height)
//   - [Layer.InboundNodeConnections], [Layer.OutboundNodeConnections]:
//     attachment points just left/right of every center
//   - [Layer.InboundRectConnections], [Layer.OutboundRectConnections]:
//     the two fixed slots on the rectangle's left/right edge
//
// Malformed grids are not errors: a layer with zero rows yields no centers
// and an unpadded zero-area rectangle.
//
// # Alignment
//
// [VerticalAlign] and [HorizontalAlign] move the second layer relative to the
// first and never touch the first:
//
//	state := layout.New(1, 1, layout.WithSpecial(layout.SpecialInput))
//	hidden := layout.New(12, 1, layout.WithActivation(activation.Named("sigmoid")))
//	layout.VerticalAlign(state, hidden, 0.5)
//	layout.HorizontalAlign(state, hidden, 1)
//
// # Connectors
//
// [NodesToNodes], [NodesToRect], [RectToNodes] and [RectToRect] enumerate the
// Cartesian product of one layer's outbound points with the next layer's
// inbound points. Drawing the segments is left to pkg/render.
package layout
