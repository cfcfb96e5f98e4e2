// Package nodelink renders a diagram's layer topology as a directed graph
// using Graphviz.
//
// Where the main diagram shows every node and connector, the node-link view
// shows one box per layer and one arrow per connection, which is easier to
// read for deep networks:
//
//	dot := nodelink.ToDOT(d.Topology(), nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Graphviz runs in-process through go-graphviz; no dot binary is needed for
// SVG. PDF and PNG go through rsvg-convert like the other sinks.
package nodelink
