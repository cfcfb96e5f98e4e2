// Package pkg holds the nnetplot libraries.
//
// A diagram flows through them in one direction:
//
//	document (TOML/YAML/JSON)
//	     ↓
//	[diagram] decode, validate, build layers and apply alignments
//	     ↓
//	[layout] node centers, rectangles, connection points, connectors
//	     ↓
//	[render] draw nodes, rectangles, activation curves and connectors onto a Surface
//	     ↓
//	[render/scene] record the drawing; [render/sink] write SVG, PNG, PDF or JSON
//
// [activation] samples activation curves for node glyphs and [geom] holds the
// shared point and rectangle types. [pipeline] runs the whole chain with
// caching ([cache]) and instrumentation hooks ([observability]); errors carry
// codes from [errors].
//
// Building a diagram by hand:
//
//	in := layout.New(2, 1, layout.WithSpecial(layout.SpecialInput))
//	hidden := layout.New(4, 1, layout.WithActivation(activation.Named("relu")))
//	layout.HorizontalAlign(in, hidden, 1)
//	layout.VerticalAlign(in, hidden, 0.5)
//
//	sc := scene.New()
//	render.DrawNodes(sc, in, render.DefaultNodeStyle())
//	render.DrawNodes(sc, hidden, render.DefaultNodeStyle())
//	render.ConnectNodesToNodes(sc, in, hidden, render.DefaultConnectorStyle())
//	svg := sink.RenderSVG(sc)
package pkg
