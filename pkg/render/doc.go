// Package render draws layout geometry onto a [Surface].
//
// # Overview
//
// The layout model in pkg/layout only computes coordinates. This package is
// the single place where those coordinates become drawing calls:
//
//   - [DrawNode], [DrawNodes]: circles with an activation curve clipped to them
//   - [DrawRect]: a layer's rectangle with one centered activation curve
//   - [AnnotateNodes], [AnnotateRect]: text labels
//   - [ConnectNodesToNodes] and friends: straight connector lines
//
// A [Surface] receives primitives in data coordinates (y up) together with a
// style. The recording implementation lives in [scene]; output formats are
// produced from a recorded scene by [sink].
//
// # Styles
//
// Every default is built fresh by a constructor, so callers may modify the
// returned value without affecting later calls:
//
//	st := render.DefaultNodeStyle()
//	st.Curve.Color = "crimson"
//	render.DrawNodes(s, hidden, st)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output using the external rsvg-convert tool
// (from librsvg).
//
// [scene]: github.com/matzehuels/nnetplot/pkg/render/scene
// [sink]: github.com/matzehuels/nnetplot/pkg/render/sink
package render
