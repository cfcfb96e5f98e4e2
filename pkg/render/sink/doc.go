// Package sink turns a recorded [scene.Scene] into output files.
//
// # Overview
//
// A "sink" consumes the primitives recorded by a scene, in paint order, and
// produces one output format:
//
//   - SVG: vector output with clipPath-based curve clipping
//   - PNG: native raster output through gogpu/gg
//   - PDF: SVG converted with rsvg-convert
//   - JSON: the primitives in diagram coordinates, for external tools
//
// # Coordinates
//
// Scenes are recorded in diagram units with y pointing up. The SVG and PNG
// sinks fit the canvas to the scene bounds grown by a margin and flip the y
// axis. Line widths and font sizes are points at [DefaultScale] and grow with
// the scale:
//
//	svg := sink.RenderSVG(sc, sink.WithScale(200), sink.WithMargin(0.5))
//	png, err := sink.RenderPNG(sc, sink.WithPNGScale(200))
//
// Colors are CSS names or hex strings. Unknown names render black in PNG
// output.
//
// [scene.Scene]: github.com/matzehuels/nnetplot/pkg/render/scene
package sink
