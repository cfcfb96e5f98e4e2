package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/matzehuels/nnetplot/pkg/diagram"
	"github.com/matzehuels/nnetplot/pkg/errors"
	"github.com/matzehuels/nnetplot/pkg/render"
	"github.com/matzehuels/nnetplot/pkg/render/nodelink"
	"github.com/matzehuels/nnetplot/pkg/render/scene"
	"github.com/matzehuels/nnetplot/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. sc must hold
// the diagram already drawn; it is ignored for node-link output.
func Render(ctx context.Context, d *diagram.Diagram, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, d, opts)
	}
	return renderDiagram(ctx, d, sc, opts)
}

// renderDiagram generates diagram outputs from the drawn scene.
func renderDiagram(ctx context.Context, d *diagram.Diagram, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	c := opts.canvas(d.Canvas)
	svgOpts := []sink.SVGOption{
		sink.WithScale(c.Scale),
		sink.WithMargin(c.Margin),
		sink.WithTitle(d.Title),
	}
	pngOpts := []sink.PNGOption{
		sink.WithPNGScale(c.Scale),
		sink.WithPNGMargin(c.Margin),
	}
	if c.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(c.Background))
		pngOpts = append(pngOpts, sink.WithPNGBackground(c.Background))
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(sc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(sc, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, sc, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(sc, sink.WithJSONTitle(d.Title), sink.WithJSONLayers(d.LayerInfos()))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported diagram format: %s", format)
		}

		if err != nil {
			return nil, renderError(format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// topologyJSON is the JSON artifact of the node-link view.
type topologyJSON struct {
	nodelink.Graph
	DOT string `json:"dot"`
}

// renderNodelink generates node-link outputs from the diagram's topology.
func renderNodelink(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	g := d.Topology()
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, DefaultNodelinkZoom)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = json.MarshalIndent(topologyJSON{Graph: g, DOT: dot}, "", "  ")
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, renderError(format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderError(format string, err error) error {
	if stderrors.Is(err, render.ErrNoConverter) {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "render %s", format)
	}
	if stderrors.Is(err, sink.ErrTooLarge) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "render %s", format)
	}
	return errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
}
