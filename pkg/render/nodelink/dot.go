package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nnetplot/pkg/render"
)

// Vertex is one layer in the topology view.
type Vertex struct {
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	Activation string `json:"activation,omitempty"`
	Special    string `json:"special,omitempty"`
	Rect       bool   `json:"rect,omitempty"`
}

// Edge is a connection between two layers.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Lines is the number of connector segments drawn for the connection.
	Lines int `json:"lines"`
}

// Graph is the layer topology of a diagram.
type Graph struct {
	Title    string   `json:"title,omitempty"`
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes shape, activation and segment counts in labels.
	// When false, only the layer name is shown.
	Detailed bool
}

// ToDOT converts a layer topology to Graphviz DOT format. Layers flow left
// to right. Special layers are drawn with a dashed outline and grey fill;
// layers drawn as rectangles use square corners.
func ToDOT(g Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if g.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", g.Title)
	}
	buf.WriteString("\n")

	for _, v := range g.Vertices {
		attrs := fmtAttrs(v, fmtLabel(v, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", v.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if opts.Detailed && e.Lines > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, strconv.Itoa(e.Lines))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v Vertex, detailed bool) string {
	if !detailed {
		return v.Name
	}

	parts := []string{fmt.Sprintf("%dx%d", v.Rows, v.Columns)}
	if v.Activation != "" {
		parts = append(parts, v.Activation)
	}
	if v.Special != "" && v.Special != "none" {
		parts = append(parts, v.Special)
	}
	return v.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(v Vertex, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case v.Special != "" && v.Special != "none":
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case v.Rect:
		attrs = append(attrs, "style=filled")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, zoom float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, zoom)
}
