package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/nnetplot/pkg/fonts"
	"github.com/matzehuels/nnetplot/pkg/render"
	"github.com/matzehuels/nnetplot/pkg/render/scene"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	margin     float64
	background string
	title      string
}

func WithScale(s float64) SVGOption     { return func(r *svgRenderer) { r.scale = s } }
func WithMargin(m float64) SVGOption    { return func(r *svgRenderer) { r.margin = m } }
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }
func WithTitle(title string) SVGOption  { return func(r *svgRenderer) { r.title = title } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: DefaultScale, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the scene as a standalone SVG document. Ops are painted
// in [scene.Scene.Ops] order; clipped curves reference a per-op clipPath.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := newFrame(s, r.scale, r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.width(), f.height(), f.width(), f.height())
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(r.title))
	}
	if !isNone(r.background) {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(r.background))
	}

	clipID := 0
	for _, op := range s.Ops() {
		switch op.Kind {
		case scene.KindCircle:
			x, y := f.pt(op.Circle.Center)
			fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n",
				x, y, f.length(op.Circle.Radius), shapeAttrs(f, op.Shape))
		case scene.KindRect:
			x, y, w, h := f.rect(op.Rect)
			fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
				x, y, w, h, shapeAttrs(f, op.Shape))
		case scene.KindLine:
			x1, y1 := f.pt(op.Points[0])
			x2, y2 := f.pt(op.Points[1])
			fmt.Fprintf(&buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
				x1, y1, x2, y2, lineAttrs(f, op.Line))
		case scene.KindCurve:
			clip := ""
			if op.Clip.Kind != render.ClipNone {
				clipID++
				writeClipPath(&buf, f, op.Clip, clipID)
				clip = fmt.Sprintf(` clip-path="url(#clip-%d)"`, clipID)
			}
			fmt.Fprintf(&buf, `  <polyline points="%s" fill="none" stroke-linecap="round" stroke-linejoin="round"%s%s/>`+"\n",
				pointList(f, op), lineAttrs(f, op.Line), clip)
		case scene.KindText:
			x, y := f.pt(op.Points[0])
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" text-anchor="%s" dominant-baseline="%s" fill="%s">%s</text>`+"\n",
				x, y, EscapeXML(fonts.FontFamily), f.points(op.TextStyle.Size),
				textAnchor(op.TextStyle.HAlign), baseline(op.TextStyle.VAlign),
				svgColor(op.TextStyle.Color), EscapeXML(op.Text))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeClipPath(buf *bytes.Buffer, f frame, c render.Clip, id int) {
	fmt.Fprintf(buf, `  <clipPath id="clip-%d">`, id)
	switch c.Kind {
	case render.ClipCircle:
		x, y := f.pt(c.Circle.Center)
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f"/>`, x, y, f.length(c.Circle.Radius))
	case render.ClipRect:
		x, y, w, h := f.rect(c.Rect)
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`, x, y, w, h)
	}
	buf.WriteString("</clipPath>\n")
}

func shapeAttrs(f frame, st render.ShapeStyle) string {
	fill := "none"
	if st.Fill {
		fill = svgColor(st.FillColor)
	}
	return fmt.Sprintf(` fill="%s" stroke="%s" stroke-width="%.2f"%s`,
		fill, svgColor(st.EdgeColor), f.points(st.LineWidth), opacity(st.Alpha))
}

func lineAttrs(f frame, st render.LineStyle) string {
	return fmt.Sprintf(` stroke="%s" stroke-width="%.2f"%s`, svgColor(st.Color), f.points(st.Width), opacity(st.Alpha))
}

func pointList(f frame, op scene.Op) string {
	parts := make([]string, len(op.Points))
	for i, p := range op.Points {
		x, y := f.pt(p)
		parts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
	}
	return strings.Join(parts, " ")
}

func opacity(a float64) string {
	if a >= 1 || a < 0 {
		return ""
	}
	return fmt.Sprintf(` opacity="%.2f"`, a)
}

func svgColor(c string) string {
	if isNone(c) {
		return "none"
	}
	return EscapeXML(c)
}

func textAnchor(h render.HAlign) string {
	switch h {
	case render.AlignLeft:
		return "start"
	case render.AlignRight:
		return "end"
	default:
		return "middle"
	}
}

func baseline(v render.VAlign) string {
	switch v {
	case render.AlignTop:
		return "hanging"
	case render.AlignBottom:
		return "alphabetic"
	default:
		return "central"
	}
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
