package sink

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/nnetplot/pkg/fonts"
	"github.com/matzehuels/nnetplot/pkg/render"
	"github.com/matzehuels/nnetplot/pkg/render/scene"
)

// MaxPixels bounds the raster size of a single PNG.
const MaxPixels = 64 << 20

// ErrTooLarge is returned when a PNG would exceed [MaxPixels].
var ErrTooLarge = errors.New("image too large")

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	margin     float64
	background string
}

func WithPNGScale(s float64) PNGOption     { return func(r *pngRenderer) { r.scale = s } }
func WithPNGMargin(m float64) PNGOption    { return func(r *pngRenderer) { r.margin = m } }
func WithPNGBackground(c string) PNGOption { return func(r *pngRenderer) { r.background = c } }

// RenderPNG rasterizes the scene natively with gg. The background defaults to
// white since PNG viewers show transparency inconsistently.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, margin: DefaultMargin, background: render.ColorWhite}
	for _, opt := range opts {
		opt(&r)
	}
	f := newFrame(s, r.scale, r.margin)
	if px := f.width() * f.height(); px > MaxPixels || math.IsNaN(px) {
		return nil, fmt.Errorf("%w: %.0fx%.0f pixels", ErrTooLarge, f.width(), f.height())
	}

	w, h := int(math.Ceil(f.width())), int(math.Ceil(f.height()))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	defer dc.Close()

	if !isNone(r.background) {
		dc.ClearWithColor(parseColor(r.background, 1))
	}

	for _, op := range s.Ops() {
		if err := paint(dc, f, op); err != nil {
			return nil, fmt.Errorf("paint %s: %w", op.Kind, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func paint(dc *gg.Context, f frame, op scene.Op) error {
	switch op.Kind {
	case scene.KindCircle:
		x, y := f.pt(op.Circle.Center)
		dc.DrawCircle(x, y, f.length(op.Circle.Radius))
		return fillStroke(dc, f, op.Shape)
	case scene.KindRect:
		x, y, w, h := f.rect(op.Rect)
		dc.DrawRectangle(x, y, w, h)
		return fillStroke(dc, f, op.Shape)
	case scene.KindLine:
		x1, y1 := f.pt(op.Points[0])
		x2, y2 := f.pt(op.Points[1])
		dc.DrawLine(x1, y1, x2, y2)
		return stroke(dc, f, op.Line)
	case scene.KindCurve:
		return paintCurve(dc, f, op)
	case scene.KindText:
		return paintText(dc, f, op)
	}
	return nil
}

func fillStroke(dc *gg.Context, f frame, st render.ShapeStyle) error {
	if st.Fill && !isNone(st.FillColor) {
		dc.SetColor(parseColor(st.FillColor, st.Alpha).Color())
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	if isNone(st.EdgeColor) || st.LineWidth <= 0 {
		dc.ClearPath()
		return nil
	}
	dc.SetColor(parseColor(st.EdgeColor, st.Alpha).Color())
	dc.SetLineWidth(f.points(st.LineWidth))
	return dc.Stroke()
}

func stroke(dc *gg.Context, f frame, st render.LineStyle) error {
	if isNone(st.Color) || st.Width <= 0 {
		dc.ClearPath()
		return nil
	}
	dc.SetColor(parseColor(st.Color, st.Alpha).Color())
	dc.SetLineWidth(f.points(st.Width))
	return dc.Stroke()
}

func paintCurve(dc *gg.Context, f frame, op scene.Op) error {
	dc.Push()
	defer dc.Pop()

	switch op.Clip.Kind {
	case render.ClipCircle:
		x, y := f.pt(op.Clip.Circle.Center)
		dc.DrawCircle(x, y, f.length(op.Clip.Circle.Radius))
		dc.Clip()
	case render.ClipRect:
		dc.ClipRect(f.rect(op.Clip.Rect))
	}

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i, p := range op.Points {
		x, y := f.pt(p)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	return stroke(dc, f, op.Line)
}

func paintText(dc *gg.Context, f frame, op scene.Op) error {
	face, err := fonts.Face(f.points(op.TextStyle.Size))
	if err != nil {
		return err
	}
	dc.SetFont(face)
	dc.SetColor(parseColor(op.TextStyle.Color, 1).Color())
	x, y := f.pt(op.Points[0])
	dc.DrawStringAnchored(op.Text, x, y, anchorX(op.TextStyle.HAlign), anchorY(op.TextStyle.VAlign))
	return nil
}

func anchorX(h render.HAlign) float64 {
	switch h {
	case render.AlignLeft:
		return 0
	case render.AlignRight:
		return 1
	default:
		return 0.5
	}
}

// anchorY follows gg's convention of shifting the baseline down by ay times
// the line height.
func anchorY(v render.VAlign) float64 {
	switch v {
	case render.AlignTop:
		return 1
	case render.AlignBottom:
		return 0
	default:
		return 0.5
	}
}
