package render

import "github.com/matzehuels/nnetplot/pkg/geom"

// Surface is the drawing backend the diagram helpers hand primitives to.
// Coordinates are in data space with y pointing up.
type Surface interface {
	Circle(c geom.Circle, st ShapeStyle)
	Rect(r geom.Rect, st ShapeStyle)
	Line(from, to geom.Point, st LineStyle)
	Curve(pts []geom.Point, clip Clip, st LineStyle)
	Text(at geom.Point, s string, st TextStyle)
}

// ClipKind selects the shape a curve is clipped to.
type ClipKind int

const (
	ClipNone ClipKind = iota
	ClipCircle
	ClipRect
)

func (k ClipKind) String() string {
	switch k {
	case ClipCircle:
		return "circle"
	case ClipRect:
		return "rect"
	default:
		return "none"
	}
}

func (k ClipKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Clip is the region a curve is restricted to. Only the field matching Kind
// is meaningful.
type Clip struct {
	Kind   ClipKind    `json:"kind"`
	Circle geom.Circle `json:"circle"`
	Rect   geom.Rect   `json:"rect"`
}

func CircleClip(c geom.Circle) Clip { return Clip{Kind: ClipCircle, Circle: c} }
func RectClip(r geom.Rect) Clip     { return Clip{Kind: ClipRect, Rect: r} }

// Bounds returns the clip region's extent. An unclipped region is empty.
func (c Clip) Bounds() geom.Bounds {
	switch c.Kind {
	case ClipCircle:
		return c.Circle.Bounds()
	case ClipRect:
		return c.Rect.Bounds()
	default:
		return geom.EmptyBounds()
	}
}
