// Package geom provides the small set of planar types shared by the layout
// model, the rendering surface and the output sinks.
//
// All coordinates are in diagram units with y pointing up. Layers grow
// downward from their anchor, so rectangles derived from a layer carry a
// negative height; [Rect.Bounds] normalizes them when an axis-aligned extent
// is needed.
package geom

import "math"

// Point is a position in diagram units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Circle is a center and radius.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// Bounds returns the axis-aligned box enclosing the circle.
func (c Circle) Bounds() Bounds {
	r := math.Abs(c.Radius)
	return Bounds{
		MinX: c.Center.X - r, MinY: c.Center.Y - r,
		MaxX: c.Center.X + r, MaxY: c.Center.Y + r,
	}
}

// Rect is a rectangle given by one corner and signed extents.
// A negative H means the rectangle extends downward from the corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Corner returns the reference corner of the rectangle.
func (r Rect) Corner() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Bounds returns the normalized extent of the rectangle.
func (r Rect) Bounds() Bounds {
	return Bounds{
		MinX: math.Min(r.X, r.X+r.W), MinY: math.Min(r.Y, r.Y+r.H),
		MaxX: math.Max(r.X, r.X+r.W), MaxY: math.Max(r.Y, r.Y+r.H),
	}
}

// Bounds is an axis-aligned box. The zero value is not empty; use
// [EmptyBounds] as the identity for [Bounds.Union].
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// EmptyBounds returns a box that contains nothing.
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether b contains no points.
func (b Bounds) IsEmpty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Width returns the horizontal extent, or 0 for an empty box.
func (b Bounds) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the vertical extent, or 0 for an empty box.
func (b Bounds) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY
}

// Extend grows b to include p.
func (b Bounds) Extend(p Point) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, p.X), MinY: math.Min(b.MinY, p.Y),
		MaxX: math.Max(b.MaxX, p.X), MaxY: math.Max(b.MaxY, p.Y),
	}
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX), MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX), MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Pad grows b by m on every side. An empty box stays empty.
func (b Bounds) Pad(m float64) Bounds {
	if b.IsEmpty() {
		return b
	}
	return Bounds{MinX: b.MinX - m, MinY: b.MinY - m, MaxX: b.MaxX + m, MaxY: b.MaxY + m}
}
