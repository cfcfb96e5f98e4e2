package layout

import (
	"fmt"
	"iter"
	"strings"

	"github.com/matzehuels/nnetplot/pkg/activation"
	"github.com/matzehuels/nnetplot/pkg/geom"
)

// Defaults applied by [New].
const (
	DefaultRadius = 0.2
	DefaultVSpace = 0.1
	DefaultHSpace = 0.1

	// DefaultRectSpread is the fraction of a rectangle's height spanned by
	// its two connection slots.
	DefaultRectSpread = 0.1

	// connectorInset is the fraction of the radius by which node connection
	// points are moved off the center.
	connectorInset = 0.2
)

// Special marks layers whose nodes carry no activation curve.
type Special int

const (
	SpecialNone Special = iota
	SpecialInput
	SpecialOutput
)

func (s Special) String() string {
	switch s {
	case SpecialInput:
		return "input"
	case SpecialOutput:
		return "output"
	default:
		return "none"
	}
}

// IsSpecial reports whether s suppresses activation curves.
func (s Special) IsSpecial() bool { return s != SpecialNone }

// ParseSpecial accepts "", "none", "input" and "output" (case-insensitive).
func ParseSpecial(s string) (Special, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SpecialNone, nil
	case "input":
		return SpecialInput, nil
	case "output":
		return SpecialOutput, nil
	}
	return SpecialNone, fmt.Errorf("invalid special marker %q (must be 'none', 'input' or 'output')", s)
}

// Layer is a grid of identically shaped nodes anchored at its upper-left
// corner. Only Anchor is expected to change after construction, through
// [VerticalAlign] and [HorizontalAlign].
type Layer struct {
	Rows, Columns int
	Anchor        geom.Point
	Radius        float64
	VSpace        float64
	HSpace        float64
	Activation    activation.Activation
	Special       Special
}

// Option configures a Layer created with [New].
type Option func(*Layer)

func WithAnchor(x, y float64) Option { return func(l *Layer) { l.Anchor = geom.Pt(x, y) } }
func WithRadius(r float64) Option    { return func(l *Layer) { l.Radius = r } }
func WithSpacing(vspace, hspace float64) Option {
	return func(l *Layer) { l.VSpace, l.HSpace = vspace, hspace }
}
func WithActivation(a activation.Activation) Option { return func(l *Layer) { l.Activation = a } }
func WithSpecial(s Special) Option                  { return func(l *Layer) { l.Special = s } }

// New creates a layer with the default radius and spacing, anchored at the
// origin, with no activation.
func New(rows, columns int, opts ...Option) *Layer {
	l := &Layer{
		Rows:    rows,
		Columns: columns,
		Radius:  DefaultRadius,
		VSpace:  DefaultVSpace,
		HSpace:  DefaultHSpace,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NodeCount returns the number of nodes, 0 if either dimension is not positive.
func (l *Layer) NodeCount() int {
	if l.Rows <= 0 || l.Columns <= 0 {
		return 0
	}
	return l.Rows * l.Columns
}

// NodeCenters yields node centers column by column, top to bottom.
func (l *Layer) NodeCenters() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		x := l.Anchor.X + l.Radius
		for range max(l.Columns, 0) {
			y := l.Anchor.Y - l.Radius
			for range max(l.Rows, 0) {
				if !yield(geom.Pt(x, y)) {
					return
				}
				y -= 2*l.Radius + l.VSpace
			}
			x += 2*l.Radius + l.HSpace
		}
	}
}

// Nodes yields the derived node for every center, in [Layer.NodeCenters] order.
func (l *Layer) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := range l.NodeCenters() {
			n := Node{Center: c, Radius: l.Radius, Activation: l.Activation, Special: l.Special}
			if !yield(n) {
				return
			}
		}
	}
}

// Rect returns the layer's bounding rectangle grown by pad on every side.
// The corner is the upper-left point and the height is negative.
func (l *Layer) Rect(pad float64) geom.Rect {
	return geom.Rect{
		X: l.Anchor.X - pad,
		Y: l.Anchor.Y + pad,
		W: span(l.Columns, l.Radius, l.HSpace) + 2*pad,
		H: -(span(l.Rows, l.Radius, l.VSpace) + 2*pad),
	}
}

// span is the extent of n nodes of radius r separated by space.
func span(n int, r, space float64) float64 {
	if n <= 0 {
		return 0
	}
	return 2*r*float64(n) + float64(n-1)*space
}

// InboundNodeConnections yields the attachment point left of every node center.
func (l *Layer) InboundNodeConnections() iter.Seq[geom.Point] {
	return l.shiftedCenters(-connectorInset * l.Radius)
}

// OutboundNodeConnections yields the attachment point right of every node center.
func (l *Layer) OutboundNodeConnections() iter.Seq[geom.Point] {
	return l.shiftedCenters(connectorInset * l.Radius)
}

func (l *Layer) shiftedCenters(dx float64) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for c := range l.NodeCenters() {
			if !yield(c.Add(dx, 0)) {
				return
			}
		}
	}
}

// RectConn selects the rectangle a layer's rectangle connections refer to.
type RectConn struct {
	// Pad is the padding of the rectangle, as passed to [Layer.Rect].
	Pad float64
	// Width is the fraction of the rectangle's height between the two
	// connection slots.
	Width float64
}

// DefaultRectConn returns an unpadded rectangle with the default spread.
func DefaultRectConn() RectConn { return RectConn{Width: DefaultRectSpread} }

// InboundRectConnections returns the two slots on the rectangle's left edge.
func (l *Layer) InboundRectConnections(c RectConn) [2]geom.Point {
	r := l.Rect(c.Pad)
	return rectSlots(r, r.X, c.Width)
}

// OutboundRectConnections returns the two slots on the rectangle's right edge.
func (l *Layer) OutboundRectConnections(c RectConn) [2]geom.Point {
	r := l.Rect(c.Pad)
	return rectSlots(r, r.X+r.W, c.Width)
}

func rectSlots(r geom.Rect, x, width float64) [2]geom.Point {
	return [2]geom.Point{
		geom.Pt(x, r.Y+(0.5-width/2)*r.H),
		geom.Pt(x, r.Y+(0.5+width/2)*r.H),
	}
}

// VerticalAlign moves l1 vertically relative to l0. A ratio of 0.5 centers
// the layers on each other and 0 aligns their tops. Only l1 is modified.
func VerticalAlign(l0, l1 *Layer, ratio float64) {
	h0 := l0.Rect(0).H
	h1 := l1.Rect(0).H
	l1.Anchor.Y = l0.Anchor.Y - ratio*(h1-h0)
}

// HorizontalAlign places l1's anchor spacing units right of l0's anchor.
// Only l1 is modified.
func HorizontalAlign(l0, l1 *Layer, spacing float64) {
	l1.Anchor.X = l0.Anchor.X + spacing
}
