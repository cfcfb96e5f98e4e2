package render

// Default z-orders, matching the usual stacking of patches below lines below
// text. Connectors and layer rectangles are pushed behind everything.
const (
	ZShape     = 1.0
	ZCurve     = 2.0
	ZText      = 3.0
	ZBackplane = -10.0
)

// Colors used by the default styles.
const (
	ColorBlack     = "black"
	ColorWhite     = "white"
	ColorBlue      = "blue"
	ColorLightGrey = "#e6e6e6"
)

// ShapeStyle styles circles and rectangles.
type ShapeStyle struct {
	Fill      bool    `json:"fill"`
	FillColor string  `json:"fill_color,omitempty"`
	EdgeColor string  `json:"edge_color,omitempty"`
	LineWidth float64 `json:"line_width"`
	Alpha     float64 `json:"alpha"`
	Z         float64 `json:"z"`
}

// LineStyle styles connectors and activation curves.
type LineStyle struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Alpha float64 `json:"alpha"`
	Z     float64 `json:"z"`
}

// HAlign is the horizontal text anchor.
type HAlign string

// VAlign is the vertical text anchor.
type VAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"

	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "center"
	AlignBottom VAlign = "bottom"
)

// TextStyle styles annotations. Size is in points at a scale of 100 pixels
// per diagram unit.
type TextStyle struct {
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	HAlign HAlign  `json:"halign"`
	VAlign VAlign  `json:"valign"`
	Z      float64 `json:"z"`
}

// NodeStyle styles nodes drawn by [DrawNode].
type NodeStyle struct {
	Face        ShapeStyle
	SpecialFace ShapeStyle
	Curve       LineStyle
}

// RectOptions configures [DrawRect].
type RectOptions struct {
	// Pad grows the rectangle on every side.
	Pad float64
	// Activation draws one activation curve in the rectangle's center.
	Activation bool
	Shape      ShapeStyle
	Curve      LineStyle
}

// DefaultNodeStyle returns a white node with a black edge and a thick blue
// activation curve. Nodes of special layers get a light grey face.
func DefaultNodeStyle() NodeStyle {
	face := ShapeStyle{
		Fill:      true,
		FillColor: ColorWhite,
		EdgeColor: ColorBlack,
		LineWidth: 1,
		Alpha:     1,
		Z:         ZShape,
	}
	special := face
	special.FillColor = ColorLightGrey
	return NodeStyle{Face: face, SpecialFace: special, Curve: DefaultCurveStyle()}
}

// DefaultCurveStyle returns the style of activation curves.
func DefaultCurveStyle() LineStyle {
	return LineStyle{Color: ColorBlue, Width: 5, Alpha: 1, Z: ZCurve}
}

// DefaultRectOptions returns an unfilled, unpadded black outline behind the
// connectors, with an activation curve.
func DefaultRectOptions() RectOptions {
	return RectOptions{
		Activation: true,
		Shape: ShapeStyle{
			EdgeColor: ColorBlack,
			LineWidth: 1,
			Alpha:     1,
			Z:         ZBackplane,
		},
		Curve: DefaultCurveStyle(),
	}
}

// DefaultConnectorStyle returns thin black lines behind the nodes.
func DefaultConnectorStyle() LineStyle {
	return LineStyle{Color: ColorBlack, Width: 1, Alpha: 1, Z: ZBackplane}
}

// DefaultTextStyle returns black centered text.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		Color:  ColorBlack,
		Size:   12,
		HAlign: AlignCenter,
		VAlign: AlignMiddle,
		Z:      ZText,
	}
}
