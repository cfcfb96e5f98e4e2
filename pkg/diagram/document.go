package diagram

// Document is the declarative description of a diagram, decoded from TOML,
// YAML or JSON. Optional numeric fields are pointers so an explicit zero can
// be told apart from an omitted value.
type Document struct {
	Title   string        `toml:"title" yaml:"title" json:"title,omitempty"`
	Canvas  CanvasSpec    `toml:"canvas" yaml:"canvas" json:"canvas"`
	Layers  []LayerSpec   `toml:"layers" yaml:"layers" json:"layers" validate:"required,min=1,dive"`
	Align   []AlignSpec   `toml:"align" yaml:"align" json:"align,omitempty" validate:"dive"`
	Connect []ConnectSpec `toml:"connect" yaml:"connect" json:"connect,omitempty" validate:"dive"`
}

// CanvasSpec holds output-wide settings. Omitted values select the defaults;
// margin = 0 is a valid, borderless canvas.
type CanvasSpec struct {
	Scale      *float64 `toml:"scale" yaml:"scale" json:"scale,omitempty" validate:"omitempty,gt=0,lte=1000"`
	Margin     *float64 `toml:"margin" yaml:"margin" json:"margin,omitempty" validate:"omitempty,gte=0,lte=10"`
	Background string   `toml:"background" yaml:"background" json:"background,omitempty"`
	FontSize   *float64 `toml:"font_size" yaml:"font_size" json:"font_size,omitempty" validate:"omitempty,gt=0,lte=200"`
}

// Canvas is a CanvasSpec with every default filled in.
type Canvas struct {
	Scale      float64 `json:"scale"`
	Margin     float64 `json:"margin"`
	Background string  `json:"background,omitempty"`
	FontSize   float64 `json:"font_size"`
}

// LayerSpec declares one layer.
type LayerSpec struct {
	Name        string    `toml:"name" yaml:"name" json:"name" validate:"required"`
	Rows        int       `toml:"rows" yaml:"rows" json:"rows" validate:"gte=0,lte=1000"`
	Columns     int       `toml:"columns" yaml:"columns" json:"columns" validate:"gte=0,lte=1000"`
	X           float64   `toml:"x" yaml:"x" json:"x"`
	Y           float64   `toml:"y" yaml:"y" json:"y"`
	Radius      *float64  `toml:"radius" yaml:"radius" json:"radius,omitempty" validate:"omitempty,gt=0"`
	VSpace      *float64  `toml:"vspace" yaml:"vspace" json:"vspace,omitempty" validate:"omitempty,gte=0"`
	HSpace      *float64  `toml:"hspace" yaml:"hspace" json:"hspace,omitempty" validate:"omitempty,gte=0"`
	Activation  string    `toml:"activation" yaml:"activation" json:"activation,omitempty"`
	Special     string    `toml:"special" yaml:"special" json:"special,omitempty" validate:"omitempty,oneof=none input output"`
	Draw        string    `toml:"draw" yaml:"draw" json:"draw,omitempty" validate:"omitempty,oneof=nodes rect"`
	Annotations []string  `toml:"annotations" yaml:"annotations" json:"annotations,omitempty"`
	Label       string    `toml:"label" yaml:"label" json:"label,omitempty"`
	LabelXPad   float64   `toml:"label_xpad" yaml:"label_xpad" json:"label_xpad,omitempty"`
	LabelYPad   float64   `toml:"label_ypad" yaml:"label_ypad" json:"label_ypad,omitempty"`
	Rect        *RectSpec `toml:"rect" yaml:"rect" json:"rect,omitempty"`
}

// RectSpec styles a layer drawn as a rectangle.
type RectSpec struct {
	Pad        float64  `toml:"pad" yaml:"pad" json:"pad,omitempty" validate:"gte=0"`
	Activation *bool    `toml:"activation" yaml:"activation" json:"activation,omitempty"`
	Fill       bool     `toml:"fill" yaml:"fill" json:"fill,omitempty"`
	FillColor  string   `toml:"fill_color" yaml:"fill_color" json:"fill_color,omitempty"`
	Alpha      *float64 `toml:"alpha" yaml:"alpha" json:"alpha,omitempty" validate:"omitempty,gte=0,lte=1"`
	EdgeColor  string   `toml:"edge_color" yaml:"edge_color" json:"edge_color,omitempty"`
	Z          *float64 `toml:"z" yaml:"z" json:"z,omitempty"`
}

// AlignSpec moves the "to" layer relative to the "from" layer.
type AlignSpec struct {
	Kind    string   `toml:"kind" yaml:"kind" json:"kind" validate:"required,oneof=vertical horizontal"`
	From    string   `toml:"from" yaml:"from" json:"from" validate:"required"`
	To      string   `toml:"to" yaml:"to" json:"to" validate:"required"`
	Ratio   *float64 `toml:"ratio" yaml:"ratio" json:"ratio,omitempty"`
	Spacing *float64 `toml:"spacing" yaml:"spacing" json:"spacing,omitempty"`
}

// ConnectSpec draws connectors from one layer to the next.
type ConnectSpec struct {
	From      string        `toml:"from" yaml:"from" json:"from" validate:"required"`
	To        string        `toml:"to" yaml:"to" json:"to" validate:"required"`
	Out       *RectConnSpec `toml:"out" yaml:"out" json:"out,omitempty"`
	In        *RectConnSpec `toml:"in" yaml:"in" json:"in,omitempty"`
	Color     string        `toml:"color" yaml:"color" json:"color,omitempty"`
	LineWidth *float64      `toml:"line_width" yaml:"line_width" json:"line_width,omitempty" validate:"omitempty,gt=0"`
}

// RectConnSpec selects the rectangle connection slots on one side.
type RectConnSpec struct {
	Pad   float64  `toml:"pad" yaml:"pad" json:"pad,omitempty" validate:"gte=0"`
	Width *float64 `toml:"width" yaml:"width" json:"width,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Alignment kinds.
const (
	AlignVertical   = "vertical"
	AlignHorizontal = "horizontal"
)

// Draw modes.
const (
	DrawNodes = "nodes"
	DrawRect  = "rect"
)

// Document defaults.
const (
	DefaultScale         = 100.0
	DefaultMargin        = 0.2
	DefaultFontSize      = 12.0
	DefaultAlignRatio    = 0.5
	DefaultAlignSpacing  = 1.0
	DefaultConnectorLine = 1.0
)

// Size limits. Per-layer rows and columns are capped at 1000 by the field
// tags; these bound the whole document.
const (
	MaxScale      = 1000.0
	MaxMargin     = 10.0
	MaxNodes      = 10_000
	MaxConnectors = 250_000
)
