package diagram

import (
	"fmt"

	"github.com/matzehuels/nnetplot/pkg/activation"
	"github.com/matzehuels/nnetplot/pkg/errors"
	"github.com/matzehuels/nnetplot/pkg/layout"
	"github.com/matzehuels/nnetplot/pkg/render"
)

// Diagram is a validated document with its layers positioned. Layers keep
// document order, which is also the paint order for equal z.
type Diagram struct {
	Title       string
	Canvas      Canvas
	Layers      []*Layer
	Connections []Connection
	// Warnings lists non-fatal problems, such as unknown activation names
	// that fall back to no curve.
	Warnings []string

	byName map[string]*Layer
}

// Layer pairs a positioned geometry layer with its drawing options.
type Layer struct {
	Name        string
	Geometry    *layout.Layer
	Draw        string
	Annotations []string
	Label       string
	LabelXPad   float64
	LabelYPad   float64
	Rect        render.RectOptions
}

// IsRect reports whether the layer is drawn as a single rectangle.
func (l *Layer) IsRect() bool { return l.Draw == DrawRect }

// Connection is a resolved connect block.
type Connection struct {
	From, To *Layer
	Mode     layout.Mode
	Out, In  layout.RectConn
	Style    render.LineStyle
}

// Layer returns the layer with the given name.
func (d *Diagram) Layer(name string) (*Layer, bool) {
	l, ok := d.byName[name]
	return l, ok
}

// Build validates doc, creates its layers, applies alignments in document
// order and resolves connections.
func Build(doc *Document) (*Diagram, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	d := &Diagram{
		Title:  doc.Title,
		Canvas: resolveCanvas(doc.Canvas),
		byName: make(map[string]*Layer, len(doc.Layers)),
	}

	for _, spec := range doc.Layers {
		l, warn, err := buildLayer(spec)
		if err != nil {
			return nil, err
		}
		if warn != "" {
			d.Warnings = append(d.Warnings, warn)
		}
		d.Layers = append(d.Layers, l)
		d.byName[l.Name] = l
	}

	for _, a := range doc.Align {
		from, to := d.byName[a.From].Geometry, d.byName[a.To].Geometry
		switch a.Kind {
		case AlignVertical:
			layout.VerticalAlign(from, to, orDefault(a.Ratio, DefaultAlignRatio))
		case AlignHorizontal:
			layout.HorizontalAlign(from, to, orDefault(a.Spacing, DefaultAlignSpacing))
		}
	}

	for _, c := range doc.Connect {
		d.Connections = append(d.Connections, d.buildConnection(c))
	}
	return d, nil
}

func resolveCanvas(c CanvasSpec) Canvas {
	return Canvas{
		Scale:      orDefault(c.Scale, DefaultScale),
		Margin:     orDefault(c.Margin, DefaultMargin),
		Background: c.Background,
		FontSize:   orDefault(c.FontSize, DefaultFontSize),
	}
}

func buildLayer(spec LayerSpec) (*Layer, string, error) {
	special, err := layout.ParseSpecial(spec.Special)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidDiagram, err, "layer %q", spec.Name)
	}

	var warn string
	act := activation.Named(spec.Activation)
	if spec.Activation != "" && !act.Valid() {
		warn = fmt.Sprintf("layer %q: unknown activation %q, no curve drawn", spec.Name, spec.Activation)
	}

	opts := []layout.Option{
		layout.WithAnchor(spec.X, spec.Y),
		layout.WithActivation(act),
		layout.WithSpecial(special),
	}
	if spec.Radius != nil {
		opts = append(opts, layout.WithRadius(*spec.Radius))
	}
	if spec.VSpace != nil || spec.HSpace != nil {
		opts = append(opts, layout.WithSpacing(
			orDefault(spec.VSpace, layout.DefaultVSpace),
			orDefault(spec.HSpace, layout.DefaultHSpace),
		))
	}

	draw := spec.Draw
	if draw == "" {
		draw = DrawNodes
	}
	return &Layer{
		Name:        spec.Name,
		Geometry:    layout.New(spec.Rows, spec.Columns, opts...),
		Draw:        draw,
		Annotations: spec.Annotations,
		Label:       spec.Label,
		LabelXPad:   spec.LabelXPad,
		LabelYPad:   spec.LabelYPad,
		Rect:        rectOptions(spec.Rect),
	}, warn, nil
}

func rectOptions(spec *RectSpec) render.RectOptions {
	opts := render.DefaultRectOptions()
	if spec == nil {
		return opts
	}
	opts.Pad = spec.Pad
	if spec.Activation != nil {
		opts.Activation = *spec.Activation
	}
	opts.Shape.Fill = spec.Fill
	if spec.FillColor != "" {
		opts.Shape.FillColor = spec.FillColor
	}
	if spec.EdgeColor != "" {
		opts.Shape.EdgeColor = spec.EdgeColor
	}
	opts.Shape.Alpha = orDefault(spec.Alpha, opts.Shape.Alpha)
	opts.Shape.Z = orDefault(spec.Z, opts.Shape.Z)
	return opts
}

func (d *Diagram) buildConnection(c ConnectSpec) Connection {
	from, to := d.byName[c.From], d.byName[c.To]
	style := render.DefaultConnectorStyle()
	if c.Color != "" {
		style.Color = c.Color
	}
	style.Width = orDefault(c.LineWidth, DefaultConnectorLine)
	return Connection{
		From:  from,
		To:    to,
		Mode:  layout.ModeFor(from.IsRect(), to.IsRect()),
		Out:   rectConn(c.Out),
		In:    rectConn(c.In),
		Style: style,
	}
}

func rectConn(spec *RectConnSpec) layout.RectConn {
	rc := layout.DefaultRectConn()
	if spec == nil {
		return rc
	}
	rc.Pad = spec.Pad
	rc.Width = orDefault(spec.Width, rc.Width)
	return rc
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
