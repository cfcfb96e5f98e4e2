package diagram

import (
	"github.com/matzehuels/nnetplot/pkg/layout"
	"github.com/matzehuels/nnetplot/pkg/render"
	"github.com/matzehuels/nnetplot/pkg/render/nodelink"
	"github.com/matzehuels/nnetplot/pkg/render/sink"
)

// DrawStats counts what [Diagram.Draw] emitted.
type DrawStats struct {
	Layers      int `json:"layers"`
	Nodes       int `json:"nodes"`
	Rects       int `json:"rects"`
	Connectors  int `json:"connectors"`
	Annotations int `json:"annotations"`
}

// Draw paints every layer, connection and annotation on s.
func (d *Diagram) Draw(s render.Surface) DrawStats {
	var st DrawStats
	nodeStyle := render.DefaultNodeStyle()
	text := render.DefaultTextStyle()
	text.Size = d.Canvas.FontSize

	for _, l := range d.Layers {
		st.Layers++
		if l.IsRect() {
			render.DrawRect(s, l.Geometry, l.Rect)
			st.Rects++
		} else {
			st.Nodes += render.DrawNodes(s, l.Geometry, nodeStyle)
		}
		st.Annotations += render.AnnotateNodes(s, l.Geometry, l.Annotations, text)
		if l.Label != "" {
			render.AnnotateRect(s, l.Geometry, l.Label, l.LabelXPad, l.LabelYPad, text)
			st.Annotations++
		}
	}

	for _, c := range d.Connections {
		st.Connectors += render.Connect(s, c.Mode, c.From.Geometry, c.To.Geometry, c.Out, c.In, c.Style)
	}
	return st
}

// Topology returns the layer graph for the node-link view.
func (d *Diagram) Topology() nodelink.Graph {
	g := nodelink.Graph{Title: d.Title}
	for _, l := range d.Layers {
		g.Vertices = append(g.Vertices, nodelink.Vertex{
			Name:       l.Name,
			Rows:       l.Geometry.Rows,
			Columns:    l.Geometry.Columns,
			Activation: render.ActivationLabel(l.Geometry.Activation),
			Special:    l.Geometry.Special.String(),
			Rect:       l.IsRect(),
		})
	}
	for _, c := range d.Connections {
		n := 0
		for range layout.Connect(c.Mode, c.From.Geometry, c.To.Geometry, c.Out, c.In) {
			n++
		}
		g.Edges = append(g.Edges, nodelink.Edge{From: c.From.Name, To: c.To.Name, Lines: n})
	}
	return g
}

// LayerInfos summarizes every positioned layer for JSON output.
func (d *Diagram) LayerInfos() []sink.LayerInfo {
	infos := make([]sink.LayerInfo, 0, len(d.Layers))
	for _, l := range d.Layers {
		g := l.Geometry
		pad := 0.0
		if l.IsRect() {
			pad = l.Rect.Pad
		}
		infos = append(infos, sink.LayerInfo{
			Name:       l.Name,
			Rows:       g.Rows,
			Columns:    g.Columns,
			Anchor:     g.Anchor,
			Rect:       g.Rect(pad),
			Activation: render.ActivationLabel(g.Activation),
			Special:    specialLabel(g.Special),
			Draw:       l.Draw,
		})
	}
	return infos
}

func specialLabel(s layout.Special) string {
	if !s.IsSpecial() {
		return ""
	}
	return s.String()
}
