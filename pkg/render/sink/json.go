package sink

import (
	"encoding/json"

	"github.com/matzehuels/nnetplot/pkg/geom"
	"github.com/matzehuels/nnetplot/pkg/render/scene"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title  string
	layers []LayerInfo
}

// LayerInfo summarizes one diagram layer in JSON output.
type LayerInfo struct {
	Name       string     `json:"name"`
	Rows       int        `json:"rows"`
	Columns    int        `json:"columns"`
	Anchor     geom.Point `json:"anchor"`
	Rect       geom.Rect  `json:"rect"`
	Activation string     `json:"activation,omitempty"`
	Special    string     `json:"special,omitempty"`
	Draw       string     `json:"draw"`
}

// WithJSONTitle records the diagram title.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONLayers includes per-layer geometry after alignment.
func WithJSONLayers(layers []LayerInfo) JSONOption {
	return func(r *jsonRenderer) { r.layers = layers }
}

type jsonOutput struct {
	Title  string       `json:"title,omitempty"`
	Bounds *geom.Bounds `json:"bounds,omitempty"`
	Counts jsonCounts   `json:"counts"`
	Layers []LayerInfo  `json:"layers,omitempty"`
	Ops    []scene.Op   `json:"ops"`
}

type jsonCounts struct {
	Circles int `json:"circles"`
	Rects   int `json:"rects"`
	Lines   int `json:"lines"`
	Curves  int `json:"curves"`
	Texts   int `json:"texts"`
}

// RenderJSON exports the recorded primitives in data coordinates, in paint
// order, as a pretty-printed JSON document. Bounds are omitted for an empty
// scene.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title: r.title,
		Counts: jsonCounts{
			Circles: s.Count(scene.KindCircle),
			Rects:   s.Count(scene.KindRect),
			Lines:   s.Count(scene.KindLine),
			Curves:  s.Count(scene.KindCurve),
			Texts:   s.Count(scene.KindText),
		},
		Layers: r.layers,
		Ops:    s.Ops(),
	}
	if b := s.Bounds(); !b.IsEmpty() {
		out.Bounds = &b
	}
	if out.Ops == nil {
		out.Ops = []scene.Op{}
	}
	return json.MarshalIndent(out, "", "  ")
}
