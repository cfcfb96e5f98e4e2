package diagram

import (
	"strings"
	"testing"

	"github.com/matzehuels/nnetplot/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func validDoc() *Document {
	return &Document{
		Layers: []LayerSpec{
			{Name: "in", Rows: 2, Columns: 1},
			{Name: "out", Rows: 3, Columns: 1},
		},
		Align:   []AlignSpec{{Kind: AlignHorizontal, From: "in", To: "out"}},
		Connect: []ConnectSpec{{From: "in", To: "out"}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		code    errors.Code
		errPart string
	}{
		{"valid", func(*Document) {}, "", ""},
		{"no layers", func(d *Document) { d.Layers = nil }, errors.ErrCodeInvalidDiagram, "layers: field is required"},
		{"missing name", func(d *Document) { d.Layers[0].Name = "" }, errors.ErrCodeInvalidDiagram, "layers[0].name"},
		{"negative rows", func(d *Document) { d.Layers[1].Rows = -1 }, errors.ErrCodeInvalidDiagram, "layers[1].rows: must be at least 0"},
		{"zero radius", func(d *Document) { d.Layers[0].Radius = ptr(0.0) }, errors.ErrCodeInvalidDiagram, "layers[0].radius"},
		{"bad special", func(d *Document) { d.Layers[0].Special = "hidden" }, errors.ErrCodeInvalidDiagram, "must be one of [none, input, output]"},
		{"bad draw", func(d *Document) { d.Layers[0].Draw = "circles" }, errors.ErrCodeInvalidDiagram, "layers[0].draw"},
		{"alpha too high", func(d *Document) { d.Layers[0].Rect = &RectSpec{Alpha: ptr(2.0)} }, errors.ErrCodeInvalidDiagram, "layers[0].rect.alpha: must not exceed 1"},
		{"bad align kind", func(d *Document) { d.Align[0].Kind = "diagonal" }, errors.ErrCodeInvalidDiagram, "align[0].kind"},
		{"invalid name", func(d *Document) { d.Layers[0].Name = "has space" }, errors.ErrCodeInvalidDiagram, "invalid layer name"},
		{"duplicate name", func(d *Document) { d.Layers[1].Name = "in" }, errors.ErrCodeInvalidDiagram, "duplicate layer name"},
		{"unknown align layer", func(d *Document) { d.Align[0].To = "hidden" }, errors.ErrCodeUnknownLayer, `align[0]: unknown layer "hidden"`},
		{"unknown connect layer", func(d *Document) { d.Connect[0].From = "x" }, errors.ErrCodeUnknownLayer, "connect[0]"},
		{"self align", func(d *Document) { d.Align[0].To = "in" }, errors.ErrCodeInvalidDiagram, "aligned to itself"},
		{"zero line width", func(d *Document) { d.Connect[0].LineWidth = ptr(0.0) }, errors.ErrCodeInvalidDiagram, "connect[0].line_width"},
		{"zero margin", func(d *Document) { d.Canvas.Margin = ptr(0.0) }, "", ""},
		{"zero scale", func(d *Document) { d.Canvas.Scale = ptr(0.0) }, errors.ErrCodeInvalidDiagram, "canvas.scale: must be greater than 0"},
		{"huge scale", func(d *Document) { d.Canvas.Scale = ptr(1e6) }, errors.ErrCodeInvalidDiagram, "canvas.scale: must not exceed 1000"},
		{"huge margin", func(d *Document) { d.Canvas.Margin = ptr(1e6) }, errors.ErrCodeInvalidDiagram, "canvas.margin: must not exceed 10"},
		{"huge rows", func(d *Document) { d.Layers[0].Rows = 1_000_000 }, errors.ErrCodeInvalidDiagram, "layers[0].rows: must not exceed 1000"},
		{"huge columns", func(d *Document) { d.Layers[1].Columns = 1_000_000 }, errors.ErrCodeInvalidDiagram, "layers[1].columns: must not exceed 1000"},
		{"too many nodes", func(d *Document) { d.Layers[0].Rows, d.Layers[0].Columns = 1000, 1000 }, errors.ErrCodeInvalidDiagram, "nodes exceed the limit"},
		{"too many connectors", func(d *Document) {
			d.Layers[0].Rows, d.Layers[0].Columns = 100, 50
			d.Layers[1].Rows, d.Layers[1].Columns = 100, 50
		}, errors.ErrCodeInvalidDiagram, "connector segments"},
		{"rect connectors", func(d *Document) {
			d.Layers[0].Rows, d.Layers[0].Columns = 100, 50
			d.Layers[1].Rows, d.Layers[1].Columns = 100, 50
			d.Layers[1].Draw = DrawRect
		}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)
			err := Validate(doc)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not contain %q", err, tt.errPart)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}
