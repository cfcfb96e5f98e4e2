package scene

import (
	"testing"

	"github.com/matzehuels/nnetplot/pkg/activation"
	"github.com/matzehuels/nnetplot/pkg/geom"
	"github.com/matzehuels/nnetplot/pkg/layout"
	"github.com/matzehuels/nnetplot/pkg/render"
)

func TestOpsPaintOrder(t *testing.T) {
	s := New()
	s.Text(geom.Pt(0, 0), "a", render.DefaultTextStyle())
	s.Line(geom.Pt(0, 0), geom.Pt(1, 1), render.DefaultConnectorStyle())
	s.Circle(geom.Circle{Radius: 1}, render.DefaultNodeStyle().Face)
	s.Line(geom.Pt(1, 1), geom.Pt(2, 2), render.DefaultConnectorStyle())

	ops := s.Ops()
	want := []Kind{KindLine, KindLine, KindCircle, KindText}
	for i, k := range want {
		if ops[i].Kind != k {
			t.Fatalf("ops[%d] = %s, want %s", i, ops[i].Kind, k)
		}
	}
	// stable within equal z
	if ops[0].Seq > ops[1].Seq {
		t.Errorf("lines out of insertion order: %d, %d", ops[0].Seq, ops[1].Seq)
	}
}

func TestCurveCopiesPoints(t *testing.T) {
	s := New()
	pts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	s.Curve(pts, render.Clip{}, render.DefaultCurveStyle())
	pts[0].X = 99
	if got := s.Ops()[0].Points[0].X; got != 0 {
		t.Errorf("recorded point changed to %v", got)
	}
}

func TestEmptyCurveIgnored(t *testing.T) {
	s := New()
	s.Curve(nil, render.Clip{}, render.DefaultCurveStyle())
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Scene)
		want geom.Bounds
	}{
		{
			name: "circle",
			draw: func(s *Scene) { s.Circle(geom.Circle{Center: geom.Pt(1, 1), Radius: 0.5}, render.ShapeStyle{}) },
			want: geom.Bounds{MinX: 0.5, MinY: 0.5, MaxX: 1.5, MaxY: 1.5},
		},
		{
			name: "downward rect",
			draw: func(s *Scene) { s.Rect(geom.Rect{X: 0, Y: 0, W: 2, H: -3}, render.ShapeStyle{}) },
			want: geom.Bounds{MinX: 0, MinY: -3, MaxX: 2, MaxY: 0},
		},
		{
			name: "clipped curve uses clip",
			draw: func(s *Scene) {
				c := geom.Circle{Center: geom.Pt(0, 0), Radius: 1}
				s.Curve([]geom.Point{{X: -5, Y: 0}, {X: 5, Y: 0}}, render.CircleClip(c), render.LineStyle{})
			},
			want: geom.Bounds{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1},
		},
		{
			name: "line and text",
			draw: func(s *Scene) {
				s.Line(geom.Pt(0, 0), geom.Pt(1, 2), render.LineStyle{})
				s.Text(geom.Pt(-1, 0), "x", render.TextStyle{})
			},
			want: geom.Bounds{MinX: -1, MinY: 0, MaxX: 1, MaxY: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.draw(s)
			if got := s.Bounds(); got != tt.want {
				t.Errorf("Bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEmptySceneBounds(t *testing.T) {
	if !New().Bounds().IsEmpty() {
		t.Error("empty scene should have empty bounds")
	}
}

func TestRecordLayer(t *testing.T) {
	s := New()
	l := layout.New(3, 1, layout.WithActivation(activation.Named("relu")))
	render.DrawNodes(s, l, render.DefaultNodeStyle())

	if got := s.Count(KindCircle); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	if got := s.Count(KindCurve); got != 3 {
		t.Errorf("curves = %d, want 3", got)
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after Reset = %d", s.Len())
	}
}
