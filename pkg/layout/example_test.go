package layout_test

import (
	"fmt"

	"github.com/matzehuels/nnetplot/pkg/activation"
	"github.com/matzehuels/nnetplot/pkg/layout"
)

func ExampleLayer_NodeCenters() {
	l := layout.New(2, 2, layout.WithRadius(0.5), layout.WithSpacing(0, 0))
	for c := range l.NodeCenters() {
		fmt.Printf("(%.1f, %.1f)\n", c.X, c.Y)
	}
	// Output:
	// (0.5, -0.5)
	// (0.5, -1.5)
	// (1.5, -0.5)
	// (1.5, -1.5)
}

func ExampleVerticalAlign() {
	state := layout.New(1, 1, layout.WithSpecial(layout.SpecialInput))
	hidden := layout.New(4, 1, layout.WithActivation(activation.Named("sigmoid")))

	layout.VerticalAlign(state, hidden, 0.5)
	layout.HorizontalAlign(state, hidden, 1)

	fmt.Printf("anchor (%.2f, %.2f)\n", hidden.Anchor.X, hidden.Anchor.Y)
	// Output:
	// anchor (1.00, 0.75)
}

func ExampleNodesToNodes() {
	in := layout.New(2, 1)
	out := layout.New(3, 1, layout.WithAnchor(1, 0))

	n := 0
	for range layout.NodesToNodes(in, out) {
		n++
	}
	fmt.Println(n, "segments")
	// Output:
	// 6 segments
}
