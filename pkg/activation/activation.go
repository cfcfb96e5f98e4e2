package activation

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/matzehuels/nnetplot/pkg/geom"
)

// SampleCount is the number of points produced for every curve.
const SampleCount = 50

// Func maps a horizontal offset from a node's center to a vertical offset.
// y is the node's absolute center height and radius its visual radius.
type Func func(x, y, radius float64) float64

// Kind identifies which function an [Activation] resolves to.
type Kind int

const (
	None Kind = iota
	ReLU
	Sigmoid
	Linear
	Custom
)

// Names of the built-in activations as accepted by [Named].
const (
	NameReLU    = "relu"
	NameSigmoid = "sigmoid"
	NameLinear  = "linear"
	NameCustom  = "custom"
)

var kindNames = map[Kind]string{
	None:    "",
	ReLU:    NameReLU,
	Sigmoid: NameSigmoid,
	Linear:  NameLinear,
	Custom:  NameCustom,
}

func (k Kind) String() string {
	if k == None {
		return "none"
	}
	return kindNames[k]
}

// Activation is a resolved activation selector. The zero value is None and
// draws no curve.
type Activation struct {
	kind Kind
	fn   Func
}

// Named resolves one of the built-in names (case-insensitive). Any other
// name resolves to None.
func Named(name string) Activation {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameReLU:
		return Activation{kind: ReLU, fn: relu}
	case NameSigmoid:
		return Activation{kind: Sigmoid, fn: sigmoid}
	case NameLinear:
		return Activation{kind: Linear, fn: linear}
	}
	return Activation{}
}

// FromFunc wraps a custom function. A nil function resolves to None.
func FromFunc(fn Func) Activation {
	if fn == nil {
		return Activation{}
	}
	return Activation{kind: Custom, fn: fn}
}

// Known reports whether name is one of the built-in activations.
func Known(name string) bool { return Named(name).kind != None }

func (a Activation) Kind() Kind { return a.kind }

// Valid reports whether a resolves to a function.
func (a Activation) Valid() bool { return a.kind != None && a.fn != nil }

// String returns the activation name, "custom" for custom functions and
// "none" when nothing is resolved.
func (a Activation) String() string { return a.kind.String() }

// Eval returns the vertical offset for x. It returns 0 for None.
func (a Activation) Eval(x, y, radius float64) float64 {
	if !a.Valid() {
		return 0
	}
	return a.fn(x, y, radius)
}

// Samples returns the curve of a across the horizontal diameter of the
// circle centered at center. The sequence is empty for None.
func (a Activation) Samples(center geom.Point, radius float64) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		if !a.Valid() {
			return
		}
		lo, hi := center.X-radius, center.X+radius
		step := (hi - lo) / float64(SampleCount-1)
		for i := range SampleCount {
			x := lo + float64(i)*step
			if i == SampleCount-1 {
				x = hi
			}
			if !yield(geom.Point{X: x, Y: center.Y + a.fn(x-center.X, center.Y, radius)}) {
				return
			}
		}
	}
}

// MarshalText encodes the activation name. None encodes as an empty string.
func (a Activation) MarshalText() ([]byte, error) {
	return []byte(kindNames[a.kind]), nil
}

// UnmarshalText resolves a name with the same rules as [Named], except that
// unknown non-empty names are reported as errors.
func (a *Activation) UnmarshalText(text []byte) error {
	name := string(text)
	*a = Named(name)
	if a.kind == None && strings.TrimSpace(name) != "" {
		return fmt.Errorf("unknown activation %q", name)
	}
	return nil
}

func relu(x, _, radius float64) float64 {
	if x <= 0 {
		return -radius / 4
	}
	return x - radius/4
}

func sigmoid(x, _, radius float64) float64 {
	return radius/(1+math.Exp(-radius*100*x)) - radius/2
}

func linear(x, _, _ float64) float64 { return x }
