// Package activation resolves activation selectors and samples their curves
// for drawing inside node glyphs.
//
// # Selectors
//
// An [Activation] is a closed variant resolved once at construction:
//
//	a := activation.Named("sigmoid")      // built-in
//	b := activation.FromFunc(myFunc)      // custom
//	c := activation.Named("swish")        // unknown: resolves to None
//
// The built-in curves are scaled to a node's radius:
//
//   - relu: -r/4 for x <= 0, x - r/4 otherwise
//   - sigmoid: r / (1 + exp(-100 r x)) - r/2, bounded by [-r/2, r/2]
//   - linear: x
//
// None never fails; it simply yields no samples, so callers skip the curve.
//
// # Sampling
//
// [Activation.Samples] evaluates the function at [SampleCount] evenly spaced
// positions spanning the node's horizontal diameter and returns absolute
// points. The sequence is recomputed on every iteration:
//
//	for p := range activation.Named("relu").Samples(center, 0.2) {
//	    path = append(path, p)
//	}
package activation
