// Package field evaluates the probability surface of a two-feature
// half-space classifier over a rectangular domain.
//
// The surface is sigmoid(w1*x1 + w2*x2 + bias) sampled on a regular
// resolution x resolution grid. Rows of every grid matrix follow the x2
// axis and columns follow the x1 axis, so X1, X2 and Z line up element-wise.
package field

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BoundaryLevel is the probability at which the classifier switches class.
// Renderers draw the decision boundary as the contour at this level.
const BoundaryLevel = 0.5

// DefaultResolution is the number of samples per axis when none is given.
const DefaultResolution = 50

var (
	// ErrInvalidDomain is returned when an axis has min >= max, a bound is not
	// finite, or an axis is too wide to represent.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrInvalidResolution is returned when fewer than two samples per axis are requested.
	ErrInvalidResolution = errors.New("invalid resolution")
	// ErrInvalidWeights is returned when a weight or the bias is not finite.
	ErrInvalidWeights = errors.New("invalid weights")
)

// Domain is the axis-aligned rectangle the surface is evaluated over.
type Domain struct {
	X1Min float64 `json:"x1_min"`
	X1Max float64 `json:"x1_max"`
	X2Min float64 `json:"x2_min"`
	X2Max float64 `json:"x2_max"`
}

// Validate checks that both axes are finite, strictly increasing and have a
// representable width.
func (d Domain) Validate() error {
	for _, v := range []float64{d.X1Min, d.X1Max, d.X2Min, d.X2Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds must be finite, got %+v", ErrInvalidDomain, d)
		}
	}
	if d.X1Min >= d.X1Max {
		return fmt.Errorf("%w: x1 min %g must be less than x1 max %g", ErrInvalidDomain, d.X1Min, d.X1Max)
	}
	if d.X2Min >= d.X2Max {
		return fmt.Errorf("%w: x2 min %g must be less than x2 max %g", ErrInvalidDomain, d.X2Min, d.X2Max)
	}
	if math.IsInf(d.X1Max-d.X1Min, 0) || math.IsInf(d.X2Max-d.X2Min, 0) {
		return fmt.Errorf("%w: axis width overflows float64, got %+v", ErrInvalidDomain, d)
	}
	return nil
}

// Contains reports whether (x1, x2) lies inside the closed rectangle.
func (d Domain) Contains(x1, x2 float64) bool {
	return x1 >= d.X1Min && x1 <= d.X1Max && x2 >= d.X2Min && x2 <= d.X2Max
}

// Weights are the parameters of the linear term w1*x1 + w2*x2 + bias.
type Weights struct {
	W1   float64 `json:"weight1"`
	W2   float64 `json:"weight2"`
	Bias float64 `json:"bias"`
}

// Validate checks that every parameter is finite.
func (w Weights) Validate() error {
	for _, v := range []float64{w.W1, w.W2, w.Bias} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: parameters must be finite, got %+v", ErrInvalidWeights, w)
		}
	}
	return nil
}

// Linear returns w1*x1 + w2*x2 + bias.
func (w Weights) Linear(x1, x2 float64) float64 {
	return w.W1*x1 + w.W2*x2 + w.Bias
}

// Probability returns the classifier output at (x1, x2).
func (w Weights) Probability(x1, x2 float64) float64 {
	return Sigmoid(w.Linear(x1, x2))
}

// Sigmoid returns 1/(1+exp(-t)) without overflowing for large |t|.
// The result is always within [0, 1]; a NaN argument maps to BoundaryLevel.
func Sigmoid(t float64) float64 {
	switch {
	case math.IsNaN(t):
		return BoundaryLevel
	case t >= 0:
		return 1 / (1 + math.Exp(-t))
	default:
		e := math.Exp(t)
		return e / (1 + e)
	}
}

// ValidateResolution checks that at least two samples per axis are requested.
func ValidateResolution(resolution int) error {
	if resolution < 2 {
		return fmt.Errorf("%w: need at least 2 samples per axis, got %d", ErrInvalidResolution, resolution)
	}
	return nil
}

// Grid holds the sampled coordinates and probabilities.
type Grid struct {
	// X1s and X2s are the per-axis samples, in increasing order.
	X1s []float64
	X2s []float64

	// X1, X2 and Z are resolution x resolution; element (i, j) is the
	// point (X1s[j], X2s[i]).
	X1 *mat.Dense
	X2 *mat.Dense
	Z  *mat.Dense

	Domain  Domain
	Weights Weights
}

// Evaluate samples the probability surface of w over d at the given resolution.
func Evaluate(d Domain, w Weights, resolution int) (*Grid, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateResolution(resolution); err != nil {
		return nil, err
	}

	n := resolution
	x1s := floats.Span(make([]float64, n), d.X1Min, d.X1Max)
	x2s := floats.Span(make([]float64, n), d.X2Min, d.X2Max)
	// Pin the upper bounds so the last sample is the domain edge itself.
	x1s[n-1], x2s[n-1] = d.X1Max, d.X2Max

	g := &Grid{
		X1s:     x1s,
		X2s:     x2s,
		X1:      mat.NewDense(n, n, nil),
		X2:      mat.NewDense(n, n, nil),
		Z:       mat.NewDense(n, n, nil),
		Domain:  d,
		Weights: w,
	}
	for i, x2 := range x2s {
		for j, x1 := range x1s {
			g.X1.Set(i, j, x1)
			g.X2.Set(i, j, x2)
			g.Z.Set(i, j, w.Probability(x1, x2))
		}
	}
	return g, nil
}

// Resolution returns the number of samples per axis.
func (g *Grid) Resolution() int {
	return len(g.X1s)
}

// At returns the coordinates and probability of cell (row, col).
func (g *Grid) At(row, col int) (x1, x2, z float64) {
	return g.X1.At(row, col), g.X2.At(row, col), g.Z.At(row, col)
}

// ZRange returns the smallest and largest probability on the grid.
func (g *Grid) ZRange() (lo, hi float64) {
	return mat.Min(g.Z), mat.Max(g.Z)
}

// Model is the validated, immutable input of one visualisation run.
type Model struct {
	domain     Domain
	weights    Weights
	resolution int
}

// NewModel validates its inputs and returns a Model.
func NewModel(d Domain, w Weights, resolution int) (Model, error) {
	if err := d.Validate(); err != nil {
		return Model{}, err
	}
	if err := w.Validate(); err != nil {
		return Model{}, err
	}
	if err := ValidateResolution(resolution); err != nil {
		return Model{}, err
	}
	return Model{domain: d, weights: w, resolution: resolution}, nil
}

// Domain returns the model's rectangle.
func (m Model) Domain() Domain { return m.domain }

// Weights returns the model's parameters.
func (m Model) Weights() Weights { return m.weights }

// Resolution returns the samples per axis.
func (m Model) Resolution() int { return m.resolution }

// Evaluate samples the model's probability surface.
func (m Model) Evaluate() (*Grid, error) {
	return Evaluate(m.domain, m.weights, m.resolution)
}
