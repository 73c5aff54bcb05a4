package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundary(t *testing.T) {
	tests := []struct {
		name    string
		domain  Domain
		weights Weights
		want    Segment
		wantOK  bool
	}{
		{
			name:    "diagonal",
			domain:  unitSquare,
			weights: Weights{W1: 1, W2: -1},
			want:    Segment{A: Point{-1, -1}, B: Point{1, 1}},
			wantOK:  true,
		},
		{
			name:    "vertical",
			domain:  unitSquare,
			weights: Weights{W1: 2, Bias: -1},
			want:    Segment{A: Point{0.5, -1}, B: Point{0.5, 1}},
			wantOK:  true,
		},
		{
			name:    "horizontal",
			domain:  Domain{X1Min: 0, X1Max: 4, X2Min: 0, X2Max: 4},
			weights: Weights{W2: 1, Bias: -3},
			want:    Segment{A: Point{0, 3}, B: Point{4, 3}},
			wantOK:  true,
		},
		{
			name:    "corner touch",
			domain:  Domain{X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1},
			weights: Weights{W1: 1, W2: 1, Bias: -2},
			want:    Segment{A: Point{1, 1}, B: Point{1, 1}},
			wantOK:  true,
		},
		{
			name:    "outside domain",
			domain:  unitSquare,
			weights: Weights{W1: 1, Bias: -5},
			wantOK:  false,
		},
		{
			name:    "bias only",
			domain:  unitSquare,
			weights: Weights{Bias: 5},
			wantOK:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Boundary(tt.domain, tt.weights)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.InDelta(t, 0, tt.weights.Linear(got.A.X1, got.A.X2), 1e-12)
				assert.InDelta(t, 0, tt.weights.Linear(got.B.X1, got.B.X2), 1e-12)
			}
		})
	}
}

func TestEquation(t *testing.T) {
	assert.Equal(t, "h(x) = sigmoid(1.0x_1 + 0.0x_2 + 0.0)", Weights{W1: 1}.Equation())
	assert.Equal(t, "1.5x_1 + -2.0x_2 + 0.25", Weights{W1: 1.5, W2: -2, Bias: 0.25}.Expression())
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{-3, "-3.0"},
		{0.1, "0.1"},
		{123456.0, "123456.0"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{-2.5e-7, "-2.5e-07"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFloat(tt.in))
		})
	}
}
