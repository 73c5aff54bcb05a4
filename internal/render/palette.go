package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// CoolMap is a linear colour map from cyan at Min to magenta at Max,
// the same ramp as matplotlib's "cool".
type CoolMap struct {
	min, max float64
	alpha    float64
}

// NewCoolMap returns a CoolMap over the probability range [0, 1].
func NewCoolMap() *CoolMap {
	return &CoolMap{min: 0, max: 1, alpha: 1}
}

// At implements palette.ColorMap.
func (c *CoolMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < c.min:
		return nil, palette.ErrUnderflow
	case v > c.max:
		return nil, palette.ErrOverflow
	}
	var f float64
	if c.max > c.min {
		f = (v - c.min) / (c.max - c.min)
	}
	return cool(f, c.alpha), nil
}

func (c *CoolMap) Min() float64       { return c.min }
func (c *CoolMap) Max() float64       { return c.max }
func (c *CoolMap) SetMin(v float64)   { c.min = v }
func (c *CoolMap) SetMax(v float64)   { c.max = v }
func (c *CoolMap) Alpha() float64     { return c.alpha }
func (c *CoolMap) SetAlpha(a float64) { c.alpha = a }

// Palette samples n evenly spaced colours from Min to Max.
func (c *CoolMap) Palette(n int) palette.Palette {
	if n <= 0 {
		return Colors(nil)
	}
	if n == 1 {
		return Colors{cool(0.5, c.alpha)}
	}
	out := make(Colors, n)
	for i := range out {
		out[i] = cool(float64(i)/float64(n-1), c.alpha)
	}
	return out
}

// Colors is a fixed palette.
type Colors []color.Color

// Colors implements palette.Palette.
func (p Colors) Colors() []color.Color { return p }

// cool maps f in [0,1] onto the cyan-magenta ramp.
func cool(f, alpha float64) color.NRGBA {
	return color.NRGBA{
		R: to8(f),
		G: to8(1 - f),
		B: 255,
		A: to8(alpha),
	}
}

func to8(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// HexStops returns n CSS colours along the ramp, for renderers that take strings.
func HexStops(n int) []string {
	colors := NewCoolMap().Palette(n).Colors()
	out := make([]string, len(colors))
	for i, c := range colors {
		nc := c.(color.NRGBA)
		out[i] = fmt.Sprintf("#%02x%02x%02x", nc.R, nc.G, nc.B)
	}
	return out
}
