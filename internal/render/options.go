// Package render draws a probability grid as a heatmap with the decision
// boundary overlaid, either as a static image (gonum/plot) or as an
// interactive HTML chart (go-echarts).
package render

import (
	"github.com/banshee-data/halfspace.viz/internal/config"
	"github.com/banshee-data/halfspace.viz/internal/field"
	"gonum.org/v1/plot/plotter"
)

// Options controls the look of rendered output.
type Options struct {
	Title         string
	WidthInches   float64
	HeightInches  float64
	PaletteColors int
	ChartPx       int
	AssetsHost    string
}

// OptionsFromConfig resolves Options from render settings.
func OptionsFromConfig(cfg *config.RenderConfig) Options {
	return Options{
		Title:         cfg.GetTitle(),
		WidthInches:   cfg.GetWidthInches(),
		HeightInches:  cfg.GetHeightInches(),
		PaletteColors: cfg.GetPaletteColors(),
		ChartPx:       cfg.GetChartPx(),
		AssetsHost:    cfg.GetAssetsHost(),
	}
}

// DefaultOptions returns Options with every setting at its default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.EmptyRenderConfig())
}

// gridXYZ adapts a field.Grid to plotter.GridXYZ. Columns follow x1, rows x2.
type gridXYZ struct {
	g *field.Grid
}

var _ plotter.GridXYZ = gridXYZ{}

func (x gridXYZ) Dims() (c, r int) {
	r, c = x.g.Z.Dims()
	return c, r
}

func (x gridXYZ) Z(c, r int) float64 { return x.g.Z.At(r, c) }
func (x gridXYZ) X(c int) float64    { return x.g.X1s[c] }
func (x gridXYZ) Y(r int) float64    { return x.g.X2s[r] }
