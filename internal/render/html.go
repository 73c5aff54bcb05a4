package render

import (
	"fmt"
	"io"

	"github.com/banshee-data/halfspace.viz/internal/field"
	"github.com/banshee-data/halfspace.viz/internal/fsutil"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// symbolPx is the marker size of one grid sample in the HTML chart.
const symbolPx = 10

// chartMargin leaves room for axes, title and the visual map.
const chartMargin = 220

// minChartPx is the smallest edge a computed chart gets unless capped lower.
const minChartPx = 400

// NewChart builds the interactive chart: every grid sample is a square-ish
// marker coloured by probability, with the decision boundary as a white line.
func NewChart(g *field.Grid, o Options) *charts.Scatter {
	d := g.Domain
	n := g.Resolution()

	data := make([]opts.ScatterData, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x1, x2, z := g.At(i, j)
			data = append(data, opts.ScatterData{Value: []interface{}{x1, x2, z}})
		}
	}

	px := chartSize(n, o.ChartPx)
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  o.Title,
			Theme:      "dark",
			Width:      fmt.Sprintf("%dpx", px),
			Height:     fmt.Sprintf("%dpx", px),
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: g.Weights.Equation()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: d.X1Min, Max: d.X1Max, Name: "x_1", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: d.X2Min, Max: d.X2Max, Name: "x_2", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: HexStops(8)},
		}),
	)
	scatter.AddSeries("probability", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbolPx}))

	if seg, ok := field.Boundary(d, g.Weights); ok {
		line := charts.NewLine()
		line.AddSeries("decision boundary", []opts.LineData{
			{Value: []interface{}{seg.A.X1, seg.A.X2}},
			{Value: []interface{}{seg.B.X1, seg.B.X2}},
		}, charts.WithLineStyleOpts(opts.LineStyle{Color: "#ffffff"}))
		scatter.Overlap(line)
	}
	return scatter
}

// chartSize fits n markers per edge. Small grids get at least minChartPx;
// maxPx always wins.
func chartSize(n, maxPx int) int {
	px := n*symbolPx + chartMargin
	if px < minChartPx {
		px = minChartPx
	}
	if px > maxPx {
		px = maxPx
	}
	return px
}

// WriteHTML renders the interactive chart page to w.
func WriteHTML(w io.Writer, g *field.Grid, o Options) error {
	if err := NewChart(g, o).Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// SaveHTML writes the interactive chart page to path.
func SaveHTML(fsys fsutil.FileSystem, path string, g *field.Grid, o Options) error {
	f, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteHTML(f, g, o); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
