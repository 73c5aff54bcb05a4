package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/banshee-data/halfspace.viz/internal/field"
	"github.com/banshee-data/halfspace.viz/internal/fsutil"
	"github.com/banshee-data/halfspace.viz/internal/monitoring"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// ErrUnsupportedFormat is returned for image formats gonum/plot cannot write.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// colorBarFraction is the share of the canvas width given to the colour bar.
const colorBarFraction = 0.14

var formats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
	"svg": true, "pdf": true, "eps": true,
}

// FormatFromPath returns the image format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !formats[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return ext, nil
}

// NewPlots builds the heatmap plot, with the boundary contour, and its
// matching colour bar.
func NewPlots(g *field.Grid, o Options) (heat, bar *plot.Plot, err error) {
	if o.PaletteColors < 2 {
		return nil, nil, fmt.Errorf("palette needs at least 2 colors, got %d", o.PaletteColors)
	}
	cm := NewCoolMap()
	xyz := gridXYZ{g: g}

	heat = plot.New()
	heat.Title.Text = o.Title + "\n" + g.Weights.Expression()
	heat.X.Label.Text = "x_1"
	heat.Y.Label.Text = "x_2"

	hm := plotter.NewHeatMap(xyz, cm.Palette(o.PaletteColors))
	hm.Min, hm.Max = 0, 1
	heat.Add(hm)

	ct := plotter.NewContour(xyz, []float64{field.BoundaryLevel}, Colors{color.White})
	ct.LineStyles = []draw.LineStyle{{Color: color.White, Width: vg.Points(1.5)}}
	heat.Add(ct)

	heat.X.Min, heat.X.Max = g.Domain.X1Min, g.Domain.X1Max
	heat.Y.Min, heat.Y.Max = g.Domain.X2Min, g.Domain.X2Max

	bar = plot.New()
	bar.HideX()
	bar.Y.Label.Text = "P(y=1)"
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})

	return heat, bar, nil
}

// WriteImage renders g in the given format (see FormatFromPath) to w.
func WriteImage(w io.Writer, g *field.Grid, o Options, format string) error {
	if !formats[format] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	heat, bar, err := NewPlots(g, o)
	if err != nil {
		return err
	}

	cw, err := draw.NewFormattedCanvas(vg.Length(o.WidthInches)*vg.Inch, vg.Length(o.HeightInches)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}
	dc := draw.New(cw)
	width := dc.Rectangle.Size().X
	barWidth := width * colorBarFraction

	heat.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, width-barWidth, 0, 0, 0))

	if _, err := cw.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// SaveImage renders g to path, creating parent directories as needed.
func SaveImage(fsys fsutil.FileSystem, path string, g *field.Grid, o Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteImage(f, g, o, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	monitoring.Logf("wrote %s (%dx%d grid)", path, g.Resolution(), g.Resolution())
	return nil
}
