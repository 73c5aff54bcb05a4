// Command halfspace plots the probability surface and decision boundary of a
// two-feature half-space classifier h(x) = sigmoid(w1*x1 + w2*x2 + bias).
//
// Usage:
//
//	halfspace                                  # prompt for bounds and weights, open the chart
//	halfspace -params -1,1,-1,1,1,0,0 -out boundary.png -no-serve
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/halfspace.viz/internal/config"
	"github.com/banshee-data/halfspace.viz/internal/field"
	"github.com/banshee-data/halfspace.viz/internal/fsutil"
	"github.com/banshee-data/halfspace.viz/internal/monitoring"
	"github.com/banshee-data/halfspace.viz/internal/prompt"
	"github.com/banshee-data/halfspace.viz/internal/render"
	"github.com/banshee-data/halfspace.viz/internal/serve"
	"github.com/banshee-data/halfspace.viz/internal/version"
)

// options holds the parsed command line.
type options struct {
	params      string
	configPath  string
	resolution  int
	outPath     string
	htmlPath    string
	listen      string
	serve       bool
	openBrowser bool
}

func main() {
	params := flag.String("params", "", "Seven comma-separated values x1min,x1max,x2min,x2max,w1,w2,bias (skips prompts)")
	configPath := flag.String("config", "", "Path to a JSON render settings file")
	resolution := flag.Int("resolution", 0, "Samples per axis, at least 2 (overrides config when non-zero; default 50)")
	outPath := flag.String("out", "", "Write the static plot to this file (png, svg, pdf, jpg, tif, eps)")
	htmlPath := flag.String("html", "", "Write the interactive chart to this HTML file")
	listen := flag.String("listen", serve.DefaultAddress, "Listen address for the interactive display")
	noServe := flag.Bool("no-serve", false, "Do not start the interactive display; exit after writing files")
	noBrowser := flag.Bool("no-browser", false, "Do not open a browser window for the interactive display")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.Verbose = *verbose

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	o := options{
		params:      *params,
		configPath:  *configPath,
		resolution:  *resolution,
		outPath:     *outPath,
		htmlPath:    *htmlPath,
		listen:      *listen,
		serve:       !*noServe,
		openBrowser: !*noBrowser,
	}
	if err := run(ctx, o, prompt.NewStdio(), fsutil.OSFileSystem{}, os.Stdout); err != nil {
		log.Fatalf("halfspace: %v", err)
	}
}

// run reads the model, evaluates it and hands the grid to the renderers.
func run(ctx context.Context, o options, p *prompt.Prompter, fsys fsutil.FileSystem, stdout io.Writer) error {
	cfg := config.EmptyRenderConfig()
	if o.configPath != "" {
		loaded, err := config.LoadRenderConfig(fsys, o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg = cfg.WithResolution(o.resolution)

	var (
		d   field.Domain
		w   field.Weights
		err error
	)
	if o.params != "" {
		d, w, err = prompt.ParseParams(o.params)
	} else {
		d, w, err = p.Read()
	}
	if err != nil {
		return err
	}

	model, err := field.NewModel(d, w, cfg.GetResolution())
	if err != nil {
		return err
	}
	grid, err := model.Evaluate()
	if err != nil {
		return err
	}
	lo, hi := grid.ZRange()
	monitoring.Debugf("evaluated %dx%d grid, probability in [%g, %g]", grid.Resolution(), grid.Resolution(), lo, hi)
	writeSummary(stdout, grid)

	ropts := render.OptionsFromConfig(cfg)
	if o.outPath != "" {
		if err := render.SaveImage(fsys, o.outPath, grid, ropts); err != nil {
			return err
		}
	}
	if o.htmlPath != "" {
		if err := render.SaveHTML(fsys, o.htmlPath, grid, ropts); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", o.htmlPath)
	}
	if !o.serve {
		return nil
	}

	sc := serve.Config{Address: o.listen, Grid: grid, Options: ropts}
	if o.openBrowser {
		sc.Open = serve.OpenBrowser
	}
	return serve.NewServer(sc).Start(ctx)
}

// writeSummary prints the probability range and where the boundary crosses the domain.
func writeSummary(out io.Writer, g *field.Grid) {
	lo, hi := g.ZRange()
	fmt.Fprintf(out, "probability range over %dx%d grid: [%.4f, %.4f]\n", g.Resolution(), g.Resolution(), lo, hi)
	if seg, ok := field.Boundary(g.Domain, g.Weights); ok {
		fmt.Fprintf(out, "decision boundary (p=%g) from (%g, %g) to (%g, %g)\n",
			field.BoundaryLevel, seg.A.X1, seg.A.X2, seg.B.X1, seg.B.X2)
		return
	}
	fmt.Fprintf(out, "no decision boundary (p=%g) inside the domain\n", field.BoundaryLevel)
}
