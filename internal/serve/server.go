// Package serve displays a rendered probability grid in the browser.
package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/banshee-data/halfspace.viz/internal/field"
	"github.com/banshee-data/halfspace.viz/internal/monitoring"
	"github.com/banshee-data/halfspace.viz/internal/render"
	"gonum.org/v1/gonum/mat"
)

// DefaultAddress binds an ephemeral loopback port.
const DefaultAddress = "localhost:0"

// Config contains configuration options for the display server.
type Config struct {
	Address string
	Grid    *field.Grid
	Options render.Options

	// Open is called with the page URL once the listener is ready.
	// Nil means the URL is only logged.
	Open func(url string) error
}

// Server serves the interactive chart, the static image and the raw grid.
type Server struct {
	address string
	grid    *field.Grid
	options render.Options
	open    func(url string) error
	server  *http.Server
}

// NewServer creates a display server for cfg.Grid.
func NewServer(cfg Config) *Server {
	s := &Server{
		address: cfg.Address,
		grid:    cfg.Grid,
		options: cfg.Options,
		open:    cfg.Open,
	}
	if s.address == "" {
		s.address = DefaultAddress
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleChart)
	mux.HandleFunc("GET /plot.png", s.handlePlot)
	mux.HandleFunc("GET /grid.json", s.handleGrid)
	return mux
}

// Start listens, opens the page and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to create listener for HTTP server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	url := "http://" + ln.Addr().String() + "/"
	monitoring.Logf("probability field available at %s (Ctrl-C to quit)", url)
	if s.open != nil {
		if err := s.open(url); err != nil {
			monitoring.Logf("failed to open browser: %v", err)
		}
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	monitoring.Debugf("HTTP server stopped")
	return nil
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, s.grid, s.options); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.WriteImage(&buf, s.grid, s.options, "png"); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// gridResponse is the /grid.json payload.
type gridResponse struct {
	Domain        field.Domain   `json:"domain"`
	Weights       field.Weights  `json:"weights"`
	Equation      string         `json:"equation"`
	BoundaryLevel float64        `json:"boundary_level"`
	Boundary      *field.Segment `json:"boundary"`
	X1            []float64      `json:"x1"`
	X2            []float64      `json:"x2"`
	Z             [][]float64    `json:"z"`
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	g := s.grid
	resp := gridResponse{
		Domain:        g.Domain,
		Weights:       g.Weights,
		Equation:      g.Weights.Equation(),
		BoundaryLevel: field.BoundaryLevel,
		X1:            g.X1s,
		X2:            g.X2s,
		Z:             make([][]float64, g.Resolution()),
	}
	if seg, ok := field.Boundary(g.Domain, g.Weights); ok {
		resp.Boundary = &seg
	}
	for i := range resp.Z {
		resp.Z[i] = mat.Row(nil, i, g.Z)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		monitoring.Logf("failed to encode grid: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
