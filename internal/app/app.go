package app

import (
	"context"
	"errors"

	"github.com/atomicstack/menagerie/internal/artwork"
	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/diag"
	"github.com/atomicstack/menagerie/internal/logging/events"
	"github.com/atomicstack/menagerie/internal/metrics"
	"github.com/atomicstack/menagerie/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// Config describes user-provided application options.
type Config struct {
	Catalogue       string
	Width           int
	Height          int
	ShowFooter      bool
	Images          bool
	ImageWidth      int
	CacheDir        string
	Environment     string
	Diagnostics     bool
	DiagnosticsAddr string
}

// Services bundles the collaborators shared by the interactive browser and
// the one-shot commands.
type Services struct {
	Loader   *catalogue.Loader
	Art      *artwork.Renderer
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Probe    *diag.Probe
}

// NewServices wires the catalogue loader, artwork renderer, metrics and the
// diagnostics probe for cfg.
func NewServices(cfg Config) Services {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return Services{
		Loader:   catalogue.NewLoader(catalogue.Bundled(), nil),
		Art:      artwork.New(cfg.CacheDir, nil),
		Registry: reg,
		Metrics:  metrics.New(reg),
		Probe:    diag.NewProbe(cfg.Diagnostics, cfg.Environment),
	}
}

// Run bootstraps and executes the Bubble Tea program, plus the diagnostics
// server when enabled. It returns once the program exits.
func Run(ctx context.Context, cfg Config) error {
	svc := NewServices(cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	model := ui.NewModel(gctx, ui.Options{
		Location:   cfg.Catalogue,
		Loader:     svc.Loader,
		Art:        svc.Art,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Images:     cfg.Images,
		ImageWidth: cfg.ImageWidth,
		Probe:      svc.Probe,
		Metrics:    svc.Metrics,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)

	if cfg.Diagnostics {
		srv := diag.NewServer(cfg.DiagnosticsAddr, diag.NewRouter(svc.Probe, svc.Registry))
		g.Go(func() error {
			return diag.Serve(gctx, srv)
		})
	}
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			events.App.Stop("killed")
			return nil
		}
		events.App.Stop("quit")
		return err
	})
	return g.Wait()
}
