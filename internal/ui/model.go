package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/controller"
	"github.com/atomicstack/menagerie/internal/diag"
	"github.com/atomicstack/menagerie/internal/metrics"
	"github.com/atomicstack/menagerie/internal/theme"
	"github.com/atomicstack/menagerie/internal/ui/command"
	uistate "github.com/atomicstack/menagerie/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// CatalogueLoader loads the catalogue once at startup.
type CatalogueLoader interface {
	Load(ctx context.Context, location string) catalogue.Catalogue
}

// ArtRenderer converts an image reference into terminal art.
type ArtRenderer interface {
	Render(ctx context.Context, ref string, width, height int) (string, error)
}

// Options configures the model. Zero values are usable: no loader leaves the
// catalogue empty and no art renderer disables images.
type Options struct {
	Location   string
	Loader     CatalogueLoader
	Art        ArtRenderer
	Width      int
	Height     int
	ShowFooter bool
	Images     bool
	ImageWidth int
	Probe      *diag.Probe
	Metrics    *metrics.Metrics
}

// Model implements the Bubble Tea model for the animal browser.
type Model struct {
	ctx         context.Context
	opts        Options
	ctrl        *controller.Controller
	surface     *surface
	grid        *uistate.Grid
	loading     bool
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	jumping     bool
	keys        keyMap
	help        help.Model
	detail      viewport.Model
	detailID    string
	art         artState
	artSeq      int

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel builds the model. The controller starts on an empty catalogue so
// the welcome panel is visible before the load completes.
func NewModel(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:        ctx,
		opts:       opts,
		surface:    newSurface(),
		grid:       uistate.NewGrid(nil),
		loading:    opts.Loader != nil,
		showFooter: opts.ShowFooter,
		keys:       defaultKeys,
		help:       help.New(),
		detail:     viewport.New(0, 0),
		bus:        command.New(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.ctrl = controller.New(catalogue.Empty(), m.surface, m.controllerOptions())
	m.registerHandlers()
	return m
}

func (m *Model) controllerOptions() controller.Options {
	return controller.Options{Probe: m.opts.Probe, Metrics: m.opts.Metrics}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.opts.Loader == nil {
		return nil
	}
	return m.loadCatalogueCmd()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):       m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(catalogueLoadedMsg{}): m.handleCatalogueLoadedMsg,
		reflect.TypeOf(artLoadedMsg{}):       m.handleArtLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Controller exposes the controller driving the view.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}
