package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/metrics"
	"github.com/atomicstack/menagerie/internal/render"
	"github.com/atomicstack/menagerie/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithLogging(m, "menagerie-ui"))
}

type stubLoader struct {
	cat   catalogue.Catalogue
	calls int
}

func (s *stubLoader) Load(context.Context, string) catalogue.Catalogue {
	s.calls++
	return s.cat
}

type stubArt struct {
	err  error
	refs []string
}

func (s *stubArt) Render(_ context.Context, ref string, width, _ int) (string, error) {
	s.refs = append(s.refs, ref)
	if s.err != nil {
		return "", s.err
	}
	return "ART:" + strings.TrimSuffix(ref, ".jpg") + "\n", nil
}

func testCatalogue() catalogue.Catalogue {
	return catalogue.New([]catalogue.Record{
		{ID: "lion", Name: "Lion", Emoji: "🦁", Image: "lion.jpg", Description: "Le roi de la savane.", Habitat: "Savanes africaines."},
		{ID: "elephant", Name: "Éléphant", Emoji: "🐘", Image: "elephant.jpg", Description: "Le plus grand mammifère terrestre.", Habitat: "Forêts d'Asie."},
		{ID: "tigre", Name: "Tigre", Emoji: "🐅", Image: "tigre.jpg", Description: "Le plus grand félin.", Habitat: "Jungles d'Asie."},
	})
}

func newLoadedHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	if opts.Loader == nil {
		opts.Loader = &stubLoader{cat: testCatalogue()}
	}
	h := NewHarness(NewModel(context.Background(), opts))
	h.Start()
	if h.Model().loading {
		t.Fatalf("expected catalogue to be loaded")
	}
	return h
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selectedID(h *Harness) string {
	id, _ := h.Model().Controller().State().Selected()
	return id
}

func TestInitialViewShowsWelcomeWhileLoading(t *testing.T) {
	loader := &stubLoader{cat: testCatalogue()}
	m := NewModel(context.Background(), Options{Loader: loader})
	view := m.View()
	if !strings.Contains(view, render.WelcomeTitle) {
		t.Fatalf("expected welcome title, got:\n%s", view)
	}
	if !strings.Contains(view, loadingText) {
		t.Fatalf("expected loading status, got:\n%s", view)
	}
	if strings.Contains(view, "Lion") {
		t.Fatalf("expected no buttons before load, got:\n%s", view)
	}
	if loader.calls != 0 {
		t.Fatalf("expected no load before Init")
	}
}

func TestCatalogueLoadPopulatesGrid(t *testing.T) {
	loader := &stubLoader{cat: testCatalogue()}
	h := newLoadedHarness(t, Options{Loader: loader})
	if loader.calls != 1 {
		t.Fatalf("expected exactly one load, got %d", loader.calls)
	}
	view := h.View()
	for _, label := range []string{"Lion", "Éléphant", "Tigre"} {
		if !strings.Contains(view, label) {
			t.Fatalf("expected %s in view, got:\n%s", label, view)
		}
	}
	if strings.Contains(view, "●") {
		t.Fatalf("expected no active button, got:\n%s", view)
	}
	if !strings.Contains(view, "Sélectionne") {
		t.Fatalf("expected welcome message after load, got:\n%s", view)
	}
}

func TestFocusMovesWithoutSelecting(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(runes("j"))
	if h.Model().grid.Cursor != 2 {
		t.Fatalf("expected focus on index 2, got %d", h.Model().grid.Cursor)
	}
	if _, ok := h.Model().Controller().State().Selected(); ok {
		t.Fatalf("expected focus changes to leave the selection alone")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if h.Model().grid.Cursor != 0 {
		t.Fatalf("expected focus to wrap, got %d", h.Model().grid.Cursor)
	}
}

func TestEnterActivatesFocusedButton(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if got := selectedID(h); got != "tigre" {
		t.Fatalf("expected tigre selected, got %q", got)
	}
	view := h.View()
	if !strings.Contains(view, render.HabitatHeading) || !strings.Contains(view, "Jungles d'Asie.") {
		t.Fatalf("expected tiger detail, got:\n%s", view)
	}
	if strings.Count(view, "●") != 1 {
		t.Fatalf("expected exactly one active marker, got:\n%s", view)
	}
}

func TestSpaceAndDigitsActivate(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := selectedID(h); got != "lion" {
		t.Fatalf("expected lion via space, got %q", got)
	}
	h.Send(runes("2"))
	if got := selectedID(h); got != "elephant" {
		t.Fatalf("expected elephant via digit, got %q", got)
	}
	if h.Model().grid.Cursor != 1 {
		t.Fatalf("expected focus to follow activation, got %d", h.Model().grid.Cursor)
	}
	h.Send(runes("9"))
	if got := selectedID(h); got != "elephant" {
		t.Fatalf("expected out of range digit to be ignored, got %q", got)
	}
}

func TestReactivationKeepsView(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(runes("1"))
	first := h.View()
	writes := h.Model().surface.writes
	h.Send(runes("1"))
	if h.Model().surface.writes != writes+1 {
		t.Fatalf("expected re-selection to re-render")
	}
	if h.View() != first {
		t.Fatalf("expected identical view after re-selection")
	}
}

func TestJumpQueryFocusesAndActivates(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(runes("/"))
	if !h.Model().jumping {
		t.Fatalf("expected jump mode")
	}
	for _, r := range "tig" {
		h.Send(runes(string(r)))
	}
	if h.Model().grid.Cursor != 2 {
		t.Fatalf("expected focus on tigre, got %d", h.Model().grid.Cursor)
	}
	if !strings.Contains(h.View(), "/ tig") {
		t.Fatalf("expected jump prompt in view, got:\n%s", h.View())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().jumping {
		t.Fatalf("expected jump mode to end")
	}
	if got := selectedID(h); got != "tigre" {
		t.Fatalf("expected tigre selected, got %q", got)
	}
}

func TestJumpEscapeRestoresFocus(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(runes("/"))
	h.Send(runes("q"))
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.Model().jumping {
		t.Fatalf("expected jump mode to end")
	}
	if h.Model().grid.Cursor != 1 {
		t.Fatalf("expected focus restored to 1, got %d", h.Model().grid.Cursor)
	}
	if _, ok := h.Model().Controller().State().Selected(); ok {
		t.Fatalf("expected no selection after cancelled jump")
	}
}

func TestQuitKey(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	_, cmd := h.Model().Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestMouseClickActivatesRow(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 20})
	if !h.Model().hasSideDetail() {
		t.Fatalf("expected side-by-side layout at width 100")
	}
	h.Send(tea.MouseMsg{X: 3, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := selectedID(h); got != "elephant" {
		t.Fatalf("expected elephant via click, got %q", got)
	}
	h.Send(tea.MouseMsg{X: 80, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := selectedID(h); got != "elephant" {
		t.Fatalf("expected click in detail panel to be ignored, got %q", got)
	}
}

func TestNarrowTerminalStacksVertically(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(tea.WindowSizeMsg{Width: 50, Height: 30})
	if h.Model().hasSideDetail() {
		t.Fatalf("expected vertical layout at width 50")
	}
	h.Send(runes("1"))
	lines := strings.Split(h.View(), "\n")
	border := -1
	for i, line := range lines {
		if strings.Contains(line, "╭") {
			border = i
			break
		}
	}
	if border < 4 {
		t.Fatalf("expected detail panel below the grid, border at %d", border)
	}
}

func TestEmptyCatalogueShowsNoButtons(t *testing.T) {
	h := newLoadedHarness(t, Options{Loader: &stubLoader{cat: catalogue.Empty()}})
	view := h.View()
	if !strings.Contains(view, emptyText) || !strings.Contains(view, render.WelcomeTitle) {
		t.Fatalf("expected empty grid and welcome, got:\n%s", view)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := h.Model().Controller().State().Selected(); ok {
		t.Fatalf("expected nothing to select")
	}
}

func TestArtworkShownForSelection(t *testing.T) {
	art := &stubArt{}
	h := newLoadedHarness(t, Options{Art: art, Images: true, ImageWidth: 10})
	h.Send(runes("1"))
	if len(art.refs) != 1 || art.refs[0] != "lion.jpg" {
		t.Fatalf("expected one lion art request, got %v", art.refs)
	}
	if !strings.Contains(h.View(), "ART:lion") {
		t.Fatalf("expected artwork in view, got:\n%s", h.View())
	}
	h.Send(runes("1"))
	if len(art.refs) != 1 {
		t.Fatalf("expected re-selection to reuse artwork, got %v", art.refs)
	}
}

func TestArtworkDisabledByDefault(t *testing.T) {
	art := &stubArt{}
	h := newLoadedHarness(t, Options{Art: art})
	h.Send(runes("1"))
	if len(art.refs) != 0 {
		t.Fatalf("expected no art request when images are off, got %v", art.refs)
	}
}

func TestStaleArtworkIsDropped(t *testing.T) {
	art := &stubArt{}
	h := newLoadedHarness(t, Options{Art: art, Images: true, ImageWidth: 10})
	m := h.Model()

	lionCmd := m.activate(0, "key")
	tigreCmd := m.activate(2, "key")
	if lionCmd == nil || tigreCmd == nil {
		t.Fatalf("expected art commands for both selections")
	}
	m.Update(lionCmd())
	if !m.art.loading || m.art.id != "tigre" {
		t.Fatalf("expected stale lion art to be ignored, got %+v", m.art)
	}
	m.Update(tigreCmd())
	if m.art.loading || len(m.art.lines) != 1 || m.art.lines[0] != "ART:tigre" {
		t.Fatalf("expected tigre art, got %+v", m.art)
	}
}

func TestArtworkFailureHidesImageOnly(t *testing.T) {
	reg := prometheus.NewRegistry()
	mt := metrics.New(reg)
	art := &stubArt{err: errors.New("boom")}
	h := newLoadedHarness(t, Options{Art: art, Images: true, ImageWidth: 10, Metrics: mt})
	h.Send(runes("3"))
	view := h.View()
	if strings.Contains(view, artLoadingText) || strings.Contains(view, "boom") {
		t.Fatalf("expected image to be hidden silently, got:\n%s", view)
	}
	if !strings.Contains(view, "Le plus grand félin.") {
		t.Fatalf("expected the rest of the panel, got:\n%s", view)
	}
	if got := promtest.ToFloat64(mt.ImageFailures); got != 1 {
		t.Fatalf("expected one image failure, got %v", got)
	}
}

func TestHelpToggle(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	if strings.Contains(h.View(), "quitter") {
		t.Fatalf("expected no help before toggle")
	}
	h.Send(runes("?"))
	if !strings.Contains(h.View(), "quitter") {
		t.Fatalf("expected full help after toggle, got:\n%s", h.View())
	}
}

func TestFooterShowsShortHelp(t *testing.T) {
	h := newLoadedHarness(t, Options{ShowFooter: true})
	if !strings.Contains(h.View(), "choisir") {
		t.Fatalf("expected short help footer, got:\n%s", h.View())
	}
}
