package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/atomicstack/menagerie/internal/app"
	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/config"
	"github.com/atomicstack/menagerie/internal/controller"
	"github.com/atomicstack/menagerie/internal/render"
	"github.com/atomicstack/menagerie/internal/testutil"
	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(testutil.RunWithLogging(m, "menagerie-cmd"))
}

func bundled(t *testing.T) catalogue.Catalogue {
	t.Helper()
	return catalogue.NewLoader(catalogue.Bundled(), nil).Load(context.Background(), "")
}

func showPanel(t *testing.T, id string) render.Panel {
	t.Helper()
	out := &panelPrinter{}
	ctrl := controller.New(bundled(t), out, controller.Options{})
	ctrl.OnActivate(id)
	return out.panel
}

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{Catalogue: "animals.json", Width: 80, Height: 24},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"catalogue": "animals.json",
			"width":     "80",
		},
		Args: []string{"--catalogue", "animals.json"},
	}

	payload := startupTracePayload("menagerie", cfg)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["catalogue"] != "animals.json" || flags["width"] != "80" {
		t.Fatalf("unexpected flags %v", flags)
	}
	if flags["trace"] != true || flags["logFile"] != "trace.log" {
		t.Fatalf("expected logging flags, got %v", flags)
	}
	if payload["command"] != "menagerie" {
		t.Fatalf("expected command name, got %v", payload["command"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
}

func TestWriteListPrintsCatalogueOrder(t *testing.T) {
	var buf bytes.Buffer
	writeList(&buf, bundled(t))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "lion") || !strings.Contains(lines[1], "🦁") {
		t.Fatalf("expected lion first, got %q", lines[1])
	}
	if !strings.Contains(lines[6], "dauphin") {
		t.Fatalf("expected dauphin last, got %q", lines[6])
	}
}

func TestWriteListEmptyCatalogue(t *testing.T) {
	var buf bytes.Buffer
	writeList(&buf, catalogue.Empty())
	if strings.TrimSpace(buf.String()) != "(aucun animal)" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestShowPrintsAnimalDetail(t *testing.T) {
	panel := showPanel(t, "tigre")
	var buf bytes.Buffer
	writePanel(&buf, panel, "", 60)
	out := buf.String()
	if !strings.Contains(out, "Tigre") {
		t.Fatalf("expected tiger title, got:\n%s", out)
	}
	if !strings.Contains(out, render.DescriptionHeading) || !strings.Contains(out, render.HabitatHeading) {
		t.Fatalf("expected both headings, got:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 60 {
			t.Fatalf("expected wrapped output, got line %q", line)
		}
	}
}

func TestShowUnknownIDKeepsWelcome(t *testing.T) {
	panel := showPanel(t, "licorne")
	if panel.Kind != render.PanelWelcome {
		t.Fatalf("expected welcome panel, got %v", panel.Kind)
	}
	var buf bytes.Buffer
	writePanel(&buf, panel, "", 80)
	if !strings.Contains(buf.String(), render.WelcomeTitle) {
		t.Fatalf("expected welcome output, got:\n%s", buf.String())
	}
}

func TestShowNotFoundPanel(t *testing.T) {
	var buf bytes.Buffer
	writePanel(&buf, render.NotFound("licorne"), "", 80)
	if !strings.Contains(buf.String(), render.NotFoundMessage) || !strings.Contains(buf.String(), "« licorne »") {
		t.Fatalf("unexpected not-found output:\n%s", buf.String())
	}
}

type fakeArt struct {
	art string
	err error
}

func (f fakeArt) Render(context.Context, string, int, int) (string, error) {
	return f.art, f.err
}

func TestShowArtIncludedAndFailureHidden(t *testing.T) {
	lion := catalogue.Record{ID: "lion", Image: "lion.jpg"}
	if got := showArt(context.Background(), fakeArt{art: "ART\n"}, lion, 10); got != "ART\n" {
		t.Fatalf("expected art, got %q", got)
	}
	if got := showArt(context.Background(), fakeArt{err: errors.New("boom")}, lion, 10); got != "" {
		t.Fatalf("expected failure to hide the image, got %q", got)
	}
	if got := showArt(context.Background(), fakeArt{art: "ART"}, catalogue.Record{ID: "x"}, 10); got != "" {
		t.Fatalf("expected no art without an image, got %q", got)
	}

	var buf bytes.Buffer
	writePanel(&buf, render.Panel{Kind: render.PanelAnimal, Title: "Lion", Animal: lion}, "ART", 80)
	if !strings.Contains(buf.String(), "ART\n") {
		t.Fatalf("expected art in output, got:\n%s", buf.String())
	}
}

func TestExitCodes(t *testing.T) {
	var stderr bytes.Buffer
	if code := exitCode(nil, &stderr); code != 0 {
		t.Fatalf("expected 0, got %d", code)
	}
	if code := exitCode(configError{errors.New("bad width")}, &stderr); code != 2 {
		t.Fatalf("expected 2 for configuration errors, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Configuration error: bad width") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
	stderr.Reset()
	if code := exitCode(errors.New("boom"), &stderr); code != 1 {
		t.Fatalf("expected 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Error: boom") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}
