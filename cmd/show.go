package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/menagerie/internal/artwork"
	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/controller"
	"github.com/atomicstack/menagerie/internal/logging"
	"github.com/atomicstack/menagerie/internal/render"
	colorize "github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const defaultShowWidth = 80

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the detail panel for one animal",
	Long: `Show activates the animal with the given id and prints its detail panel:
description and natural habitat, optionally preceded by ANSI art.

An id that is not in the catalogue leaves the welcome panel in place.

Examples:
  menagerie show lion
  menagerie show --image tigre`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withImage, _ := cmd.Flags().GetBool("image")
		loader := catalogue.NewLoader(catalogue.Bundled(), nil)
		cat := loader.Load(cmd.Context(), runtimeCfg.App.Catalogue)

		out := &panelPrinter{}
		ctrl := controller.New(cat, out, controller.Options{})
		ctrl.OnActivate(args[0])

		width := terminalWidth(defaultShowWidth)
		art := ""
		if withImage && out.panel.Kind == render.PanelAnimal {
			imageWidth := runtimeCfg.App.ImageWidth
			if imageWidth <= 0 || imageWidth > width {
				imageWidth = width
			}
			renderer := artwork.New(runtimeCfg.App.CacheDir, nil)
			art = showArt(cmd.Context(), renderer, out.panel.Animal, imageWidth)
		}
		writePanel(cmd.OutOrStdout(), out.panel, art, width)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolP("image", "i", false, "render the animal's image as ANSI art")
}

// panelPrinter keeps the latest detail fragment written by the controller.
type panelPrinter struct {
	panel render.Panel
}

func (p *panelPrinter) WriteButtons([]render.Button) {}

func (p *panelPrinter) WriteDetail(panel render.Panel) { p.panel = panel }

type artRenderer interface {
	Render(ctx context.Context, ref string, width, height int) (string, error)
}

// showArt returns the rendered image, or "" when it cannot be produced.
func showArt(ctx context.Context, r artRenderer, animal catalogue.Record, width int) string {
	ref := strings.TrimSpace(animal.Image)
	if ref == "" {
		return ""
	}
	art, err := r.Render(ctx, ref, width, 0)
	if err != nil {
		logging.Error(fmt.Errorf("artwork for %s: %w", animal.ID, err))
		return ""
	}
	return art
}

func writePanel(w io.Writer, panel render.Panel, art string, width int) {
	title := strings.TrimSpace(panel.Icon + " " + panel.Title)
	fmt.Fprintln(w, colorize.New(colorize.Bold).Sprint(title))
	fmt.Fprintln(w)
	switch panel.Kind {
	case render.PanelAnimal:
		if art != "" {
			fmt.Fprint(w, art)
			if !strings.HasSuffix(art, "\n") {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, colorize.New(colorize.FgYellow, colorize.Bold).Sprint(render.DescriptionHeading))
		fmt.Fprintln(w, wordwrap.String(panel.Animal.Description, width))
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorize.New(colorize.FgYellow, colorize.Bold).Sprint(render.HabitatHeading))
		fmt.Fprintln(w, wordwrap.String(panel.Animal.Habitat, width))
	case render.PanelNotFound:
		fmt.Fprintln(w, colorize.RedString(panel.Message))
		fmt.Fprintf(w, "« %s »\n", panel.Animal.ID)
	default:
		fmt.Fprintln(w, wordwrap.String(panel.Message, width))
	}
}
