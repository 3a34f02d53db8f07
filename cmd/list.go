package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/format/table"
	"github.com/atomicstack/menagerie/internal/render"
	"github.com/atomicstack/menagerie/internal/selection"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// listCmd prints the button projection of the catalogue.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the animals in the catalogue",
	Long: `List prints one row per animal button, in catalogue order, with its
position, emoji, id and display name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := catalogue.NewLoader(catalogue.Bundled(), nil)
		cat := loader.Load(cmd.Context(), runtimeCfg.App.Catalogue)
		writeList(cmd.OutOrStdout(), cat)
		return nil
	},
}

func writeList(w io.Writer, cat catalogue.Catalogue) {
	buttons := render.Buttons(cat, selection.Unselected())
	if len(buttons) == 0 {
		fmt.Fprintln(w, color.HiBlackString("(aucun animal)"))
		return
	}
	rows := make([][]string, 0, len(buttons)+1)
	rows = append(rows, []string{
		color.New(color.Bold).Sprint("#"),
		"",
		color.New(color.Bold).Sprint("ID"),
		color.New(color.Bold).Sprint("NOM"),
	})
	for i, b := range buttons {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			b.Emoji,
			color.CyanString(b.ID),
			color.HiWhiteString(b.Label),
		})
	}
	for _, line := range table.Format(rows, []table.Alignment{table.AlignRight}) {
		fmt.Fprintln(w, line)
	}
}
