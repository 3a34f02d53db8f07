package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/controller"
	"github.com/atomicstack/menagerie/internal/diag"
	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug [id]",
	Short: "Print the diagnostics snapshot as JSON",
	Long: `Debug loads the catalogue, optionally activates the given id, and prints
the diagnostics snapshot. It requires --diagnostics outside production.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		probe := diag.NewProbe(runtimeCfg.Diagnostics.Enabled(), runtimeCfg.Diagnostics.Environment)
		if !probe.Enabled() {
			return fmt.Errorf("debug: %w (use --diagnostics with --environment development)", diag.ErrDisabled)
		}
		loader := catalogue.NewLoader(catalogue.Bundled(), nil)
		cat := loader.Load(cmd.Context(), runtimeCfg.App.Catalogue)
		ctrl := controller.New(cat, nil, controller.Options{Probe: probe})
		if len(args) == 1 {
			ctrl.OnActivate(args[0])
		}
		snap, err := ctrl.Diagnostics()
		if err != nil {
			return fmt.Errorf("debug: %w", err)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}
