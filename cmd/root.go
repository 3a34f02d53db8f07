package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/menagerie/internal/app"
	"github.com/atomicstack/menagerie/internal/config"
	"github.com/atomicstack/menagerie/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// runtimeCfg is resolved by the persistent pre-run before any command body.
var runtimeCfg config.Config

// configError marks failures that exit with status 2.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "menagerie",
	Short: "Browse a catalogue of animals in the terminal",
	Long: `Menagerie shows a grid of animal buttons next to a detail panel.
Activating a button shows that animal's description and natural habitat.

The catalogue is bundled with the binary unless --catalogue points at a
JSON file or an http(s) URL.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), runtimeCfg.App)
	},
}

func init() {
	config.RegisterFlags(RootCmd.PersistentFlags())
	RootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError{err}
	})
	RootCmd.AddCommand(listCmd, showCmd, debugCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromFlags(cmd.Flags(), os.Environ())
	if err != nil {
		return configError{err}
	}
	if err := config.Validate(cfg); err != nil {
		return configError{err}
	}
	cfg.Args = append([]string(nil), os.Args[1:]...)
	runtimeCfg = cfg

	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	logging.SetSession(uuid.NewString())
	traceStartup(cmd.Name(), cfg)
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return exitCode(RootCmd.Execute(), RootCmd.ErrOrStderr())
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(stderr, "Configuration error: %v\n", cfgErr.err)
		return 2
	}
	logging.Error(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
