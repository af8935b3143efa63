// Package cli wires configuration, catalog and sky pipeline into the
// ls-starmap command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-starmap/internal/ui"
	"github.com/litescript/ls-starmap/internal/version"
)

// Execute runs the root command and exits 1 on error.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ls-starmap",
		Short: "Terminal star map for any place and time",
		Long: `ls-starmap converts catalog star positions into the sky seen by an observer
and draws it as a stereographic map: zenith in the centre, horizon on the rim.

Without a terminal on stdout it prints the table of visible stars instead.`,
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return runTable(cmd, opts, tableOptions{format: formatText})
			}
			return runInteractive(cmd, opts)
		},
	}

	opts.bind(cmd)
	cmd.AddCommand(
		tableCmd(opts),
		mapCmd(opts),
		riseCmd(opts),
		separationCmd(opts),
		convertCmd(),
		versionCmd(),
	)
	return cmd
}

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	env, err := opts.resolve(cmd, true)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	env.log.Info("starting map for %s at %s", env.observer, env.instant.UTC().Format("2006-01-02T15:04:05Z"))

	model, err := ui.New(ui.Options{
		Geo:          env.geo,
		ObserverName: env.observer,
		Start:        env.instant,
		Live:         env.live,
		Stars:        env.catalog.Stars,
		MagLimit:     env.cfg.Catalog.MaxMagnitude,
		MinAltitude:  env.minAltitude,
		Labels:       env.cfg.View.Labels,
		Log:          env.log,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-starmap v%s\n", version.Version)
		},
	}
}
