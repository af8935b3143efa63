package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-starmap/internal/sky"
	"github.com/litescript/ls-starmap/internal/ui"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
)

const minWatch = time.Second

type tableOptions struct {
	format outputFormat
	all    bool
	watch  time.Duration
}

func tableCmd(opts *rootOptions) *cobra.Command {
	var to tableOptions
	var format string

	c := &cobra.Command{
		Use:   "table",
		Short: "Print the stars above the horizon, highest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			to.format = outputFormat(strings.ToLower(format))
			return runTable(cmd, opts, to)
		},
	}

	c.Flags().StringVarP(&format, "format", "f", string(formatText), "output format: text or json")
	c.Flags().BoolVarP(&to.all, "all", "a", false, "include stars below the horizon")
	c.Flags().DurationVarP(&to.watch, "watch", "w", 0, "repeat at this interval until interrupted (e.g. 30s)")
	return c
}

func runTable(cmd *cobra.Command, opts *rootOptions, to tableOptions) error {
	if to.format != formatText && to.format != formatJSON {
		return fmt.Errorf("unknown format %q (want text or json)", to.format)
	}

	env, err := opts.resolve(cmd, false)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	out := cmd.OutOrStdout()
	if to.watch == 0 {
		return writeFrame(out, env, env.instant, to)
	}
	if !env.live {
		return errors.New("--watch follows the clock and cannot be combined with a fixed --time")
	}
	if to.watch < minWatch {
		to.watch = minWatch
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(to.watch)
	defer ticker.Stop()

	for {
		if err := writeFrame(out, env, time.Now(), to); err != nil {
			env.log.Error("%v", err)
		}
		select {
		case <-ctx.Done():
			env.log.Debug("watch loop shutting down")
			return nil
		case <-ticker.C:
			fmt.Fprintln(out)
		}
	}
}

func writeFrame(out io.Writer, env *env, at time.Time, to tableOptions) error {
	frame, err := sky.NewFrame(env.geo, at)
	if err != nil {
		return err
	}

	stars := env.catalog.Filter(env.cfg.Catalog.MaxMagnitude).Stars
	filter := sky.Options{AboveHorizonOnly: !to.all, MinAltitude: env.minAltitude}
	res := frame.ObserveAll(stars, filter)
	for _, e := range res.Skipped {
		env.log.Warn("skipped %v", e)
	}
	sky.SortByAltitude(res.Plotted)

	if to.format == formatJSON {
		return sky.ExportFrame(frame, env.observer, res.Plotted).WriteJSON(out)
	}
	sky.WriteTable(out, frame, env.observer, res.Plotted, filter)
	return nil
}

func mapCmd(opts *rootOptions) *cobra.Command {
	var width, height int

	c := &cobra.Command{
		Use:   "map",
		Short: "Print the sky map once without the interactive view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.resolve(cmd, false)
			if err != nil {
				return err
			}
			defer env.log.Sync()

			frame, err := sky.NewFrame(env.geo, env.instant)
			if err != nil {
				return err
			}
			m := ui.NewSkyMapModel(env.cfg.Catalog.MaxMagnitude, env.minAltitude, env.cfg.View.Labels).
				SetSize(width, height).
				UpdateFrame(frame, env.catalog.Stars)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s from %s\n", frame.Instant.UTC().Format(time.RFC3339), env.observer)
			fmt.Fprintln(out, m.View())
			return nil
		},
	}

	c.Flags().IntVar(&width, "width", 100, "map width in columns")
	c.Flags().IntVar(&height, "height", 40, "map height in rows")
	return c
}
