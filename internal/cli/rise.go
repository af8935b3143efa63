package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-starmap/internal/astro"
)

func riseCmd(opts *rootOptions) *cobra.Command {
	var span, step time.Duration

	c := &cobra.Command{
		Use:   "rise STAR",
		Short: "Show when a star rises, transits and sets",
		Long: `Samples the star's altitude from the observation time onward and reports
the horizon crossings and the highest point. STAR is a name, "HR n" or "HIP n".`,
		Example: `  ls-starmap rise Vega
  ls-starmap rise HR 2491 --time 2024-01-15T00:00:00Z --span 48h`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.resolve(cmd, false)
			if err != nil {
				return err
			}
			defer env.log.Sync()

			star, err := lookupStar(env.catalog, strings.Join(args, " "))
			if err != nil {
				return err
			}

			instants := astro.SampleTimes(env.instant, span, step)
			w, err := astro.RiseSet(star.Position, env.geo, instants)
			if err != nil {
				return fmt.Errorf("%s: %w", star.Label(), err)
			}
			writeWindow(cmd.OutOrStdout(), star, env.observer, env.instant, span, w)
			return nil
		},
	}

	c.Flags().DurationVar(&span, "span", 24*time.Hour, "how far ahead to search")
	c.Flags().DurationVar(&step, "step", 5*time.Minute, "sampling interval")
	return c
}

func writeWindow(out io.Writer, star astro.Star, observer string, from time.Time, span time.Duration, w astro.VisibilityWindow) {
	fmt.Fprintf(out, "%s from %s, %s after %s\n", star.Label(), observer, span, from.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "  RA %s  Dec %s  mag %.2f\n",
		star.Position.RightAscension.HMS(), star.Position.Declination.Value().DMS(), star.Magnitude)

	switch {
	case w.NeverVisible:
		fmt.Fprintf(out, "  Never rises (peak %.1f°)\n", w.MaxAltitude.Deg())
		return
	case w.AlwaysVisible:
		fmt.Fprintln(out, "  Above the horizon the whole time")
	}

	fmt.Fprintf(out, "  %-8s %s\n", "Rise", formatEvent(w.Rise, "already up"))
	fmt.Fprintf(out, "  %-8s %s  alt %.1f°\n", "Transit", formatEvent(w.Transit, "-"), w.MaxAltitude.Deg())
	fmt.Fprintf(out, "  %-8s %s\n", "Set", formatEvent(w.Set, "not within span"))
}

func formatEvent(t time.Time, missing string) string {
	if t.IsZero() {
		return missing
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func separationCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "separation STAR STAR",
		Aliases: []string{"sep"},
		Short:   "Angular distance between two catalog stars",
		Example: `  ls-starmap sep Vega Altair
  ls-starmap sep "HR 7001" "HIP 97649"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.resolve(cmd, false)
			if err != nil {
				return err
			}
			defer env.log.Sync()

			a, err := lookupStar(env.catalog, args[0])
			if err != nil {
				return err
			}
			b, err := lookupStar(env.catalog, args[1])
			if err != nil {
				return err
			}

			sep := astro.AngularSeparation(a.Position, b.Position)
			fmt.Fprintf(cmd.OutOrStdout(), "%s to %s: %s (%.4f°)\n", a.Label(), b.Label(), sep.DMS(), sep.Deg())
			return nil
		},
	}
}
