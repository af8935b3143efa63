package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-starmap/internal/astro"
)

func convertCmd() *cobra.Command {
	var from string

	c := &cobra.Command{
		Use:   "convert VALUE",
		Short: "Convert an angle between degrees, radians, hours, DMS and HMS",
		Example: `  ls-starmap convert 90
  ls-starmap convert --from hms 06:45:08.92
  ls-starmap convert --from dms -- -16:42:58.02`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseAngle(args[0], from)
			if err != nil {
				return err
			}
			writeAngle(cmd.OutOrStdout(), a)
			return nil
		},
	}

	c.Flags().StringVar(&from, "from", "deg", "input form: deg, rad, hour, dms or hms")
	return c
}

// parseAngle reads text in the given form. Decimal forms accept any float;
// dms and hms accept the catalog sexagesimal syntax.
func parseAngle(text, form string) (astro.Angle, error) {
	var unit func(float64) astro.Angle
	switch strings.ToLower(form) {
	case "dms":
		return parseSexagesimal(text, astro.DMS)
	case "hms":
		return parseSexagesimal(text, astro.HMS)
	case "deg", "degree", "degrees":
		unit = astro.Degrees
	case "rad", "radian", "radians":
		unit = astro.Radians
	case "hour", "hours", "h":
		unit = astro.Hours
	default:
		return astro.Angle{}, fmt.Errorf("unknown form %q (want deg, rad, hour, dms or hms)", form)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return astro.Angle{}, fmt.Errorf("parse %q: %w", text, err)
	}
	return unit(v), nil
}

func parseSexagesimal(text string, kind astro.SexagesimalKind) (astro.Angle, error) {
	s, err := astro.ParseSexagesimal(text, kind)
	if err != nil {
		return astro.Angle{}, err
	}
	return s.Angle(), nil
}

func writeAngle(out io.Writer, a astro.Angle) {
	fmt.Fprintf(out, "%-8s %.10g\n", "degrees", a.Deg())
	fmt.Fprintf(out, "%-8s %.10g\n", "radians", a.Rad())
	fmt.Fprintf(out, "%-8s %.10g\n", "hours", a.Hr())
	fmt.Fprintf(out, "%-8s %s\n", "DMS", a.DMS())
	fmt.Fprintf(out, "%-8s %s\n", "HMS", a.HMS())
}
