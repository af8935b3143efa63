package sky

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/litescript/ls-starmap/internal/astro"
)

// FrameExport is the JSON-serializable representation of a frame.
type FrameExport struct {
	Observer     string       `json:"observer,omitempty"`
	LatitudeDeg  float64      `json:"latitude_deg"`
	LongitudeDeg float64      `json:"longitude_deg"`
	Time         time.Time    `json:"time"`
	JulianDate   float64      `json:"julian_date"`
	LSTHours     float64      `json:"lst_hours"`
	SunAltitude  *float64     `json:"sun_altitude_deg,omitempty"`
	Twilight     string       `json:"twilight,omitempty"`
	Stars        []StarExport `json:"stars"`
}

// StarExport is a JSON-friendly plotted star.
type StarExport struct {
	Name        string  `json:"name,omitempty"`
	HR          int     `json:"hr,omitempty"`
	HIP         int     `json:"hip,omitempty"`
	RA          string  `json:"ra"`
	Dec         string  `json:"dec"`
	Magnitude   float64 `json:"mag"`
	AltitudeDeg float64 `json:"altitude_deg"`
	AzimuthDeg  float64 `json:"azimuth_deg"`
	// Radius is nil where the projection diverges (the nadir).
	Radius *float64 `json:"radius,omitempty"`
}

// ExportFrame converts a frame and its plotted stars to an exportable format.
func ExportFrame(f Frame, observer string, plotted []Plotted) *FrameExport {
	export := &FrameExport{
		Observer:     observer,
		LatitudeDeg:  f.Geo.Latitude.Value().Deg(),
		LongitudeDeg: f.Geo.Longitude.Deg(),
		Time:         f.Instant.UTC(),
		JulianDate:   f.JD.Days(),
		LSTHours:     f.LST().Normalized().Hr(),
		Stars:        make([]StarExport, 0, len(plotted)),
	}

	if h, err := f.Sun(); err == nil {
		alt := h.Altitude.Value().Deg()
		export.SunAltitude = &alt
		export.Twilight = astro.TwilightFor(h.Altitude).String()
	}

	for _, p := range plotted {
		s := StarExport{
			Name:        p.Star.Name,
			HR:          p.Star.HR,
			HIP:         p.Star.HIP,
			RA:          p.Star.Position.RightAscension.HMS().String(),
			Dec:         p.Star.Position.Declination.Value().DMS().String(),
			Magnitude:   p.Star.Magnitude,
			AltitudeDeg: p.Horizontal.Altitude.Value().Deg(),
			AzimuthDeg:  p.Horizontal.Azimuth.Normalized().Deg(),
		}
		if r := p.Polar.Radius; !math.IsInf(r, 0) && !math.IsNaN(r) {
			s.Radius = &r
		}
		export.Stars = append(export.Stars, s)
	}
	return export
}

// WriteJSON writes the export as JSON to the given writer.
func (e *FrameExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// SortByAltitude orders plotted stars highest first.
func SortByAltitude(plotted []Plotted) {
	sort.SliceStable(plotted, func(i, j int) bool {
		return plotted[i].Horizontal.Altitude.Value().Rad() > plotted[j].Horizontal.Altitude.Value().Rad()
	})
}

// WriteTable writes a plain-text table of plotted stars. opts is the filter
// that produced plotted and only shapes the empty-table message.
func WriteTable(w io.Writer, f Frame, observer string, plotted []Plotted, opts Options) {
	fmt.Fprintf(w, "Sky @ %s from %s (%s %s)\n",
		f.Instant.UTC().Format(time.RFC3339),
		observer,
		f.Geo.Latitude.Value().DMS(),
		f.Geo.Longitude.DMS(),
	)
	line := "LST " + f.LST().Normalized().HMS().String()
	if h, err := f.Sun(); err == nil {
		line += fmt.Sprintf(" | Sun %.1f° (%s)", h.Altitude.Value().Deg(), astro.TwilightFor(h.Altitude))
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, strings.Repeat("─", 84))

	if len(plotted) == 0 {
		fmt.Fprintln(w, emptyMessage(opts))
		return
	}

	fmt.Fprintf(w, "%-18s %-13s %-15s %6s %8s %8s %7s\n",
		"Star", "RA", "Dec", "Mag", "Alt", "Az", "Radius")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	for _, p := range plotted {
		fmt.Fprintf(w, "%-18s %-13s %-15s %6.2f %7.2f° %7.2f° %7.3f\n",
			truncateStr(p.Star.Label(), 18),
			p.Star.Position.RightAscension.HMS(),
			p.Star.Position.Declination.Value().DMS(),
			p.Star.Magnitude,
			p.Horizontal.Altitude.Value().Deg(),
			p.Horizontal.Azimuth.Normalized().Deg(),
			p.Polar.Radius,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d stars\n", len(plotted))
}

func emptyMessage(opts Options) string {
	switch {
	case !opts.AboveHorizonOnly:
		return "No catalog stars to plot"
	case opts.MinAltitude.Deg() > 0:
		return fmt.Sprintf("No stars above %.1f° altitude", opts.MinAltitude.Deg())
	default:
		return "No stars above the horizon"
	}
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
