// Package sky places catalog stars on an observer's sky for one instant.
package sky

import (
	"fmt"
	"time"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Frame is an observer position and instant with the sidereal quantities
// every star in the frame shares.
type Frame struct {
	Geo     astro.Geographic
	Instant time.Time
	JD      astro.JulianDate
	GMST    astro.GMST
}

// NewFrame computes the Julian date and sidereal time for t.
func NewFrame(geo astro.Geographic, t time.Time) (Frame, error) {
	jd, err := astro.NewJulianDate(t)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Geo:     geo,
		Instant: t,
		JD:      jd,
		GMST:    astro.NewGMST(jd),
	}, nil
}

// Shift returns the frame for the same observer d later.
func (f Frame) Shift(d time.Duration) (Frame, error) {
	return NewFrame(f.Geo, f.Instant.Add(d))
}

// LST returns local sidereal time in hours.
func (f Frame) LST() astro.Angle {
	return astro.LocalSiderealTime(f.GMST, f.Geo.Longitude)
}

// Plotted is a star placed in a frame.
type Plotted struct {
	Star       astro.Star
	Horizontal astro.Horizontal
	Polar      astro.Polar
}

// Visible reports whether the star is above the horizon.
func (p Plotted) Visible() bool {
	return p.Horizontal.AboveHorizon()
}

// Observe transforms one star into the frame.
func (f Frame) Observe(s astro.Star) (Plotted, error) {
	h, err := astro.EquatorialToHorizontal(s.Position, f.Geo, f.GMST)
	if err != nil {
		return Plotted{}, fmt.Errorf("%s: %w", s.Label(), err)
	}
	return Plotted{
		Star:       s,
		Horizontal: h,
		Polar:      astro.StereoProject(h),
	}, nil
}

// Options narrows ObserveAll output. The zero value keeps every star.
type Options struct {
	// AboveHorizonOnly drops stars at or below MinAltitude. A zero
	// MinAltitude is the horizon itself.
	AboveHorizonOnly bool
	MinAltitude      astro.Angle
}

func (o Options) keep(p Plotted) bool {
	if !o.AboveHorizonOnly {
		return true
	}
	return p.Horizontal.Altitude.Value().Rad() > o.MinAltitude.Rad()
}

// Result is the output of ObserveAll. Skipped holds one error per star that
// could not be transformed; such stars never abort the batch.
type Result struct {
	Plotted []Plotted
	Skipped []error
}

// ObserveAll transforms stars in order, keeping the ones opts admits.
func (f Frame) ObserveAll(stars []astro.Star, opts Options) Result {
	res := Result{Plotted: make([]Plotted, 0, len(stars))}
	for _, s := range stars {
		p, err := f.Observe(s)
		if err != nil {
			res.Skipped = append(res.Skipped, err)
			continue
		}
		if opts.keep(p) {
			res.Plotted = append(res.Plotted, p)
		}
	}
	return res
}

// Sun returns the Sun's position in the frame.
func (f Frame) Sun() (astro.Horizontal, error) {
	return astro.EquatorialToHorizontal(astro.SunPosition(f.JD), f.Geo, f.GMST)
}
