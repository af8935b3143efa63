package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// VisibilityWindow represents a rise-transit-set cycle for a fixed star.
type VisibilityWindow struct {
	Rise          time.Time // zero if the star was already up at the first sample
	Transit       time.Time // time of highest altitude
	Set           time.Time // zero if the star was still up at the last sample
	MaxAltitude   Angle     // peak altitude, degrees
	AlwaysVisible bool      // never sets within the samples (circumpolar)
	NeverVisible  bool      // never rises within the samples
}

// HorizonAltitude is the threshold for considering a star risen.
const HorizonAltitude = 0.0

// ErrInsufficientSamples is returned when fewer than three instants are given.
var ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")

// SampleTimes returns instants from start to start+span inclusive, step apart.
func SampleTimes(start time.Time, span, step time.Duration) []time.Time {
	if step <= 0 || span < 0 {
		return nil
	}
	n := int(span/step) + 1
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.Add(time.Duration(i)*step))
	}
	return out
}

type altSample struct {
	t   time.Time
	deg float64
}

// altitudeAt returns the altitude of eq in degrees at instant t.
func altitudeAt(eq Equatorial, geo Geographic, t time.Time) (float64, error) {
	jd, err := NewJulianDate(t)
	if err != nil {
		return 0, err
	}
	h, err := EquatorialToHorizontal(eq, geo, NewGMST(jd))
	if err != nil {
		return 0, err
	}
	return h.Altitude.Value().Deg(), nil
}

// RiseSet computes rise, transit and set times of eq seen from geo.
// The instants must be in chronological order and should span a full
// sidereal day to capture a complete cycle.
//
// Horizon crossings are found by linear interpolation between samples and
// transit is refined with a parabola through the three highest samples.
func RiseSet(eq Equatorial, geo Geographic, instants []time.Time) (VisibilityWindow, error) {
	if len(instants) < 3 {
		return VisibilityWindow{}, ErrInsufficientSamples
	}

	samples := make([]altSample, len(instants))
	minAlt, maxAlt := math.Inf(1), math.Inf(-1)
	maxIdx := 0

	for i, t := range instants {
		alt, err := altitudeAt(eq, geo, t)
		if err != nil {
			return VisibilityWindow{}, fmt.Errorf("sample %d: %w", i, err)
		}
		samples[i] = altSample{t: t, deg: alt}

		if alt < minAlt {
			minAlt = alt
		}
		if alt > maxAlt {
			maxAlt = alt
			maxIdx = i
		}
	}

	transit, peak := refineTransit(samples, maxIdx)

	if minAlt > HorizonAltitude {
		return VisibilityWindow{
			Transit:       transit,
			MaxAltitude:   Degrees(peak),
			AlwaysVisible: true,
		}, nil
	}
	if maxAlt < HorizonAltitude {
		return VisibilityWindow{
			MaxAltitude:  Degrees(peak),
			NeverVisible: true,
		}, nil
	}

	w := VisibilityWindow{Transit: transit, MaxAltitude: Degrees(peak)}

	// Already up at the first sample: Rise stays zero and the set is the
	// first downward crossing. Otherwise the set must follow the rise.
	setFrom := 1
	if samples[0].deg <= HorizonAltitude {
		setFrom = len(samples)
		for i := 1; i < len(samples); i++ {
			prev, curr := samples[i-1], samples[i]
			if prev.deg <= HorizonAltitude && curr.deg > HorizonAltitude {
				w.Rise = interpolateCrossing(prev, curr, HorizonAltitude)
				setFrom = i + 1
				break
			}
		}
	}

	for i := setFrom; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if prev.deg > HorizonAltitude && curr.deg <= HorizonAltitude {
			w.Set = interpolateCrossing(prev, curr, HorizonAltitude)
			break
		}
	}

	return w, nil
}

// refineTransit fits a parabola through the samples around idx and returns
// the time and altitude of its vertex. Falls back to the discrete maximum at
// the edges or when the parabola does not open downward.
func refineTransit(samples []altSample, idx int) (time.Time, float64) {
	if idx == 0 || idx == len(samples)-1 {
		return samples[idx].t, samples[idx].deg
	}

	// Normalized time: -1 (prev), 0 (max), +1 (next)
	y0 := samples[idx-1].deg
	y1 := samples[idx].deg
	y2 := samples[idx+1].deg

	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2

	if a >= 0 {
		return samples[idx].t, y1
	}

	tMax := -b / (2 * a)
	if tMax < -1 {
		tMax = -1
	} else if tMax > 1 {
		tMax = 1
	}

	var dt time.Duration
	if tMax < 0 {
		dt = samples[idx].t.Sub(samples[idx-1].t)
	} else {
		dt = samples[idx+1].t.Sub(samples[idx].t)
	}

	return samples[idx].t.Add(time.Duration(float64(dt) * tMax)), a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds the time when altitude crosses threshold.
func interpolateCrossing(s1, s2 altSample, threshold float64) time.Time {
	if math.Abs(s2.deg-s1.deg) < 0.0001 {
		return s1.t
	}

	fraction := (threshold - s1.deg) / (s2.deg - s1.deg)
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	return s1.t.Add(time.Duration(float64(s2.t.Sub(s1.t)) * fraction))
}

// AltitudeTier categorizes altitude for display.
type AltitudeTier int

const (
	AltitudeNone   AltitudeTier = iota // Below horizon
	AltitudeLow                        // 0-15 degrees
	AltitudeMedium                     // 15-45 degrees
	AltitudeHigh                       // 45+ degrees
)

// TierFor returns the tier for a given altitude.
func TierFor(alt Altitude) AltitudeTier {
	deg := alt.Value().Deg()
	switch {
	case deg <= 0:
		return AltitudeNone
	case deg < 15:
		return AltitudeLow
	case deg < 45:
		return AltitudeMedium
	default:
		return AltitudeHigh
	}
}
