package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Supported civil years for NewJulianDate, inclusive.
const (
	MinEpochYear = 1801
	MaxEpochYear = 2099
)

// J2000 is the Julian date of 2000-01-01T12:00:00 UTC.
const J2000 JulianDate = 2451545.0

// JulianDate is a count of days since the Julian epoch.
type JulianDate float64

// NewJulianDate converts a civil instant to a Julian date. The instant is
// taken in UTC; years outside 1801..2099 fail with an *EpochError.
func NewJulianDate(t time.Time) (JulianDate, error) {
	t = t.UTC()

	y := t.Year()
	if y < MinEpochYear || y > MaxEpochYear {
		return 0, &EpochError{Year: y}
	}
	m := int(t.Month())
	d := t.Day()

	// Integer divisions truncate toward zero, which the algorithm relies on.
	dayNumber := 367*y - (7*(y+(m+9)/12))/4 + (275*m)/9

	// Time of day as a fraction
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	dayFrac := (float64(t.Hour()) + float64(t.Minute())/60 + sec/3600) / 24

	jd := float64(dayNumber) +
		float64(d) +
		1721013.5 +
		dayFrac -
		math.Copysign(0.5, 100*float64(y)+float64(m)-190002.5) +
		0.5

	return JulianDate(jd), nil
}

// Days returns the Julian date as a plain day count.
func (jd JulianDate) Days() float64 { return float64(jd) }

// Time converts the Julian date back to a UTC instant.
func (jd JulianDate) Time() time.Time {
	return julian.JDToTime(float64(jd)).UTC()
}

// EarthRotationAngle returns the angle of Earth's rotation for the given
// UT1 Julian date, in radians. The value is not wrapped to one turn.
func EarthRotationAngle(jd JulianDate) Angle {
	return Radians(TwoPi * (0.7790572732640 + 1.00273781191135448*(float64(jd)-float64(J2000))))
}

// GMST is Greenwich Mean Sidereal Time, held as an hour angle.
type GMST struct {
	angle Angle
}

// NewGMST derives sidereal time from the Earth Rotation Angle.
func NewGMST(jd JulianDate) GMST {
	return GMST{angle: Hours(EarthRotationAngle(jd).Hr())}
}

// Angle returns the sidereal time as an Hour angle.
func (g GMST) Angle() Angle { return g.angle }

// LocalSiderealTime returns GMST shifted by an east-positive longitude,
// wrapped to [0, 24h).
func LocalSiderealTime(gmst GMST, lon Angle) Angle {
	return gmst.Angle().Add(lon).Normalized()
}
