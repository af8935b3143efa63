package astro

import "math"

// SunPosition calculates the apparent equatorial coordinates of the Sun.
// Uses a simplified solar ephemeris based on the Astronomical Almanac.
// Accuracy: ~0.01° in RA and ~0.001° in Dec, plenty for twilight classification.
func SunPosition(jd JulianDate) Equatorial {
	// Julian centuries from J2000.0
	T := (float64(jd) - float64(J2000)) / 36525.0

	// Mean longitude and mean anomaly of the Sun
	L0 := Degrees(280.46646 + 36000.76983*T + 0.0003032*T*T).Normalized()
	M := Degrees(357.52911 + 35999.05029*T - 0.0001537*T*T).Normalized()

	// Equation of center (degrees)
	C := (1.914602-0.004817*T-0.000014*T*T)*M.Sin() +
		(0.019993-0.000101*T)*math.Sin(2*M.Rad()) +
		0.000289*math.Sin(3*M.Rad())

	// Apparent longitude, corrected for aberration and nutation
	omega := Degrees(125.04 - 1934.136*T)
	lon := L0.Add(Degrees(C - 0.00569 - 0.00478*omega.Sin()))

	// Obliquity of the ecliptic
	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := Degrees(eps0 + 0.00256*omega.Cos())

	ra := Radians(math.Atan2(eps.Cos()*lon.Sin(), lon.Cos())).Normalized()
	// asin of a product of sines cannot leave [-π/2, π/2]
	dec := Declination{angle: Radians(math.Asin(eps.Sin() * lon.Sin()))}

	return Equatorial{RightAscension: ra, Declination: dec}
}

// Twilight classifies sky darkness from the Sun's altitude.
type Twilight int

const (
	Daylight     Twilight = iota // Sun above the horizon
	Civil                        // 0° to -6°
	Nautical                     // -6° to -12°
	Astronomical                 // -12° to -18°
	Night                        // below -18°
)

func (t Twilight) String() string {
	switch t {
	case Daylight:
		return "daylight"
	case Civil:
		return "civil twilight"
	case Nautical:
		return "nautical twilight"
	case Astronomical:
		return "astronomical twilight"
	default:
		return "night"
	}
}

// TwilightFor returns the twilight phase for a given solar altitude.
func TwilightFor(sunAlt Altitude) Twilight {
	deg := sunAlt.Value().Deg()
	switch {
	case deg > 0:
		return Daylight
	case deg > -6:
		return Civil
	case deg > -12:
		return Nautical
	case deg > -18:
		return Astronomical
	default:
		return Night
	}
}
