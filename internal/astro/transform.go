package astro

import "math"

// EquatorialToHorizontal converts equatorial coordinates to horizontal
// coordinates for an observer at geo, given Greenwich mean sidereal time.
//
// Azimuth is measured from North toward East and comes straight from atan2,
// so it lies in (-π, π]. At the zenith (altitude π/2) azimuth is undefined;
// the returned value there is numerical noise and must not be relied on.
//
// An error is only returned when an input is NaN.
func EquatorialToHorizontal(eq Equatorial, geo Geographic, gmst GMST) (Horizontal, error) {
	lat := geo.Latitude.Value()
	dec := eq.Declination.Value()

	// Local hour angle; the sum keeps GMST's hour unit.
	ha := gmst.Angle().Add(geo.Longitude).Sub(eq.RightAscension)

	x := -lat.Sin()*dec.Cos()*ha.Cos() + lat.Cos()*dec.Sin()
	y := dec.Cos() * ha.Sin()

	az := Radians(math.Atan2(-y, x))
	sinAlt := lat.Sin()*dec.Sin() + lat.Cos()*dec.Cos()*ha.Cos()
	// Clamp rounding overshoot near the zenith and nadir; NaN passes through.
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}
	alt, err := NewAltitude(Radians(math.Asin(sinAlt)))
	if err != nil {
		return Horizontal{}, err
	}

	return Horizontal{Altitude: alt, Azimuth: az}, nil
}

// StereoProject maps a horizontal position onto the plane tangent at the
// zenith: radius = 2·tan(π/4 − alt/2), angle = azimuth.
//
// The zenith maps to radius 0 and the horizon to radius 2. Toward the nadir
// the radius grows without bound; it is returned as computed (very large, or
// +Inf) and never clamped, so renderers must clip.
func StereoProject(h Horizontal) Polar {
	return Polar{
		Radius: 2 * math.Tan(PiFourth-h.Altitude.Value().Rad()/2),
		Angle:  h.Azimuth,
	}
}
