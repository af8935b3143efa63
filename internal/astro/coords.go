package astro

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Equatorial holds celestial coordinates referred to the equator (J2000).
type Equatorial struct {
	RightAscension Angle
	Declination    Declination
}

// NewEquatorial validates the declination and builds an Equatorial position.
// The right ascension may be in any unit and is not wrapped.
func NewEquatorial(ra, dec Angle) (Equatorial, error) {
	d, err := NewDeclination(dec)
	if err != nil {
		return Equatorial{}, err
	}
	return Equatorial{RightAscension: ra, Declination: d}, nil
}

// Cartesian returns the unit vector toward the position, X toward the
// vernal equinox and Z toward the north celestial pole.
func (e Equatorial) Cartesian() Cartesian {
	dec := e.Declination.Value()
	ra := e.RightAscension
	return Cartesian{
		X: dec.Cos() * ra.Cos(),
		Y: dec.Cos() * ra.Sin(),
		Z: dec.Sin(),
	}
}

// Horizontal holds observer-relative coordinates.
//   - Altitude: 0 = horizon, π/2 = zenith
//   - Azimuth: 0 = North, increasing toward East
type Horizontal struct {
	Altitude Altitude
	Azimuth  Angle
}

// ZenithAngle returns π/2 minus the altitude.
func (h Horizontal) ZenithAngle() ZenithAngle {
	// Altitude is already constrained to [-π/2, π/2], so the result is in [0, π].
	return ZenithAngle{angle: Radians(PiHalf - h.Altitude.Value().Rad())}
}

// Cartesian returns the unit vector toward the position, X north, Y east,
// Z toward the zenith.
func (h Horizontal) Cartesian() Cartesian {
	alt := h.Altitude.Value()
	return Cartesian{
		X: alt.Cos() * h.Azimuth.Cos(),
		Y: alt.Cos() * h.Azimuth.Sin(),
		Z: alt.Sin(),
	}
}

// AboveHorizon reports whether the altitude is positive.
func (h Horizontal) AboveHorizon() bool {
	return h.Altitude.Value().Rad() > 0
}

// Geographic is an observer position on Earth, longitude east positive.
type Geographic struct {
	Latitude  Latitude
	Longitude Angle
}

// NewGeographic validates the latitude and builds a Geographic position.
func NewGeographic(lat, lon Angle) (Geographic, error) {
	l, err := NewLatitude(lat)
	if err != nil {
		return Geographic{}, err
	}
	return Geographic{Latitude: l, Longitude: lon}, nil
}

// Cartesian is a point or direction in three dimensions.
type Cartesian struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (c Cartesian) Norm() float64 {
	return r3.Norm(c.vec())
}

func (c Cartesian) vec() r3.Vec {
	return r3.Vec{X: c.X, Y: c.Y, Z: c.Z}
}

// Polar is a two-dimensional polar coordinate, as produced by StereoProject.
type Polar struct {
	Radius float64
	Angle  Angle
}

// Plane returns the point on a chart held overhead: north up (+y) and
// east to the left (-x). An infinite radius yields infinite components.
func (p Polar) Plane() (x, y float64) {
	return -p.Radius * p.Angle.Sin(), p.Radius * p.Angle.Cos()
}

// AngularSeparation returns the great-circle distance between two positions,
// computed as atan2(|a×b|, a·b) which stays accurate for tiny and near-π
// separations alike.
func AngularSeparation(a, b Equatorial) Angle {
	va := a.Cartesian().vec()
	vb := b.Cartesian().vec()
	return Radians(math.Atan2(r3.Norm(r3.Cross(va, vb)), r3.Dot(va, vb)))
}
