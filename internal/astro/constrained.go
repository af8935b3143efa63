package astro

// checkRange reports whether a lies within [loDeg, hiDeg], comparing in a's
// own unit so exact bounds such as 6h or π/2 are accepted. NaN never is.
func checkRange(quantity string, a Angle, loDeg, hiDeg float64) error {
	lo, hi := loDeg, hiDeg
	switch a.Unit() {
	case Radian:
		lo, hi = loDeg*degToRad, hiDeg*degToRad
	case Hour:
		lo, hi = loDeg/degPerHour, hiDeg/degPerHour
	}
	if v := a.Value(); !(v >= lo && v <= hi) {
		return &RangeError{Quantity: quantity, Value: a, Min: loDeg * degToRad, Max: hiDeg * degToRad}
	}
	return nil
}

// Declination is an angle in [-π/2, π/2], measured from the celestial equator.
type Declination struct{ angle Angle }

// NewDeclination validates a and wraps it.
func NewDeclination(a Angle) (Declination, error) {
	if err := checkRange("declination", a, -90, 90); err != nil {
		return Declination{}, err
	}
	return Declination{angle: a}, nil
}

// MustDeclination is like NewDeclination but panics on error.
// It is intended for literal tables.
func MustDeclination(a Angle) Declination {
	d, err := NewDeclination(a)
	if err != nil {
		panic(err)
	}
	return d
}

// Value returns the stored angle unchanged.
func (d Declination) Value() Angle { return d.angle }

// Altitude is an angle in [-π/2, π/2] above the observer's horizon.
type Altitude struct{ angle Angle }

// NewAltitude validates a and wraps it.
func NewAltitude(a Angle) (Altitude, error) {
	if err := checkRange("altitude", a, -90, 90); err != nil {
		return Altitude{}, err
	}
	return Altitude{angle: a}, nil
}

// Value returns the stored angle unchanged.
func (a Altitude) Value() Angle { return a.angle }

// Latitude is a geographic latitude in [-π/2, π/2], north positive.
type Latitude struct{ angle Angle }

// NewLatitude validates a and wraps it.
func NewLatitude(a Angle) (Latitude, error) {
	if err := checkRange("latitude", a, -90, 90); err != nil {
		return Latitude{}, err
	}
	return Latitude{angle: a}, nil
}

// MustLatitude is like NewLatitude but panics on error.
func MustLatitude(a Angle) Latitude {
	l, err := NewLatitude(a)
	if err != nil {
		panic(err)
	}
	return l
}

// Value returns the stored angle unchanged.
func (l Latitude) Value() Angle { return l.angle }

// ZenithAngle is the angle from the zenith, in [0, π].
type ZenithAngle struct{ angle Angle }

// NewZenithAngle validates a and wraps it.
func NewZenithAngle(a Angle) (ZenithAngle, error) {
	if err := checkRange("zenith angle", a, 0, 180); err != nil {
		return ZenithAngle{}, err
	}
	return ZenithAngle{angle: a}, nil
}

// Value returns the stored angle unchanged.
func (z ZenithAngle) Value() Angle { return z.angle }
