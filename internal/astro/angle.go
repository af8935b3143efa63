// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"math"
	"strconv"
)

// Common fractions of a turn, in radians.
const (
	TwoPi    = 2 * math.Pi
	PiHalf   = math.Pi / 2
	PiFourth = math.Pi / 4
)

// Fixed conversion ratios. Each pair of units has its own constant so a
// conversion never goes through a third unit.
const (
	degPerHour = 15.0
	radToDeg   = 180 / math.Pi
	degToRad   = math.Pi / 180
	hourToRad  = math.Pi / 12
	radToHour  = 12 / math.Pi
)

// Unit identifies how an Angle's value is expressed.
type Unit int

const (
	Degree Unit = iota
	Radian
	Hour
)

func (u Unit) String() string {
	switch u {
	case Degree:
		return "deg"
	case Radian:
		return "rad"
	case Hour:
		return "h"
	default:
		return "unknown"
	}
}

// Angle is a unit-tagged scalar angle. The zero value is 0 degrees.
// Angles are plain values; no method mutates the receiver.
type Angle struct {
	unit  Unit
	value float64
}

// Degrees returns an angle of v degrees.
func Degrees(v float64) Angle { return Angle{unit: Degree, value: v} }

// Radians returns an angle of v radians.
func Radians(v float64) Angle { return Angle{unit: Radian, value: v} }

// Hours returns an angle of v hours (1h = 15°).
func Hours(v float64) Angle { return Angle{unit: Hour, value: v} }

// Unit returns the unit the angle is stored in.
func (a Angle) Unit() Unit { return a.unit }

// Value returns the stored value in the angle's own unit.
func (a Angle) Value() float64 { return a.value }

// Deg returns the angle in decimal degrees.
func (a Angle) Deg() float64 {
	switch a.unit {
	case Radian:
		return radToDeg * a.value
	case Hour:
		return degPerHour * a.value
	default:
		return a.value
	}
}

// Rad returns the angle in radians.
func (a Angle) Rad() float64 {
	switch a.unit {
	case Degree:
		return degToRad * a.value
	case Hour:
		return hourToRad * a.value
	default:
		return a.value
	}
}

// Hr returns the angle in decimal hours.
func (a Angle) Hr() float64 {
	switch a.unit {
	case Degree:
		return a.value / degPerHour
	case Radian:
		return radToHour * a.value
	default:
		return a.value
	}
}

// In re-expresses the angle in unit u.
func (a Angle) In(u Unit) Angle {
	switch u {
	case Radian:
		return Radians(a.Rad())
	case Hour:
		return Hours(a.Hr())
	default:
		return Degrees(a.Deg())
	}
}

// in returns the angle's magnitude expressed in unit u.
func (a Angle) in(u Unit) float64 {
	switch u {
	case Radian:
		return a.Rad()
	case Hour:
		return a.Hr()
	default:
		return a.Deg()
	}
}

// Sin returns the sine of the angle.
func (a Angle) Sin() float64 { return math.Sin(a.Rad()) }

// Cos returns the cosine of the angle.
func (a Angle) Cos() float64 { return math.Cos(a.Rad()) }

// Tan returns the tangent of the angle.
func (a Angle) Tan() float64 { return math.Tan(a.Rad()) }

// Add returns a+b. The result keeps a's unit; b is converted into it.
func (a Angle) Add(b Angle) Angle {
	return Angle{unit: a.unit, value: a.value + b.in(a.unit)}
}

// Sub returns a-b. The result keeps a's unit; b is converted into it.
func (a Angle) Sub(b Angle) Angle {
	return Angle{unit: a.unit, value: a.value - b.in(a.unit)}
}

// Neg returns -a in the same unit.
func (a Angle) Neg() Angle {
	return Angle{unit: a.unit, value: -a.value}
}

// Equal reports whether both angles are the same number of degrees.
// Stored values are never compared across units directly.
func (a Angle) Equal(b Angle) bool {
	return a.Deg() == b.Deg()
}

// ApproxEqual reports whether the angles differ by at most tolDeg degrees.
func (a Angle) ApproxEqual(b Angle, tolDeg float64) bool {
	return math.Abs(a.Deg()-b.Deg()) <= tolDeg
}

// Normalized wraps the angle into a single turn, [0, 360°), [0, 2π) or [0, 24h),
// keeping its unit.
func (a Angle) Normalized() Angle {
	var turn float64
	switch a.unit {
	case Radian:
		turn = TwoPi
	case Hour:
		turn = 24
	default:
		turn = 360
	}
	v := math.Mod(a.value, turn)
	if v < 0 {
		v += turn
	}
	// math.Mod can return turn itself after the shift for tiny negatives
	if v >= turn {
		v = 0
	}
	return Angle{unit: a.unit, value: v}
}

// String renders the value followed by its unit, e.g. "12.5deg".
func (a Angle) String() string {
	return strconv.FormatFloat(a.value, 'g', -1, 64) + a.unit.String()
}
