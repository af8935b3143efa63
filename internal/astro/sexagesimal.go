package astro

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Sign is the direction of a sexagesimal value. It is kept apart from the
// magnitude fields so those are always non-negative.
type Sign int

const (
	Positive Sign = iota
	Negative
)

func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// SexagesimalKind labels the base-60 flavor. Both kinds share one algorithm.
type SexagesimalKind int

const (
	DMS SexagesimalKind = iota // degrees, arcminutes, arcseconds
	HMS                        // hours, minutes, seconds
)

// Sexagesimal is a signed base-60 triple: |value| = Major + Minor/60 + Second/3600.
type Sexagesimal struct {
	Kind   SexagesimalKind
	Sign   Sign
	Major  uint32
	Minor  uint32  // 0..59
	Second float64 // [0, 60)
}

// DecimalToSexagesimal splits a signed decimal angle into a sexagesimal triple.
// The sign comes from the IEEE sign bit, so -0.0 yields Negative.
// x must be finite and |x| must fit in a uint32.
func DecimalToSexagesimal(x float64, kind SexagesimalKind) Sexagesimal {
	sign := Positive
	if math.Signbit(x) {
		sign = Negative
	}

	abs := math.Abs(x)
	major := math.Floor(abs)
	minuteFrac := (abs - major) * 60
	minor := math.Floor(minuteFrac)
	second := (minuteFrac - minor) * 60

	return Sexagesimal{
		Kind:   kind,
		Sign:   sign,
		Major:  uint32(major),
		Minor:  uint32(minor),
		Second: second,
	}
}

// SexagesimalToDecimal joins a sexagesimal triple back into a signed decimal.
func SexagesimalToDecimal(sign Sign, major, minor uint32, second float64) float64 {
	magnitude := float64(major) + float64(minor)/60 + second/3600
	if sign == Negative {
		return -magnitude
	}
	return magnitude
}

// NewSexagesimal builds a triple from decoded fields, rejecting minutes above
// 59 and seconds outside [0, 60).
func NewSexagesimal(kind SexagesimalKind, sign Sign, major, minor uint32, second float64) (Sexagesimal, error) {
	if minor > 59 {
		return Sexagesimal{}, &SexagesimalError{Reason: fmt.Sprintf("minutes %d not in 0..59", minor)}
	}
	if math.IsNaN(second) || second < 0 || second >= 60 {
		return Sexagesimal{}, &SexagesimalError{Reason: fmt.Sprintf("seconds %g not in [0, 60)", second)}
	}
	if sign != Positive && sign != Negative {
		return Sexagesimal{}, &SexagesimalError{Reason: "unknown sign"}
	}
	return Sexagesimal{Kind: kind, Sign: sign, Major: major, Minor: minor, Second: second}, nil
}

// Decimal returns the signed decimal value in the triple's major unit.
func (s Sexagesimal) Decimal() float64 {
	return SexagesimalToDecimal(s.Sign, s.Major, s.Minor, s.Second)
}

// Angle returns a Degree angle for DMS and an Hour angle for HMS.
func (s Sexagesimal) Angle() Angle {
	if s.Kind == HMS {
		return Hours(s.Decimal())
	}
	return Degrees(s.Decimal())
}

// String renders "+12°34′56.78″" for DMS and "06h45m08.92s" for HMS.
// Negative HMS values carry a leading "-". Seconds are rounded to hundredths
// and carried, so the text never shows 60 seconds or minutes.
func (s Sexagesimal) String() string {
	major, minor := s.Major, s.Minor
	second := math.Round(s.Second*100) / 100
	if second >= 60 {
		second -= 60
		minor++
	}
	if minor >= 60 {
		minor -= 60
		major++
	}

	if s.Kind == HMS {
		prefix := ""
		if s.Sign == Negative {
			prefix = "-"
		}
		return fmt.Sprintf("%s%02dh%02dm%05.2fs", prefix, major, minor, second)
	}
	return fmt.Sprintf("%s%02d°%02d′%05.2f″", s.Sign, major, minor, second)
}

// DMS encodes the angle as degrees, arcminutes and arcseconds.
func (a Angle) DMS() Sexagesimal {
	return DecimalToSexagesimal(a.Deg(), DMS)
}

// HMS encodes the angle as hours, minutes and seconds.
func (a Angle) HMS() Sexagesimal {
	return DecimalToSexagesimal(a.Hr(), HMS)
}

// fieldSeparators are the characters accepted between the three fields.
const fieldSeparators = "_: \t" + "hmsd'\"" + "°′″"

// ParseSexagesimal decodes catalog text such as "06_45_08.917", "-16:42:58.02",
// " 43 56 19.1" or "12h30m00s". A leading blank reads as Positive, matching
// the sign column of fixed-width catalogs.
func ParseSexagesimal(text string, kind SexagesimalKind) (Sexagesimal, error) {
	fail := func(reason string) (Sexagesimal, error) {
		return Sexagesimal{}, &SexagesimalError{Input: text, Reason: reason}
	}

	s := strings.TrimRightFunc(text, unicode.IsSpace)
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return fail("empty")
	}

	sign := Positive
	switch s[0] {
	case '-':
		sign = Negative
		s = s[1:]
	case '+':
		s = s[1:]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(fieldSeparators, r)
	})
	if len(fields) != 3 {
		return fail(fmt.Sprintf("want 3 fields, got %d", len(fields)))
	}

	major, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return fail("bad major field " + strconv.Quote(fields[0]))
	}
	minor, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return fail("bad minor field " + strconv.Quote(fields[1]))
	}
	second, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fail("bad second field " + strconv.Quote(fields[2]))
	}

	out, err := NewSexagesimal(kind, sign, uint32(major), uint32(minor), second)
	if err != nil {
		if se, ok := err.(*SexagesimalError); ok {
			se.Input = text
		}
		return Sexagesimal{}, err
	}
	return out, nil
}
