package astro

import "strconv"

// Star represents a cataloged star with position and brightness.
type Star struct {
	Name      string     // Common name (e.g., "Sirius", "Vega"), may be empty
	HR        int        // Yale Bright Star number, 0 if unknown
	HIP       int        // Hipparcos number, 0 if unknown
	Position  Equatorial // J2000
	Magnitude float64    // Apparent visual magnitude (lower = brighter)
}

// Label returns the name, or the catalog designation when the star is unnamed.
func (s Star) Label() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.HR != 0:
		return "HR " + strconv.Itoa(s.HR)
	case s.HIP != 0:
		return "HIP " + strconv.Itoa(s.HIP)
	default:
		return "?"
	}
}
