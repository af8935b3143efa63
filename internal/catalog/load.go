package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-starmap/internal/astro"
)

// RecordError reports a catalog record that was skipped.
type RecordError struct {
	Index int    // position in the stars list, zero based
	Name  string // record name if it had one
	Err   error
}

func (e *RecordError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// document is the top-level YAML layout. Records stay as nodes so one badly
// typed record does not fail the whole decode.
type document struct {
	Stars []yaml.Node `yaml:"stars"`
}

type record struct {
	Name   string   `yaml:"name"`
	HR     int      `yaml:"hr"`
	HIP    int      `yaml:"hip"`
	RA     string   `yaml:"ra"`  // HMS text, e.g. "06_45_08.917" or "06:45:08.9"
	Dec    string   `yaml:"dec"` // DMS text, e.g. "-16_42_58.02"
	RADeg  *float64 `yaml:"ra_deg"`
	DecDeg *float64 `yaml:"dec_deg"`
	Mag    *float64 `yaml:"mag"`
}

// Load reads a YAML catalog:
//
//	stars:
//	  - name: Sirius
//	    hr: 2491
//	    ra: "06_45_08.917"
//	    dec: "-16_42_58.02"
//	    mag: -1.46
//
// Right ascension and declination may instead be given in decimal degrees
// as ra_deg and dec_deg. Records that fail to decode or validate are
// skipped: the returned catalog holds every good record and the error joins
// one *RecordError per skipped record. A document that is not YAML at all
// returns a nil catalog.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	stars := make([]astro.Star, 0, len(doc.Stars))
	seenHR := make(map[int]bool)
	seenHIP := make(map[int]bool)
	var errs []error

	for i := range doc.Stars {
		var rec record
		if err := doc.Stars[i].Decode(&rec); err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
			continue
		}

		star, err := rec.star()
		if err == nil && rec.HR != 0 && seenHR[rec.HR] {
			err = fmt.Errorf("duplicate HR %d", rec.HR)
		}
		if err == nil && rec.HIP != 0 && seenHIP[rec.HIP] {
			err = fmt.Errorf("duplicate HIP %d", rec.HIP)
		}
		if err != nil {
			errs = append(errs, &RecordError{Index: i, Name: rec.Name, Err: err})
			continue
		}

		seenHR[rec.HR] = true
		seenHIP[rec.HIP] = true
		stars = append(stars, star)
	}

	return New(stars), errors.Join(errs...)
}

// LoadFile reads a YAML catalog from path. See Load.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (r record) star() (astro.Star, error) {
	if r.Mag == nil {
		return astro.Star{}, errors.New("missing mag")
	}

	ra, err := r.rightAscension()
	if err != nil {
		return astro.Star{}, err
	}
	decAngle, err := r.declination()
	if err != nil {
		return astro.Star{}, err
	}

	pos, err := astro.NewEquatorial(ra, decAngle)
	if err != nil {
		return astro.Star{}, err
	}
	return astro.Star{
		Name:      r.Name,
		HR:        r.HR,
		HIP:       r.HIP,
		Position:  pos,
		Magnitude: *r.Mag,
	}, nil
}

func (r record) rightAscension() (astro.Angle, error) {
	switch {
	case r.RA != "" && r.RADeg != nil:
		return astro.Angle{}, errors.New("both ra and ra_deg given")
	case r.RADeg != nil:
		return astro.Degrees(*r.RADeg), nil
	case r.RA != "":
		s, err := astro.ParseSexagesimal(r.RA, astro.HMS)
		if err != nil {
			return astro.Angle{}, fmt.Errorf("ra: %w", err)
		}
		return s.Angle(), nil
	default:
		return astro.Angle{}, errors.New("missing ra")
	}
}

func (r record) declination() (astro.Angle, error) {
	switch {
	case r.Dec != "" && r.DecDeg != nil:
		return astro.Angle{}, errors.New("both dec and dec_deg given")
	case r.DecDeg != nil:
		return astro.Degrees(*r.DecDeg), nil
	case r.Dec != "":
		s, err := astro.ParseSexagesimal(r.Dec, astro.DMS)
		if err != nil {
			return astro.Angle{}, fmt.Errorf("dec: %w", err)
		}
		return s.Angle(), nil
	default:
		return astro.Angle{}, errors.New("missing dec")
	}
}
