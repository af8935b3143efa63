// Package catalog holds star catalogs: the built-in bright-star table and
// YAML catalogs read from disk.
package catalog

import (
	"strings"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Catalog owns a slice of stars and indexes into it. Indexes hold positions
// in Stars; a zero HR or HIP number is never indexed.
type Catalog struct {
	Stars []astro.Star

	ByHR   map[int]int
	ByHIP  map[int]int
	ByName map[string]int
}

// New builds a catalog over stars. When two stars share a designation the
// first one wins.
func New(stars []astro.Star) *Catalog {
	c := &Catalog{
		Stars:  stars,
		ByHR:   make(map[int]int),
		ByHIP:  make(map[int]int),
		ByName: make(map[string]int),
	}
	for i, s := range stars {
		if s.HR != 0 {
			if _, ok := c.ByHR[s.HR]; !ok {
				c.ByHR[s.HR] = i
			}
		}
		if s.HIP != 0 {
			if _, ok := c.ByHIP[s.HIP]; !ok {
				c.ByHIP[s.HIP] = i
			}
		}
		if key := nameKey(s.Name); key != "" {
			if _, ok := c.ByName[key]; !ok {
				c.ByName[key] = i
			}
		}
	}
	return c
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Len returns the number of stars.
func (c *Catalog) Len() int { return len(c.Stars) }

// LookupHR finds a star by its Yale Bright Star number.
func (c *Catalog) LookupHR(hr int) (astro.Star, bool) {
	return c.at(c.ByHR, hr)
}

// LookupHIP finds a star by its Hipparcos number.
func (c *Catalog) LookupHIP(hip int) (astro.Star, bool) {
	return c.at(c.ByHIP, hip)
}

// Lookup finds a star by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (astro.Star, bool) {
	i, ok := c.ByName[nameKey(name)]
	if !ok {
		return astro.Star{}, false
	}
	return c.Stars[i], true
}

func (c *Catalog) at(index map[int]int, key int) (astro.Star, bool) {
	i, ok := index[key]
	if !ok {
		return astro.Star{}, false
	}
	return c.Stars[i], true
}

// Filter returns a new catalog holding the stars at or brighter than maxMag.
func (c *Catalog) Filter(maxMag float64) *Catalog {
	out := make([]astro.Star, 0, len(c.Stars))
	for _, s := range c.Stars {
		if s.Magnitude <= maxMag {
			out = append(out, s)
		}
	}
	return New(out)
}
