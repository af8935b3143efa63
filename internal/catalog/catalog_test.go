package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-starmap/internal/astro"
)

func TestBrightStars(t *testing.T) {
	c := BrightStars()
	if c.Len() < 100 {
		t.Errorf("expected at least 100 stars, got %d", c.Len())
	}

	for _, s := range c.Stars {
		ra := s.Position.RightAscension.Deg()
		if ra < 0 || ra >= 360 {
			t.Errorf("%s: RA out of range: %v", s.Name, ra)
		}
		if s.Magnitude > 5 {
			t.Errorf("%s: magnitude %v too faint for bright table", s.Name, s.Magnitude)
		}
	}

	// Each call returns an independent catalog
	a, b := BrightStars(), BrightStars()
	a.Stars[0].Name = "changed"
	if b.Stars[0].Name == "changed" {
		t.Error("BrightStars() should not share storage between calls")
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := BrightStars()

	sirius, ok := c.LookupHR(2491)
	if !ok || sirius.Name != "Sirius" {
		t.Fatalf("LookupHR(2491) = %+v, %v", sirius, ok)
	}
	if math.Abs(sirius.Position.Declination.Value().Deg()-(-16.716)) > 1e-9 {
		t.Errorf("Sirius dec = %v", sirius.Position.Declination.Value())
	}

	if s, ok := c.LookupHIP(11767); !ok || s.Name != "Polaris" {
		t.Errorf("LookupHIP(11767) = %+v, %v", s, ok)
	}
	if s, ok := c.Lookup("  vEGa "); !ok || s.HR != 7001 {
		t.Errorf("Lookup(vega) = %+v, %v", s, ok)
	}
	if _, ok := c.Lookup("Nibiru"); ok {
		t.Error("unknown name should not be found")
	}
	if _, ok := c.LookupHR(0); ok {
		t.Error("HR 0 must never be indexed")
	}
}

func TestNew_FirstDuplicateWins(t *testing.T) {
	pos := astro.Equatorial{RightAscension: astro.Degrees(10), Declination: astro.MustDeclination(astro.Degrees(0))}
	c := New([]astro.Star{
		{Name: "A", HR: 1, Position: pos},
		{Name: "a", HR: 1, Position: pos},
	})
	if s, _ := c.LookupHR(1); s.Name != "A" {
		t.Errorf("LookupHR(1) = %q, want first entry", s.Name)
	}
	if s, _ := c.Lookup("A"); s.Name != "A" {
		t.Errorf("Lookup(A) = %q, want first entry", s.Name)
	}
}

func TestCatalog_Filter(t *testing.T) {
	c := BrightStars()
	f := c.Filter(1.0)
	if f.Len() == 0 || f.Len() >= c.Len() {
		t.Fatalf("Filter(1.0) kept %d of %d", f.Len(), c.Len())
	}
	for _, s := range f.Stars {
		if s.Magnitude > 1.0 {
			t.Errorf("%s (mag %v) should have been filtered", s.Name, s.Magnitude)
		}
	}
	if _, ok := f.LookupHR(2491); !ok {
		t.Error("filtered catalog should re-index Sirius")
	}
	if _, ok := f.Lookup("Polaris"); ok {
		t.Error("Polaris (mag 2.02) should not survive Filter(1.0)")
	}
}

const sampleCatalog = `
stars:
  - name: Sirius
    hr: 2491
    hip: 32349
    ra: "06_45_08.917"
    dec: "-16_42_58.02"
    mag: -1.46
  - name: Polaris
    hr: 424
    ra_deg: 37.9542
    dec_deg: 89.2641
    mag: 2.02
  - name: Bogus
    ra: "06_45_08.917"
    dec: "+95_00_00"
    mag: 1
  - name: NoMag
    ra_deg: 10
    dec_deg: 10
  - name: BadRA
    ra: "six hours"
    dec: "00_00_00"
    mag: 3
  - name: Twice
    ra: "01_00_00"
    ra_deg: 15
    dec_deg: 0
    mag: 3
  - hr: 424
    ra_deg: 1
    dec_deg: 1
    mag: 5
  - name: [not, a, string]
  - hr: 9999
    ra: "23:59:59"
    dec: "-00:30:00"
    mag: 4.5
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(sampleCatalog))
	if c == nil {
		t.Fatalf("Load() returned nil catalog: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 good records", c.Len())
	}

	sirius, ok := c.Lookup("sirius")
	if !ok {
		t.Fatal("Sirius missing")
	}
	if sirius.Position.RightAscension.Unit() != astro.Hour {
		t.Errorf("HMS text should load as an hour angle, got %v", sirius.Position.RightAscension.Unit())
	}
	if got := sirius.Position.RightAscension.Deg(); math.Abs(got-101.28715) > 1e-4 {
		t.Errorf("Sirius RA = %v°", got)
	}
	if got := sirius.Position.Declination.Value().Deg(); math.Abs(got-(-16.71612)) > 1e-4 {
		t.Errorf("Sirius dec = %v°", got)
	}

	unnamed, ok := c.LookupHR(9999)
	if !ok || unnamed.Label() != "HR 9999" {
		t.Errorf("LookupHR(9999) = %+v, %v", unnamed, ok)
	}

	if err == nil {
		t.Fatal("expected record errors")
	}
	var skipped []int
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var re *RecordError
		if !errors.As(e, &re) {
			t.Fatalf("unexpected error type %T", e)
		}
		skipped = append(skipped, re.Index)
	}
	want := []int{2, 3, 4, 5, 6, 7}
	if len(skipped) != len(want) {
		t.Fatalf("skipped = %v, want %v", skipped, want)
	}
	for i := range want {
		if skipped[i] != want[i] {
			t.Errorf("skipped = %v, want %v", skipped, want)
			break
		}
	}

	if !errors.Is(err, astro.ErrRangeViolation) {
		t.Error("declination +95° should surface ErrRangeViolation")
	}
	if !errors.Is(err, astro.ErrMalformedSexagesimal) {
		t.Error("bad RA text should surface ErrMalformedSexagesimal")
	}
}

func TestLoad_Empty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	if err != nil || c == nil || c.Len() != 0 {
		t.Errorf("Load(empty) = %v, %v", c, err)
	}
}

func TestLoad_NotYAML(t *testing.T) {
	c, err := Load(strings.NewReader("stars: [unterminated"))
	if err == nil || c != nil {
		t.Errorf("Load(garbage) = %v, %v; want nil catalog and error", c, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := LoadFile(path)
	if c == nil || c.Len() != 3 {
		t.Fatalf("LoadFile() = %v", c)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want os.ErrNotExist", err)
	}
}
