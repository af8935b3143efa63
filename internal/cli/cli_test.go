package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/sky"
	"github.com/litescript/ls-starmap/internal/version"
)

// July evening at Goldstone: Vega high in the east, Sirius below the horizon.
const eveningTime = "2024-07-15T04:00:00Z"

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if want := "ls-starmap v" + version.Version; strings.TrimSpace(out) != want {
		t.Errorf("version = %q, want %q", out, want)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"right angle", []string{"90"}, []string{
			"degrees  90\n",
			"radians  1.570796327\n",
			"hours    6\n",
			"DMS      +90°00′00.00″\n",
			"HMS      06h00m00.00s\n",
		}},
		{"from radians", []string{"--from", "rad", "3.141592653589793"}, []string{"degrees  180\n", "hours    12\n"}},
		{"from hms", []string{"--from", "hms", "06:45:08.92"}, []string{"degrees  101.2871667\n", "HMS      06h45m08.92s\n"}},
		{"from hours", []string{"--from", "hour", "18.5"}, []string{"degrees  277.5\n"}},
		{"negative dms", []string{"convert", "--from", "dms", "--", "-00:30:00"}, []string{"degrees  -0.5\n", "DMS      -00°30′00.00″\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if args[0] != "convert" {
				args = append([]string{"convert"}, args...)
			}
			out, _, err := run(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	_, _, err := run(t, "convert", "--from", "dms", "12:61:00")
	if !errors.Is(err, astro.ErrMalformedSexagesimal) {
		t.Errorf("bad minutes: err = %v, want ErrMalformedSexagesimal", err)
	}

	_, _, err = run(t, "convert", "--from", "furlong", "1")
	if err == nil || !strings.Contains(err.Error(), "unknown form") {
		t.Errorf("unknown form: err = %v", err)
	}

	_, _, err = run(t, "convert", "ninety")
	if err == nil {
		t.Error("non-numeric degrees should fail")
	}
}

func TestTable(t *testing.T) {
	out, _, err := run(t, "table", "--time", eveningTime)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Sky @ " + eveningTime + " from Goldstone", "Vega", "Altair", "Total:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Sirius") {
		t.Error("Sirius is below the horizon and should not be listed")
	}

	all, _, err := run(t, "table", "--all", "--time", eveningTime)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(all, "Sirius") {
		t.Error("--all should include stars below the horizon")
	}
}

func TestTable_EmptyMessage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"horizon filter", []string{"--mag", "-3"}, "No stars above the horizon"},
		{"min altitude", []string{"--mag", "-3", "--min-alt", "15"}, "No stars above 15.0° altitude"},
		{"all stars", []string{"--mag", "-3", "--all"}, "No catalog stars to plot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"table", "--time", eveningTime}, tt.args...)
			out, _, err := run(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestTable_JSON(t *testing.T) {
	out, _, err := run(t, "table", "-f", "json", "--time", eveningTime, "--mag", "1.5")
	if err != nil {
		t.Fatal(err)
	}

	var export sky.FrameExport
	if err := json.Unmarshal([]byte(out), &export); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if export.Observer != "Goldstone" {
		t.Errorf("observer = %q", export.Observer)
	}
	if len(export.Stars) == 0 {
		t.Fatal("expected stars")
	}
	for i, s := range export.Stars {
		if s.AltitudeDeg <= 0 {
			t.Errorf("%s below the horizon", s.Name)
		}
		if s.Magnitude > 1.5 {
			t.Errorf("%s mag %.2f exceeds --mag", s.Name, s.Magnitude)
		}
		if i > 0 && s.AltitudeDeg > export.Stars[i-1].AltitudeDeg {
			t.Errorf("%s out of altitude order", s.Name)
		}
	}
}

func TestTable_Errors(t *testing.T) {
	if _, _, err := run(t, "table", "--format", "xml", "--time", eveningTime); err == nil {
		t.Error("unknown format should fail")
	}
	_, _, err := run(t, "table", "--watch", "10s", "--time", eveningTime)
	if err == nil || !strings.Contains(err.Error(), "--watch") {
		t.Errorf("watch with fixed time: err = %v", err)
	}
	_, _, err = run(t, "table", "--time", "2150-01-01T00:00:00Z")
	if !errors.Is(err, astro.ErrUnsupportedEpoch) {
		t.Errorf("out-of-range time: err = %v, want ErrUnsupportedEpoch", err)
	}
}

func TestRoot_WithoutTerminalPrintsTable(t *testing.T) {
	out, _, err := run(t, "--time", eveningTime)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Sky @ "+eveningTime) {
		t.Errorf("expected the table when stdout is not a terminal:\n%s", out)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
observer:
  name: Canberra
  latitude_deg: -35.4014
  longitude_deg: 148.9817
time: "2024-01-15T10:00:00Z"
`)

	out, _, err := run(t, "table", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Sky @ 2024-01-15T10:00:00Z from Canberra") {
		t.Errorf("config not applied:\n%s", out)
	}

	out, _, err = run(t, "table", "--config", path, "--time", eveningTime, "--observer", "DSS-43")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Sky @ "+eveningTime+" from DSS-43") {
		t.Errorf("flags should override the file:\n%s", out)
	}

	out, _, err = run(t, "table", "--lat", "-33.8688", "--lon", "151.2093", "--time", eveningTime)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "from custom site (-33°52′07.68″") {
		t.Errorf("lat/lon flags not applied:\n%s", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := run(t, "table", "--lat", "95", "--time", eveningTime)
	if !errors.Is(err, astro.ErrRangeViolation) {
		t.Errorf("lat 95: err = %v, want ErrRangeViolation", err)
	}

	_, _, err = run(t, "table", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing config: err = %v", err)
	}
}

func TestCatalogFile(t *testing.T) {
	path := writeFile(t, "stars.yaml", `
stars:
  - name: Vega
    hr: 7001
    ra: "18:36:56.3"
    dec: "+38:47:01"
    mag: 0.03
  - name: Nowhere
    ra_deg: 10
    dec_deg: 95
    mag: 1
  - name: Altair
    ra_deg: 297.6958
    dec_deg: 8.8683
    mag: 0.77
`)

	out, errOut, err := run(t, "table", "--catalog", path, "--time", eveningTime)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Vega") || !strings.Contains(out, "Altair") || !strings.Contains(out, "Total: 2 stars") {
		t.Errorf("catalog stars missing:\n%s", out)
	}
	if !strings.Contains(errOut, "skipped 1 records") {
		t.Errorf("skipped record not logged:\n%s", errOut)
	}

	_, _, err = run(t, "table", "--catalog", filepath.Join(t.TempDir(), "none.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing catalog: err = %v", err)
	}
}

func TestRise(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"already up", []string{"Vega"}, []string{"Vega from Goldstone", "Rise     already up", "Transit  2024-07-15", "Set      2024-07-15"}},
		{"circumpolar", []string{"Polaris"}, []string{"Above the horizon the whole time", "Set      not within span"}},
		{"by HR", []string{"HR", "2491"}, []string{"Sirius from Goldstone", "Rise     2024-07-15"}},
		{"never rises", []string{"Canopus", "--lat", "60"}, []string{"Never rises"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"rise", "--time", eveningTime}, tt.args...)
			out, _, err := run(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}

	_, _, err := run(t, "rise", "--time", eveningTime, "Nosuchstar")
	if !errors.Is(err, errStarNotFound) {
		t.Errorf("unknown star: err = %v", err)
	}
}

func TestSeparation(t *testing.T) {
	for _, use := range []string{"separation", "sep"} {
		out, _, err := run(t, use, "Vega", "Altair")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "Vega to Altair: +34°11′") || !strings.Contains(out, "(34.1957°)") {
			t.Errorf("%s output = %q", use, out)
		}
	}

	if _, _, err := run(t, "sep", "Vega"); err == nil {
		t.Error("one star should fail")
	}
}

func TestMap(t *testing.T) {
	out, _, err := run(t, "map", "--time", eveningTime, "--width", "60", "--height", "24")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{eveningTime + " from Goldstone", "Sky Map", ">>> "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "starmap.log")
	_, errOut, err := run(t, "table", "--time", eveningTime, "--log-level", "debug", "--log-file", logPath)
	if err != nil {
		t.Fatal(err)
	}
	if errOut != "" {
		t.Errorf("file logging should keep stderr quiet, got %q", errOut)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "DEBUG observer Goldstone") {
		t.Errorf("unexpected log contents: %q", data)
	}
}

func TestLookupStar(t *testing.T) {
	cat := catalog.BrightStars()
	tests := []struct {
		query string
		want  string
	}{
		{"Vega", "Vega"},
		{"  vega ", "Vega"},
		{"HR 7001", "Vega"},
		{"hip 91262", "Vega"},
		{"HIP 11767", "Polaris"},
	}
	for _, tt := range tests {
		s, err := lookupStar(cat, tt.query)
		if err != nil || s.Name != tt.want {
			t.Errorf("lookupStar(%q) = %v, %v; want %s", tt.query, s.Name, err, tt.want)
		}
	}

	for _, q := range []string{"HR 1", "HIP 2", "Vulcan"} {
		if _, err := lookupStar(cat, q); !errors.Is(err, errStarNotFound) {
			t.Errorf("lookupStar(%q) err = %v", q, err)
		}
	}
}
