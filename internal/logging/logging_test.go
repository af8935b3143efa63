package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{" error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelWarn, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden %d", 2)
	log.Warn("skipped %d records", 3)
	log.Error("boom: %s", "bad")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below WARN leaked:\n%s", out)
	}
	if !strings.Contains(out, "WARN skipped 3 records") {
		t.Errorf("missing warn line:\n%s", out)
	}
	if !strings.Contains(out, "ERROR boom: bad") {
		t.Errorf("missing error line:\n%s", out)
	}

	buf.Reset()
	log.SetLevel(LevelDebug)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "DEBUG now visible") {
		t.Errorf("SetLevel(Debug) had no effect: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing %s", "here")
	log.SetLevel(LevelDebug)
	log.Debug("still nothing")
	log.Sync()
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starmap.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false

	log := NewFile(LevelInfo, cfg)
	log.Info("frame at %s", "2024-07-15T04:00:00Z")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "INFO frame at 2024-07-15T04:00:00Z") {
		t.Errorf("unexpected log contents: %q", data)
	}
}
