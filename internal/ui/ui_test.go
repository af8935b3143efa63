package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
)

func testOptions(start time.Time) Options {
	return Options{
		Geo:          astro.Geographic{Latitude: astro.MustLatitude(astro.Degrees(35.4267)), Longitude: astro.Degrees(-116.89)},
		ObserverName: "Goldstone",
		Start:        start,
		Stars:        catalog.BrightStars().Stars,
		MagLimit:     4.5,
		Labels:       true,
		Clock:        func() time.Time { return goldstoneEvening.Add(3 * time.Hour) },
	}
}

func newTestModel(t *testing.T, start time.Time) Model {
	t.Helper()
	m, err := New(testOptions(start))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNew_UnsupportedEpoch(t *testing.T) {
	_, err := New(testOptions(time.Date(2150, 1, 1, 0, 0, 0, 0, time.UTC)))
	if !errors.Is(err, astro.ErrUnsupportedEpoch) {
		t.Errorf("New() error = %v, want ErrUnsupportedEpoch", err)
	}
}

func TestModel_TimeStepping(t *testing.T) {
	tests := []struct {
		key  string
		want time.Duration
	}{
		{"right", 10 * time.Minute},
		{"left", -10 * time.Minute},
		{"]", time.Hour},
		{"[", -time.Hour},
		{".", 24 * time.Hour},
		{",", -24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t, goldstoneEvening)
			m.live = true
			m, _ = send(t, m, key(tt.key))

			if got := m.Frame().Instant.Sub(goldstoneEvening); got != tt.want {
				t.Errorf("stepped %v, want %v", got, tt.want)
			}
			if m.Live() {
				t.Error("stepping should leave live mode")
			}
			if m.Status() != "" {
				t.Errorf("unexpected status %q", m.Status())
			}
		})
	}
}

func TestModel_StepPastEpochKeepsFrame(t *testing.T) {
	start := time.Date(2099, 12, 31, 23, 30, 0, 0, time.UTC)
	m := newTestModel(t, start)

	m, _ = send(t, m, key("]"))
	if !m.Frame().Instant.Equal(start) {
		t.Errorf("frame moved to %v", m.Frame().Instant)
	}
	if !strings.Contains(m.Status(), "2100") {
		t.Errorf("status should explain the rejected instant, got %q", m.Status())
	}

	// A valid step clears the message
	m, _ = send(t, m, key("["))
	if m.Status() != "" {
		t.Errorf("status not cleared: %q", m.Status())
	}
}

func TestModel_LiveClock(t *testing.T) {
	m := newTestModel(t, goldstoneEvening)

	tick := TickMsg(goldstoneEvening.Add(time.Minute))
	m, cmd := send(t, m, tick)
	if cmd == nil {
		t.Error("tick should reschedule itself")
	}
	if !m.Frame().Instant.Equal(goldstoneEvening) {
		t.Error("paused model followed the clock")
	}

	m, _ = send(t, m, key("n"))
	if !m.Live() {
		t.Fatal("n should enter live mode")
	}
	if want := goldstoneEvening.Add(3 * time.Hour); !m.Frame().Instant.Equal(want) {
		t.Errorf("n jumped to %v, want %v", m.Frame().Instant, want)
	}

	m, _ = send(t, m, tick)
	if !m.Frame().Instant.Equal(time.Time(tick)) {
		t.Errorf("live model at %v, want %v", m.Frame().Instant, time.Time(tick))
	}
}

func TestModel_TimeLapse(t *testing.T) {
	m := newTestModel(t, goldstoneEvening)

	m, cmd := send(t, m, key("p"))
	if cmd == nil {
		t.Fatal("p should start the animation tick")
	}
	m, _ = send(t, m, AnimTickMsg(time.Now()))
	m, _ = send(t, m, AnimTickMsg(time.Now()))
	if got := m.Frame().Instant.Sub(goldstoneEvening); got != 2*timeLapseStep {
		t.Errorf("time-lapse advanced %v, want %v", got, 2*timeLapseStep)
	}

	m, _ = send(t, m, key("p"))
	m, cmd = send(t, m, AnimTickMsg(time.Now()))
	if cmd != nil {
		t.Error("stopped time-lapse should not reschedule")
	}
	if got := m.Frame().Instant.Sub(goldstoneEvening); got != 2*timeLapseStep {
		t.Errorf("paused time-lapse advanced to %v", got)
	}
}

func TestModel_ViewSwitching(t *testing.T) {
	m := newTestModel(t, goldstoneEvening)
	if m.Mode() != ViewSkyMap {
		t.Fatalf("initial mode = %v", m.Mode())
	}

	m, _ = send(t, m, key("tab"))
	if m.Mode() != ViewStarList {
		t.Errorf("tab -> %v, want star list", m.Mode())
	}
	m, _ = send(t, m, key("tab"))
	if m.Mode() != ViewSkyMap {
		t.Errorf("tab -> %v, want sky map", m.Mode())
	}
	m, _ = send(t, m, key("2"))
	if m.Mode() != ViewStarList {
		t.Errorf("2 -> %v, want star list", m.Mode())
	}

	// j/k go to the active view only
	m, _ = send(t, m, key("j"))
	if m.starList.cursor != 1 {
		t.Errorf("star list cursor = %d, want 1", m.starList.cursor)
	}
	if m.skyMap.focusIdx != 0 {
		t.Errorf("sky map focus moved to %d", m.skyMap.focusIdx)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, goldstoneEvening)
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := send(t, m, k)
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, goldstoneEvening)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q", got)
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 45})
	view := m.View()
	for _, want := range []string{"ls-starmap", "Goldstone", "2024-07-15 04:00:00 UTC", "LST", "PAUSED", "Sky Map", "[2] Star List", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = send(t, m, key("2"))
	if !strings.Contains(m.View(), "Stars Above the Horizon") {
		t.Error("star list view not rendered")
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 1); got != "#3B82F6" {
		t.Errorf("start color = %s, want #3B82F6", got)
	}
	// Bottom rows are dimmed
	if got := gradientColor(0, 1, 10, 2); got != "#2C61B8" {
		t.Errorf("dimmed color = %s, want #2C61B8", got)
	}
}
