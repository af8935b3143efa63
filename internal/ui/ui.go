// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/sky"
	"github.com/litescript/ls-starmap/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSkyMap ViewMode = iota
	ViewStarList
)

// Time stepping
const (
	stepSmall     = 10 * time.Minute
	stepHour      = time.Hour
	stepDay       = 24 * time.Hour
	timeLapseStep = 2 * time.Minute
)

// Header and footer lines around the active view
const chromeLines = 7

// Msg types for Bubble Tea
type (
	// TickMsg triggers the live clock.
	TickMsg time.Time

	// AnimTickMsg advances the time-lapse.
	AnimTickMsg time.Time
)

// Options configures the root model.
type Options struct {
	Geo          astro.Geographic
	ObserverName string
	Start        time.Time
	// Live follows the wall clock until the user steps time.
	Live        bool
	Stars       []astro.Star
	MagLimit    float64
	MinAltitude astro.Angle
	Labels      bool
	Log         *logging.Logger
	// Clock returns the current time; nil uses time.Now.
	Clock func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	log   *logging.Logger
	clock func() time.Time
	stars []astro.Star

	// Observation
	observer string
	frame    sky.Frame
	live     bool
	playing  bool
	animOn   bool // an AnimTickMsg is in flight

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string

	// Sub-models
	skyMap   SkyMapModel
	starList StarListModel
}

// New creates the root UI model. It fails when the start instant is outside
// the supported epoch.
func New(opts Options) (Model, error) {
	frame, err := sky.NewFrame(opts.Geo, opts.Start)
	if err != nil {
		return Model{}, fmt.Errorf("initial frame: %w", err)
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	m := Model{
		log:      log,
		clock:    clock,
		stars:    opts.Stars,
		observer: opts.ObserverName,
		live:     opts.Live,
		viewMode: ViewSkyMap,
		skyMap:   NewSkyMapModel(opts.MagLimit, opts.MinAltitude, opts.Labels),
		starList: NewStarListModel(opts.MagLimit, opts.MinAltitude),
	}
	m.applyFrame(frame)
	return m, nil
}

// Frame returns the frame currently displayed.
func (m Model) Frame() sky.Frame { return m.frame }

// Mode returns the active view.
func (m Model) Mode() ViewMode { return m.viewMode }

// Live reports whether the model follows the wall clock.
func (m Model) Live() bool { return m.live }

// Status returns the status line message, if any.
func (m Model) Status() string { return m.statusMsg }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewSkyMap
		case "2":
			m.viewMode = ViewStarList
		case "tab":
			m.viewMode = (m.viewMode + 1) % 2

		case "left":
			m.step(-stepSmall)
		case "right":
			m.step(stepSmall)
		case "[":
			m.step(-stepHour)
		case "]":
			m.step(stepHour)
		case ",":
			m.step(-stepDay)
		case ".":
			m.step(stepDay)
		case "n":
			m.live = true
			m.playing = false
			m.setTime(m.clock())

		case "p":
			m.playing = !m.playing
			if m.playing {
				m.live = false
				if !m.animOn {
					m.animOn = true
					cmds = append(cmds, animTickCmd())
				}
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - chromeLines
		m.skyMap = m.skyMap.SetSize(msg.Width, contentHeight)
		m.starList = m.starList.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if m.live {
			m.setTime(time.Time(msg))
		}

	case AnimTickMsg:
		if !m.playing {
			m.animOn = false
			break
		}
		m.setTime(m.frame.Instant.Add(timeLapseStep))
		if m.playing {
			cmds = append(cmds, animTickCmd())
		} else {
			m.animOn = false
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// step moves the observation time and leaves live mode.
func (m *Model) step(d time.Duration) {
	m.live = false
	m.setTime(m.frame.Instant.Add(d))
}

// setTime rebuilds the frame for t. An unsupported instant leaves the current
// frame in place and stops the time-lapse.
func (m *Model) setTime(t time.Time) {
	f, err := sky.NewFrame(m.frame.Geo, t)
	if err != nil {
		m.log.Warn("time step rejected: %v", err)
		m.statusMsg = err.Error()
		m.playing = false
		return
	}
	m.statusMsg = ""
	m.applyFrame(f)
}

func (m *Model) applyFrame(f sky.Frame) {
	m.frame = f
	m.skyMap = m.skyMap.UpdateFrame(f, m.stars)
	m.starList = m.starList.UpdateFrame(f, m.stars)
	if n := m.skyMap.Skipped(); n > 0 {
		m.log.Debug("frame %s: %d stars skipped", f.Instant.UTC().Format(time.RFC3339), n)
	}
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewSkyMap:
		m.skyMap, cmd = m.skyMap.Update(msg)
	case ViewStarList:
		m.starList, cmd = m.starList.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSkyMap:
		content = m.skyMap.View()
	case ViewStarList:
		content = m.starList.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder

	title := fmt.Sprintf("  ls-starmap v%s", version.Version)
	runes := []rune(title)
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 1)
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderObservation())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// renderObservation describes the observer and instant.
// Format:
//
//	Goldstone +35°25′36.12″ -116°53′24.00″ | 2024-07-15 04:00:00 UTC | LST 20h10m05.00s | night | LIVE
func (m Model) renderObservation() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	geo := m.frame.Geo
	site := fmt.Sprintf("%s %s %s", m.observer, geo.Latitude.Value().DMS(), geo.Longitude.DMS())
	when := m.frame.Instant.UTC().Format("2006-01-02 15:04:05 MST")
	lst := "LST " + m.frame.LST().Normalized().HMS().String()

	light := "Sun ?"
	if h, err := m.frame.Sun(); err == nil {
		light = astro.TwilightFor(h.Altitude).String()
	}

	mode := "PAUSED"
	switch {
	case m.playing:
		mode = "▶ TIME-LAPSE"
	case m.live:
		mode = "LIVE"
	}

	parts := []string{strings.TrimSpace(site), when, lst, light}
	return "  " + dimStyle.Render(strings.Join(parts, " | ")) + " | " + accentStyle.Render(mode)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sky Map", "[2] Star List"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	timeHelp := "←/→: 10m | [/]: 1h | ,/.: 1d | n: now | p: time-lapse"
	var help string
	switch m.viewMode {
	case ViewSkyMap:
		help = "j/k: focus | L: labels | +/-: magnitude"
	case ViewStarList:
		help = "↑↓: select"
	}

	footer := "  " + dimStyle.Render(timeHelp+" | "+help+" | tab: switch view | q: quit")
	if m.statusMsg != "" {
		footer += "\n  " + errorStyle.Render(m.statusMsg)
	}
	return footer
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue -> purple -> magenta -> pink, darkening toward the bottom row.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X",
		clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
