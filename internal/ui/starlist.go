package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/sky"
)

// Styles for the star list
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))
)

// Altitude tier colors
const (
	colorVisHigh   = "#7CFC00" // Lawn green - high altitude
	colorVisMedium = "#FFD700" // Gold - medium altitude
	colorVisLow    = "#FF6347" // Tomato - low altitude
	colorVisNone   = "#444444" // Dark gray - below horizon
)

// Rise/set search window for the selected star
const (
	riseSetSpan = 24 * time.Hour
	riseSetStep = 10 * time.Minute
)

// StarListModel is a table of the stars currently above the horizon,
// highest first, with the rise/transit/set window of the selected one.
type StarListModel struct {
	width  int
	height int
	cursor int

	frame  sky.Frame
	rows   []sky.Plotted
	window *astro.VisibilityWindow
	winErr error
	minAlt astro.Angle
	magLim float64
}

// NewStarListModel creates a new star list model.
func NewStarListModel(magLimit float64, minAltitude astro.Angle) StarListModel {
	return StarListModel{magLim: magLimit, minAlt: minAltitude}
}

// SetSize updates the viewport size.
func (m StarListModel) SetSize(width, height int) StarListModel {
	m.width = width
	m.height = height
	return m
}

// UpdateFrame rebuilds the table for a new frame.
func (m StarListModel) UpdateFrame(f sky.Frame, stars []astro.Star) StarListModel {
	var selected string
	if m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].Star.Label()
	}

	bright := make([]astro.Star, 0, len(stars))
	for _, s := range stars {
		if s.Magnitude <= m.magLim {
			bright = append(bright, s)
		}
	}

	m.frame = f
	m.rows = f.ObserveAll(bright, sky.Options{AboveHorizonOnly: true, MinAltitude: m.minAlt}).Plotted
	sky.SortByAltitude(m.rows)

	m.cursor = 0
	for i, r := range m.rows {
		if r.Star.Label() == selected {
			m.cursor = i
			break
		}
	}
	return m.computeWindow()
}

// computeWindow samples the selected star over the next day.
func (m StarListModel) computeWindow() StarListModel {
	m.window, m.winErr = nil, nil
	if m.cursor >= len(m.rows) {
		return m
	}
	instants := astro.SampleTimes(m.frame.Instant, riseSetSpan, riseSetStep)
	w, err := astro.RiseSet(m.rows[m.cursor].Star.Position, m.frame.Geo, instants)
	if err != nil {
		m.winErr = err
		return m
	}
	m.window = &w
	return m
}

// Rows returns the plotted stars in table order.
func (m StarListModel) Rows() []sky.Plotted { return m.rows }

// Update handles messages.
func (m StarListModel) Update(msg tea.Msg) (StarListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		prev := m.cursor
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
		}
		if m.cursor != prev {
			m = m.computeWindow()
		}
	}
	return m, nil
}

// View renders the star list.
func (m StarListModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stars Above the Horizon"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-16s %-13s %-14s %5s %6s %6s %-4s",
		"Star", "RA", "Dec", "Mag", "Alt", "Az", "")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString("  No stars above the horizon\n")
		return b.String()
	}

	// Leave room for title, header and the visibility line
	maxRows := m.height - 6
	if maxRows < 5 {
		maxRows = 5
	}

	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := startIdx + maxRows
	if endIdx > len(m.rows) {
		endIdx = len(m.rows)
	}

	for i := startIdx; i < endIdx; i++ {
		p := m.rows[i]
		row := fmt.Sprintf("%-16s %-13s %-14s %5.2f %5.1f° %5.1f° ",
			truncate(p.Star.Label(), 16),
			p.Star.Position.RightAscension.HMS(),
			p.Star.Position.Declination.Value().DMS(),
			p.Star.Magnitude,
			p.Horizontal.Altitude.Value().Deg(),
			p.Horizontal.Azimuth.Normalized().Deg(),
		)
		tier := astro.TierFor(p.Horizontal.Altitude)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString(colorByTier(tier, tierToBar(tier)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderWindow())
	return b.String()
}

// renderWindow renders the selected star's visibility.
// Format:
//
//	Sirius   Rise 22:14   Peak 03:02 @ 38°   Set 08:49
func (m StarListModel) renderWindow() string {
	if m.cursor >= len(m.rows) {
		return ""
	}
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	p := m.rows[m.cursor]
	line := labelStyle.Render(fmt.Sprintf("%-16s ", truncate(p.Star.Label(), 16)))

	if m.winErr != nil {
		return line + dimStyle.Render("No data: "+m.winErr.Error())
	}
	if m.window == nil {
		return line + dimStyle.Render("Calculating...")
	}
	return line + formatWindow(*m.window, astro.TierFor(p.Horizontal.Altitude))
}

func formatWindow(w astro.VisibilityWindow, tier astro.AltitudeTier) string {
	if w.NeverVisible {
		return dimStyle.Render("Below horizon")
	}
	if w.AlwaysVisible {
		return colorByTier(tier, fmt.Sprintf("Always visible, peak %.0f°", w.MaxAltitude.Deg()))
	}

	var parts []string
	if !w.Rise.IsZero() {
		parts = append(parts, fmt.Sprintf("Rise %s", w.Rise.Local().Format("15:04")))
	}
	if !w.Transit.IsZero() {
		parts = append(parts, fmt.Sprintf("Peak %s @ %.0f°", w.Transit.Local().Format("15:04"), w.MaxAltitude.Deg()))
	}
	if !w.Set.IsZero() {
		parts = append(parts, fmt.Sprintf("Set %s", w.Set.Local().Format("15:04")))
	}
	return colorByTier(tier, strings.Join(parts, "   "))
}

// tierToBar converts altitude tier to a 4-character bar representation.
func tierToBar(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return "████"
	case astro.AltitudeMedium:
		return "██░░"
	case astro.AltitudeLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an altitude tier.
func tierToColor(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return colorVisHigh
	case astro.AltitudeMedium:
		return colorVisMedium
	case astro.AltitudeLow:
		return colorVisLow
	default:
		return colorVisNone
	}
}

// colorByTier applies tier-based coloring to text.
func colorByTier(tier astro.AltitudeTier, text string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// Init returns nil cmd
func (m StarListModel) Init() tea.Cmd {
	return nil
}
