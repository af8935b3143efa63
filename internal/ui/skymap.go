package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/sky"
)

const (
	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0

	// Magnitude limit bounds and step for +/-
	magLimitMin  = -1.0
	magLimitMax  = 6.0
	magLimitStep = 0.5

	glyphSun     = '☉'
	glyphHorizon = '·'
	glyphZenith  = '+'

	colorSun     = "229" // bright gold
	colorHorizon = "60"  // muted purple
	colorFocus   = "#d0c8ff"
	colorLabel   = "146"

	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '·' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	// Star colors
	colorStarBright  = "255" // bright white
	colorStarMedium  = "250" // medium gray
	colorStarDim     = "244" // dim gray
	colorStarVeryDim = "240" // very dim gray

	// Stars brighter than this get a label in LabelBright mode
	brightLabelMag = 1.5
)

// LabelMode controls which stars are labelled.
type LabelMode int

const (
	LabelNone   LabelMode = iota // No labels
	LabelBright                  // First-magnitude stars and the focused star
	LabelAll                     // Every plotted star
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelBright:
		return "bright"
	default:
		return "all"
	}
}

// SkyMapModel renders the whole visible sky as a stereographic disc: zenith
// at the centre, horizon on the rim, north up and east to the left.
type SkyMapModel struct {
	width  int
	height int

	frame sky.Frame
	stars []astro.Star

	minAltitude astro.Angle
	magLimit    float64
	labelMode   LabelMode

	// Stars above the horizon and within the magnitude limit, brightest first
	plotted []sky.Plotted
	skipped int
	sun     *astro.Horizontal

	focusIdx int
}

// NewSkyMapModel creates a new sky map model.
func NewSkyMapModel(magLimit float64, minAltitude astro.Angle, labels bool) SkyMapModel {
	mode := LabelNone
	if labels {
		mode = LabelBright
	}
	return SkyMapModel{
		magLimit:    clampMag(magLimit),
		minAltitude: minAltitude,
		labelMode:   mode,
	}
}

func clampMag(m float64) float64 {
	return math.Max(magLimitMin, math.Min(magLimitMax, m))
}

// SetSize updates the viewport size.
func (m SkyMapModel) SetSize(width, height int) SkyMapModel {
	m.width = width
	m.height = height
	return m
}

// UpdateFrame re-plots stars for a new frame.
func (m SkyMapModel) UpdateFrame(f sky.Frame, stars []astro.Star) SkyMapModel {
	m.frame = f
	m.stars = stars
	return m.replot()
}

func (m SkyMapModel) replot() SkyMapModel {
	var focusName string
	if p, ok := m.Focused(); ok {
		focusName = p.Star.Label()
	}

	bright := make([]astro.Star, 0, len(m.stars))
	for _, s := range m.stars {
		if s.Magnitude <= m.magLimit {
			bright = append(bright, s)
		}
	}

	res := m.frame.ObserveAll(bright, sky.Options{AboveHorizonOnly: true, MinAltitude: m.minAltitude})
	sort.SliceStable(res.Plotted, func(i, j int) bool {
		return res.Plotted[i].Star.Magnitude < res.Plotted[j].Star.Magnitude
	})
	m.plotted = res.Plotted
	m.skipped = len(res.Skipped)

	m.sun = nil
	if h, err := m.frame.Sun(); err == nil && h.AboveHorizon() {
		m.sun = &h
	}

	// Keep focus on the same star across frames when it is still up
	m.focusIdx = 0
	for i, p := range m.plotted {
		if p.Star.Label() == focusName {
			m.focusIdx = i
			break
		}
	}
	return m
}

// Plotted returns the stars currently drawn.
func (m SkyMapModel) Plotted() []sky.Plotted { return m.plotted }

// Skipped returns how many stars failed to transform in the last frame.
func (m SkyMapModel) Skipped() int { return m.skipped }

// Focused returns the star shown in the status line.
func (m SkyMapModel) Focused() (sky.Plotted, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.plotted) {
		return sky.Plotted{}, false
	}
	return m.plotted[m.focusIdx], true
}

// MagLimit returns the faintest magnitude drawn.
func (m SkyMapModel) MagLimit() float64 { return m.magLimit }

// Update handles messages.
func (m SkyMapModel) Update(msg tea.Msg) (SkyMapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m = m.focusPrev()
		case "down", "j":
			m = m.focusNext()
		case "L":
			m.labelMode = (m.labelMode + 1) % 3
		case "+", "=":
			m.magLimit = clampMag(m.magLimit + magLimitStep)
			m = m.replot()
		case "-", "_":
			m.magLimit = clampMag(m.magLimit - magLimitStep)
			m = m.replot()
		}
	}
	return m, nil
}

func (m SkyMapModel) focusNext() SkyMapModel {
	if len(m.plotted) == 0 {
		return m
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.plotted)
	return m
}

func (m SkyMapModel) focusPrev() SkyMapModel {
	if len(m.plotted) == 0 {
		return m
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.plotted) - 1
	}
	return m
}

// View renders the sky map.
func (m SkyMapModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky map requires larger terminal"
	}

	// Reserve lines for header and status
	viewHeight := m.height - 4

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCanvas(m.width, viewHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyMapModel) renderHeader() string {
	violet := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFocus))

	title := violet.Render("Sky Map")
	mag := accentStyle.Render(fmt.Sprintf("mag ≤ %.1f", m.magLimit))
	labels := dimStyle.Render("Labels: " + m.labelMode.String())
	count := dimStyle.Render(fmt.Sprintf("%d stars up", len(m.plotted)))

	return fmt.Sprintf("%s | %s | %s | %s", title, mag, labels, count)
}

func (m SkyMapModel) renderStatus() string {
	p, ok := m.Focused()
	if !ok {
		return "No stars above the horizon"
	}

	pos := p.Star.Position
	line := fmt.Sprintf(">>> %s  mag %.2f | RA %s Dec %s | Alt %.1f° Az %.1f°",
		p.Star.Label(),
		p.Star.Magnitude,
		pos.RightAscension.HMS(),
		pos.Declination.Value().DMS(),
		p.Horizontal.Altitude.Value().Deg(),
		p.Horizontal.Azimuth.Normalized().Deg(),
	)
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	return accentStyle.Render(line)
}

// disc returns the disc centre and its horizontal and vertical radii in cells.
func disc(width, height int) (cx, cy int, rx, ry float64) {
	cx, cy = (width-1)/2, (height-1)/2
	ry = float64(cy)
	rx = ry * cellAspect
	if maxRx := float64(cx); rx > maxRx {
		rx = maxRx
		ry = rx / cellAspect
	}
	return cx, cy, rx, ry
}

// projectToScreen maps a stereographic position onto the canvas. Positions
// outside the horizon circle (radius 2), or not finite, are not visible.
func projectToScreen(p astro.Polar, width, height int) (int, int, bool) {
	if math.IsNaN(p.Radius) || p.Radius > 2 {
		return 0, 0, false
	}
	px, py := p.Plane()
	cx, cy, rx, ry := disc(width, height)

	x := cx + int(math.Round(px/2*rx))
	y := cy - int(math.Round(py/2*ry))
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0, 0, false
	}
	return x, y, true
}

// starPos tracks a drawn star for label placement.
type starPos struct {
	x, y      int
	name      string
	mag       float64
	isFocused bool
}

func (m SkyMapModel) renderCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	m.drawHorizon(canvas, colors, width, height)

	var positions []starPos
	for i, p := range m.plotted {
		x, y, ok := projectToScreen(p.Polar, width, height)
		if !ok {
			continue
		}
		glyph, color := starGlyph(p.Star.Magnitude)
		if i == m.focusIdx {
			color = colorFocus
		}
		canvas[y][x] = glyph
		colors[y][x] = color
		positions = append(positions, starPos{
			x:         x,
			y:         y,
			name:      p.Star.Label(),
			mag:       p.Star.Magnitude,
			isFocused: i == m.focusIdx,
		})
	}

	if m.sun != nil {
		if x, y, ok := projectToScreen(astro.StereoProject(*m.sun), width, height); ok {
			canvas[y][x] = glyphSun
			colors[y][x] = colorSun
		}
	}

	m.renderLabels(canvas, colors, width, positions)

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m SkyMapModel) drawHorizon(canvas [][]rune, colors [][]lipgloss.Color, width, height int) {
	set := func(x, y int, r rune, c lipgloss.Color) {
		if x >= 0 && x < width && y >= 0 && y < height {
			canvas[y][x] = r
			colors[y][x] = c
		}
	}

	for az := 0.0; az < 360; az += 2 {
		if x, y, ok := projectToScreen(astro.Polar{Radius: 2, Angle: astro.Degrees(az)}, width, height); ok {
			set(x, y, glyphHorizon, colorHorizon)
		}
	}

	cx, cy, _, _ := disc(width, height)
	set(cx, cy, glyphZenith, colorHorizon)

	for _, c := range []struct {
		label string
		az    float64
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		if x, y, ok := projectToScreen(astro.Polar{Radius: 2, Angle: astro.Degrees(c.az)}, width, height); ok {
			set(x, y, rune(c.label[0]), "252")
		}
	}
}

// renderLabels writes star names to the right of their glyphs. The focused
// star is labelled first, then brighter stars; a label never overwrites a
// drawn cell.
func (m SkyMapModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width int, positions []starPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].isFocused != positions[j].isFocused {
			return positions[i].isFocused
		}
		return positions[i].mag < positions[j].mag
	})

	for _, pos := range positions {
		show := pos.isFocused || m.labelMode == LabelAll ||
			(m.labelMode == LabelBright && pos.mag < brightLabelMag)
		if !show {
			continue
		}

		runes := []rune(pos.name)
		start := pos.x + 2
		if start+len(runes) > width {
			continue
		}
		free := true
		for i := -1; i < len(runes); i++ {
			if canvas[pos.y][start+i] != ' ' {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		color := lipgloss.Color(colorLabel)
		if pos.isFocused {
			color = colorFocus
		}
		for i, r := range runes {
			canvas[pos.y][start+i] = r
			colors[pos.y][start+i] = color
		}
	}
}

// starGlyph returns the appropriate glyph and color for a star based on its magnitude.
// Brighter stars (lower magnitude) get more prominent symbols.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

// Init returns nil cmd
func (m SkyMapModel) Init() tea.Cmd {
	return nil
}
