package ui

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cropall/internal/cropper"
	"cropall/internal/session"
)

// Edge selects which side of the crop rectangle the arrow keys move.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
	// EdgeAll moves the whole rectangle.
	EdgeAll
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return "move"
	}
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeRows are the terminal rows used by the header and footer.
	chromeRows = 4
)

// CropSettings tunes the editor.
type CropSettings struct {
	// StepFraction is how far one key press moves an edge, as a fraction of
	// the image dimension along that axis.
	StepFraction    float64
	BorderThreshold int
	Inset           float64
}

// CropModel is the bubbletea model for choosing one image's crop.
type CropModel struct {
	frame    session.Frame
	settings CropSettings
	bounds   image.Rectangle
	aspect   cropper.Aspect
	rect     cropper.Rect
	edge     Edge

	width  int
	height int
	thumb  thumbnail
	styles styles

	showHelp bool
	help     string
	status   string

	done     bool
	decision session.Decision
}

// NewCropModel starts the editor on frame.Initial, or the full frame when
// that is empty.
func NewCropModel(frame session.Frame, settings CropSettings) CropModel {
	bounds := frame.Image.Bounds()
	rect := frame.Initial.Clamp(bounds)
	if rect.Empty() {
		rect = cropper.FromImage(bounds)
	}
	aspect := frame.Aspect
	if !aspect.Free() && (rect.Width() >= rect.Height()) != (aspect.W >= aspect.H) {
		aspect = aspect.Rotate()
	}
	m := CropModel{
		frame:    frame,
		settings: settings,
		bounds:   bounds,
		aspect:   aspect,
		rect:     rect,
		edge:     EdgeAll,
		width:    defaultWidth,
		height:   defaultHeight,
		styles:   newStyles(),
	}
	m.resizeThumb()
	return m
}

// Rect returns the rectangle currently selected.
func (m CropModel) Rect() cropper.Rect { return m.rect }

// ActiveEdge returns the edge the arrow keys move.
func (m CropModel) ActiveEdge() Edge { return m.edge }

// Decision returns the user's choice once the model has quit.
func (m CropModel) Decision() (session.Decision, bool) {
	return m.decision, m.done
}

func (m CropModel) Init() tea.Cmd { return nil }

func (m CropModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeThumb()
		if m.showHelp {
			m.help = renderHelp(m.width)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m CropModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
		case "ctrl+c":
			return m.finish(session.ActionQuit)
		}
		return m, nil
	}

	m.status = ""
	switch key {
	case "enter":
		return m.finish(session.ActionCrop)
	case "s":
		return m.finish(session.ActionSkip)
	case "q", "esc", "ctrl+c":
		return m.finish(session.ActionQuit)
	case "?":
		m.showHelp = true
		m.help = renderHelp(m.width)
	case "tab":
		m.edge = (m.edge + 1) % (EdgeAll + 1)
	case "shift+tab":
		m.edge = (m.edge + EdgeAll) % (EdgeAll + 1)
	case "left", "h":
		m.nudge(-1, 0)
	case "right", "l":
		m.nudge(1, 0)
	case "up", "k":
		m.nudge(0, -1)
	case "down", "j":
		m.nudge(0, 1)
	case "+", "=":
		m.grow(1)
	case "-", "_":
		m.grow(-1)
	case "a":
		detected := cropper.DetectBorders(m.frame.Image, m.settings.BorderThreshold, m.settings.Inset)
		m.rect = cropper.ConstrainAspect(detected, m.aspect, m.bounds)
		if detected == cropper.FromImage(m.bounds) {
			m.status = "no border found"
		} else {
			m.status = "border detected"
		}
	case "r":
		m.rect = cropper.ConstrainAspect(m.frame.Initial, m.aspect, m.bounds)
		if m.rect.Empty() {
			m.rect = cropper.FromImage(m.bounds)
		}
		m.status = "reset"
	case "f":
		m.rect = cropper.ConstrainAspect(cropper.FromImage(m.bounds), m.aspect, m.bounds)
		m.status = "full frame"
	}
	return m, nil
}

func (m CropModel) finish(action session.Action) (tea.Model, tea.Cmd) {
	m.done = true
	m.decision = session.Decision{Action: action}
	if action == session.ActionCrop {
		m.decision.Rect = m.rect
	}
	return m, tea.Quit
}

func (m *CropModel) steps() (int, int) {
	dx := int(float64(m.bounds.Dx()) * m.settings.StepFraction)
	dy := int(float64(m.bounds.Dy()) * m.settings.StepFraction)
	return max(dx, 1), max(dy, 1)
}

// nudge moves the active edge (or the whole rectangle) one step. Keys along
// the other axis are ignored for a single edge.
func (m *CropModel) nudge(dirX, dirY int) {
	sx, sy := m.steps()
	r := m.rect
	switch m.edge {
	case EdgeAll:
		m.rect = shift(r, dirX*sx, dirY*sy, m.bounds)
		return
	case EdgeLeft:
		if dirX == 0 {
			return
		}
		r.X0 = clamp(r.X0+dirX*sx, m.bounds.Min.X, r.X1-1)
	case EdgeRight:
		if dirX == 0 {
			return
		}
		r.X1 = clamp(r.X1+dirX*sx, r.X0+1, m.bounds.Max.X)
	case EdgeTop:
		if dirY == 0 {
			return
		}
		r.Y0 = clamp(r.Y0+dirY*sy, m.bounds.Min.Y, r.Y1-1)
	case EdgeBottom:
		if dirY == 0 {
			return
		}
		r.Y1 = clamp(r.Y1+dirY*sy, r.Y0+1, m.bounds.Max.Y)
	}
	m.rect = m.followAspect(r, dirX != 0)
}

// grow moves every edge outward (dir 1) or inward (dir -1) by one step.
func (m *CropModel) grow(dir int) {
	sx, sy := m.steps()
	r := cropper.Rect{
		X0: m.rect.X0 - dir*sx,
		Y0: m.rect.Y0 - dir*sy,
		X1: m.rect.X1 + dir*sx,
		Y1: m.rect.Y1 + dir*sy,
	}
	if r.Empty() {
		return
	}
	m.rect = m.followAspect(r.Clamp(m.bounds), true)
}

// followAspect recomputes the dependent dimension around its centre when an
// aspect is set. widthLed reports whether the width was the one changed.
func (m *CropModel) followAspect(r cropper.Rect, widthLed bool) cropper.Rect {
	if m.aspect.Free() {
		return r
	}
	ratio := m.aspect.Ratio()
	if widthLed {
		h := int(float64(r.Width())/ratio + 0.5)
		cy := (r.Y0 + r.Y1) / 2
		r.Y0, r.Y1 = cy-h/2, cy-h/2+h
	} else {
		w := int(float64(r.Height())*ratio + 0.5)
		cx := (r.X0 + r.X1) / 2
		r.X0, r.X1 = cx-w/2, cx-w/2+w
	}
	if r.X0 < m.bounds.Min.X || r.Y0 < m.bounds.Min.Y || r.X1 > m.bounds.Max.X || r.Y1 > m.bounds.Max.Y {
		r = shiftInside(r, m.bounds)
	}
	return cropper.ConstrainAspect(r, m.aspect, m.bounds)
}

func (m *CropModel) resizeThumb() {
	cols := max(m.width-2, 8)
	rows := max(m.height-chromeRows, 4)
	m.thumb = newThumbnail(m.frame.Image, cols, rows)
}

func (m CropModel) View() string {
	if m.showHelp {
		return m.help
	}
	header := m.styles.title.Render(fmt.Sprintf("[%d/%d] %s", m.frame.Index+1, m.frame.Total, m.frame.Name))
	info := []string{
		fmt.Sprintf("crop %s", m.rect),
		fmt.Sprintf("edge %s", m.edge),
		fmt.Sprintf("aspect %s", m.frame.Aspect),
	}
	if m.frame.OutputExists {
		info = append(info, m.styles.warn.Render("output exists"))
	}
	if m.status != "" {
		info = append(info, m.styles.ok.Render(m.status))
	}
	footer := m.styles.muted.Render("arrows move  tab edge  +/- size  a detect  r reset  f full  enter crop  s skip  q quit  ? help")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.styles.muted.Render(strings.Join(info, "  •  ")),
		m.thumb.render(m.rect, m.edge),
		footer,
	)
}

func shift(r cropper.Rect, dx, dy int, bounds image.Rectangle) cropper.Rect {
	dx = clamp(dx, bounds.Min.X-r.X0, bounds.Max.X-r.X1)
	dy = clamp(dy, bounds.Min.Y-r.Y0, bounds.Max.Y-r.Y1)
	return cropper.Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// shiftInside slides r back into bounds without resizing it where it fits.
func shiftInside(r cropper.Rect, bounds image.Rectangle) cropper.Rect {
	if r.X0 < bounds.Min.X {
		r.X1 += bounds.Min.X - r.X0
		r.X0 = bounds.Min.X
	}
	if r.X1 > bounds.Max.X {
		r.X0 -= r.X1 - bounds.Max.X
		r.X1 = bounds.Max.X
	}
	if r.Y0 < bounds.Min.Y {
		r.Y1 += bounds.Min.Y - r.Y0
		r.Y0 = bounds.Min.Y
	}
	if r.Y1 > bounds.Max.Y {
		r.Y0 -= r.Y1 - bounds.Max.Y
		r.Y1 = bounds.Max.Y
	}
	return r
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
