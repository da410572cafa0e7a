// Package gridtui embeds the grid engine in a Bubble Tea terminal
// application. One terminal cell maps to one logical pixel, so grid
// configs for this backend use character-sized extents: row height 1,
// column widths in character columns.
package gridtui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridviz/grid"
)

// Styles holds the lipgloss styles applied to each band of the view.
type Styles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	AltCell  lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles is legible on both dark and light terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("238")),
		Cell:     lipgloss.NewStyle(),
		AltCell:  lipgloss.NewStyle().Background(lipgloss.Color("235")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("25")),
	}
}

// Style classes for the character framebuffer.
const (
	classCell = iota
	classAltCell
	classHeader
	classSelected
)

// textRenderer implements grid.Renderer on a character framebuffer.
// Each draw call stamps characters and a style class; View turns runs
// of equal class into styled segments.
type textRenderer struct {
	styles Styles

	w, h  int
	chars [][]rune
	class [][]byte
}

func (r *textRenderer) Begin(s grid.Surface) error {
	w, h := int(s.ClientWidth), int(s.ClientHeight)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("grid tui: zero-sized terminal")
	}
	if w != r.w || h != r.h {
		r.w, r.h = w, h
		r.chars = make([][]rune, h)
		r.class = make([][]byte, h)
		for y := range r.chars {
			r.chars[y] = make([]rune, w)
			r.class[y] = make([]byte, w)
		}
	}
	return nil
}

func (r *textRenderer) Clear() {
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			r.chars[y][x] = ' '
			r.class[y][x] = classCell
		}
	}
}

func (r *textRenderer) DrawHeaderCell(rect grid.Rect, label string, sort grid.SortMark) {
	switch sort {
	case grid.SortAscending:
		label += " ^"
	case grid.SortDescending:
		label += " v"
	}
	r.stamp(rect, label, classHeader)
}

func (r *textRenderer) DrawDataCell(rect grid.Rect, value string, highlighted, altRow bool) {
	class := byte(classCell)
	switch {
	case highlighted:
		class = classSelected
	case altRow:
		class = classAltCell
	}
	r.stamp(rect, value, class)
}

// DrawGridLine is a no-op: character cells leave no room for separator
// pixels, and a full terminal row per boundary would halve the usable
// height.
func (r *textRenderer) DrawGridLine(x1, y1, x2, y2 float32) {}

func (r *textRenderer) End() error {
	return nil
}

func (r *textRenderer) Release() {
	r.chars = nil
	r.class = nil
	r.w, r.h = 0, 0
}

// stamp writes s into the rect's first row, space-padded to the rect
// width and clipped at the framebuffer edge. Rects taller than one
// terminal row get their remaining rows filled with the same class so
// tall cells carry their background.
func (r *textRenderer) stamp(rect grid.Rect, s string, class byte) {
	x := int(rect.X)
	w := int(rect.W)
	y0 := int(rect.Y)
	y1 := int(rect.Y + rect.H)
	runes := []rune(s)
	for y := y0; y < y1; y++ {
		if y < 0 || y >= r.h {
			continue
		}
		for i := 0; i < w; i++ {
			cx := x + i
			if cx < 0 || cx >= r.w {
				continue
			}
			ch := ' '
			// Text on the first row only, with one leading pad column
			// and one trailing separator column.
			if y == y0 && i > 0 && i < w-1 && i-1 < len(runes) {
				ch = runes[i-1]
			}
			r.chars[y][cx] = ch
			r.class[y][cx] = class
		}
	}
}

// render flattens the framebuffer into styled terminal lines.
func (r *textRenderer) render() string {
	if r.h == 0 {
		return ""
	}
	styles := [...]lipgloss.Style{
		classCell:     r.styles.Cell,
		classAltCell:  r.styles.AltCell,
		classHeader:   r.styles.Header,
		classSelected: r.styles.Selected,
	}

	var b strings.Builder
	for y := 0; y < r.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		x := 0
		for x < r.w {
			class := r.class[y][x]
			run := x
			for run < r.w && r.class[y][run] == class {
				run++
			}
			b.WriteString(styles[class].Render(string(r.chars[y][x:run])))
			x = run
		}
	}
	return b.String()
}

// Model is a tea.Model wrapping a grid. Run it with
// tea.WithMouseCellMotion to get wheel and click events.
type Model struct {
	grid     *grid.Grid
	renderer *textRenderer
}

// NewModel creates a model hosting a grid built from cfg and src. The
// viewport follows the terminal size via WindowSizeMsg.
func NewModel(cfg grid.Config, src grid.Source, opts ...grid.Option) (Model, error) {
	renderer := &textRenderer{styles: DefaultStyles()}
	g, err := grid.New(cfg, src, renderer, opts...)
	if err != nil {
		return Model{}, err
	}
	return Model{grid: g, renderer: renderer}, nil
}

// Grid returns the attached grid for scripting scroll or selection.
func (m Model) Grid() *grid.Grid {
	return m.grid
}

// SetStyles replaces the style set.
func (m *Model) SetStyles(s Styles) {
	m.renderer.styles = s
	m.grid.Invalidate()
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update translates terminal input into grid events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid.SetViewportSize(float32(msg.Width), float32(msg.Height), 1)

	case tea.KeyMsg:
		page := m.grid.Viewport().ClientHeight - m.grid.Config().HeaderExtent
		switch msg.String() {
		case "q", "ctrl+c":
			m.grid.Close()
			return m, tea.Quit
		case "up", "k":
			m.grid.ScrollBy(0, -1)
		case "down", "j":
			m.grid.ScrollBy(0, 1)
		case "left", "h":
			m.grid.ScrollBy(-4, 0)
		case "right", "l":
			m.grid.ScrollBy(4, 0)
		case "pgup":
			m.grid.ScrollBy(0, -page)
		case "pgdown", " ":
			m.grid.ScrollBy(0, page)
		case "home":
			m.grid.SetScroll(m.grid.Viewport().ScrollLeft, 0)
		case "end":
			m.grid.ScrollToCell(grid.Cell{Row: m.grid.Config().RowCount - 1, Col: 0})
		case "esc":
			m.grid.ClearSelection()
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.grid.ScrollBy(0, -3)
		case tea.MouseButtonWheelDown:
			m.grid.ScrollBy(0, 3)
		case tea.MouseButtonWheelLeft:
			m.grid.ScrollBy(-4, 0)
		case tea.MouseButtonWheelRight:
			m.grid.ScrollBy(4, 0)
		case tea.MouseButtonLeft:
			m.grid.Click(float32(msg.X), float32(msg.Y))
		}
	}
	return m, nil
}

// View renders the current frame. Bubble Tea calls View once per
// Update batch, so rapid input coalesces naturally; RenderFrame keeps
// the last framebuffer when nothing changed.
func (m Model) View() string {
	m.grid.RenderFrame()
	return m.renderer.render()
}
