// Package gridqt embeds the grid engine in a Qt application as a
// QWidget. Drawing goes through QPainter inside the paint event; input
// events are translated into grid events and an Update.
package gridqt

import (
	"fmt"

	qt "github.com/mappu/miqt/qt"

	"github.com/gridviz/grid"
)

// wheelStep is the scroll distance, in logical pixels, applied per 120
// units of wheel angle delta (one standard notch).
const wheelStep = 48

// Palette holds the widget's colors, packed 0xAABBGGRR.
type Palette struct {
	Background   uint32
	HeaderBg     uint32
	HeaderText   uint32
	CellText     uint32
	AltRowBg     uint32
	GridLine     uint32
	SelectionBg  uint32
	SelectedText uint32
}

// DefaultPalette is a light scheme matching stock Qt styles.
func DefaultPalette() Palette {
	return Palette{
		Background:   grid.RGBA(250, 250, 250, 255),
		HeaderBg:     grid.RGBA(232, 232, 236, 255),
		HeaderText:   grid.RGBA(40, 40, 45, 255),
		CellText:     grid.RGBA(30, 30, 35, 255),
		AltRowBg:     grid.RGBA(242, 242, 246, 255),
		GridLine:     grid.RGBA(210, 210, 216, 255),
		SelectionBg:  grid.RGBA(48, 105, 180, 255),
		SelectedText: grid.ColorWhite,
	}
}

// qtRenderer implements grid.Renderer on a QPainter. The painter only
// exists inside the paint event, so Begin fails between events; the
// grid treats that as surface-unavailable and stays dirty.
type qtRenderer struct {
	painter *qt.QPainter
	palette Palette
	surface grid.Surface

	fontFamily string
	fontSize   int
	pad        int
}

func (r *qtRenderer) Begin(s grid.Surface) error {
	if r.painter == nil {
		return fmt.Errorf("grid qt: no painter outside paint event")
	}
	r.surface = s
	r.painter.SetFont(qt.NewQFont6(r.fontFamily, r.fontSize))
	return nil
}

func (r *qtRenderer) Clear() {
	r.painter.FillRect5(0, 0, int(r.surface.ClientWidth), int(r.surface.ClientHeight), qcolor(r.palette.Background))
}

func (r *qtRenderer) DrawHeaderCell(rect grid.Rect, label string, sort grid.SortMark) {
	r.fillRect(rect, r.palette.HeaderBg)
	switch sort {
	case grid.SortAscending:
		label += " ^"
	case grid.SortDescending:
		label += " v"
	}
	r.text(rect, label, r.palette.HeaderText)
}

func (r *qtRenderer) DrawDataCell(rect grid.Rect, value string, highlighted, altRow bool) {
	textColor := r.palette.CellText
	switch {
	case highlighted:
		r.fillRect(rect, r.palette.SelectionBg)
		textColor = r.palette.SelectedText
	case altRow:
		r.fillRect(rect, r.palette.AltRowBg)
	}
	r.text(rect, value, textColor)
}

// DrawGridLine draws axis-aligned separators as 1px filled rects;
// QPainter pens alias on fractional coordinates.
func (r *qtRenderer) DrawGridLine(x1, y1, x2, y2 float32) {
	c := qcolor(r.palette.GridLine)
	if y1 == y2 {
		r.painter.FillRect5(int(x1), int(y1), int(x2-x1), 1, c)
	} else {
		r.painter.FillRect5(int(x1), int(y1), 1, int(y2-y1), c)
	}
}

func (r *qtRenderer) End() error {
	return nil
}

func (r *qtRenderer) Release() {
	r.painter = nil
}

func (r *qtRenderer) fillRect(rect grid.Rect, c uint32) {
	r.painter.FillRect5(int(rect.X), int(rect.Y), int(rect.W), int(rect.H), qcolor(c))
}

// text draws s clipped to rect, baseline at three quarters of the cell
// height.
func (r *qtRenderer) text(rect grid.Rect, s string, c uint32) {
	if s == "" {
		return
	}
	r.painter.Save()
	r.painter.SetClipRect2(int(rect.X), int(rect.Y), int(rect.W), int(rect.H))
	r.painter.SetPen(qcolor(c))
	r.painter.DrawText3(int(rect.X)+r.pad, int(rect.Y)+int(rect.H)*3/4, s)
	r.painter.Restore()
}

func qcolor(c uint32) *qt.QColor {
	cr, cg, cb, _ := grid.UnpackRGBA(c)
	return qt.NewQColor3(int(cr), int(cg), int(cb))
}

// Widget couples a grid to a QWidget. Add the QWidget to a layout; the
// widget keeps itself current via Update.
type Widget struct {
	widget   *qt.QWidget
	renderer *qtRenderer
	grid     *grid.Grid
}

// NewWidget creates a QWidget hosting a grid built from cfg and src.
// A QApplication must exist.
func NewWidget(cfg grid.Config, src grid.Source, opts ...grid.Option) (*Widget, error) {
	renderer := &qtRenderer{
		palette:    DefaultPalette(),
		fontFamily: "monospace",
		fontSize:   10,
		pad:        6,
	}
	g, err := grid.New(cfg, src, renderer, opts...)
	if err != nil {
		return nil, err
	}

	w := &Widget{
		widget:   qt.NewQWidget2(),
		renderer: renderer,
		grid:     g,
	}
	w.widget.SetFocusPolicy(qt.StrongFocus)

	w.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		w.paintEvent()
	})
	w.widget.OnMousePressEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		w.mousePressEvent(event)
	})
	w.widget.OnWheelEvent(func(super func(event *qt.QWheelEvent), event *qt.QWheelEvent) {
		w.wheelEvent(event)
	})
	w.widget.OnResizeEvent(func(super func(event *qt.QResizeEvent), event *qt.QResizeEvent) {
		w.resizeEvent()
	})

	return w, nil
}

// QWidget returns the underlying widget for packing into layouts.
func (w *Widget) QWidget() *qt.QWidget {
	return w.widget
}

// Grid returns the attached grid for scripting scroll or selection.
func (w *Widget) Grid() *grid.Grid {
	return w.grid
}

// SetPalette replaces the color scheme and repaints.
func (w *Widget) SetPalette(p Palette) {
	w.renderer.palette = p
	w.grid.Invalidate()
	w.widget.Update()
}

// Close releases the grid's renderer binding. Call on teardown.
func (w *Widget) Close() {
	w.grid.Close()
}

// refresh schedules a repaint if an event left the grid dirty. Qt
// collapses queued Update calls into one paint event, which gives the
// once-per-frame coalescing the engine expects.
func (w *Widget) refresh() {
	if w.grid.Dirty() {
		w.widget.Update()
	}
}

// paintEvent renders one frame. Qt only delivers paint events when the
// widget contents are stale, so the frame is forced regardless of the
// grid's own dirty tracking.
func (w *Widget) paintEvent() {
	painter := qt.NewQPainter2(w.widget.QPaintDevice)
	defer painter.End()

	w.renderer.painter = painter
	w.grid.Invalidate()
	w.grid.RenderFrame()
	w.renderer.painter = nil
}

func (w *Widget) mousePressEvent(event *qt.QMouseEvent) {
	if event.Button() != qt.LeftButton {
		return
	}
	w.widget.SetFocus()
	pos := event.Pos()
	w.grid.Click(float32(pos.X()), float32(pos.Y()))
	w.refresh()
}

func (w *Widget) wheelEvent(event *qt.QWheelEvent) {
	hasShift := event.Modifiers()&qt.ShiftModifier != 0
	deltaX := event.AngleDelta().X()
	deltaY := event.AngleDelta().Y()

	// Angle deltas are in eighths of a degree, 120 per notch, positive
	// away from the user.
	dx := -float32(deltaX) / 120 * wheelStep
	dy := -float32(deltaY) / 120 * wheelStep
	if hasShift {
		dx, dy = dy, dx
	}
	w.grid.ScrollBy(dx, dy)
	w.refresh()
}

func (w *Widget) resizeEvent() {
	w.grid.SetViewportSize(
		float32(w.widget.Width()),
		float32(w.widget.Height()),
		float32(w.widget.DevicePixelRatio()),
	)
	w.refresh()
}
