// Package gridgtk embeds the grid engine in a GTK 3 application as a
// DrawingArea. Drawing goes through cairo inside the "draw" signal;
// input events are translated into grid events and a QueueDraw.
package gridgtk

import (
	"fmt"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/gridviz/grid"
)

// wheelStep is the scroll distance, in logical pixels, of one discrete
// wheel notch.
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

// DefaultPalette is a light scheme matching stock GTK themes.
func DefaultPalette() Palette {
	return Palette{
		Background:   grid.RGBA(252, 252, 252, 255),
		HeaderBg:     grid.RGBA(235, 235, 238, 255),
		HeaderText:   grid.RGBA(40, 40, 45, 255),
		CellText:     grid.RGBA(30, 30, 35, 255),
		AltRowBg:     grid.RGBA(244, 244, 247, 255),
		GridLine:     grid.RGBA(215, 215, 220, 255),
		SelectionBg:  grid.RGBA(52, 101, 164, 255),
		SelectedText: grid.ColorWhite,
	}
}

// cairoRenderer implements grid.Renderer on a cairo context. The
// context only exists inside the "draw" signal, so Begin fails between
// signals; the grid treats that as surface-unavailable and stays dirty.
type cairoRenderer struct {
	cr      *cairo.Context
	palette Palette
	surface grid.Surface

	fontSize float64
	pad      float64
}

func (r *cairoRenderer) Begin(s grid.Surface) error {
	if r.cr == nil {
		return fmt.Errorf("grid gtk: no cairo context outside draw signal")
	}
	r.surface = s
	r.cr.SelectFontFace("monospace", cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
	r.cr.SetFontSize(r.fontSize)
	return nil
}

func (r *cairoRenderer) Clear() {
	r.setColor(r.palette.Background)
	r.cr.Rectangle(0, 0, float64(r.surface.ClientWidth), float64(r.surface.ClientHeight))
	r.cr.Fill()
}

func (r *cairoRenderer) DrawHeaderCell(rect grid.Rect, label string, sort grid.SortMark) {
	r.fillRect(rect, r.palette.HeaderBg)
	switch sort {
	case grid.SortAscending:
		label += " ^"
	case grid.SortDescending:
		label += " v"
	}
	r.text(rect, label, r.palette.HeaderText)
}

func (r *cairoRenderer) DrawDataCell(rect grid.Rect, value string, highlighted, altRow bool) {
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

func (r *cairoRenderer) DrawGridLine(x1, y1, x2, y2 float32) {
	r.setColor(r.palette.GridLine)
	r.cr.SetLineWidth(1)
	// Offset by half a pixel so 1px lines land on pixel centers.
	r.cr.MoveTo(float64(x1)+0.5, float64(y1)+0.5)
	r.cr.LineTo(float64(x2)+0.5, float64(y2)+0.5)
	r.cr.Stroke()
}

func (r *cairoRenderer) End() error {
	return nil
}

func (r *cairoRenderer) Release() {
	r.cr = nil
}

func (r *cairoRenderer) setColor(c uint32) {
	cr, cg, cb, _ := grid.UnpackRGBA(c)
	r.cr.SetSourceRGB(float64(cr)/255, float64(cg)/255, float64(cb)/255)
}

func (r *cairoRenderer) fillRect(rect grid.Rect, c uint32) {
	r.setColor(c)
	r.cr.Rectangle(float64(rect.X), float64(rect.Y), float64(rect.W), float64(rect.H))
	r.cr.Fill()
}

// text draws s clipped to rect, vertically centered on the font size.
func (r *cairoRenderer) text(rect grid.Rect, s string, c uint32) {
	if s == "" {
		return
	}
	r.cr.Save()
	r.cr.Rectangle(float64(rect.X), float64(rect.Y), float64(rect.W), float64(rect.H))
	r.cr.Clip()
	r.setColor(c)
	baseline := float64(rect.Y) + (float64(rect.H)+r.fontSize)/2 - 2
	r.cr.MoveTo(float64(rect.X)+r.pad, baseline)
	r.cr.ShowText(s)
	r.cr.Restore()
}

// Widget couples a grid to a gtk.DrawingArea. Add the DrawingArea to a
// container; the widget keeps itself current via QueueDraw.
type Widget struct {
	area     *gtk.DrawingArea
	renderer *cairoRenderer
	grid     *grid.Grid
}

// NewWidget creates a drawing area hosting a grid built from cfg and
// src.
func NewWidget(cfg grid.Config, src grid.Source, opts ...grid.Option) (*Widget, error) {
	area, err := gtk.DrawingAreaNew()
	if err != nil {
		return nil, fmt.Errorf("grid gtk: %w", err)
	}

	renderer := &cairoRenderer{
		palette:  DefaultPalette(),
		fontSize: 13,
		pad:      6,
	}
	g, err := grid.New(cfg, src, renderer, opts...)
	if err != nil {
		return nil, err
	}

	w := &Widget{area: area, renderer: renderer, grid: g}

	area.SetCanFocus(true)
	area.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.SCROLL_MASK))
	area.Connect("draw", w.onDraw)
	area.Connect("button-press-event", w.onButtonPress)
	area.Connect("scroll-event", w.onScroll)
	area.Connect("configure-event", w.onConfigure)
	area.Connect("destroy", func() { w.grid.Close() })

	return w, nil
}

// Area returns the underlying DrawingArea for packing into containers.
func (w *Widget) Area() *gtk.DrawingArea {
	return w.area
}

// Grid returns the attached grid for scripting scroll or selection.
func (w *Widget) Grid() *grid.Grid {
	return w.grid
}

// SetPalette replaces the color scheme and repaints.
func (w *Widget) SetPalette(p Palette) {
	w.renderer.palette = p
	w.grid.Invalidate()
	w.area.QueueDraw()
}

// refresh queues a repaint if an event left the grid dirty.
func (w *Widget) refresh() {
	if w.grid.Dirty() {
		w.area.QueueDraw()
	}
}

// onDraw renders one frame into the signal's cairo context. GTK only
// emits "draw" when the surface contents are stale, so the frame is
// forced regardless of the grid's own dirty tracking.
func (w *Widget) onDraw(da *gtk.DrawingArea, cr *cairo.Context) bool {
	w.renderer.cr = cr
	w.grid.Invalidate()
	w.grid.RenderFrame()
	w.renderer.cr = nil
	return true
}

func (w *Widget) onButtonPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	if btn.Button() != gdk.BUTTON_PRIMARY {
		return false
	}
	da.GrabFocus()
	w.grid.Click(float32(btn.X()), float32(btn.Y()))
	w.refresh()
	return true
}

func (w *Widget) onScroll(da *gtk.DrawingArea, ev *gdk.Event) bool {
	scroll := gdk.EventScrollNewFromEvent(ev)
	horizontal := scroll.State()&gdk.SHIFT_MASK != 0

	var dx, dy float32
	switch scroll.Direction() {
	case gdk.SCROLL_UP:
		dy = -wheelStep
	case gdk.SCROLL_DOWN:
		dy = wheelStep
	case gdk.SCROLL_LEFT:
		dx = -wheelStep
	case gdk.SCROLL_RIGHT:
		dx = wheelStep
	default:
		return false
	}
	if horizontal {
		dx, dy = dy, dx
	}
	w.grid.ScrollBy(dx, dy)
	w.refresh()
	return true
}

func (w *Widget) onConfigure(da *gtk.DrawingArea, ev *gdk.Event) bool {
	alloc := da.GetAllocation()
	w.grid.SetViewportSize(float32(alloc.GetWidth()), float32(alloc.GetHeight()), float32(da.GetScaleFactor()))
	w.refresh()
	return false
}
