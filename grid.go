package grid

import "fmt"

// Grid is the render driver: it owns the viewport, the selection and
// the metric tables, turns input events into dirty state, and turns
// dirty state into draw plans for a renderer adapter.
//
// The defining correctness rule is one-way data flow: the intake
// methods (SetScroll, ScrollBy, SetViewportSize, Click, Select)
// write state and mark the grid dirty; RenderFrame reads a consistent
// snapshot of that state and draws, but never writes the values that
// gate the next cycle. A redraw can therefore never schedule itself.
//
// All methods must be called from a single goroutine (the UI thread).
type Grid struct {
	config  Config
	metrics *Metrics
	source  Source

	renderer Renderer
	released bool

	// plan is the reused-capacity arena for the current cycle's draw
	// plan. It is rebuilt from scratch every frame and never consulted
	// across cycles.
	plan *Plan

	viewport  Viewport
	surface   Surface
	selection *Cell

	dirty       bool // A redraw-triggering event arrived since the last frame
	forceRedraw bool // Physical buffer was resized; the old contents are gone

	headerLabels []string
	rowExtents   []float32
	colExtents   []float32
	rowExtentFn  ExtentFunc
	colExtentFn  ExtentFunc

	sortColumn int
	sortMark   SortMark

	// DroppedCells counts plan entries skipped because the adapter
	// panicked while drawing them. One malformed value must not blank
	// the viewport; it is dropped and the frame still commits.
	DroppedCells int
}

// New creates a grid over the given config, data source and renderer
// adapter. The metric tables are built once here; switching size mode
// or counts later goes through Reconfigure.
func New(cfg Config, src Source, r Renderer, opts ...Option) (*Grid, error) {
	g := &Grid{
		config:     cfg,
		source:     src,
		renderer:   r,
		sortColumn: -1,
	}
	if g.config.Overscan == 0 {
		g.config.Overscan = DefaultOverscan
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.config.Validate(); err != nil {
		return nil, err
	}
	g.metrics = NewMetrics(g.config, g.rowExtents, g.colExtents, g.rowExtentFn, g.colExtentFn)
	g.plan = acquirePlan()
	g.dirty = true
	return g, nil
}

// Config returns the active configuration.
func (g *Grid) Config() Config {
	return g.config
}

// Metrics exposes the metric tables for hit testing and layout math.
func (g *Grid) Metrics() *Metrics {
	return g.metrics
}

// Viewport returns the current viewport snapshot.
func (g *Grid) Viewport() Viewport {
	return g.viewport
}

// Dirty reports whether a frame is pending. Hosts that rate-limit
// drawing to animation frames check this once per tick.
func (g *Grid) Dirty() bool {
	return g.dirty || g.forceRedraw
}

// Invalidate marks the grid dirty without changing any state. Hosts
// call it when the window system discarded the surface contents (an
// expose or paint event) and the next frame must draw unconditionally.
func (g *Grid) Invalidate() {
	g.dirty = true
}

// Reconfigure swaps in a new config and extent inputs and rebuilds the
// derived offset tables. It must not be called while RenderFrame is in
// flight; finish or discard the frame first.
func (g *Grid) Reconfigure(cfg Config, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.config = cfg
	if g.config.Overscan == 0 {
		g.config.Overscan = DefaultOverscan
	}
	for _, opt := range opts {
		opt(g)
	}
	g.metrics = NewMetrics(g.config, g.rowExtents, g.colExtents, g.rowExtentFn, g.colExtentFn)
	g.clampScroll()
	if g.selection != nil && (g.selection.Row >= g.config.RowCount || g.selection.Col >= g.config.ColumnCount) {
		g.selection = nil
	}
	g.dirty = true
	return nil
}

// SetScroll sets the absolute scroll position. Values are clamped to
// the scrollable extent; transiently negative offsets clamp to zero.
func (g *Grid) SetScroll(left, top float32) {
	top = clampf(top, 0, maxScroll(g.metrics, AxisRow, g.viewport, g.config.HeaderExtent))
	left = clampf(left, 0, maxScroll(g.metrics, AxisColumn, g.viewport, g.config.HeaderExtent))
	if top == g.viewport.ScrollTop && left == g.viewport.ScrollLeft {
		return
	}
	g.viewport.ScrollTop = top
	g.viewport.ScrollLeft = left
	g.dirty = true
}

// ScrollBy adjusts the scroll position by a delta, with clamping.
func (g *Grid) ScrollBy(dx, dy float32) {
	g.SetScroll(g.viewport.ScrollLeft+dx, g.viewport.ScrollTop+dy)
}

// SetViewportSize records a container resize and the current device
// pixel ratio. Resizing the physical buffer discards its contents, so
// the next RenderFrame always draws even if nothing else changed.
func (g *Grid) SetViewportSize(clientWidth, clientHeight, scale float32) {
	g.viewport.ClientWidth = maxf(0, clientWidth)
	g.viewport.ClientHeight = maxf(0, clientHeight)
	g.surface = Surface{
		ClientWidth:  g.viewport.ClientWidth,
		ClientHeight: g.viewport.ClientHeight,
		Scale:        scale,
	}
	g.clampScroll()
	g.forceRedraw = true
}

// Click feeds a pointer click in viewport-local coordinates. A hit
// replaces the selection; a miss (header band, past the data region)
// clears it.
func (g *Grid) Click(x, y float32) (Cell, bool) {
	cell, ok := g.HitTest(x, y)
	if ok {
		g.Select(cell)
	} else {
		g.ClearSelection()
	}
	return cell, ok
}

// Select sets the selected cell. Out-of-range cells panic: selection
// comes from hit testing, which only yields valid cells.
func (g *Grid) Select(c Cell) {
	if c.Row < 0 || c.Row >= g.config.RowCount || c.Col < 0 || c.Col >= g.config.ColumnCount {
		panic(fmt.Sprintf("grid: select %d,%d out of range %dx%d", c.Row, c.Col, g.config.RowCount, g.config.ColumnCount))
	}
	if g.selection != nil && *g.selection == c {
		return
	}
	sel := c
	g.selection = &sel
	g.dirty = true
}

// ClearSelection removes the selection.
func (g *Grid) ClearSelection() {
	if g.selection == nil {
		return
	}
	g.selection = nil
	g.dirty = true
}

// Selection returns the selected cell, if any.
func (g *Grid) Selection() (Cell, bool) {
	if g.selection == nil {
		return Cell{}, false
	}
	return *g.selection, true
}

// SetSortIndicator sets the header sort marker for one column. Pass
// SortNone to clear. The engine does not reorder data; the source owns
// ordering and this only changes what the header row displays.
func (g *Grid) SetSortIndicator(col int, mark SortMark) {
	if mark == SortNone {
		g.sortColumn = -1
	} else {
		g.sortColumn = col
	}
	g.sortMark = mark
	g.dirty = true
}

// ScrollToCell scrolls the minimal distance that makes the cell fully
// visible, leaving the viewport unchanged when it already is.
func (g *Grid) ScrollToCell(c Cell) {
	if c.Row < 0 || c.Row >= g.config.RowCount || c.Col < 0 || c.Col >= g.config.ColumnCount {
		return
	}
	top := g.viewport.ScrollTop
	left := g.viewport.ScrollLeft

	rowTop := g.config.HeaderExtent + g.metrics.OffsetOf(AxisRow, c.Row)
	rowBottom := rowTop + g.metrics.ExtentOf(AxisRow, c.Row)
	// The data band starts below the pinned header.
	if rowTop-g.config.HeaderExtent < top {
		top = rowTop - g.config.HeaderExtent
	} else if rowBottom > top+g.viewport.ClientHeight {
		top = rowBottom - g.viewport.ClientHeight
	}

	colLeft := g.metrics.OffsetOf(AxisColumn, c.Col)
	colRight := colLeft + g.metrics.ExtentOf(AxisColumn, c.Col)
	if colLeft < left {
		left = colLeft
	} else if colRight > left+g.viewport.ClientWidth {
		left = colRight - g.viewport.ClientWidth
	}

	g.SetScroll(left, top)
}

// VisibleRows resolves the row range for the current viewport.
func (g *Grid) VisibleRows() Range {
	return resolveRange(g.metrics, AxisRow, g.viewport, g.config.HeaderExtent, g.config.Overscan)
}

// VisibleColumns resolves the column range for the current viewport.
// Columns have no header gutter, so no offset adjustment applies.
func (g *Grid) VisibleColumns() Range {
	return resolveRange(g.metrics, AxisColumn, g.viewport, g.config.HeaderExtent, g.config.Overscan)
}

// RenderFrame runs one redraw cycle: resolve the visible ranges, build
// the draw plan, and hand it to the renderer adapter. It is a no-op
// when no event arrived since the last frame, so hosts may call it
// every animation frame and bursts of scroll events coalesce into a
// single recompute.
//
// Returns true when a frame was produced. A surface-unavailable error
// from the adapter skips the cycle, keeps the prior frame on screen,
// and leaves the grid dirty so the next event retries.
func (g *Grid) RenderFrame() bool {
	if g.released || (!g.dirty && !g.forceRedraw) {
		return false
	}

	g.plan.reset()
	g.buildPlan(g.plan)

	if err := g.renderer.Begin(g.surface); err != nil {
		// No partial frame; stay dirty and retry on the next trigger.
		return false
	}
	g.renderer.Clear()
	g.emit(g.plan)
	if err := g.renderer.End(); err != nil {
		return false
	}

	g.dirty = false
	g.forceRedraw = false
	return true
}

// BuildPlan computes the draw plan for the current state without
// touching the renderer. Retained-mode hosts diff successive plans;
// tests inspect them. The returned plan aliases the grid's reused
// buffer and is valid until the next BuildPlan or RenderFrame call.
func (g *Grid) BuildPlan() *Plan {
	g.plan.reset()
	g.buildPlan(g.plan)
	return g.plan
}

func (g *Grid) buildPlan(plan *Plan) {
	vp := g.viewport
	plan.Rows = g.VisibleRows()
	plan.Cols = g.VisibleColumns()

	// The reject rect is the viewport inflated by the overscan margin;
	// clipping to the bare viewport would discard the pre-rendered
	// items the margin exists to provide.
	padX := float32(g.config.Overscan) * g.config.DefaultColumnExtent
	padY := float32(g.config.Overscan)*g.config.DefaultRowExtent + g.config.HeaderExtent
	viewRect := Rect{X: -padX, Y: -padY, W: vp.ClientWidth + 2*padX, H: vp.ClientHeight + 2*padY}

	// Header band first: one entry per visible column, independent of
	// the row range, pinned to the top of the viewport.
	if g.config.HeaderExtent > 0 && !plan.Cols.Empty() {
		for col := plan.Cols.Start; col <= plan.Cols.End; col++ {
			r := Rect{
				X: g.metrics.OffsetOf(AxisColumn, col) - vp.ScrollLeft,
				Y: 0,
				W: g.metrics.ExtentOf(AxisColumn, col),
				H: g.config.HeaderExtent,
			}
			if !r.Intersects(viewRect) {
				continue
			}
			mark := SortNone
			if col == g.sortColumn {
				mark = g.sortMark
			}
			plan.Headers = append(plan.Headers, PlanHeader{Col: col, Rect: r, Label: g.headerLabel(col), Sort: mark})
		}
	}

	if plan.Rows.Empty() || plan.Cols.Empty() {
		return
	}

	var selected *PlanCell
	for row := plan.Rows.Start; row <= plan.Rows.End; row++ {
		y := g.config.HeaderExtent + g.metrics.OffsetOf(AxisRow, row) - vp.ScrollTop
		h := g.metrics.ExtentOf(AxisRow, row)
		for col := plan.Cols.Start; col <= plan.Cols.End; col++ {
			r := Rect{
				X: g.metrics.OffsetOf(AxisColumn, col) - vp.ScrollLeft,
				Y: y,
				W: g.metrics.ExtentOf(AxisColumn, col),
				H: h,
			}
			// Cheap reject before any content formatting work. This is
			// what bounds the cycle to O(visible) when overscan or wide
			// layouts push cells off-screen.
			if !r.Intersects(viewRect) {
				continue
			}
			plan.Cells = append(plan.Cells, PlanCell{
				Row:     row,
				Col:     col,
				Rect:    r,
				Content: g.source.Value(row, col),
				AltRow:  row%2 == 1,
			})
			if g.selection != nil && g.selection.Row == row && g.selection.Col == col {
				selected = &plan.Cells[len(plan.Cells)-1]
			}
		}
	}

	if selected != nil {
		selected.Highlighted = true
	}

	g.planLines(plan)
}

// planLines emits separator lines at each visible row and column
// boundary, clipped to the data band.
func (g *Grid) planLines(plan *Plan) {
	vp := g.viewport
	top := g.config.HeaderExtent
	bottom := minf(vp.ClientHeight, top+g.metrics.TotalExtent(AxisRow)-vp.ScrollTop)
	right := minf(vp.ClientWidth, g.metrics.TotalExtent(AxisColumn)-vp.ScrollLeft)

	for row := plan.Rows.Start; row <= plan.Rows.End+1; row++ {
		y := top + g.metrics.OffsetOf(AxisRow, row) - vp.ScrollTop
		if y < top || y > vp.ClientHeight {
			continue
		}
		plan.Lines = append(plan.Lines, PlanLine{X1: 0, Y1: y, X2: right, Y2: y})
	}
	for col := plan.Cols.Start; col <= plan.Cols.End+1; col++ {
		x := g.metrics.OffsetOf(AxisColumn, col) - vp.ScrollLeft
		if x < 0 || x > vp.ClientWidth {
			continue
		}
		plan.Lines = append(plan.Lines, PlanLine{X1: x, Y1: top, X2: x, Y2: bottom})
	}
}

// emit walks the plan in draw order: headers, normal cells, grid
// lines, then the highlighted cell again so its overlay is topmost.
// Each entry is isolated against adapter panics.
func (g *Grid) emit(plan *Plan) {
	for i := range plan.Headers {
		h := &plan.Headers[i]
		g.drawEntry(func() { g.renderer.DrawHeaderCell(h.Rect, h.Label, h.Sort) })
	}
	var highlighted *PlanCell
	for i := range plan.Cells {
		c := &plan.Cells[i]
		if c.Highlighted {
			highlighted = c
		}
		g.drawEntry(func() { g.renderer.DrawDataCell(c.Rect, c.Content, false, c.AltRow) })
	}
	for _, l := range plan.Lines {
		g.drawEntry(func() { g.renderer.DrawGridLine(l.X1, l.Y1, l.X2, l.Y2) })
	}
	if highlighted != nil {
		g.drawEntry(func() { g.renderer.DrawDataCell(highlighted.Rect, highlighted.Content, true, highlighted.AltRow) })
	}
}

// drawEntry runs one adapter call, recovering a panic so a single
// malformed value cannot abort the remaining plan entries.
func (g *Grid) drawEntry(draw func()) {
	defer func() {
		if r := recover(); r != nil {
			g.DroppedCells++
		}
	}()
	draw()
}

// Close releases the renderer adapter. Hosts must call it on teardown;
// a dangling adapter holding a destroyed surface is a leak, not a
// cosmetic issue.
func (g *Grid) Close() {
	if g.released {
		return
	}
	g.released = true
	releasePlan(g.plan)
	g.plan = nil
	g.renderer.Release()
}

func (g *Grid) clampScroll() {
	g.viewport.ScrollTop = clampf(g.viewport.ScrollTop, 0, maxScroll(g.metrics, AxisRow, g.viewport, g.config.HeaderExtent))
	g.viewport.ScrollLeft = clampf(g.viewport.ScrollLeft, 0, maxScroll(g.metrics, AxisColumn, g.viewport, g.config.HeaderExtent))
}

func (g *Grid) headerLabel(col int) string {
	if col < len(g.headerLabels) && g.headerLabels[col] != "" {
		return g.headerLabels[col]
	}
	return columnName(col)
}
