package grid

// HitTest resolves a pointer position, in viewport-local coordinates,
// to the logical cell under it. The second return value is false when
// the pointer is inside the header band or past the last row or column
// of a short dataset. Selection changes are the caller's business; the
// tester only answers "what is here".
func (g *Grid) HitTest(x, y float32) (Cell, bool) {
	vp := g.viewport

	// Header clicks never select a data cell. Header coordinates are
	// unscrolled: the band is pinned to the top of the viewport.
	if y < g.config.HeaderExtent {
		return Cell{}, false
	}
	client := Rect{W: vp.ClientWidth, H: vp.ClientHeight}
	if !client.Contains(Vec2{X: x, Y: y}) {
		return Cell{}, false
	}

	content := Vec2{X: x, Y: y - g.config.HeaderExtent}.Add(Vec2{X: vp.ScrollLeft, Y: vp.ScrollTop})

	row := g.metrics.IndexAt(AxisRow, content.Y)
	col := g.metrics.IndexAt(AxisColumn, content.X)
	if row < 0 || col < 0 {
		return Cell{}, false
	}

	// IndexAt clamps to the last item, so a pointer past the end of the
	// content region resolves inside it; reject those explicitly.
	if content.Y >= g.metrics.TotalExtent(AxisRow) || content.X >= g.metrics.TotalExtent(AxisColumn) {
		return Cell{}, false
	}
	return Cell{Row: row, Col: col}, true
}

// CellRect returns the screen-space rectangle of a cell under the
// current viewport. The rectangle may lie outside the visible area.
func (g *Grid) CellRect(c Cell) Rect {
	vp := g.viewport
	origin := Vec2{
		X: g.metrics.OffsetOf(AxisColumn, c.Col),
		Y: g.config.HeaderExtent + g.metrics.OffsetOf(AxisRow, c.Row),
	}.Sub(Vec2{X: vp.ScrollLeft, Y: vp.ScrollTop})
	return Rect{
		X: origin.X,
		Y: origin.Y,
		W: g.metrics.ExtentOf(AxisColumn, c.Col),
		H: g.metrics.ExtentOf(AxisRow, c.Row),
	}
}
