package grid

// Viewport is the scroll position and client size of the visible
// window over the content. It is owned by the Grid and mutated only by
// input events, never from inside a draw pass.
type Viewport struct {
	ScrollTop    float32
	ScrollLeft   float32
	ClientWidth  float32
	ClientHeight float32
}

// Range is an inclusive index range along one axis. An empty axis
// resolves to the explicit empty marker rather than a zero range so
// callers can distinguish "render row 0" from "render nothing".
type Range struct {
	Start, End int
}

// EmptyRange marks an axis with no items.
var EmptyRange = Range{Start: -1, End: -1}

// Empty returns true for the empty-axis marker.
func (r Range) Empty() bool {
	return r.Start < 0
}

// Count returns the number of items in the range.
func (r Range) Count() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains returns true if i lies inside the range.
func (r Range) Contains(i int) bool {
	return !r.Empty() && i >= r.Start && i <= r.End
}

// resolveRange maps the viewport to the inclusive index range that
// must be rendered along the axis, including the symmetric overscan
// margin, clamped to [0, count-1].
//
// The header band sits above the scrollable data on the row axis, so
// the row scroll offset is reduced by the header extent before the
// index lookup. Offsets that land exactly on an item boundary resolve
// to that item; transiently negative offsets (rubber-banding) clamp
// to zero.
func resolveRange(m *Metrics, a Axis, vp Viewport, headerExtent float32, overscan int) Range {
	count := m.Count(a)
	if count == 0 {
		return EmptyRange
	}

	var offset, clientExtent float32
	if a == AxisRow {
		offset = vp.ScrollTop - headerExtent
		clientExtent = vp.ClientHeight
	} else {
		offset = vp.ScrollLeft
		clientExtent = vp.ClientWidth
	}
	if offset < 0 {
		offset = 0
	}
	if clientExtent < 0 {
		clientExtent = 0
	}

	start := m.IndexAt(a, offset)

	// Last index whose leading edge is strictly inside the window: an
	// item starting exactly at the bottom/right boundary is not
	// visible, while one starting exactly at the top/left boundary is.
	// Searching the offset table directly keeps resolve O(log n) on
	// variable axes.
	end := m.lastBefore(a, offset+clientExtent)

	start -= overscan
	end += overscan
	if start < 0 {
		start = 0
	}
	if end > count-1 {
		end = count - 1
	}
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}

// maxScroll returns the largest useful scroll offset along the axis:
// total content extent (plus the header band on the row axis) minus
// the client extent, floored at zero.
func maxScroll(m *Metrics, a Axis, vp Viewport, headerExtent float32) float32 {
	var client float32
	total := m.TotalExtent(a)
	if a == AxisRow {
		total += headerExtent
		client = vp.ClientHeight
	} else {
		client = vp.ClientWidth
	}
	return maxf(0, total-client)
}
