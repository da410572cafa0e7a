package grid

import (
	"fmt"
	"sort"
)

// axisMetrics answers extent/offset queries for one axis. A uniform
// axis is pure arithmetic; a variable axis carries per-index extents
// and a cumulative prefix-offset table of length count+1.
type axisMetrics struct {
	count         int
	uniform       bool
	defaultExtent float32

	extents []float32 // len == count, variable axes only
	offsets []float32 // len == count+1, offsets[0] == 0, non-decreasing
	minimum float32   // smallest extent, for overscan-bound reasoning
}

// Metrics resolves item extents and cumulative offsets for both axes.
// Build is O(n) per variable axis; after that OffsetOf is O(1) and
// IndexAt is O(1) uniform / O(log n) variable. A Metrics value is
// read-only once built; Rebuild swaps in a fresh table and must not
// race with in-flight queries.
type Metrics struct {
	rows axisMetrics
	cols axisMetrics
}

// NewMetrics builds the metric tables for the given config. Variable
// axes resolve each index's extent from the explicit slice first, then
// the extent func, then the axis default. Non-positive extents fall
// back to the default so the offset table stays monotonic.
func NewMetrics(cfg Config, rowExtents, colExtents []float32, rowFn, colFn ExtentFunc) *Metrics {
	m := &Metrics{}
	m.rows = buildAxis(cfg.count(AxisRow), cfg.defaultExtent(AxisRow), cfg.SizeMode.variableRows(), rowExtents, rowFn)
	m.cols = buildAxis(cfg.count(AxisColumn), cfg.defaultExtent(AxisColumn), cfg.SizeMode.variableColumns(), colExtents, colFn)
	return m
}

func buildAxis(count int, def float32, variable bool, explicit []float32, fn ExtentFunc) axisMetrics {
	am := axisMetrics{
		count:         count,
		uniform:       !variable,
		defaultExtent: def,
		minimum:       def,
	}
	if !variable || count == 0 {
		return am
	}

	am.extents = make([]float32, count)
	am.offsets = make([]float32, count+1)
	for i := 0; i < count; i++ {
		ext := def
		switch {
		case i < len(explicit) && explicit[i] > 0:
			ext = explicit[i]
		case fn != nil:
			if v := fn(i); v > 0 {
				ext = v
			}
		}
		am.extents[i] = ext
		am.offsets[i+1] = am.offsets[i] + ext
		if ext < am.minimum {
			am.minimum = ext
		}
	}
	return am
}

func (m *Metrics) axis(a Axis) *axisMetrics {
	if a == AxisRow {
		return &m.rows
	}
	return &m.cols
}

// Count returns the item count along the axis.
func (m *Metrics) Count(a Axis) int {
	return m.axis(a).count
}

// ExtentOf returns the extent of item i along the axis. Passing an
// out-of-range index is a programmer error and panics.
func (m *Metrics) ExtentOf(a Axis, i int) float32 {
	am := m.axis(a)
	if i < 0 || i >= am.count {
		panic(fmt.Sprintf("grid: %s index %d out of range [0,%d)", a, i, am.count))
	}
	if am.uniform {
		return am.defaultExtent
	}
	return am.extents[i]
}

// OffsetOf returns the cumulative offset of item i along the axis,
// i.e. the distance from the content origin to the item's leading
// edge. i == count is allowed and yields the total extent.
func (m *Metrics) OffsetOf(a Axis, i int) float32 {
	am := m.axis(a)
	if i < 0 || i > am.count {
		panic(fmt.Sprintf("grid: %s index %d out of range [0,%d]", a, i, am.count))
	}
	if am.uniform {
		return float32(i) * am.defaultExtent
	}
	return am.offsets[i]
}

// IndexAt is the inverse of OffsetOf: the index of the item whose span
// contains the given content-space offset. Negative offsets clamp to
// index 0; offsets at or past the total extent clamp to count-1.
// An exact boundary hit resolves to the item starting at that boundary.
// Returns -1 when the axis is empty.
func (m *Metrics) IndexAt(a Axis, offset float32) int {
	am := m.axis(a)
	if am.count == 0 {
		return -1
	}
	if offset < 0 {
		return 0
	}
	var idx int
	if am.uniform {
		idx = int(offset / am.defaultExtent)
	} else {
		// Greatest i with offsets[i] <= offset: logarithmic search over
		// the prefix table. A linear scan would blow the frame budget
		// on large variable grids.
		idx = sort.Search(am.count, func(i int) bool {
			return am.offsets[i+1] > offset
		})
	}
	if idx >= am.count {
		idx = am.count - 1
	}
	return idx
}

// lastBefore returns the greatest index whose leading edge lies
// strictly before the given offset, clamped to [0, count-1]. This is
// the boundary-exclusive counterpart of IndexAt, used for the trailing
// edge of a visible window.
func (m *Metrics) lastBefore(a Axis, offset float32) int {
	am := m.axis(a)
	if am.count == 0 {
		return -1
	}
	if offset <= 0 {
		return 0
	}
	var idx int
	if am.uniform {
		idx = int(offset / am.defaultExtent)
		if float32(idx)*am.defaultExtent >= offset {
			idx--
		}
	} else {
		// Smallest i with offsets[i] >= offset, minus one.
		idx = sort.Search(am.count, func(i int) bool {
			return am.offsets[i] >= offset
		}) - 1
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= am.count {
		idx = am.count - 1
	}
	return idx
}

// TotalExtent returns the summed extent of all items along the axis.
func (m *Metrics) TotalExtent(a Axis) float32 {
	am := m.axis(a)
	if am.uniform {
		return float32(am.count) * am.defaultExtent
	}
	if am.count == 0 {
		return 0
	}
	return am.offsets[am.count]
}

// MinExtent returns the smallest item extent along the axis.
func (m *Metrics) MinExtent(a Axis) float32 {
	return m.axis(a).minimum
}
