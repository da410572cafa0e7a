package grid

import "math"

// Surface describes the drawing surface: its logical (CSS-pixel) size
// and the device-pixel-ratio scale between logical and physical
// pixels. Adapters size their backing buffers from the physical
// dimensions and issue drawing commands in logical units.
type Surface struct {
	ClientWidth  float32
	ClientHeight float32
	Scale        float32 // Device pixel ratio; 1 when unset
}

// PhysicalWidth returns the backing-buffer width in device pixels.
func (s Surface) PhysicalWidth() int {
	return int(math.Round(float64(s.ClientWidth * s.scale())))
}

// PhysicalHeight returns the backing-buffer height in device pixels.
func (s Surface) PhysicalHeight() int {
	return int(math.Round(float64(s.ClientHeight * s.scale())))
}

func (s Surface) scale() float32 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// Renderer consumes one draw plan per frame. The engine drives it as
//
//	Begin -> Clear -> DrawHeaderCell*/DrawDataCell*/DrawGridLine* -> End
//
// in plan order, with the highlighted cell's overlay drawn after the
// normal pass so it lands topmost.
//
// Begin returning an error means the surface is unavailable this
// frame; the engine skips the cycle without committing a partial frame
// and retries on the next triggering event. An empty plan is a no-op
// beyond Clear.
type Renderer interface {
	// Begin acquires the drawing surface for one frame.
	Begin(s Surface) error
	// Clear erases the previous frame's content.
	Clear()
	// DrawHeaderCell draws one header-band entry.
	DrawHeaderCell(r Rect, label string, sort SortMark)
	// DrawDataCell draws one data cell. altRow marks odd rows for zebra
	// striping. Highlighted cells are delivered a second time after all
	// normal cells, with highlighted == true.
	DrawDataCell(r Rect, value string, highlighted, altRow bool)
	// DrawGridLine draws a separator line between cells.
	DrawGridLine(x1, y1, x2, y2 float32)
	// End presents the frame.
	End() error
	// Release frees adapter resources. The grid stops producing frames
	// for a released renderer.
	Release()
}
