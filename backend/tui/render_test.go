package gridtui

import (
	"testing"

	"github.com/gridviz/grid"
)

func TestStampFillsTallRects(t *testing.T) {
	r := &textRenderer{styles: DefaultStyles()}
	if err := r.Begin(grid.Surface{ClientWidth: 10, ClientHeight: 5, Scale: 1}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	r.Clear()

	// A two-row cell: text lands on the first row, the continuation row
	// stays blank but carries the cell's class.
	r.stamp(grid.Rect{X: 0, Y: 1, W: 6, H: 2}, "ab", classSelected)

	if r.chars[1][1] != 'a' || r.chars[1][2] != 'b' {
		t.Errorf("first row = %q, want text after the pad column", string(r.chars[1][:6]))
	}
	for x := 0; x < 6; x++ {
		if r.class[1][x] != classSelected {
			t.Errorf("first row class[%d] = %d, want selected", x, r.class[1][x])
		}
		if r.class[2][x] != classSelected {
			t.Errorf("continuation row class[%d] = %d, want selected", x, r.class[2][x])
		}
		if r.chars[2][x] != ' ' {
			t.Errorf("continuation row char[%d] = %q, want blank", x, r.chars[2][x])
		}
	}
	// Rows outside the rect are untouched.
	if r.class[0][0] != classCell || r.class[3][0] != classCell {
		t.Error("stamp leaked outside its rect")
	}
}

func TestStampClipsAtFramebufferEdge(t *testing.T) {
	r := &textRenderer{styles: DefaultStyles()}
	if err := r.Begin(grid.Surface{ClientWidth: 8, ClientHeight: 3, Scale: 1}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	r.Clear()

	r.stamp(grid.Rect{X: 5, Y: 2, W: 6, H: 2}, "xyz", classAltCell)

	if r.class[2][5] != classAltCell {
		t.Error("in-bounds portion of the rect was not stamped")
	}
	if r.class[0][0] != classCell {
		t.Error("clipping wrote outside the rect")
	}
}
