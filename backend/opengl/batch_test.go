package opengl

import (
	"math"
	"testing"
)

func TestAddLineQuadThickness(t *testing.T) {
	b := newBatch()

	// Viewport-spanning horizontal line, thickness 1: the quad must be
	// offset half a pixel above and below the segment.
	b.addLine(0, 100, 480, 100, 0xFF0000FF, 1)
	if len(b.verts) != 4 {
		t.Fatalf("addLine emitted %d vertices, want 4", len(b.verts))
	}
	top, bottom := b.verts[0].Pos[1], b.verts[3].Pos[1]
	if math.Abs(float64(top-100.5)) > 1e-3 || math.Abs(float64(bottom-99.5)) > 1e-3 {
		t.Errorf("quad edges at y=%v and y=%v, want 100.5 and 99.5", top, bottom)
	}
}

func TestAddLineNormalLength(t *testing.T) {
	b := newBatch()

	// 3-4-5 diagonal, thickness 2: the perpendicular offset must have
	// length thickness/2 regardless of segment length.
	b.addLine(0, 0, 300, 400, 0xFF0000FF, 2)
	if len(b.verts) != 4 {
		t.Fatalf("addLine emitted %d vertices, want 4", len(b.verts))
	}
	nx := float64(b.verts[0].Pos[0])
	ny := float64(b.verts[0].Pos[1])
	if got := math.Hypot(nx, ny); math.Abs(got-1) > 1e-3 {
		t.Errorf("half-thickness offset = %v, want 1", got)
	}
}

func TestAddLineZeroLength(t *testing.T) {
	b := newBatch()

	b.addLine(10, 10, 10, 10, 0xFF0000FF, 1)
	if len(b.verts) != 4 {
		t.Fatalf("addLine emitted %d vertices, want 4", len(b.verts))
	}
	for _, v := range b.verts {
		if v.Pos[0] != 10 || math.Abs(float64(v.Pos[1]-10)) > 0.5 {
			t.Errorf("degenerate segment vertex at %v, want near (10,10)", v.Pos)
		}
	}
}
