package grid_test

import (
	"testing"

	"github.com/gridviz/grid"
)

func TestVec2Arithmetic(t *testing.T) {
	a := grid.Vec2{X: 3, Y: -2}
	b := grid.Vec2{X: 1, Y: 5}

	if got := a.Add(b); got != (grid.Vec2{X: 4, Y: 3}) {
		t.Errorf("Add = %+v, want {4 3}", got)
	}
	if got := a.Sub(b); got != (grid.Vec2{X: 2, Y: -7}) {
		t.Errorf("Sub = %+v, want {2 -7}", got)
	}
}

func TestRectContains(t *testing.T) {
	r := grid.Rect{X: 10, Y: 20, W: 100, H: 50}

	cases := []struct {
		p    grid.Vec2
		want bool
	}{
		{grid.Vec2{X: 10, Y: 20}, true},   // top-left edge is inside
		{grid.Vec2{X: 109, Y: 69}, true},  // last point inside
		{grid.Vec2{X: 110, Y: 20}, false}, // right edge is exclusive
		{grid.Vec2{X: 10, Y: 70}, false},  // bottom edge is exclusive
		{grid.Vec2{X: 9, Y: 20}, false},
		{grid.Vec2{X: 50, Y: 19}, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%+v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	r := grid.Rect{X: 0, Y: 0, W: 10, H: 10}

	if !r.Intersects(grid.Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("overlapping rects reported disjoint")
	}
	// Edge-touching rects share no interior point.
	if r.Intersects(grid.Rect{X: 10, Y: 0, W: 10, H: 10}) {
		t.Error("edge-adjacent rects reported overlapping")
	}
	if r.Intersects(grid.Rect{X: 20, Y: 20, W: 5, H: 5}) {
		t.Error("disjoint rects reported overlapping")
	}
}

func TestPackedColorRoundTrip(t *testing.T) {
	c := grid.RGBA(12, 34, 56, 78)
	r, g, b, a := grid.UnpackRGBA(c)
	if r != 12 || g != 34 || b != 56 || a != 78 {
		t.Errorf("UnpackRGBA(RGBA(12,34,56,78)) = %d,%d,%d,%d", r, g, b, a)
	}
	if grid.RGBA(255, 255, 255, 255) != grid.ColorWhite {
		t.Error("ColorWhite does not match full-intensity RGBA")
	}
}
