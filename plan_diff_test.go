package grid_test

import (
	"testing"

	"github.com/gridviz/grid"
)

func planWithCells(cells ...grid.PlanCell) *grid.Plan {
	return &grid.Plan{
		Rows:  grid.Range{Start: 0, End: 0},
		Cols:  grid.Range{Start: 0, End: 0},
		Cells: cells,
	}
}

func cellAt(row, col int, content string) grid.PlanCell {
	return grid.PlanCell{
		Row:     row,
		Col:     col,
		Rect:    grid.Rect{X: float32(col) * 100, Y: float32(row) * 20, W: 100, H: 20},
		Content: content,
	}
}

func TestDiffPlansIdentical(t *testing.T) {
	prev := planWithCells(cellAt(0, 0, "a"), cellAt(0, 1, "b"))
	next := planWithCells(cellAt(0, 0, "a"), cellAt(0, 1, "b"))

	if patches := grid.DiffPlans(prev, next); len(patches) != 0 {
		t.Errorf("identical plans produced %d patches", len(patches))
	}
}

func TestDiffPlansChangesAndRemovals(t *testing.T) {
	prev := planWithCells(cellAt(0, 0, "a"), cellAt(1, 0, "b"), cellAt(2, 0, "c"))
	next := planWithCells(cellAt(0, 0, "a"), cellAt(1, 0, "B"), cellAt(3, 0, "d"))

	puts := map[grid.Cell]bool{}
	removes := map[grid.Cell]bool{}
	for _, p := range grid.DiffPlans(prev, next) {
		key := grid.Cell{Row: p.Cell.Row, Col: p.Cell.Col}
		switch p.Op {
		case grid.PatchPut:
			puts[key] = true
		case grid.PatchRemove:
			removes[key] = true
		}
	}

	if !puts[grid.Cell{Row: 1, Col: 0}] {
		t.Error("changed cell (1,0) not patched")
	}
	if !puts[grid.Cell{Row: 3, Col: 0}] {
		t.Error("new cell (3,0) not patched")
	}
	if puts[grid.Cell{Row: 0, Col: 0}] {
		t.Error("untouched cell (0,0) patched")
	}
	if !removes[grid.Cell{Row: 2, Col: 0}] {
		t.Error("departed cell (2,0) not removed")
	}
}

func TestDiffPlansEqualityByPayloadNotIdentity(t *testing.T) {
	// Same logical cell, different rectangle after a scroll: must patch.
	prev := planWithCells(cellAt(5, 0, "x"))
	moved := cellAt(5, 0, "x")
	moved.Rect.Y -= 20
	next := planWithCells(moved)

	patches := grid.DiffPlans(prev, next)
	if len(patches) != 1 || patches[0].Op != grid.PatchPut {
		t.Errorf("moved cell produced %+v, want one put", patches)
	}
}

func TestDiffPlansNilPrev(t *testing.T) {
	next := planWithCells(cellAt(0, 0, "a"))
	patches := grid.DiffPlans(nil, next)
	if len(patches) != 1 || patches[0].Op != grid.PatchPut {
		t.Errorf("first commit produced %+v, want one put", patches)
	}
}

// mockStore records retained-element mutations.
type mockStore struct {
	putCells      []grid.PlanCell
	removedCells  []grid.Cell
	putHeaders    []grid.PlanHeader
	removedHeader []int
}

func (s *mockStore) PutCell(c grid.PlanCell) {
	s.putCells = append(s.putCells, c)
}

func (s *mockStore) RemoveCell(row, col int) {
	s.removedCells = append(s.removedCells, grid.Cell{Row: row, Col: col})
}

func (s *mockStore) PutHeader(h grid.PlanHeader) {
	s.putHeaders = append(s.putHeaders, h)
}

func (s *mockStore) RemoveHeader(col int) {
	s.removedHeader = append(s.removedHeader, col)
}

func (s *mockStore) reset() {
	s.putCells = s.putCells[:0]
	s.removedCells = s.removedCells[:0]
	s.putHeaders = s.putHeaders[:0]
	s.removedHeader = s.removedHeader[:0]
}

func TestRetainedCommit(t *testing.T) {
	store := &mockStore{}
	rt := grid.NewRetained(store)

	first := planWithCells(cellAt(0, 0, "a"), cellAt(1, 0, "b"))
	first.Headers = []grid.PlanHeader{{Col: 0, Rect: grid.Rect{W: 100, H: 20}, Label: "A"}}
	rt.Commit(first)

	if len(store.putCells) != 2 || len(store.putHeaders) != 1 {
		t.Fatalf("first commit: %d cells, %d headers", len(store.putCells), len(store.putHeaders))
	}

	// Same plan again: no mutations.
	store.reset()
	rt.Commit(first)
	if len(store.putCells) != 0 || len(store.putHeaders) != 0 {
		t.Errorf("unchanged commit mutated the store: %d cells, %d headers", len(store.putCells), len(store.putHeaders))
	}

	// One row scrolls out, one scrolls in, header unchanged.
	store.reset()
	second := planWithCells(cellAt(1, 0, "b"), cellAt(2, 0, "c"))
	second.Headers = first.Headers
	rt.Commit(second)
	if len(store.putCells) != 1 || store.putCells[0].Row != 2 {
		t.Errorf("puts = %+v, want only (2,0)", store.putCells)
	}
	if len(store.removedCells) != 1 || store.removedCells[0].Row != 0 {
		t.Errorf("removes = %+v, want only (0,0)", store.removedCells)
	}
	if len(store.putHeaders) != 0 {
		t.Error("unchanged header re-put")
	}
}

func TestRetainedCopiesCommittedPlan(t *testing.T) {
	// The grid reuses its plan buffer across cycles; Retained must not
	// alias it.
	store := &mockStore{}
	rt := grid.NewRetained(store)

	plan := planWithCells(cellAt(0, 0, "a"))
	rt.Commit(plan)

	// Clobber the committed buffer the way the next BuildPlan would.
	plan.Cells[0] = cellAt(9, 9, "z")

	store.reset()
	rt.Commit(planWithCells(cellAt(0, 0, "a")))
	if len(store.putCells) != 0 || len(store.removedCells) != 0 {
		t.Errorf("aliased prev plan: %d puts, %d removes", len(store.putCells), len(store.removedCells))
	}
}

func TestRetainedReset(t *testing.T) {
	store := &mockStore{}
	rt := grid.NewRetained(store)

	plan := planWithCells(cellAt(0, 0, "a"))
	rt.Commit(plan)

	rt.Reset()
	store.reset()
	rt.Commit(planWithCells(cellAt(0, 0, "a")))
	if len(store.putCells) != 1 {
		t.Errorf("post-reset commit put %d cells, want full re-emit of 1", len(store.putCells))
	}
}

func TestRetainedHeaderRemoval(t *testing.T) {
	store := &mockStore{}
	rt := grid.NewRetained(store)

	p1 := planWithCells()
	p1.Headers = []grid.PlanHeader{{Col: 0, Label: "A"}, {Col: 1, Label: "B"}}
	rt.Commit(p1)

	store.reset()
	p2 := planWithCells()
	p2.Headers = []grid.PlanHeader{{Col: 1, Label: "B"}}
	rt.Commit(p2)

	if len(store.removedHeader) != 1 || store.removedHeader[0] != 0 {
		t.Errorf("removed headers = %v, want [0]", store.removedHeader)
	}
	if len(store.putHeaders) != 0 {
		t.Error("surviving header re-put")
	}
}
