package grid

// PatchOp says what a retained-element adapter must do to one keyed
// element to move from the previous frame's plan to the next one.
type PatchOp uint8

const (
	// PatchPut creates or updates the element for a cell.
	PatchPut PatchOp = iota
	// PatchRemove deletes the element; the cell left the viewport.
	PatchRemove
)

// Patch is one retained-element mutation, keyed by logical cell.
type Patch struct {
	Op   PatchOp
	Cell PlanCell // Valid for PatchPut; only Row/Col matter for PatchRemove
}

// DiffPlans compares two plans keyed by (row, column) and returns the
// patches that transform prev into next. Cells present in both with
// identical rectangle, content and flags produce no patch, which is
// what lets a retained-mode adapter skip untouched elements during a
// scroll that only reveals one new row.
//
// Equality is by index and payload, never element identity: the plans
// are flat reused-capacity buffers, so pointers are meaningless across
// cycles.
func DiffPlans(prev, next *Plan) []Patch {
	var patches []Patch

	var prevByCell map[Cell]*PlanCell
	if prev != nil && len(prev.Cells) > 0 {
		prevByCell = make(map[Cell]*PlanCell, len(prev.Cells))
		for i := range prev.Cells {
			c := &prev.Cells[i]
			prevByCell[Cell{Row: c.Row, Col: c.Col}] = c
		}
	}

	if next != nil {
		for i := range next.Cells {
			c := &next.Cells[i]
			key := Cell{Row: c.Row, Col: c.Col}
			old, ok := prevByCell[key]
			if ok {
				delete(prevByCell, key)
				if *old == *c {
					continue
				}
			}
			patches = append(patches, Patch{Op: PatchPut, Cell: *c})
		}
	}

	for _, old := range prevByCell {
		patches = append(patches, Patch{Op: PatchRemove, Cell: PlanCell{Row: old.Row, Col: old.Col}})
	}
	return patches
}
