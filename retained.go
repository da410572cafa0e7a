package grid

// ElementStore is the retained-mode counterpart of Renderer: instead
// of redrawing every cell each frame, the host keeps one element per
// visible cell and the engine tells it which elements to create,
// update or remove. DOM-node and widget-tree backends implement this.
type ElementStore interface {
	// PutCell creates or updates the element for a cell.
	PutCell(c PlanCell)
	// RemoveCell deletes the element for a cell that left the viewport.
	RemoveCell(row, col int)
	// PutHeader creates or updates a header-band element.
	PutHeader(h PlanHeader)
	// RemoveHeader deletes a header element.
	RemoveHeader(col int)
}

// Retained drives an ElementStore by diffing successive draw plans.
// It owns a private copy of the last committed plan; the grid's pooled
// plan buffers are reused across cycles, so retaining a reference
// instead of a copy would read the next frame's data.
type Retained struct {
	store ElementStore

	prev        Plan
	prevHeaders map[int]PlanHeader
}

// NewRetained wraps an element store.
func NewRetained(store ElementStore) *Retained {
	return &Retained{
		store:       store,
		prevHeaders: make(map[int]PlanHeader),
	}
}

// Commit applies the difference between the last committed plan and
// next to the element store. Untouched cells generate no store calls.
func (rt *Retained) Commit(next *Plan) {
	for _, p := range DiffPlans(&rt.prev, next) {
		switch p.Op {
		case PatchPut:
			rt.store.PutCell(p.Cell)
		case PatchRemove:
			rt.store.RemoveCell(p.Cell.Row, p.Cell.Col)
		}
	}

	seen := make(map[int]bool, len(next.Headers))
	for _, h := range next.Headers {
		seen[h.Col] = true
		if old, ok := rt.prevHeaders[h.Col]; !ok || old != h {
			rt.store.PutHeader(h)
		}
	}
	for col := range rt.prevHeaders {
		if !seen[col] {
			rt.store.RemoveHeader(col)
			delete(rt.prevHeaders, col)
		}
	}
	for _, h := range next.Headers {
		rt.prevHeaders[h.Col] = h
	}

	rt.prev.Rows = next.Rows
	rt.prev.Cols = next.Cols
	rt.prev.Cells = append(rt.prev.Cells[:0], next.Cells...)
}

// Reset forgets the committed state, forcing the next Commit to emit
// every element. Use after the host recreated its element tree.
func (rt *Retained) Reset() {
	rt.prev.reset()
	clear(rt.prevHeaders)
}
