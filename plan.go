package grid

import "sync"

// SortMark is the optional sort indicator a header entry carries. The
// engine never sorts the data; it only round-trips the marker so
// adapters can draw it.
type SortMark uint8

const (
	SortNone SortMark = iota
	SortAscending
	SortDescending
)

// PlanCell is one data cell of a draw plan: a screen rectangle plus
// the formatted content to present there.
type PlanCell struct {
	Row, Col    int
	Rect        Rect
	Content     string
	Highlighted bool // Selected cell; adapters draw its overlay topmost
	AltRow      bool // Odd row parity, for zebra striping
}

// PlanHeader is one header-band entry, emitted once per visible column.
type PlanHeader struct {
	Col   int
	Rect  Rect
	Label string
	Sort  SortMark
}

// PlanLine is a grid line between cells, in screen coordinates.
type PlanLine struct {
	X1, Y1, X2, Y2 float32
}

// Plan is the ordered set of screen-space entries to present for one
// frame. It is produced fresh each redraw cycle, handed to the
// renderer adapter, and released; it is never the source of truth for
// what to render beyond the current cycle.
type Plan struct {
	Rows    Range
	Cols    Range
	Cells   []PlanCell
	Headers []PlanHeader
	Lines   []PlanLine
}

// planPool reuses plan buffers across frames. Rebuilding the full plan
// each cycle is the contract, but reallocating its backing arrays each
// cycle is not; this mirrors how the frame draw buffers are pooled.
var planPool = sync.Pool{
	New: func() any {
		return &Plan{
			Cells:   make([]PlanCell, 0, 1024),
			Headers: make([]PlanHeader, 0, 64),
			Lines:   make([]PlanLine, 0, 128),
		}
	},
}

// acquirePlan gets a cleared Plan from the pool.
func acquirePlan() *Plan {
	p := planPool.Get().(*Plan)
	p.reset()
	return p
}

// releasePlan returns a Plan to the pool for reuse.
func releasePlan(p *Plan) {
	if p != nil {
		planPool.Put(p)
	}
}

// reset clears the plan while retaining allocated capacity.
func (p *Plan) reset() {
	p.Rows = EmptyRange
	p.Cols = EmptyRange
	p.Cells = p.Cells[:0]
	p.Headers = p.Headers[:0]
	p.Lines = p.Lines[:0]
}

// Empty returns true when the plan contains nothing to draw.
func (p *Plan) Empty() bool {
	return len(p.Cells) == 0 && len(p.Headers) == 0 && len(p.Lines) == 0
}
