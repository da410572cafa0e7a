package grid

import "fmt"

// SizeMode selects which axes use per-index extents. It is a closed
// tagged union; the Metrics build dispatches on it once, so per-query
// lookups never re-check the mode combination.
type SizeMode uint8

const (
	// SizeUniform gives every row and column its default extent.
	SizeUniform SizeMode = iota
	// SizeVariableRow uses per-index row extents, uniform columns.
	SizeVariableRow
	// SizeVariableColumn uses per-index column extents, uniform rows.
	SizeVariableColumn
	// SizeVariableBoth uses per-index extents on both axes.
	SizeVariableBoth
)

func (m SizeMode) variableRows() bool {
	return m == SizeVariableRow || m == SizeVariableBoth
}

func (m SizeMode) variableColumns() bool {
	return m == SizeVariableColumn || m == SizeVariableBoth
}

// DefaultOverscan is the number of extra items resolved beyond each
// visible edge so fast scrolling does not expose blank frames.
const DefaultOverscan = 5

// Config describes one grid instance. It is immutable for the lifetime
// of the instance; switching any field requires Reconfigure, which
// rebuilds the derived offset tables.
type Config struct {
	RowCount    int
	ColumnCount int
	SizeMode    SizeMode

	DefaultRowExtent    float32 // Row height used in uniform mode and as variable fallback
	DefaultColumnExtent float32 // Column width, same rules
	HeaderExtent        float32 // Height of the header band (0 = no header)
	Overscan            int     // Items pre-rendered past each visible edge
}

// Validate reports the first structural problem with the config.
func (c Config) Validate() error {
	if c.RowCount < 0 {
		return fmt.Errorf("grid: row count %d is negative", c.RowCount)
	}
	if c.ColumnCount < 0 {
		return fmt.Errorf("grid: column count %d is negative", c.ColumnCount)
	}
	if c.DefaultRowExtent <= 0 {
		return fmt.Errorf("grid: default row extent %v is not positive", c.DefaultRowExtent)
	}
	if c.DefaultColumnExtent <= 0 {
		return fmt.Errorf("grid: default column extent %v is not positive", c.DefaultColumnExtent)
	}
	if c.HeaderExtent < 0 {
		return fmt.Errorf("grid: header extent %v is negative", c.HeaderExtent)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("grid: overscan %d is negative", c.Overscan)
	}
	return nil
}

func (c Config) count(axis Axis) int {
	if axis == AxisRow {
		return c.RowCount
	}
	return c.ColumnCount
}

func (c Config) defaultExtent(axis Axis) float32 {
	if axis == AxisRow {
		return c.DefaultRowExtent
	}
	return c.DefaultColumnExtent
}

// ExtentFunc supplies the extent of the item at index i along one axis.
type ExtentFunc func(i int) float32

// Option configures a Grid at construction time.
type Option func(*Grid)

// WithOverscan overrides the default overscan margin.
func WithOverscan(n int) Option {
	return func(g *Grid) { g.config.Overscan = n }
}

// WithHeaderExtent sets the header band height.
func WithHeaderExtent(h float32) Option {
	return func(g *Grid) { g.config.HeaderExtent = h }
}

// WithRowExtents supplies explicit per-row extents for variable modes.
// Missing trailing entries fall back to the default row extent.
func WithRowExtents(extents []float32) Option {
	return func(g *Grid) { g.rowExtents = extents }
}

// WithColumnExtents supplies explicit per-column extents.
func WithColumnExtents(extents []float32) Option {
	return func(g *Grid) { g.colExtents = extents }
}

// WithRowExtentFunc supplies a per-row extent function. Explicit
// extents take precedence when both are set.
func WithRowExtentFunc(fn ExtentFunc) Option {
	return func(g *Grid) { g.rowExtentFn = fn }
}

// WithColumnExtentFunc supplies a per-column extent function.
func WithColumnExtentFunc(fn ExtentFunc) Option {
	return func(g *Grid) { g.colExtentFn = fn }
}

// WithHeaderLabels sets the column header labels. Columns without a
// label fall back to a spreadsheet-style letter name.
func WithHeaderLabels(labels []string) Option {
	return func(g *Grid) { g.headerLabels = labels }
}
