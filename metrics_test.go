package grid_test

import (
	"testing"

	"github.com/gridviz/grid"
)

func uniformMetrics(count int, extent float32) *grid.Metrics {
	return grid.NewMetrics(grid.Config{
		RowCount:            count,
		ColumnCount:         1,
		DefaultRowExtent:    extent,
		DefaultColumnExtent: 100,
	}, nil, nil, nil, nil)
}

func variableRowMetrics(extents []float32, def float32) *grid.Metrics {
	return grid.NewMetrics(grid.Config{
		RowCount:            len(extents),
		ColumnCount:         1,
		SizeMode:            grid.SizeVariableRow,
		DefaultRowExtent:    def,
		DefaultColumnExtent: 100,
	}, extents, nil, nil, nil)
}

func TestMetricsUniform(t *testing.T) {
	m := uniformMetrics(10000, 40)

	if got := m.TotalExtent(grid.AxisRow); got != 400000 {
		t.Errorf("TotalExtent = %v, want 400000", got)
	}
	if got := m.OffsetOf(grid.AxisRow, 98); got != 3920 {
		t.Errorf("OffsetOf(98) = %v, want 3920", got)
	}
	if got := m.ExtentOf(grid.AxisRow, 0); got != 40 {
		t.Errorf("ExtentOf(0) = %v, want 40", got)
	}
	// i == count yields the total extent.
	if got := m.OffsetOf(grid.AxisRow, 10000); got != 400000 {
		t.Errorf("OffsetOf(count) = %v, want 400000", got)
	}
}

func TestMetricsVariableOffsets(t *testing.T) {
	// Rows of 50 except row 3 at 200: offsets 0,50,100,150,350,400.
	extents := []float32{50, 50, 50, 200, 50}
	m := variableRowMetrics(extents, 50)

	wantOffsets := []float32{0, 50, 100, 150, 350, 400}
	for i, want := range wantOffsets {
		if got := m.OffsetOf(grid.AxisRow, i); got != want {
			t.Errorf("OffsetOf(%d) = %v, want %v", i, got, want)
		}
	}
	if got := m.ExtentOf(grid.AxisRow, 3); got != 200 {
		t.Errorf("ExtentOf(3) = %v, want 200", got)
	}
	if got := m.MinExtent(grid.AxisRow); got != 50 {
		t.Errorf("MinExtent = %v, want 50", got)
	}
}

func TestMetricsIndexAtRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		m    *grid.Metrics
		n    int
	}{
		{"uniform", uniformMetrics(1000, 40), 1000},
		{"variable", variableRowMetrics([]float32{50, 50, 50, 200, 50, 30, 70, 50}, 50), 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < tc.n; i++ {
				// Exact boundary hit resolves to i, not i-1 or i+1.
				if got := tc.m.IndexAt(grid.AxisRow, tc.m.OffsetOf(grid.AxisRow, i)); got != i {
					t.Fatalf("IndexAt(OffsetOf(%d)) = %d", i, got)
				}
				// Interior offsets resolve to the same index.
				mid := tc.m.OffsetOf(grid.AxisRow, i) + tc.m.ExtentOf(grid.AxisRow, i)/2
				if got := tc.m.IndexAt(grid.AxisRow, mid); got != i {
					t.Fatalf("IndexAt(mid of %d) = %d", i, got)
				}
			}
		})
	}
}

func TestMetricsIndexAtVariableSearch(t *testing.T) {
	// Scenario from the hit tester: 200px row at offsets [150,350).
	m := variableRowMetrics([]float32{50, 50, 50, 200, 50}, 50)

	if got := m.IndexAt(grid.AxisRow, 260); got != 3 {
		t.Errorf("IndexAt(260) = %d, want 3", got)
	}
	if got := m.IndexAt(grid.AxisRow, 150); got != 3 {
		t.Errorf("IndexAt(150) = %d, want 3 (boundary belongs to the next item)", got)
	}
	if got := m.IndexAt(grid.AxisRow, 149.5); got != 2 {
		t.Errorf("IndexAt(149.5) = %d, want 2", got)
	}
}

func TestMetricsIndexAtClamping(t *testing.T) {
	m := uniformMetrics(10, 40)

	if got := m.IndexAt(grid.AxisRow, -5); got != 0 {
		t.Errorf("negative offset: got %d, want 0", got)
	}
	if got := m.IndexAt(grid.AxisRow, 1e9); got != 9 {
		t.Errorf("past-end offset: got %d, want 9", got)
	}

	empty := uniformMetrics(0, 40)
	if got := empty.IndexAt(grid.AxisRow, 0); got != -1 {
		t.Errorf("empty axis: got %d, want -1", got)
	}
	if got := empty.TotalExtent(grid.AxisRow); got != 0 {
		t.Errorf("empty axis total: got %v, want 0", got)
	}
}

func TestMetricsExtentFallback(t *testing.T) {
	// Non-positive explicit extents fall back to the default so the
	// offset table stays monotonic.
	m := variableRowMetrics([]float32{50, 0, -10, 50}, 25)
	if got := m.ExtentOf(grid.AxisRow, 1); got != 25 {
		t.Errorf("ExtentOf(1) = %v, want default 25", got)
	}
	if got := m.ExtentOf(grid.AxisRow, 2); got != 25 {
		t.Errorf("ExtentOf(2) = %v, want default 25", got)
	}
	if got := m.TotalExtent(grid.AxisRow); got != 150 {
		t.Errorf("TotalExtent = %v, want 150", got)
	}
}

func TestMetricsExtentFunc(t *testing.T) {
	fn := func(i int) float32 {
		if i%2 == 0 {
			return 30
		}
		return 60
	}
	m := grid.NewMetrics(grid.Config{
		RowCount:            4,
		ColumnCount:         1,
		SizeMode:            grid.SizeVariableRow,
		DefaultRowExtent:    50,
		DefaultColumnExtent: 100,
	}, nil, nil, fn, nil)

	if got := m.TotalExtent(grid.AxisRow); got != 180 {
		t.Errorf("TotalExtent = %v, want 180", got)
	}
	// Explicit extents win over the func where both are given.
	m = grid.NewMetrics(grid.Config{
		RowCount:            4,
		ColumnCount:         1,
		SizeMode:            grid.SizeVariableRow,
		DefaultRowExtent:    50,
		DefaultColumnExtent: 100,
	}, []float32{100}, nil, fn, nil)
	if got := m.ExtentOf(grid.AxisRow, 0); got != 100 {
		t.Errorf("ExtentOf(0) = %v, want explicit 100", got)
	}
	if got := m.ExtentOf(grid.AxisRow, 1); got != 60 {
		t.Errorf("ExtentOf(1) = %v, want func 60", got)
	}
}

func TestMetricsExtentOfPanicsOutOfRange(t *testing.T) {
	m := uniformMetrics(10, 40)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an out-of-range index")
		}
	}()
	m.ExtentOf(grid.AxisRow, 10)
}
