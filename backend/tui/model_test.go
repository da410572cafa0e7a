package gridtui_test

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridviz/grid"
	gridtui "github.com/gridviz/grid/backend/tui"
)

func newTestModel(t *testing.T) gridtui.Model {
	t.Helper()
	cfg := grid.Config{
		RowCount:            100,
		ColumnCount:         3,
		DefaultRowExtent:    1,
		DefaultColumnExtent: 12,
		HeaderExtent:        1,
	}
	src := grid.SourceFunc(func(row, col int) string {
		return fmt.Sprintf("r%dc%d", row, col)
	})
	m, err := gridtui.NewModel(cfg, src, grid.WithHeaderLabels([]string{"ID", "Name", "Value"}))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func resized(t *testing.T, m gridtui.Model, w, h int) gridtui.Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(gridtui.Model)
}

func TestViewShowsHeaderAndCells(t *testing.T) {
	m := resized(t, newTestModel(t), 40, 10)

	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("view has %d lines, want 10", len(lines))
	}
	if !strings.Contains(lines[0], "ID") || !strings.Contains(lines[0], "Name") {
		t.Errorf("header line missing labels: %q", lines[0])
	}
	if !strings.Contains(out, "r0c0") {
		t.Error("first cell not rendered")
	}
	// 9 data lines fit under the header.
	if strings.Contains(out, "r9c0") {
		t.Error("row 9 rendered beyond the viewport")
	}
}

func TestKeysScroll(t *testing.T) {
	m := resized(t, newTestModel(t), 40, 10)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(gridtui.Model)
	if got := m.Grid().Viewport().ScrollTop; got != 1 {
		t.Errorf("ScrollTop = %v after down, want 1", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m = next.(gridtui.Model)
	if got := m.Grid().Viewport().ScrollTop; got != 10 {
		t.Errorf("ScrollTop = %v after pgdown, want 10", got)
	}

	out := m.View()
	if !strings.Contains(out, "r10c0") {
		t.Error("scrolled view does not show row 10")
	}
}

func TestMouseClickSelects(t *testing.T) {
	m := resized(t, newTestModel(t), 40, 10)

	next, _ := m.Update(tea.MouseMsg{
		X:      1,
		Y:      3,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	m = next.(gridtui.Model)

	sel, ok := m.Grid().Selection()
	if !ok || sel.Row != 2 || sel.Col != 0 {
		t.Errorf("Selection = %+v %v, want (2,0)", sel, ok)
	}
}
