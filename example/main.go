// Example renders a 10,000-row dataset in a GLFW window. Scroll with
// the mouse wheel, click a cell to select it.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
package main

import (
	"fmt"
	"os"

	"github.com/gridviz/grid"
	"github.com/gridviz/grid/backend/opengl"
)

const (
	windowWidth  = 960
	windowHeight = 600
	windowTitle  = "grid example"

	rowCount = 10000
	colCount = 8
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := grid.Config{
		RowCount:            rowCount,
		ColumnCount:         colCount,
		SizeMode:            grid.SizeVariableRow,
		DefaultRowExtent:    28,
		DefaultColumnExtent: 120,
		HeaderExtent:        32,
	}

	src := grid.SourceFunc(func(row, col int) string {
		if col == 0 {
			return fmt.Sprintf("%d", row)
		}
		return fmt.Sprintf("R%d C%d", row, col)
	})

	win, err := opengl.NewWindow(windowTitle, windowWidth, windowHeight, cfg, src,
		grid.WithHeaderLabels([]string{"ID", "Name", "Status", "Owner", "Created", "Updated", "Size", "Notes"}),
		// Every 50th row is a tall section break.
		grid.WithRowExtentFunc(func(row int) float32 {
			if row%50 == 0 {
				return 56
			}
			return 28
		}),
	)
	if err != nil {
		return err
	}

	win.Grid().SetSortIndicator(0, grid.SortAscending)
	win.Run()
	return nil
}
