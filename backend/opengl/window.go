package opengl

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gridviz/grid"
)

// wheelStep is the scroll distance, in logical pixels, of one mouse
// wheel notch.
const wheelStep = 48

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

// Window owns a GLFW window, a Renderer and a Grid, and translates
// platform events (scroll, clicks, resize, monitor DPI changes) into
// grid events. Redraw work is rate-limited naturally: events only mark
// the grid dirty, and one frame is rendered per loop iteration.
type Window struct {
	win      *glfw.Window
	renderer *Renderer
	grid     *grid.Grid
}

// NewWindow creates a window, initializes OpenGL, and attaches a grid
// built from cfg and src.
func NewWindow(title string, width, height int, cfg grid.Config, src grid.Source, opts ...grid.Option) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	renderer, err := NewRenderer()
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	g, err := grid.New(cfg, src, renderer, opts...)
	if err != nil {
		renderer.Release()
		glfw.Terminate()
		return nil, err
	}

	w := &Window{win: win, renderer: renderer, grid: g}
	w.pushViewportSize()

	win.SetScrollCallback(w.onScroll)
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetFramebufferSizeCallback(w.onFramebufferSize)
	win.SetContentScaleCallback(w.onContentScale)

	return w, nil
}

// Grid returns the attached grid for scripting scroll or selection.
func (w *Window) Grid() *grid.Grid {
	return w.grid
}

// Run drives the event loop until the window closes. Scroll bursts
// arriving between frames coalesce into a single recompute because
// callbacks only mutate grid state; RenderFrame is a no-op on clean
// frames, so an idle grid costs one dirty check per vsync tick.
func (w *Window) Run() {
	for !w.win.ShouldClose() {
		glfw.PollEvents()
		if w.grid.RenderFrame() {
			w.win.SwapBuffers()
		}
	}
	w.Close()
}

// Close tears down the grid, the GL resources and GLFW. Releasing the
// callbacks with the window prevents a dangling handler from touching
// a destroyed surface.
func (w *Window) Close() {
	w.grid.Close()
	w.win.Destroy()
	glfw.Terminate()
}

// pushViewportSize feeds the logical size and device pixel ratio into
// the grid. GLFW reports logical window size and physical framebuffer
// size separately; the content scale ties them together.
func (w *Window) pushViewportSize() {
	lw, lh := w.win.GetSize()
	sx, _ := w.win.GetContentScale()
	w.grid.SetViewportSize(float32(lw), float32(lh), sx)
}

func (w *Window) onScroll(_ *glfw.Window, xoff, yoff float64) {
	w.grid.ScrollBy(float32(-xoff)*wheelStep, float32(-yoff)*wheelStep)
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || action != glfw.Press {
		return
	}
	x, y := w.win.GetCursorPos()
	w.grid.Click(float32(x), float32(y))
}

func (w *Window) onFramebufferSize(_ *glfw.Window, _, _ int) {
	w.pushViewportSize()
}

func (w *Window) onContentScale(_ *glfw.Window, _, _ float32) {
	w.pushViewportSize()
}
