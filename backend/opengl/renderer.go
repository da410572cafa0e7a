// Package opengl provides the pixel-surface renderer adapter for the
// grid engine, drawing with OpenGL 4.1 into a GLFW window. It is
// immediate-mode: every frame is cleared and redrawn from the draw
// plan.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gridviz/grid"
)

// Palette holds the adapter's colors, packed 0xAABBGGRR.
type Palette struct {
	Background   uint32
	HeaderBg     uint32
	HeaderText   uint32
	CellText     uint32
	AltRowBg     uint32
	GridLine     uint32
	SelectionBg  uint32
	SelectedText uint32
}

// DefaultPalette is a dark scheme legible on most displays.
func DefaultPalette() Palette {
	return Palette{
		Background:   grid.RGBA(24, 24, 28, 255),
		HeaderBg:     grid.RGBA(45, 45, 55, 255),
		HeaderText:   grid.RGBA(220, 220, 225, 255),
		CellText:     grid.RGBA(200, 200, 205, 255),
		AltRowBg:     grid.RGBA(31, 31, 36, 255),
		GridLine:     grid.RGBA(58, 58, 66, 255),
		SelectionBg:  grid.RGBA(60, 90, 150, 255),
		SelectedText: grid.ColorWhite,
	}
}

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// The glyph atlas is single-channel: R carries alpha, vertex color
// carries RGB.
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D glyphAtlas;
uniform bool useTexture;

void main() {
    if (useTexture) {
        float a = texture(glyphAtlas, TexCoord).r;
        FragColor = vec4(Color.rgb, Color.a * a);
    } else {
        FragColor = Color;
    }
}
` + "\x00"

// Renderer implements grid.Renderer on an OpenGL context. Drawing
// commands arrive in logical pixels; the device-pixel-ratio scale is
// applied by pairing a physical-pixel GL viewport with a logical-pixel
// orthographic projection, so cell geometry is DPI-independent.
type Renderer struct {
	shader    uint32
	vao, vbo  uint32
	ebo       uint32
	atlasTex  uint32
	projLoc   int32
	texLoc    int32
	useTexLoc int32

	batch   *batch
	palette Palette
	surface grid.Surface
	ready   bool

	fontScale float32
	pad       float32
}

// NewRenderer compiles the shader pipeline and uploads the glyph
// atlas. The GL context must be current.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		batch:     newBatch(),
		palette:   DefaultPalette(),
		fontScale: 1.5,
		pad:       6,
	}

	var err error
	r.shader, err = buildProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("grid renderer: %w", err)
	}

	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("glyphAtlas\x00"))
	r.useTexLoc = gl.GetUniformLocation(r.shader, gl.Str("useTexture\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	stride := int32(unsafe.Sizeof(Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(Vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	r.atlasTex = uploadAtlas()
	r.ready = true
	return r, nil
}

// SetPalette replaces the color scheme.
func (r *Renderer) SetPalette(p Palette) {
	r.palette = p
}

// Begin implements grid.Renderer.
func (r *Renderer) Begin(s grid.Surface) error {
	if !r.ready {
		return fmt.Errorf("grid renderer: surface released")
	}
	if s.PhysicalWidth() <= 0 || s.PhysicalHeight() <= 0 {
		return fmt.Errorf("grid renderer: zero-sized surface")
	}
	r.surface = s
	r.batch.clear()
	return nil
}

// Clear implements grid.Renderer.
func (r *Renderer) Clear() {
	cr, cg, cb, ca := grid.UnpackRGBA(r.palette.Background)
	gl.ClearColor(float32(cr)/255, float32(cg)/255, float32(cb)/255, float32(ca)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawHeaderCell implements grid.Renderer.
func (r *Renderer) DrawHeaderCell(rect grid.Rect, label string, sort grid.SortMark) {
	r.batch.addRect(rect.X, rect.Y, rect.W, rect.H, r.palette.HeaderBg)
	textY := rect.Y + (rect.H-glyphHeight*r.fontScale)/2
	r.batch.addText(rect.X+r.pad, textY, label, r.palette.HeaderText, r.fontScale, rect.X+rect.W-r.pad)
	if sort != grid.SortNone {
		mark := "+"
		if sort == grid.SortDescending {
			mark = "-"
		}
		r.batch.addText(rect.X+rect.W-r.pad-glyphWidth*r.fontScale, textY, mark, r.palette.HeaderText, r.fontScale, rect.X+rect.W)
	}
}

// DrawDataCell implements grid.Renderer.
func (r *Renderer) DrawDataCell(rect grid.Rect, value string, highlighted, altRow bool) {
	textColor := r.palette.CellText
	switch {
	case highlighted:
		r.batch.addRect(rect.X, rect.Y, rect.W, rect.H, r.palette.SelectionBg)
		textColor = r.palette.SelectedText
	case altRow:
		r.batch.addRect(rect.X, rect.Y, rect.W, rect.H, r.palette.AltRowBg)
	}
	textY := rect.Y + (rect.H-glyphHeight*r.fontScale)/2
	r.batch.addText(rect.X+r.pad, textY, value, textColor, r.fontScale, rect.X+rect.W-r.pad)
}

// DrawGridLine implements grid.Renderer.
func (r *Renderer) DrawGridLine(x1, y1, x2, y2 float32) {
	r.batch.addLine(x1, y1, x2, y2, r.palette.GridLine, 1)
}

// End implements grid.Renderer: uploads the batch and issues the draw
// calls.
func (r *Renderer) End() error {
	if !r.ready {
		return fmt.Errorf("grid renderer: surface released")
	}
	r.batch.finalize()
	if len(r.batch.verts) == 0 {
		return nil
	}

	gl.Viewport(0, 0, int32(r.surface.PhysicalWidth()), int32(r.surface.PhysicalHeight()))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(r.shader)

	// Logical-pixel projection over a physical-pixel viewport: this is
	// the uniform device-pixel-ratio transform.
	proj := orthoMatrix(0, r.surface.ClientWidth, r.surface.ClientHeight, 0)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
	gl.Uniform1i(r.texLoc, 0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.batch.verts)*int(unsafe.Sizeof(Vertex{})), gl.Ptr(r.batch.verts), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.batch.idxs)*2, gl.Ptr(r.batch.idxs), gl.STREAM_DRAW)

	for _, cmd := range r.batch.cmds {
		if cmd.ElemCount == 0 {
			continue
		}
		if cmd.Textured {
			gl.Uniform1i(r.useTexLoc, 1)
		} else {
			gl.Uniform1i(r.useTexLoc, 0)
		}
		gl.DrawElementsBaseVertexWithOffset(
			gl.TRIANGLES,
			int32(cmd.ElemCount),
			gl.UNSIGNED_SHORT,
			uintptr(cmd.IndexOffset)*2,
			int32(cmd.VertexOffset),
		)
	}

	gl.BindVertexArray(0)
	return nil
}

// Release implements grid.Renderer: frees all GL objects.
func (r *Renderer) Release() {
	if !r.ready {
		return
	}
	r.ready = false
	if r.atlasTex != 0 {
		gl.DeleteTextures(1, &r.atlasTex)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

func uploadAtlas() uint32 {
	data := atlasPixels()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, atlasWidth, atlasHeight, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func buildProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("link failed: %s", string(log))
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return 0, fmt.Errorf("compile failed: %s", string(log))
	}
	return shader, nil
}

func orthoMatrix(left, right, bottom, top float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -1, 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), 0, 1,
	}
}
