package opengl

import "math"

// Vertex layout matches the OpenGL vertex attribute expectations:
// position, texture coordinate, packed RGBA color.
type Vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    uint32
}

// drawCmd is one batched draw call. The grid adapter uses exactly two
// batches per frame: untextured quads (cells, lines) and glyph quads.
type drawCmd struct {
	ElemCount    uint32
	Textured     bool
	VertexOffset uint32
	IndexOffset  uint32
}

// batch accumulates the frame's quads. It is cleared, not reallocated,
// between frames; a steady-state scroll produces zero allocations.
type batch struct {
	verts []Vertex
	idxs  []uint16
	cmds  []drawCmd

	textured  bool
	cmdVtxOff uint32
	cmdIdxOff uint32
}

func newBatch() *batch {
	return &batch{
		verts: make([]Vertex, 0, 4096),
		idxs:  make([]uint16, 0, 8192),
		cmds:  make([]drawCmd, 0, 4),
	}
}

func (b *batch) clear() {
	b.verts = b.verts[:0]
	b.idxs = b.idxs[:0]
	b.cmds = b.cmds[:0]
	b.textured = false
	b.cmdVtxOff = 0
	b.cmdIdxOff = 0
}

// setTextured switches batching mode, finalizing the pending command.
func (b *batch) setTextured(textured bool) {
	if len(b.cmds) > 0 && b.textured == textured {
		return
	}
	b.finalize()
	b.textured = textured
	b.cmds = append(b.cmds, drawCmd{
		Textured:     textured,
		VertexOffset: uint32(len(b.verts)),
		IndexOffset:  uint32(len(b.idxs)),
	})
	b.cmdVtxOff = uint32(len(b.verts))
	b.cmdIdxOff = uint32(len(b.idxs))
}

// finalize closes the open command by recording its element count.
func (b *batch) finalize() {
	if len(b.cmds) > 0 {
		last := &b.cmds[len(b.cmds)-1]
		last.ElemCount = uint32(len(b.idxs)) - b.cmdIdxOff
	}
}

func (b *batch) quad(v0, v1, v2, v3 Vertex) {
	start := uint16(len(b.verts) - int(b.cmdVtxOff))
	b.verts = append(b.verts, v0, v1, v2, v3)
	b.idxs = append(b.idxs, start, start+1, start+2, start, start+2, start+3)
}

// addRect appends a filled rectangle.
func (b *batch) addRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	b.setTextured(false)
	b.quad(
		Vertex{Pos: [2]float32{x, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, Color: color},
	)
}

// addLine appends a line segment rendered as a thin quad.
func (b *batch) addLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dx, dy := x2-x1, y2-y1
	inv := float32(1)
	if d := dx*dx + dy*dy; d > 0 {
		inv = 1 / float32(math.Sqrt(float64(d)))
	}
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	b.setTextured(false)
	b.quad(
		Vertex{Pos: [2]float32{x1 + nx, y1 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 + nx, y2 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 - nx, y2 - ny}, Color: color},
		Vertex{Pos: [2]float32{x1 - nx, y1 - ny}, Color: color},
	)
}

// addText appends glyph quads for s starting at (x, y), clipped on the
// right at maxX. Glyphs come from the built-in atlas; runes outside it
// fall back per glyphIndex.
func (b *batch) addText(x, y float32, s string, color uint32, scale, maxX float32) {
	if color&0xFF000000 == 0 || s == "" {
		return
	}
	cw := glyphWidth * scale
	ch := glyphHeight * scale

	b.setTextured(true)
	px := x
	for _, r := range s {
		if px+cw > maxX {
			break
		}
		u0, v0, u1, v1 := glyphUV(r)
		b.quad(
			Vertex{Pos: [2]float32{px, y}, TexCoord: [2]float32{u0, v0}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y}, TexCoord: [2]float32{u1, v0}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y + ch}, TexCoord: [2]float32{u1, v1}, Color: color},
			Vertex{Pos: [2]float32{px, y + ch}, TexCoord: [2]float32{u0, v1}, Color: color},
		)
		px += cw
	}
}
