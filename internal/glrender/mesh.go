package glrender

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"robot-viewer/internal/figure"
	"robot-viewer/internal/obj"
)

// Mesh is an obj.Mesh uploaded to GPU buffers. It implements figure.Mesh.
type Mesh struct {
	vao    uint32
	posBuf uint32
	norBuf uint32
	eleBuf uint32
	count  int32
}

// NewMesh uploads m. Context must be current.
func NewMesh(m *obj.Mesh) *Mesh {
	var gm Mesh
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gm.posBuf = upload(gl.ARRAY_BUFFER, len(m.Pos)*4, m.Pos)
	gm.norBuf = upload(gl.ARRAY_BUFFER, len(m.Nor)*4, m.Nor)
	gm.eleBuf = upload(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, m.Indices)
	gm.count = int32(len(m.Indices))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	CheckError("mesh upload")
	return &gm
}

func upload(target uint32, size int, data any) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(target, buf)
	gl.BufferData(target, size, gl.Ptr(data), gl.STATIC_DRAW)
	return buf
}

// Draw binds the position and normal streams to the program's
// attributes and draws the indexed triangles.
func (m *Mesh) Draw(prog figure.Program) {
	p, ok := prog.(*Program)
	if !ok {
		slog.Error("glrender mesh drawn with foreign program")
		return
	}
	gl.BindVertexArray(m.vao)

	var enabled []uint32
	for _, s := range []struct {
		name string
		buf  uint32
	}{{AttribPosition, m.posBuf}, {AttribNormal, m.norBuf}} {
		loc := p.Attribute(s.name)
		if loc < 0 {
			continue
		}
		gl.EnableVertexAttribArray(uint32(loc))
		gl.BindBuffer(gl.ARRAY_BUFFER, s.buf)
		gl.VertexAttribPointerWithOffset(uint32(loc), 3, gl.FLOAT, false, 0, 0)
		enabled = append(enabled, uint32(loc))
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.eleBuf)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)

	for _, loc := range enabled {
		gl.DisableVertexAttribArray(loc)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers.
func (m *Mesh) Delete() {
	bufs := []uint32{m.posBuf, m.norBuf, m.eleBuf}
	gl.DeleteBuffers(int32(len(bufs)), &bufs[0])
	gl.DeleteVertexArrays(1, &m.vao)
}
