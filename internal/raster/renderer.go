// Package raster is a software stand-in for the GPU path: a Renderer is
// both the shader program and the render target of a frame, and Mesh
// draws an obj.Mesh through it with flat-shaded, z-buffered triangles.
package raster

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"robot-viewer/internal/figure"
	"robot-viewer/internal/obj"
)

// Renderer implements figure.Program and viewer.Target over a FrameBuffer.
type Renderer struct {
	FB     *FrameBuffer
	Shader Shader

	p, mv mgl32.Mat4
	bound bool
}

// NewRenderer returns a w x h renderer with the normal-color shader.
func NewRenderer(w, h int, bg color.NRGBA) *Renderer {
	fb := NewFrameBuffer(w, h)
	fb.Background = bg
	fb.Clear()
	return &Renderer{
		FB:     fb,
		Shader: NormalShader{},
		p:      mgl32.Ident4(),
		mv:     mgl32.Ident4(),
	}
}

func (r *Renderer) Viewport() (int, int) { return r.FB.Viewport() }
func (r *Renderer) Clear()               { r.FB.Clear() }

func (r *Renderer) Bind()   { r.bound = true }
func (r *Renderer) Unbind() { r.bound = false }

// SetMatrix sets the projection or model-view uniform. Other names are
// ignored, as an inactive uniform location would be.
func (r *Renderer) SetMatrix(name string, m mgl32.Mat4) {
	switch name {
	case figure.UniformProjection:
		r.p = m
	case figure.UniformModelView:
		r.mv = m
	}
}

// Mesh is an obj.Mesh drawn through a Renderer.
type Mesh struct {
	r   *Renderer
	src *obj.Mesh
}

// Mesh wraps src for drawing into r.
func (r *Renderer) Mesh(src *obj.Mesh) *Mesh { return &Mesh{r: r, src: src} }

// Draw rasterizes every triangle with the renderer's current matrices.
// Nothing is drawn unless the renderer is bound. Triangles reaching
// behind the eye are dropped rather than clipped.
func (m *Mesh) Draw(figure.Program) {
	r := m.r
	if !r.bound {
		return
	}
	mvp := r.p.Mul4(r.mv)
	nm := r.mv.Mat3().Inv().Transpose()
	w, h := float32(r.FB.Width), float32(r.FB.Height)

	src := m.src
	for t := 0; t+2 < len(src.Indices); t += 3 {
		var (
			scr    [3]mgl32.Vec3
			eye    [3]mgl32.Vec3
			normal mgl32.Vec3
			skip   bool
		)
		for k := 0; k < 3; k++ {
			i := int(src.Indices[t+k])
			pos := src.Position(i)
			clip := mvp.Mul4x1(pos.Vec4(1))
			if clip[3] <= 1e-6 {
				skip = true
				break
			}
			ndc := clip.Vec3().Mul(1 / clip[3])
			scr[k] = mgl32.Vec3{
				(ndc[0] + 1) * 0.5 * w,
				(1 - ndc[1]) * 0.5 * h,
				-ndc[2],
			}
			eye[k] = mgl32.TransformCoordinate(pos, r.mv)
			normal = normal.Add(nm.Mul3x1(src.Normal(i)))
		}
		if skip || outsideDepth(scr) {
			continue
		}
		if normal.Len() < 1e-8 {
			normal = eye[1].Sub(eye[0]).Cross(eye[2].Sub(eye[0]))
			if normal.Len() < 1e-8 {
				continue
			}
		}
		RasterizeTriangle(r.FB, scr, r.Shader.Shade(normal.Normalize()))
	}
}

// outsideDepth reports whether the whole triangle lies beyond one depth plane.
func outsideDepth(v [3]mgl32.Vec3) bool {
	beyondFar, beforeNear := true, true
	for _, p := range v {
		if p[2] >= -1 {
			beyondFar = false
		}
		if p[2] <= 1 {
			beforeNear = false
		}
	}
	return beyondFar || beforeNear
}
