package figure

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"robot-viewer/internal/mathutil"
)

// Uniform names uploaded for every draw call.
const (
	UniformProjection = "P"
	UniformModelView  = "MV"
)

// Program is a shader program a segment is drawn with.
type Program interface {
	Bind()
	Unbind()
	SetMatrix(name string, m mgl32.Mat4)
}

// Mesh is the geometry drawn once per segment.
type Mesh interface {
	Draw(prog Program)
}

// Draw renders n and its subtree depth first.
//
// The joint transform (translate to joint, then rotate X, Y, Z) is kept
// for the children; the mesh transform (translate to mesh, scale) is
// pushed separately so it never reaches them. mv is left at the depth
// it had on entry.
func (f *Figure) Draw(n Node, mv, p *mathutil.MatrixStack, prog Program, mesh Mesh) error {
	s := f.at(n)
	depth := mv.Depth()

	mv.Push()
	mv.Translate(s.jointOffset)
	mv.Rotate(s.angle[X], X.Unit())
	mv.Rotate(s.angle[Y], Y.Unit())
	mv.Rotate(s.angle[Z], Z.Unit())

	mv.Push()
	mv.Translate(s.meshOffset)
	mv.Scale(s.scale)
	prog.Bind()
	prog.SetMatrix(UniformProjection, p.Top())
	prog.SetMatrix(UniformModelView, mv.Top())
	mesh.Draw(prog)
	prog.Unbind()
	if err := mv.Pop(); err != nil {
		return fmt.Errorf("figure: draw %q: %w", s.name, err)
	}

	for _, c := range s.children {
		if err := f.Draw(c, mv, p, prog, mesh); err != nil {
			return err
		}
	}

	if err := mv.Pop(); err != nil {
		return fmt.Errorf("figure: draw %q: %w", s.name, err)
	}
	if mv.Depth() != depth {
		return fmt.Errorf("figure: draw %q: stack depth %d, want %d", s.name, mv.Depth(), depth)
	}
	return nil
}

// LocalJoint returns the transform n's children inherit from n:
// T(jointOffset) × Rx × Ry × Rz.
func (f *Figure) LocalJoint(n Node) mgl32.Mat4 {
	s := f.at(n)
	t := s.jointOffset
	return mgl32.Translate3D(t[0], t[1], t[2]).Mul4(mathutil.RotateXYZ(s.angle[X], s.angle[Y], s.angle[Z]))
}

// LocalMesh returns the mesh-only part of n's transform: T(meshOffset) × S(scale).
func (f *Figure) LocalMesh(n Node) mgl32.Mat4 {
	s := f.at(n)
	m, k := s.meshOffset, s.scale
	return mgl32.Translate3D(m[0], m[1], m[2]).Mul4(mgl32.Scale3D(k[0], k[1], k[2]))
}

// World returns n's joint transform relative to the root's parent space.
func (f *Figure) World(n Node) mgl32.Mat4 {
	m := f.LocalJoint(n)
	for p := f.at(n).parent; p != Nil; p = f.segs[p].parent {
		m = f.LocalJoint(p).Mul4(m)
	}
	return m
}
