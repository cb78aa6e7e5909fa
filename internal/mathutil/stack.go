package mathutil

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl32/matstack"
)

// ErrStackUnderflow is returned by Pop when only the base matrix is left.
var ErrStackUnderflow = errors.New("mathutil: pop on matrix stack with a single entry")

// MatrixStack is a save/restore stack of composed transforms.
// Composition operations post-multiply the top matrix, so the last
// operation applied is the first one seen by a vertex.
type MatrixStack struct {
	ms *matstack.MatStack
}

// NewMatrixStack returns a stack holding a single identity matrix.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{ms: matstack.NewMatStack()}
}

// Push duplicates the top matrix.
func (s *MatrixStack) Push() {
	s.ms.Push()
}

// Pop discards the top matrix, restoring the previous one.
func (s *MatrixStack) Pop() error {
	if len(*s.ms) <= 1 {
		return ErrStackUnderflow
	}
	return s.ms.Pop()
}

// Depth returns the number of matrices on the stack, base included.
func (s *MatrixStack) Depth() int {
	return len(*s.ms)
}

// Top returns the current matrix.
func (s *MatrixStack) Top() mgl32.Mat4 {
	return s.ms.Peek()
}

// Mult post-multiplies the top matrix by m.
func (s *MatrixStack) Mult(m mgl32.Mat4) {
	s.ms.RightMul(m)
}

// Translate composes a translation by v.
func (s *MatrixStack) Translate(v mgl32.Vec3) {
	s.Mult(mgl32.Translate3D(v[0], v[1], v[2]))
}

// Rotate composes a rotation of angle radians about axis.
// The axis is normalized; a zero axis leaves the top unchanged.
func (s *MatrixStack) Rotate(angle float32, axis mgl32.Vec3) {
	if axis.Len() == 0 {
		return
	}
	s.Mult(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

// Scale composes a per-axis scale by v.
func (s *MatrixStack) Scale(v mgl32.Vec3) {
	s.Mult(mgl32.Scale3D(v[0], v[1], v[2]))
}
