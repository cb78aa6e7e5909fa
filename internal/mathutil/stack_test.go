package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixStack(t *testing.T) {
	s := NewMatrixStack()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, mgl32.Ident4(), s.Top())
	assert.ErrorIs(t, s.Pop(), ErrStackUnderflow)

	s.Translate(mgl32.Vec3{0, 4, -15})
	s.Push()
	assert.Equal(t, 2, s.Depth())
	s.Rotate(math.Pi/2, AxisZ)
	s.Scale(mgl32.Vec3{2, 2, 2})

	// Last composed operation acts first on a point.
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, s.Top())
	assert.True(t, ApproxEqual(mgl32.Vec3{0, 6, -15}, p, 1e-5), "%v", p)

	require.NoError(t, s.Pop())
	assert.Equal(t, mgl32.Translate3D(0, 4, -15), s.Top())
	assert.Equal(t, 1, s.Depth())
}

func TestRotateNormalizesAxis(t *testing.T) {
	a := NewMatrixStack()
	a.Rotate(0.3, mgl32.Vec3{3, 0, 0})
	b := NewMatrixStack()
	b.Rotate(0.3, AxisX)
	assert.True(t, ApproxEqualMat(a.Top(), b.Top(), 1e-6))

	c := NewMatrixStack()
	c.Rotate(1, mgl32.Vec3{})
	assert.Equal(t, mgl32.Ident4(), c.Top())
}

func TestRotateXYZ(t *testing.T) {
	s := NewMatrixStack()
	s.Rotate(0.1, AxisX)
	s.Rotate(0.2, AxisY)
	s.Rotate(0.3, AxisZ)
	assert.True(t, ApproxEqualMat(RotateXYZ(0.1, 0.2, 0.3), s.Top(), 1e-6))
	assert.InDelta(t, math.Pi/4, Deg2Rad(45), 1e-12)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, Origin(mgl32.Translate3D(1, 2, 3)))
}
