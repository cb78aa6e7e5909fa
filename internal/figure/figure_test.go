package figure

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robot-viewer/internal/mathutil"
)

var one = mgl32.Vec3{1, 1, 1}

// chain builds root -> a -> b with unit joint offsets along X.
func chain(t *testing.T) (*Figure, Node, Node, Node) {
	t.Helper()
	f := New()
	r, err := f.Add("r", one, mgl32.Vec3{}, mgl32.Vec3{}, Nil)
	require.NoError(t, err)
	a, err := f.Add("a", one, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, r)
	require.NoError(t, err)
	b, err := f.Add("b", one, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, a)
	require.NoError(t, err)
	require.NoError(t, f.Link([]Node{r, a, b}))
	return f, r, a, b
}

func TestAdd(t *testing.T) {
	f := New()
	assert.Equal(t, Nil, f.Root())

	r, err := f.Add("torso", one, mgl32.Vec3{0, -2.5, 0}, mgl32.Vec3{}, Nil)
	require.NoError(t, err)
	h, err := f.Add("head", one, mgl32.Vec3{0, 1.5, 0}, mgl32.Vec3{0, 0.5, 0}, r)
	require.NoError(t, err)
	l, err := f.Add("leg", one, mgl32.Vec3{0, -1.3, 0}, mgl32.Vec3{}, r)
	require.NoError(t, err)

	assert.Equal(t, r, f.Root())
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []Node{h, l}, f.Children(r))
	assert.Equal(t, r, f.Parent(h))
	assert.Equal(t, Nil, f.Parent(r))
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, f.MeshOffset(h))
	assert.Equal(t, mgl32.Vec3{0, 1.5, 0}, f.JointOffset(h))
	assert.Equal(t, Nil, f.Next(h))
	assert.Equal(t, Nil, f.Prev(h))
	assert.NoError(t, f.Validate())

	n, ok := f.Lookup("leg")
	assert.True(t, ok)
	assert.Equal(t, l, n)
	_, ok = f.Lookup("tail")
	assert.False(t, ok)

	_, err = f.Add("second root", one, mgl32.Vec3{}, mgl32.Vec3{}, Nil)
	assert.ErrorIs(t, err, ErrRootExists)
	_, err = f.Add("orphan", one, mgl32.Vec3{}, mgl32.Vec3{}, Node(42))
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestZeroFigure(t *testing.T) {
	var f Figure
	assert.Equal(t, Nil, f.Root())
	r, err := f.Add("r", one, mgl32.Vec3{}, mgl32.Vec3{}, Nil)
	require.NoError(t, err)
	assert.Equal(t, r, f.Root())
}

func TestAdjust(t *testing.T) {
	f, r, a, b := chain(t)

	f.AdjustAngle(a, X, 0.1)
	f.AdjustAngle(a, X, 0.1)
	f.AdjustAngle(a, Z, -0.5)
	assert.InDelta(t, 0.2, f.Angle(a, X), 1e-6)
	assert.Zero(t, f.Angle(a, Y))
	assert.InDelta(t, -0.5, f.Angle(a, Z), 1e-6)
	// Children keep their own state.
	assert.Zero(t, f.Angle(b, X))
	assert.Zero(t, f.Angle(r, Z))

	f.AdjustScale(b, 0.2)
	assert.True(t, mathutil.ApproxEqual(f.Scale(b), mgl32.Vec3{1.2, 1.2, 1.2}, 1e-6))
	f.AdjustScale(b, -0.2)
	assert.InDelta(t, 1, f.Scale(b)[0], 1e-6)

	assert.Panics(t, func() { f.AdjustAngle(a, Axis(3), 1) })
	assert.Panics(t, func() { f.AdjustScale(Node(9), 1) })
}

func TestSetNext(t *testing.T) {
	f, r, a, b := chain(t)
	assert.Equal(t, []Node{r, a, b}, f.Order())
	assert.Equal(t, a, f.Next(r))
	assert.Equal(t, r, f.Prev(a))
	assert.Equal(t, Nil, f.Prev(r))
	assert.Equal(t, Nil, f.Next(b))

	// Relinking keeps both directions consistent.
	f.SetNext(r, b)
	assert.Equal(t, r, f.Prev(b))
	assert.Equal(t, Nil, f.Next(a))
	assert.Equal(t, Nil, f.Prev(a))
	assert.ErrorIs(t, f.ValidateOrder(), ErrBadOrder)

	f.SetNext(b, a)
	assert.NoError(t, f.ValidateOrder())
	assert.Equal(t, []Node{r, b, a}, f.Order())

	f.SetNext(a, Nil)
	assert.NoError(t, f.ValidateOrder())
}

func TestValidateOrder(t *testing.T) {
	f, r, a, b := chain(t)
	assert.NoError(t, f.ValidateOrder())

	// Missing node.
	assert.ErrorIs(t, f.Link([]Node{r, a}), ErrBadOrder)
	// Duplicate node.
	assert.Error(t, f.Link([]Node{r, a, b, a}))
	// Unknown node.
	assert.ErrorIs(t, f.Link([]Node{r, a, b, Node(7)}), ErrInvalidNode)
	// Cycle.
	require.NoError(t, f.Link([]Node{r, a, b}))
	f.SetNext(b, r)
	assert.ErrorIs(t, f.ValidateOrder(), ErrBadOrder)
}

func TestRelease(t *testing.T) {
	f := New()
	r, _ := f.Add("r", one, mgl32.Vec3{}, mgl32.Vec3{}, Nil)
	a, _ := f.Add("a", one, mgl32.Vec3{}, mgl32.Vec3{}, r)
	a1, _ := f.Add("a1", one, mgl32.Vec3{}, mgl32.Vec3{}, a)
	a2, _ := f.Add("a2", one, mgl32.Vec3{}, mgl32.Vec3{}, a1)
	b, _ := f.Add("b", one, mgl32.Vec3{}, mgl32.Vec3{}, r)
	require.NoError(t, f.Link([]Node{r, a, a1, b, a2}))

	assert.Equal(t, 3, f.Release(a))
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []Node{b}, f.Children(r))
	assert.False(t, f.Valid(a))
	assert.False(t, f.Valid(a2))
	assert.NoError(t, f.Validate())
	assert.NoError(t, f.ValidateOrder())
	assert.Equal(t, []Node{r, b}, f.Order())

	// Released indices are reused.
	c, err := f.Add("c", one, mgl32.Vec3{}, mgl32.Vec3{}, b)
	require.NoError(t, err)
	assert.Contains(t, []Node{a, a1, a2}, c)
	assert.Equal(t, Nil, f.Next(c))
	assert.Empty(t, f.Children(c))

	assert.Equal(t, 3, f.Release(r))
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, Nil, f.Root())
	assert.NoError(t, f.Validate())
}

func TestReleaseDeep(t *testing.T) {
	f := New()
	n, _ := f.Add("0", one, mgl32.Vec3{}, mgl32.Vec3{}, Nil)
	root := n
	for i := 0; i < 100000; i++ {
		n, _ = f.Add("", one, mgl32.Vec3{}, mgl32.Vec3{}, n)
	}
	assert.Equal(t, 100001, f.Release(root))
}
