// Package viewer drives an articulated figure: it owns the selection
// cursor, maps input characters to pose edits and renders frames.
package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"robot-viewer/internal/figure"
	"robot-viewer/internal/mathutil"
)

// Direction moves the cursor along the selection order.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Options holds the fixed interaction and camera parameters.
type Options struct {
	Step      float32    // radians per rotate keystroke
	Highlight float32    // scale bump of the selected segment
	FOV       float32    // vertical field of view, radians
	Near      float32    // near clip distance
	Far       float32    // far clip distance
	Camera    mgl32.Vec3 // camera placement applied before the root
}

// DefaultOptions returns the stock viewer parameters.
func DefaultOptions() Options {
	return Options{
		Step:      0.1,
		Highlight: 0.2,
		FOV:       float32(mathutil.Deg2Rad(45)),
		Near:      0.01,
		Far:       100,
		Camera:    mgl32.Vec3{0, 4, -15},
	}
}

// Target is the surface a frame is rendered into.
type Target interface {
	// Viewport returns the drawable size in pixels and makes it current.
	Viewport() (width, height int)
	// Clear clears color and depth.
	Clear()
}

// Viewer owns the figure and the selection cursor.
type Viewer struct {
	fig    *figure.Figure
	cursor figure.Node
	opts   Options
}

// New validates fig and its selection order, places the cursor on the
// root and highlights it.
func New(fig *figure.Figure, opts Options) (*Viewer, error) {
	if fig.Len() == 0 {
		return nil, fmt.Errorf("viewer: empty figure")
	}
	if err := fig.Validate(); err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	if err := fig.ValidateOrder(); err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	v := &Viewer{fig: fig, cursor: fig.Root(), opts: opts}
	fig.AdjustScale(v.cursor, opts.Highlight)
	return v, nil
}

// Figure returns the driven figure.
func (v *Viewer) Figure() *figure.Figure { return v.fig }

// Cursor returns the selected segment.
func (v *Viewer) Cursor() figure.Node { return v.cursor }

// Options returns the viewer parameters.
func (v *Viewer) Options() Options { return v.opts }

// Advance moves the selection one step in dir, handing the highlight
// over to the new selection. At either end of the order it does
// nothing. It reports whether the cursor moved.
func (v *Viewer) Advance(dir Direction) bool {
	to := v.fig.Next(v.cursor)
	if dir == Backward {
		to = v.fig.Prev(v.cursor)
	}
	if to == figure.Nil {
		return false
	}
	v.fig.AdjustScale(v.cursor, -v.opts.Highlight)
	v.cursor = to
	v.fig.AdjustScale(v.cursor, v.opts.Highlight)
	return true
}

// Rotate turns the selected segment one step about axis.
// A negative sign turns it the other way.
func (v *Viewer) Rotate(axis figure.Axis, sign int) {
	d := v.opts.Step
	if sign < 0 {
		d = -d
	}
	v.fig.AdjustAngle(v.cursor, axis, d)
}

// HandleChar applies the action bound to r:
//
//	x X  rotate about X (+/-)
//	y Y  rotate about Y (+/-)
//	z Z  rotate about Z (+/-)
//	.    select next
//	,    select previous
//
// Other characters are ignored. It reports whether r was bound.
func (v *Viewer) HandleChar(r rune) bool {
	switch r {
	case 'x':
		v.Rotate(figure.X, 1)
	case 'X':
		v.Rotate(figure.X, -1)
	case 'y':
		v.Rotate(figure.Y, 1)
	case 'Y':
		v.Rotate(figure.Y, -1)
	case 'z':
		v.Rotate(figure.Z, 1)
	case 'Z':
		v.Rotate(figure.Z, -1)
	case '.':
		v.Advance(Forward)
	case ',':
		v.Advance(Backward)
	default:
		return false
	}
	return true
}

// RenderFrame clears target and draws the whole figure with fresh
// projection and model-view stacks.
func (v *Viewer) RenderFrame(target Target, prog figure.Program, mesh figure.Mesh) error {
	width, height := target.Viewport()
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	target.Clear()

	p := mathutil.NewMatrixStack()
	mv := mathutil.NewMatrixStack()

	p.Push()
	p.Mult(mgl32.Perspective(v.opts.FOV, aspect, v.opts.Near, v.opts.Far))
	mv.Push()
	mv.Translate(v.opts.Camera)

	if err := v.fig.Draw(v.fig.Root(), mv, p, prog, mesh); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}

	if err := mv.Pop(); err != nil {
		return fmt.Errorf("viewer: model-view: %w", err)
	}
	if err := p.Pop(); err != nil {
		return fmt.Errorf("viewer: projection: %w", err)
	}
	return nil
}
