// Package figure implements an articulated figure: a tree of rigid
// segments joined by rotational joints, plus a flat selection order
// over the same segments.
//
// Segments live in an arena and are addressed by Node indices, so the
// tree (parent/children) and the selection order (next/prev) are two
// independent relations over the same storage.
package figure

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"robot-viewer/internal/mathutil"
)

// Node identifies a segment in a Figure.
type Node int

// Nil represents an absent Node.
const Nil Node = -1

// Axis selects one of the three joint rotation axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Unit returns the fixed unit vector a rotates about.
func (a Axis) Unit() mgl32.Vec3 {
	switch a {
	case Y:
		return mathutil.AxisY
	case Z:
		return mathutil.AxisZ
	}
	return mathutil.AxisX
}

var (
	ErrInvalidNode = errors.New("figure: invalid node")
	ErrRootExists  = errors.New("figure: figure already has a root")
	ErrBadTree     = errors.New("figure: inconsistent tree")
	ErrBadOrder    = errors.New("figure: inconsistent selection order")
)

type segment struct {
	live     bool
	name     string
	parent   Node
	children []Node
	next     Node
	prev     Node

	jointOffset mgl32.Vec3
	meshOffset  mgl32.Vec3
	scale       mgl32.Vec3
	angle       [3]float32
}

// Figure is an arena of segments.
// The zero value is an empty figure ready for use.
type Figure struct {
	segs []segment
	free []Node
	root Node
	live int
}

// New creates an empty figure.
func New() *Figure {
	return &Figure{root: Nil}
}

// Add creates a segment and returns its handle.
// parent must be Nil for the root or an existing segment; since the
// parent has to exist before its child, cycles cannot be built.
// The segment is appended to the parent's children, which is the order
// children are drawn in. The new segment is not linked into the
// selection order.
func (f *Figure) Add(name string, scale, jointOffset, meshOffset mgl32.Vec3, parent Node) (Node, error) {
	if f.segs == nil {
		f.root = Nil
	}
	if parent == Nil {
		if f.root != Nil {
			return Nil, ErrRootExists
		}
	} else if !f.valid(parent) {
		return Nil, fmt.Errorf("%w: parent %d", ErrInvalidNode, parent)
	}

	s := segment{
		live:        true,
		name:        name,
		parent:      parent,
		next:        Nil,
		prev:        Nil,
		jointOffset: jointOffset,
		meshOffset:  meshOffset,
		scale:       scale,
	}
	var n Node
	if k := len(f.free); k > 0 {
		n = f.free[k-1]
		f.free = f.free[:k-1]
		f.segs[n] = s
	} else {
		n = Node(len(f.segs))
		f.segs = append(f.segs, s)
	}
	if parent == Nil {
		f.root = n
	} else {
		f.segs[parent].children = append(f.segs[parent].children, n)
	}
	f.live++
	return n, nil
}

func (f *Figure) valid(n Node) bool {
	return n >= 0 && int(n) < len(f.segs) && f.segs[n].live
}

// at returns the segment n refers to.
// It panics if n is not a live segment: callers own the handle's validity.
func (f *Figure) at(n Node) *segment {
	if !f.valid(n) {
		panic(fmt.Sprintf("figure: invalid node %d", n))
	}
	return &f.segs[n]
}

// Root returns the root segment, or Nil for an empty figure.
func (f *Figure) Root() Node {
	if f.segs == nil {
		return Nil
	}
	return f.root
}

// Len returns the number of live segments.
func (f *Figure) Len() int { return f.live }

// Valid reports whether n refers to a live segment.
func (f *Figure) Valid(n Node) bool { return f.valid(n) }

// Name returns the debug name of n.
func (f *Figure) Name(n Node) string { return f.at(n).name }

// Lookup returns the first live segment named name.
func (f *Figure) Lookup(name string) (Node, bool) {
	for i := range f.segs {
		if f.segs[i].live && f.segs[i].name == name {
			return Node(i), true
		}
	}
	return Nil, false
}

// Parent returns the parent of n, or Nil for the root.
func (f *Figure) Parent(n Node) Node { return f.at(n).parent }

// Children returns the children of n in draw order.
// The returned slice must not be modified.
func (f *Figure) Children(n Node) []Node { return f.at(n).children }

// JointOffset returns the translation from the parent's joint to n's joint.
func (f *Figure) JointOffset(n Node) mgl32.Vec3 { return f.at(n).jointOffset }

// MeshOffset returns the translation from n's joint to its mesh origin.
func (f *Figure) MeshOffset(n Node) mgl32.Vec3 { return f.at(n).meshOffset }

// Scale returns the per-axis mesh scale of n.
func (f *Figure) Scale(n Node) mgl32.Vec3 { return f.at(n).scale }

// Angle returns the accumulated rotation of n about axis, in radians.
func (f *Figure) Angle(n Node, axis Axis) float32 {
	return f.at(n).angle[axis.index()]
}

func (a Axis) index() int {
	if a < X || a > Z {
		panic(fmt.Sprintf("figure: invalid axis %d", int(a)))
	}
	return int(a)
}

// AdjustAngle adds delta radians to n's rotation about axis.
// Descendants are not touched; they follow through composition at draw time.
func (f *Figure) AdjustAngle(n Node, axis Axis, delta float32) {
	f.at(n).angle[axis.index()] += delta
}

// AdjustScale adds delta to every component of n's scale.
func (f *Figure) AdjustScale(n Node, delta float32) {
	s := f.at(n)
	s.scale = s.scale.Add(mathutil.Splat(delta))
}

// Release destroys n and its whole subtree.
// n is detached from its parent and every released segment is spliced
// out of the selection order. It returns the number of released
// segments. Released handles become invalid and may be reused by Add.
func (f *Figure) Release(n Node) int {
	s := f.at(n)
	if p := s.parent; p != Nil {
		ps := &f.segs[p]
		for i, c := range ps.children {
			if c == n {
				ps.children = append(ps.children[:i:i], ps.children[i+1:]...)
				break
			}
		}
	} else {
		f.root = Nil
	}

	count := 0
	work := []Node{n}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		cs := &f.segs[cur]
		work = append(work, cs.children...)
		f.unlink(cur)
		f.segs[cur] = segment{next: Nil, prev: Nil, parent: Nil}
		f.free = append(f.free, cur)
		count++
	}
	f.live -= count
	return count
}

// Validate checks the tree relation: a single root, every other live
// segment has a live parent that lists it exactly once, and every
// listed child points back at its parent.
func (f *Figure) Validate() error {
	if f.live == 0 {
		return nil
	}
	if !f.valid(f.root) || f.segs[f.root].parent != Nil {
		return fmt.Errorf("%w: missing root", ErrBadTree)
	}
	for i := range f.segs {
		s := &f.segs[i]
		if !s.live {
			continue
		}
		n := Node(i)
		for _, c := range s.children {
			if !f.valid(c) || f.segs[c].parent != n {
				return fmt.Errorf("%w: child %d of %d does not point back", ErrBadTree, c, n)
			}
		}
		if n == f.root {
			continue
		}
		if !f.valid(s.parent) {
			return fmt.Errorf("%w: %d has no parent", ErrBadTree, n)
		}
		seen := 0
		for _, c := range f.segs[s.parent].children {
			if c == n {
				seen++
			}
		}
		if seen != 1 {
			return fmt.Errorf("%w: %d listed %d times by its parent", ErrBadTree, n, seen)
		}
	}
	// Every live segment must be reachable from the root.
	reached := 0
	work := []Node{f.root}
	for len(work) > 0 && reached <= f.live {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		reached++
		work = append(work, f.segs[cur].children...)
	}
	if reached != f.live {
		return fmt.Errorf("%w: %d of %d segments reachable from root", ErrBadTree, reached, f.live)
	}
	return nil
}
