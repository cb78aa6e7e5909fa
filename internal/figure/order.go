package figure

import "fmt"

// Next returns the segment after n in the selection order, or Nil.
func (f *Figure) Next(n Node) Node { return f.at(n).next }

// Prev returns the segment before n in the selection order, or Nil.
func (f *Figure) Prev(n Node) Node { return f.at(n).prev }

// SetNext makes next follow n in the selection order and keeps the
// back link consistent: afterwards Prev(next) == n. Links previously
// held by n or next on the affected sides are cleared. Passing Nil
// makes n the tail of its order.
func (f *Figure) SetNext(n, next Node) {
	s := f.at(n)
	if old := s.next; old != Nil {
		f.segs[old].prev = Nil
	}
	s.next = next
	if next == Nil {
		return
	}
	ns := f.at(next)
	if old := ns.prev; old != Nil && old != n {
		f.segs[old].next = Nil
	}
	ns.prev = n
}

// Link sets the selection order to exactly order and validates it.
// Every live segment must appear once.
func (f *Figure) Link(order []Node) error {
	for _, n := range order {
		if !f.valid(n) {
			return fmt.Errorf("%w: %d in order", ErrInvalidNode, n)
		}
	}
	for _, n := range order {
		s := &f.segs[n]
		s.next, s.prev = Nil, Nil
	}
	for i := 0; i+1 < len(order); i++ {
		f.SetNext(order[i], order[i+1])
	}
	return f.ValidateOrder()
}

// Order walks the selection order from its head.
func (f *Figure) Order() []Node {
	head := f.head()
	if head == Nil {
		return nil
	}
	var out []Node
	for n := head; n != Nil && len(out) <= f.live; n = f.segs[n].next {
		out = append(out, n)
	}
	return out
}

func (f *Figure) head() Node {
	for i := range f.segs {
		if f.segs[i].live && f.segs[i].prev == Nil {
			return Node(i)
		}
	}
	return Nil
}

// ValidateOrder checks the selection order: every live segment appears
// exactly once, links are mutual, and the order has exactly one head
// and one tail.
func (f *Figure) ValidateOrder() error {
	if f.live == 0 {
		return nil
	}
	heads, tails := 0, 0
	for i := range f.segs {
		s := &f.segs[i]
		if !s.live {
			continue
		}
		n := Node(i)
		if s.prev == Nil {
			heads++
		} else if !f.valid(s.prev) || f.segs[s.prev].next != n {
			return fmt.Errorf("%w: prev of %d does not link back", ErrBadOrder, n)
		}
		if s.next == Nil {
			tails++
		} else if !f.valid(s.next) || f.segs[s.next].prev != n {
			return fmt.Errorf("%w: next of %d does not link back", ErrBadOrder, n)
		}
	}
	if heads != 1 || tails != 1 {
		return fmt.Errorf("%w: %d heads and %d tails", ErrBadOrder, heads, tails)
	}
	if got := len(f.Order()); got != f.live {
		return fmt.Errorf("%w: order covers %d of %d segments", ErrBadOrder, got, f.live)
	}
	return nil
}

// unlink splices n out of the selection order.
func (f *Figure) unlink(n Node) {
	s := &f.segs[n]
	if s.prev != Nil {
		f.segs[s.prev].next = s.next
	}
	if s.next != Nil {
		f.segs[s.next].prev = s.prev
	}
	s.next, s.prev = Nil, Nil
}
