package lazyseq

import (
	"go.llib.dev/lazyseq/pkg/pointer"
)

// slicing is the immutable (start, stop, step) descriptor of a Sequence view.
// Bounds are always expressed against the producer's natural order,
// where position 0 is the first item ever pulled.
// A nil bound means the slice is open in that direction,
// and a negative bound is relative to the end of the sequence,
// kept as is until the total size is known.
type slicing struct {
	start *int
	stop  *int
	step  int
}

// sizeFunc reports the total number of items the underlying producer yields.
// Calling it drains the producer, so the descriptor arithmetic invokes it
// only when an operation genuinely needs the full extent.
type sizeFunc func() (int, error)

func identitySlicing() slicing {
	return slicing{step: 1}
}

func (s slicing) hasNegativeBounds() bool {
	return (s.start != nil && *s.start < 0) ||
		(s.stop != nil && *s.stop < 0)
}

func (s slicing) positiveStart(size sizeFunc) (*int, error) {
	if s.start == nil || 0 <= *s.start {
		return s.start, nil
	}
	n, err := size()
	if err != nil {
		return nil, err
	}
	return pointer.Of(max(0, *s.start+n)), nil
}

func (s slicing) positiveStop(size sizeFunc) (*int, error) {
	if s.stop == nil || 0 <= *s.stop {
		return s.stop, nil
	}
	n, err := size()
	if err != nil {
		return nil, err
	}
	if stop := *s.stop + n; 0 <= stop {
		return pointer.Of(stop), nil
	}
	if 0 < s.step {
		return pointer.Of(0), nil
	}
	// An underflowing stop on a backward slice must not exclude position 0,
	// so it becomes an open bound that runs past the beginning.
	return nil, nil
}

func (s slicing) positive(size sizeFunc) (slicing, error) {
	start, err := s.positiveStart(size)
	if err != nil {
		return slicing{}, err
	}
	stop, err := s.positiveStop(size)
	if err != nil {
		return slicing{}, err
	}
	return slicing{start: start, stop: stop, step: s.step}, nil
}

// length returns the number of items the descriptor selects.
func (s slicing) length(size sizeFunc) (int, error) {
	origin := s
	if s.step < 0 {
		var err error
		origin, err = s.reverse(size)
		if err != nil {
			return 0, err
		}
	}
	p, err := origin.positive(size)
	if err != nil {
		return 0, err
	}
	n, err := size()
	if err != nil {
		return 0, err
	}
	if p.stop != nil {
		n = min(n, *p.stop)
	}
	if p.start != nil {
		n = max(0, n-*p.start)
	}
	if 0 < n {
		// equivalent to ceil(n / step), without floating-point math
		n = 1 + (n-1)/abs(p.step)
	}
	return n, nil
}

// reverse returns the forward descriptor that, applied to a reversed copy of
// the same elements, selects the same items as this backward descriptor.
func (s slicing) reverse(size sizeFunc) (slicing, error) {
	p, err := s.positive(size)
	if err != nil {
		return slicing{}, err
	}
	n, err := size()
	if err != nil {
		return slicing{}, err
	}
	step := -p.step
	start := n - 1
	if p.start != nil {
		start = *p.start
	}
	start = max(0, (n-1)-start)
	stop := n
	if p.stop != nil {
		stop = (n - 1) - *p.stop
	}
	stop = max(0, stop)
	return slicing{start: pointer.Of(start), stop: pointer.Of(stop), step: step}, nil
}

// resolve maps a logical index within the slice
// to an absolute position in the producer's order.
// An index outside the slice bounds yields ErrIndexOutOfRange.
func (s slicing) resolve(index int, size sizeFunc) (int, error) {
	pos, within, err := s.locate(index, size)
	if err != nil {
		return 0, err
	}
	if !within {
		return 0, ErrIndexOutOfRange
	}
	return pos, nil
}

// locate maps a logical index within the slice to an absolute position in the
// producer's order. within is false when the index falls past the declared
// bounds of the slice; an index past the producer's exhaustion point cannot be
// detected here and resolves to a position nothing will ever occupy.
func (s slicing) locate(index int, size sizeFunc) (int, bool, error) {
	if 0 < s.step {
		return s.locateForward(index, size)
	}
	return s.locateBackward(index, size)
}

// locateForward handles a forward slice, where start <= stop and step > 0.
func (s slicing) locateForward(index int, size sizeFunc) (int, bool, error) {
	p, err := s.positive(size)
	if err != nil {
		return 0, false, err
	}
	pos := pointer.Deref(p.start) + index*p.step
	if p.stop != nil && *p.stop <= pos {
		return 0, false, nil
	}
	return pos, true, nil
}

// locateBackward handles a backward slice, where start >= stop and step < 0.
func (s slicing) locateBackward(index int, size sizeFunc) (int, bool, error) {
	n, err := size()
	if err != nil {
		return 0, false, err
	}
	p, err := s.positive(size)
	if err != nil {
		return 0, false, err
	}
	start := n - 1
	if p.start != nil {
		start = *p.start
	}
	start = min(start, n-1)
	pos := start + index*p.step
	if pos < 0 || (p.stop != nil && pos <= *p.stop) {
		return 0, false, nil
	}
	return pos, true, nil
}

// pastEnd returns the absolute position one slot beyond the view's declared
// range, in the walk direction of the view.
func (s slicing) pastEnd(size sizeFunc) (*int, error) {
	stop, err := s.positiveStop(size)
	if err != nil {
		return nil, err
	}
	if stop != nil {
		return stop, nil
	}
	// a backward view with an open stop ends right before position 0
	return pointer.Of(-1), nil
}

// resolveSlice composes a child slice, requested against this view's logical
// order, into the single descriptor equivalent to applying both in sequence
// against the producer's order. The child bounds must be non-negative or nil,
// and the bounds of a backward child must name valid slots of this view.
func (s slicing) resolveSlice(child slicing, size sizeFunc) (slicing, error) {
	start, err := s.resolveChildStart(child.start, child.step, size)
	if err != nil {
		return slicing{}, err
	}
	stop, err := s.resolveChildStop(child.stop, child.step, size)
	if err != nil {
		return slicing{}, err
	}
	step := child.step * s.step
	if start != nil && *start < 0 {
		// The derived start fell past the beginning, meaning the child
		// selects nothing. Canonicalize the descriptor, so the negative
		// start is not reinterpreted as end-relative later.
		return slicing{start: pointer.Of(0), stop: pointer.Of(0), step: step}, nil
	}
	return slicing{start: start, stop: stop, step: step}, nil
}

func (s slicing) resolveChildStart(start *int, childStep int, size sizeFunc) (*int, error) {
	if start != nil {
		pos, within, err := s.locate(*start, size)
		if err != nil {
			return nil, err
		}
		if within {
			return pointer.Of(pos), nil
		}
		// A child starting past the view's declared end selects nothing:
		// its start resolves to the exclusive edge of the view.
		return s.pastEnd(size)
	}
	if 0 < childStep {
		return s.positiveStart(size)
	}
	// A backward child with an open start begins on the view's last slot.
	n, err := s.length(size)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// No slot to begin on. The negative position makes resolveSlice
		// canonicalize the composed descriptor into an empty one.
		return pointer.Of(-1), nil
	}
	pos, _, err := s.locate(n-1, size)
	if err != nil {
		return nil, err
	}
	return pointer.Of(pos), nil
}

func (s slicing) resolveChildStop(stop *int, childStep int, size sizeFunc) (*int, error) {
	if stop != nil {
		pos, within, err := s.locate(*stop, size)
		if err != nil {
			return nil, err
		}
		if within {
			return pointer.Of(pos), nil
		}
		// A child stopping past the view's declared end takes the whole
		// rest of the view, same as an open stop.
		return s.positiveStop(size)
	}
	if 0 < childStep {
		return s.positiveStop(size)
	}
	start, err := s.positiveStart(size)
	if err != nil || start == nil {
		return nil, err
	}
	if s.step < 0 {
		return pointer.Of(*start + 1), nil
	}
	if *start == 0 {
		// The derived bound would land below position 0. The composed slice
		// runs backwards here, and on a backward slice only an open stop
		// includes position 0, so the bound must stay open.
		return nil, nil
	}
	return pointer.Of(*start - 1), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
