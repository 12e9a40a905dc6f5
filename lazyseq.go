// Package lazyseq provides a lazily evaluated, re-sliceable sequence view
// over a one-pass producer.
//
// A Sequence gives random access, length, truthiness and slicing semantics,
// including negative indices and negative-step slices, over an iterator
// whose full extent is unknown and whose production may be expensive.
// Items are pulled from the producer only as far as a query requires, and
// every pulled item is cached exactly once, so any number of views derived
// from the same root never re-request an item. Re-slicing composes slice
// descriptors algebraically, so a slice of a slice stays a single flat
// view, never a chain of wrappers.
//
// Operations that need the total extent of the sequence, that is negative
// bounds, negative steps and length queries, drain the producer first.
// Callers streaming over very large or endless producers should keep to
// forward slices with non-negative bounds.
package lazyseq

import (
	"io"

	"go.llib.dev/lazyseq/iterators"
	"go.llib.dev/lazyseq/pkg/errorkit"
	"go.llib.dev/lazyseq/pkg/pointer"
)

// New wraps a one-pass producer into a Sequence with an empty cache.
// The producer is owned by the returned Sequence and every view sliced
// from it; it is consumed incrementally and never reset.
func New[T any](producer iterators.Iterator[T], opts ...Option[T]) *Sequence[T] {
	c := config[T]{storage: MemoryStorage[T]}
	for _, opt := range opts {
		opt.configure(&c)
	}
	return &Sequence[T]{
		origin: &origin[T]{producer: producer, cache: c.storage()},
		slice:  identitySlicing(),
	}
}

// Option configures the construction of a Sequence.
type Option[T any] interface {
	configure(c *config[T])
}

type config[T any] struct {
	storage func() Storage[T]
}

type optionFunc[T any] func(c *config[T])

func (fn optionFunc[T]) configure(c *config[T]) { fn(c) }

// WithStorage sets the factory that creates the cache container of the
// Sequence, to let the caller pick a container optimized for their access
// pattern, such as a disk-backed one for sequences too large for memory.
func WithStorage[T any](factory func() Storage[T]) Option[T] {
	return optionFunc[T](func(c *config[T]) { c.storage = factory })
}

// Sequence presents a subset of a shared producer/cache pair as a sequence.
//
// Sequence values are meant for cooperative single-threaded use; advancing
// multiple traversals of the same origin in alternation is supported, but
// concurrent use from multiple goroutines needs external synchronization.
type Sequence[T any] struct {
	origin *origin[T]
	slice  slicing
}

// Any reports whether the sequence selects at least one item.
// It pulls no more from the producer than the first item of a normal
// iteration needs.
func (s *Sequence[T]) Any() (bool, error) {
	iter := s.Iter()
	defer iter.Close()
	if iter.Next() {
		return true, nil
	}
	return false, iter.Err()
}

// Len returns the number of items the sequence selects.
// It drains the producer, since the extent cannot be known without it.
func (s *Sequence[T]) Len() (int, error) {
	return s.slice.length(s.origin.total)
}

// Get returns the item at the given logical index of the view.
// A negative index is relative to the end of the sequence, which forces a
// full drain; a non-negative index pulls only as far as the resolved
// position requires. Get fails with ErrIndexOutOfRange when the position
// falls outside the view bounds or the producer exhausts before it.
func (s *Sequence[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 {
		n, err := s.Len()
		if err != nil {
			return zero, err
		}
		index += n
		if index < 0 {
			return zero, ErrIndexOutOfRange
		}
	}
	pos, err := s.slice.resolve(index, s.origin.total)
	if err != nil {
		return zero, err
	}
	v, ok, err := s.origin.at(pos)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrIndexOutOfRange
	}
	return v, nil
}

// Slice returns a new view on the items the given slice selects out of this
// view. A nil bound leaves the slice open in that direction, negative
// bounds are relative to the end of the view, and a negative step walks the
// view backwards. The new view shares the producer and the cache of this
// one, and carries the single algebraically composed descriptor, so the
// cost of Slice does not grow with the number of prior slicing operations.
func (s *Sequence[T]) Slice(start, stop *int, step int) (*Sequence[T], error) {
	if step == 0 {
		return nil, ErrInvalidStep
	}
	child := slicing{start: start, stop: stop, step: step}
	// Bounds that are relative to the end of the view, and the bounds of a
	// backward slice, are normalized against the view length up front, so
	// the composed descriptor carries only forward-countable positions.
	// Forward slices with non-negative bounds skip this and stay lazy.
	if child.hasNegativeBounds() || (step < 0 && (start != nil || stop != nil)) {
		n, err := s.Len()
		if err != nil {
			return nil, err
		}
		if child.start != nil {
			v := *child.start
			if v < 0 {
				v += n
			}
			if n <= v && step < 0 {
				v = n - 1
			}
			if v < 0 {
				if 0 < step {
					v = 0
				} else {
					// the start falls before the first slot of the view
					return s.emptied(step), nil
				}
			}
			child.start = pointer.Of(v)
		}
		if child.stop != nil {
			v := *child.stop
			if v < 0 {
				v += n
				if v < 0 {
					if 0 < step {
						v = 0
					} else {
						// the stop runs past the beginning; only an open
						// bound includes the first slot on a backward slice
						child.stop = nil
					}
				}
			} else if n <= v && step < 0 {
				// a backward slice stopping at or past the last slot
				// excludes every slot
				return s.emptied(step), nil
			}
			if child.stop != nil {
				child.stop = pointer.Of(v)
			}
		}
	}
	composed, err := s.slice.resolveSlice(child, s.origin.total)
	if err != nil {
		return nil, err
	}
	return &Sequence[T]{origin: s.origin, slice: composed}, nil
}

// emptied returns a view over the same origin that selects nothing.
func (s *Sequence[T]) emptied(childStep int) *Sequence[T] {
	return &Sequence[T]{
		origin: s.origin,
		slice:  slicing{start: pointer.Of(0), stop: pointer.Of(0), step: childStep * s.slice.step},
	}
}

// Close closes the shared producer, along with the cache storage when it
// holds external resources. Sibling views share both, so closing one view
// shuts down its relatives as well.
func (s *Sequence[T]) Close() error {
	errs := []error{s.origin.producer.Close()}
	if closer, ok := s.origin.cache.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	return errorkit.Merge(errs...)
}

// origin is the shared producer and cache pair. Every Sequence derived from
// the same root holds the same origin, thus an item is pulled from the
// producer exactly once, no matter how many views read it.
type origin[T any] struct {
	producer iterators.Iterator[T]
	cache    Storage[T]
	done     bool
	err      error
}

// pull reads the next item from the producer and appends it to the cache
// before handing it out. The two make up a single step, so an item pulled
// on behalf of one view is never lost to its siblings.
func (o *origin[T]) pull() (T, bool, error) {
	var zero T
	if o.err != nil {
		return zero, false, o.err
	}
	if o.done {
		return zero, false, nil
	}
	if !o.producer.Next() {
		o.done = true
		o.err = o.producer.Err()
		return zero, false, o.err
	}
	v := o.producer.Value()
	if err := o.cache.Append(v); err != nil {
		o.err = err
		return zero, false, err
	}
	return v, true, nil
}

// at grows the cache up to the given absolute position and reads it.
// ok is false when the producer exhausts before the position is reached.
func (o *origin[T]) at(pos int) (T, bool, error) {
	for o.cache.Len() <= pos {
		if _, ok, err := o.pull(); err != nil || !ok {
			var zero T
			return zero, false, err
		}
	}
	v, err := o.cache.At(pos)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// fill drains the producer into the cache.
func (o *origin[T]) fill() error {
	for {
		_, ok, err := o.pull()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// total drains the producer and reports the full extent of the sequence.
func (o *origin[T]) total() (int, error) {
	if err := o.fill(); err != nil {
		return 0, err
	}
	return o.cache.Len(), nil
}
