package lazyseq

import (
	"go.llib.dev/lazyseq/iterators"
	"go.llib.dev/lazyseq/pkg/pointer"
)

// Iter returns a fresh lazy traversal over the items the view selects.
// Every call starts again from the beginning of the view. Items pulled from
// the producer on the way are cached, so sibling views and later traversals
// never re-request them, and traversals sharing one origin may be advanced
// in alternation. A backward view drains the producer on the first Next,
// as its extent cannot be known otherwise.
//
// Closing the returned iterator stops that traversal only; the shared
// producer stays open for the other views.
func (s *Sequence[T]) Iter() iterators.Iterator[T] {
	return &viewIter[T]{seq: s}
}

// Release returns a terminal traversal that reads the already cached prefix
// first and then consumes the producer directly, without caching further
// items. It spends the shared producer/cache pair: after consuming the
// returned iterator, neither this view nor any view sharing its origin may
// be used again. It exists to allow final consumption without holding every
// remaining item in memory.
func (s *Sequence[T]) Release() iterators.Iterator[T] {
	return &viewIter[T]{seq: s, release: true}
}

type viewIter[T any] struct {
	seq     *Sequence[T]
	release bool

	started bool
	closed  bool
	err     error
	value   T

	// traversal state, resolved on the first Next
	backward bool
	pos      int
	stop     *int
	step     int
	size     int // total size, backward traversal only
	cursor   int // next absolute position to consume, release mode only
}

func (it *viewIter[T]) Close() error {
	it.closed = true
	return nil
}

func (it *viewIter[T]) Err() error {
	return it.err
}

func (it *viewIter[T]) Value() T {
	return it.value
}

func (it *viewIter[T]) Next() bool {
	if it.closed || it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		if !it.start() {
			return false
		}
	}
	if it.backward {
		return it.nextBackward()
	}
	return it.nextForward()
}

// start resolves the view descriptor into concrete traversal bounds.
// A backward descriptor requires the full extent, so it drains the
// producer and is transformed into a forward walk over the reversed cache.
func (it *viewIter[T]) start() bool {
	var (
		sl   = it.seq.slice
		size = it.seq.origin.total
	)
	if sl.step < 0 {
		n, err := size()
		if err != nil {
			it.err = err
			return false
		}
		reversed, err := sl.reverse(size)
		if err != nil {
			it.err = err
			return false
		}
		it.backward = true
		it.size = n
		it.pos = pointer.Deref(reversed.start)
		it.stop = reversed.stop
		it.step = reversed.step
		return true
	}
	p, err := sl.positive(size)
	if err != nil {
		it.err = err
		return false
	}
	it.pos = pointer.Deref(p.start)
	it.stop = p.stop
	it.step = p.step
	return true
}

func (it *viewIter[T]) nextForward() bool {
	if it.stop != nil && *it.stop <= it.pos {
		return false
	}
	v, ok, err := it.fetch(it.pos)
	if err != nil {
		it.err = err
		return false
	}
	if !ok {
		return false
	}
	it.value = v
	it.pos += it.step
	return true
}

func (it *viewIter[T]) nextBackward() bool {
	if it.size <= it.pos {
		return false
	}
	if it.stop != nil && *it.stop <= it.pos {
		return false
	}
	v, err := it.seq.origin.cache.At(it.size - 1 - it.pos)
	if err != nil {
		it.err = err
		return false
	}
	it.value = v
	it.pos += it.step
	return true
}

// fetch reads the item at the given absolute position, consuming forward
// from the producer as needed. In normal mode every consumed item goes
// through the cache; in release mode items beyond the cached prefix are
// taken from the producer directly and are gone once consumed.
func (it *viewIter[T]) fetch(pos int) (T, bool, error) {
	if !it.release {
		return it.seq.origin.at(pos)
	}
	var zero T
	o := it.seq.origin
	for {
		var v T
		if it.cursor < o.cache.Len() {
			cached, err := o.cache.At(it.cursor)
			if err != nil {
				return zero, false, err
			}
			v = cached
		} else {
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
			v = o.producer.Value()
		}
		it.cursor++
		if pos < it.cursor {
			return v, true, nil
		}
	}
}
