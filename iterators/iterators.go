package iterators

import (
	"go.llib.dev/lazyseq/pkg/errorkit"
)

// Slice returns an iterator that traverses the values of the given slice.
func Slice[T any](vs []T) Iterator[T] {
	return &sliceIter[T]{Slice: vs}
}

type sliceIter[T any] struct {
	Slice []T

	closed bool
	index  int
	value  T
}

func (i *sliceIter[T]) Close() error {
	i.closed = true
	return nil
}

func (i *sliceIter[T]) Err() error {
	return nil
}

func (i *sliceIter[T]) Next() bool {
	if i.closed {
		return false
	}
	if len(i.Slice) <= i.index {
		return false
	}
	i.value = i.Slice[i.index]
	i.index++
	return true
}

func (i *sliceIter[T]) Value() T {
	return i.value
}

// Empty returns an iterator without any element.
// It helps to achieve the Null Object Pattern when an iterator must be returned,
// but no value is logically expected.
func Empty[T any]() Iterator[T] {
	return emptyIter[T]{}
}

type emptyIter[T any] struct{}

func (emptyIter[T]) Close() error { return nil }
func (emptyIter[T]) Err() error   { return nil }
func (emptyIter[T]) Next() bool   { return false }
func (emptyIter[T]) Value() T {
	var v T
	return v
}

// Error returns an iterator that has no elements and reports the given error.
// It can be used when a resource encounters an unrecoverable error while constructing its iterator.
func Error[T any](err error) Iterator[T] {
	return &errorIter[T]{err: err}
}

type errorIter[T any] struct{ err error }

func (i *errorIter[T]) Close() error { return nil }
func (i *errorIter[T]) Err() error   { return i.err }
func (i *errorIter[T]) Next() bool   { return false }
func (i *errorIter[T]) Value() T {
	var v T
	return v
}

// Func makes an iterator out of a lambda expression.
// The next function reports the upcoming value, whether iteration may continue,
// and an eventual error that stops the iteration.
func Func[T any](next func() (v T, ok bool, err error), cbs ...CallbackOption) Iterator[T] {
	var iter Iterator[T] = &funcIter[T]{NextFn: next}
	return WithCallback(iter, cbs...)
}

type funcIter[T any] struct {
	NextFn func() (v T, ok bool, err error)

	value T
	err   error
}

func (i *funcIter[T]) Close() error { return nil }

func (i *funcIter[T]) Err() error { return i.err }

func (i *funcIter[T]) Next() bool {
	if i.err != nil {
		return false
	}
	value, ok, err := i.NextFn()
	if err != nil {
		i.err = err
		return false
	}
	if !ok {
		return false
	}
	i.value = value
	return true
}

func (i *funcIter[T]) Value() T { return i.value }

// Limit caps the iteration at n elements.
func Limit[V any](iter Iterator[V], n int) Iterator[V] {
	return &limitIter[V]{Iterator: iter, Limit: n}
}

type limitIter[V any] struct {
	Iterator[V]
	Limit int
	index int
}

func (li *limitIter[V]) Next() bool {
	if !(li.index < li.Limit) {
		return false
	}
	if !li.Iterator.Next() {
		return false
	}
	li.index++
	return true
}

// WithCallback wraps the iterator and runs the registered callbacks on the corresponding events.
func WithCallback[T any](i Iterator[T], cbs ...CallbackOption) Iterator[T] {
	if len(cbs) == 0 {
		return i
	}
	var c callbackConfig
	for _, opt := range cbs {
		opt.configure(&c)
	}
	return &callbackIter[T]{Iterator: i, config: c}
}

// OnClose registers a callback that runs when the iterator is closed.
func OnClose(fn func() error) CallbackOption {
	return callbackFunc(func(c *callbackConfig) {
		c.OnClose = append(c.OnClose, fn)
	})
}

type CallbackOption interface {
	configure(c *callbackConfig)
}

type callbackConfig struct {
	OnClose []func() error
}

type callbackFunc func(c *callbackConfig)

func (fn callbackFunc) configure(c *callbackConfig) { fn(c) }

type callbackIter[T any] struct {
	Iterator[T]
	config callbackConfig
}

func (i *callbackIter[T]) Close() error {
	errs := []error{i.Iterator.Close()}
	for _, onClose := range i.config.OnClose {
		errs = append(errs, onClose())
	}
	return errorkit.Merge(errs...)
}

// Collect gathers the remaining elements of the iterator into a slice, then closes it.
func Collect[T any](i Iterator[T]) (vs []T, err error) {
	defer func() {
		closeErr := i.Close()
		if err == nil {
			err = closeErr
		}
	}()
	vs = make([]T, 0)
	for i.Next() {
		vs = append(vs, i.Value())
	}
	return vs, i.Err()
}

// Count iterates over the elements and returns the total number of iterations, then closes the iterator.
//
// Good when all you want is to count the elements, but you don't want to do anything else with them.
func Count[T any](i Iterator[T]) (total int, err error) {
	defer func() {
		closeErr := i.Close()
		if err == nil {
			err = closeErr
		}
	}()
	for i.Next() {
		total++
	}
	return total, i.Err()
}

// First returns the first element of the iterator and closes it.
func First[T any](i Iterator[T]) (value T, found bool, err error) {
	defer func() {
		closeErr := i.Close()
		if err == nil {
			err = closeErr
		}
	}()
	if !i.Next() {
		return value, false, i.Err()
	}
	return i.Value(), true, i.Err()
}
