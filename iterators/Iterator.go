// Package iterators provides the one-pass producer port of the lazyseq module,
// along with iterator implementations and helpers to consume them.
//
// An Iterator decouples the origin of the data from the consumer who uses it.
// It represents an iterable list of elements whose length is not known until
// it is fully iterated, thus it can range from zero to infinity.
package iterators

import "io"

// Iterator defines a separate object that encapsulates accessing and traversing an aggregate object.
// Clients use an iterator to access and traverse an aggregate without knowing its representation.
// Interface design inspirited by https://golang.org/pkg/encoding/json/#Decoder
// https://en.wikipedia.org/wiki/Iterator_pattern
type Iterator[V any] interface {
	// Closer is required to make it able to cancel iterators where resources are being used behind the scene.
	// For all other cases where the underlying io is handled on a higher level, it should simply return nil.
	io.Closer
	// Err returns the error cause.
	Err() error
	// Next will ensure that Value returns the next item when executed.
	// If the next value is not retrievable, Next should return false
	// and ensure Err() will return the error cause.
	Next() bool
	// Value returns the current value in the iterator.
	// The action should be repeatable without side effects.
	Value() V
}
