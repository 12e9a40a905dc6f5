package lazyseq

import (
	"github.com/eapache/queue"

	"go.llib.dev/lazyseq/pkg/errorkit"
)

// Storage is the port of the cache container that retains every item pulled
// from the producer. Implementations must keep items in append order and
// provide O(1) amortized Append and O(1) random read by position.
type Storage[T any] interface {
	// Append adds the item after the last appended item.
	Append(v T) error
	// At returns the item at the given position, where position 0 is the
	// first item ever appended. The position must be in [0, Len).
	At(index int) (T, error)
	// Len returns the number of items appended so far.
	Len() int
}

const errStorageIndex errorkit.Error = "lazyseq: storage position out of range"

// MemoryStorage returns the default in-memory Storage,
// an append-optimized ring buffer.
func MemoryStorage[T any]() Storage[T] {
	return &memoryStorage[T]{buffer: queue.New()}
}

type memoryStorage[T any] struct {
	buffer *queue.Queue
}

func (s *memoryStorage[T]) Append(v T) error {
	s.buffer.Add(v)
	return nil
}

func (s *memoryStorage[T]) At(index int) (T, error) {
	if index < 0 || s.buffer.Length() <= index {
		var zero T
		return zero, errStorageIndex.F("%d", index)
	}
	return s.buffer.Get(index).(T), nil
}

func (s *memoryStorage[T]) Len() int {
	return s.buffer.Length()
}
