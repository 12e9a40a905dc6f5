// Package contracts defines the behavioral contracts of the lazyseq ports.
package contracts

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/lazyseq"
)

// Storage verifies that a lazyseq.Storage implementation behaves as an
// ordered, append-only container with random reads by position.
type Storage[T any] struct {
	// Subject returns the storage instance under test.
	Subject func(tb testing.TB) lazyseq.Storage[T]
	// MakeValue returns a new element fixture.
	MakeValue func(tb testing.TB) T
}

func (c Storage[T]) Test(t *testing.T) {
	c.Spec(testcase.NewSpec(t))
}

func (c Storage[T]) Spec(s *testcase.Spec) {
	subject := testcase.Let(s, func(t *testcase.T) lazyseq.Storage[T] {
		return c.Subject(t)
	})

	s.Test(`a fresh storage is empty`, func(t *testcase.T) {
		assert.Must(t).Equal(0, subject.Get(t).Len())
	})

	s.Test(`appended values are readable by position in append order`, func(t *testcase.T) {
		var (
			storage = subject.Get(t)
			values  []T
		)
		for i, n := 0, t.Random.IntB(3, 7); i < n; i++ {
			v := c.MakeValue(t)
			values = append(values, v)
			assert.Must(t).Nil(storage.Append(v))
		}
		assert.Must(t).Equal(len(values), storage.Len())
		for i, expected := range values {
			got, err := storage.At(i)
			assert.Must(t).Nil(err)
			assert.Must(t).Equal(expected, got)
		}
	})

	s.Test(`reading does not consume the stored values`, func(t *testcase.T) {
		storage := subject.Get(t)
		v := c.MakeValue(t)
		assert.Must(t).Nil(storage.Append(v))
		for i := 0; i < 3; i++ {
			got, err := storage.At(0)
			assert.Must(t).Nil(err)
			assert.Must(t).Equal(v, got)
		}
		assert.Must(t).Equal(1, storage.Len())
	})

	s.Test(`reading an out of range position fails`, func(t *testcase.T) {
		storage := subject.Get(t)
		_, err := storage.At(0)
		assert.Must(t).NotNil(err)
		assert.Must(t).Nil(storage.Append(c.MakeValue(t)))
		_, err = storage.At(1)
		assert.Must(t).NotNil(err)
		_, err = storage.At(-1)
		assert.Must(t).NotNil(err)
	})
}
