package iterators_test

import (
	"fmt"
	"testing"

	"go.llib.dev/lazyseq/iterators"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"
)

var rnd = random.New(random.CryptoSeed{})

func TestSlice(t *testing.T) {
	t.Run("elements are returned in order", func(t *testing.T) {
		exp := []int{42, 4, 2}
		vs, err := iterators.Collect(iterators.Slice(exp))
		assert.Must(t).Nil(err)
		assert.Must(t).Equal(exp, vs)
	})

	t.Run("closing stops the iteration", func(t *testing.T) {
		iter := iterators.Slice([]string{"a", "b", "c"})
		assert.Must(t).True(iter.Next())
		assert.Must(t).Nil(iter.Close())
		assert.Must(t).False(iter.Next())
	})

	t.Run("value is repeatable without side effects", func(t *testing.T) {
		iter := iterators.Slice([]int{7, 9})
		assert.Must(t).True(iter.Next())
		assert.Must(t).Equal(7, iter.Value())
		assert.Must(t).Equal(7, iter.Value())
	})
}

func TestEmpty(t *testing.T) {
	iter := iterators.Empty[int]()
	assert.Must(t).False(iter.Next())
	assert.Must(t).Nil(iter.Err())
	assert.Must(t).Nil(iter.Close())
}

func TestError(t *testing.T) {
	expErr := fmt.Errorf("boom")
	iter := iterators.Error[int](expErr)
	assert.Must(t).False(iter.Next())
	assert.Must(t).Equal(expErr, iter.Err())
	assert.Must(t).Nil(iter.Close())
}

func TestFunc(t *testing.T) {
	t.Run("yields values until ok is false", func(t *testing.T) {
		var index int
		values := []string{"foo", "bar", "baz"}
		iter := iterators.Func[string](func() (string, bool, error) {
			if len(values) <= index {
				return "", false, nil
			}
			v := values[index]
			index++
			return v, true, nil
		})
		vs, err := iterators.Collect(iter)
		assert.Must(t).Nil(err)
		assert.Must(t).Equal(values, vs)
	})

	t.Run("error stops the iteration and surfaces in Err", func(t *testing.T) {
		expErr := fmt.Errorf("boom")
		iter := iterators.Func[int](func() (int, bool, error) {
			return 0, false, expErr
		})
		assert.Must(t).False(iter.Next())
		assert.Must(t).Equal(expErr, iter.Err())
	})

	t.Run("OnClose callback runs on Close", func(t *testing.T) {
		var closed bool
		iter := iterators.Func[int](func() (int, bool, error) {
			return 0, false, nil
		}, iterators.OnClose(func() error {
			closed = true
			return nil
		}))
		assert.Must(t).Nil(iter.Close())
		assert.Must(t).True(closed)
	})
}

func TestLimit(t *testing.T) {
	t.Run("caps the iteration at n elements", func(t *testing.T) {
		iter := iterators.Limit(iterators.Slice([]int{1, 2, 3, 4, 5}), 3)
		vs, err := iterators.Collect(iter)
		assert.Must(t).Nil(err)
		assert.Must(t).Equal([]int{1, 2, 3}, vs)
	})

	t.Run("works with a source shorter than the limit", func(t *testing.T) {
		iter := iterators.Limit(iterators.Slice([]int{1, 2}), 10)
		vs, err := iterators.Collect(iter)
		assert.Must(t).Nil(err)
		assert.Must(t).Equal([]int{1, 2}, vs)
	})

	t.Run("an endless source is consumed only up to the limit", func(t *testing.T) {
		var pulls int
		endless := iterators.Func[int](func() (int, bool, error) {
			pulls++
			return pulls, true, nil
		})
		vs, err := iterators.Collect(iterators.Limit(endless, 5))
		assert.Must(t).Nil(err)
		assert.Must(t).Equal([]int{1, 2, 3, 4, 5}, vs)
		assert.Must(t).Equal(5, pulls)
	})
}

func TestCollect(t *testing.T) {
	t.Run("empty iterator yields an empty non-nil slice", func(t *testing.T) {
		vs, err := iterators.Collect(iterators.Empty[int]())
		assert.Must(t).Nil(err)
		assert.Must(t).NotNil(vs)
		assert.Must(t).Equal(0, len(vs))
	})

	t.Run("iterator error is returned", func(t *testing.T) {
		expErr := fmt.Errorf("boom")
		_, err := iterators.Collect(iterators.Error[int](expErr))
		assert.Must(t).Equal(expErr, err)
	})

	t.Run("close error is returned when iteration succeeds", func(t *testing.T) {
		expErr := fmt.Errorf("boom on close")
		stub := iterators.Stub(iterators.Slice([]int{1}))
		stub.StubClose = func() error { return expErr }
		_, err := iterators.Collect[int](stub)
		assert.Must(t).Equal(expErr, err)
	})
}

func TestCount(t *testing.T) {
	n := rnd.IntB(1, 42)
	vs := make([]int, n)
	total, err := iterators.Count(iterators.Slice(vs))
	assert.Must(t).Nil(err)
	assert.Must(t).Equal(n, total)
}

func TestFirst(t *testing.T) {
	t.Run("returns the first element", func(t *testing.T) {
		v, found, err := iterators.First(iterators.Slice([]int{42, 24}))
		assert.Must(t).Nil(err)
		assert.Must(t).True(found)
		assert.Must(t).Equal(42, v)
	})

	t.Run("reports not found on an empty iterator", func(t *testing.T) {
		_, found, err := iterators.First(iterators.Empty[int]())
		assert.Must(t).Nil(err)
		assert.Must(t).False(found)
	})
}

func TestStub(t *testing.T) {
	t.Run("delegates to the wrapped iterator by default", func(t *testing.T) {
		stub := iterators.Stub(iterators.Slice([]int{1, 2}))
		vs, err := iterators.Collect[int](stub)
		assert.Must(t).Nil(err)
		assert.Must(t).Equal([]int{1, 2}, vs)
	})

	t.Run("stubbed behavior can be reset", func(t *testing.T) {
		stub := iterators.Stub(iterators.Slice([]int{1}))
		stub.StubErr = func() error { return fmt.Errorf("boom") }
		assert.Must(t).NotNil(stub.Err())
		stub.ResetErr()
		assert.Must(t).Nil(stub.Err())
	})
}
