// Package storages provides cache storage adapters for lazyseq sequences.
package storages

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"

	"github.com/boltdb/bolt"

	"go.llib.dev/lazyseq/pkg/errorkit"
)

const errBoltIndex errorkit.Error = "storages: position out of range"

var bucketName = []byte(`cache`)

// NewBolt opens a boltdb backed storage at the given file path, for caching
// sequences too large to hold in memory. Values are gob encoded, so the
// element type must be gob encodable. The file starts out empty on every
// open; it is a cache container, not a persistence layer, and the caller
// owns the file. Close releases the file lock.
func NewBolt[T any](path string) (*Bolt[T], error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) != nil {
			if err := tx.DeleteBucket(bucketName); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bolt[T]{db: db}, nil
}

// Bolt is a disk-backed lazyseq storage over a boltdb file.
type Bolt[T any] struct {
	db     *bolt.DB
	length int
}

func (s *Bolt[T]) Append(v T) error {
	value, err := s.encode(v)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(s.keyOf(s.length), value)
	})
	if err != nil {
		return err
	}
	s.length++
	return nil
}

func (s *Bolt[T]) At(index int) (T, error) {
	var v T
	if index < 0 || s.length <= index {
		return v, errBoltIndex.F("%d", index)
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		return s.decode(tx.Bucket(bucketName).Get(s.keyOf(index)), &v)
	})
	return v, err
}

func (s *Bolt[T]) Len() int {
	return s.length
}

// Close closes the underlying database and releases the file lock.
func (s *Bolt[T]) Close() error {
	return s.db.Close()
}

func (s *Bolt[T]) keyOf(index int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(index))
	return key
}

func (s *Bolt[T]) encode(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Bolt[T]) decode(data []byte, ptr *T) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(ptr)
}
