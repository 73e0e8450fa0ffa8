// Package bolt persists the pair to contract address table in a bbolt database.
package bolt

import (
	"context"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketPairs = []byte("pairs")

// PairStore is a bbolt backed domain.PairStore.
type PairStore struct {
	db *bolt.DB
}

// NewPairStore opens (or creates) the database at path.
func NewPairStore(path string, options *bolt.Options) (*PairStore, error) {
	if options == nil {
		options = &bolt.Options{Timeout: time.Second}
	} else if options.Timeout == 0 {
		options.Timeout = time.Second
	}

	db, err := bolt.Open(path, 0o600, options)
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPairs)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PairStore{db: db}, nil
}

// Save replaces the persisted table with pairs.
func (s *PairStore) Save(ctx context.Context, pairs map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPairs); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		bucket, err := tx.CreateBucket(bucketPairs)
		if err != nil {
			return err
		}
		for pairKey, address := range pairs {
			if err := bucket.Put([]byte(pairKey), []byte(address)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the persisted table. An empty database yields an empty map.
func (s *PairStore) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairs := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketPairs)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			pairs[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// Close releases the underlying database handle.
func (s *PairStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
