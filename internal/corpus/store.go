package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

// Storage keys
const (
	fragmentPrefix = "frag/"
)

// entry is the stored value of one fragment.
type entry struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// ImportStats reports what an Import did.
type ImportStats struct {
	Seen      int
	Added     int
	Duplicate int
}

// Store wraps BadgerDB for persistent fragment storage.
// Fragments are keyed by a hash of their content, so importing the same
// file twice keeps a single copy.
type Store struct {
	db *badger.DB
}

// OpenStore opens (or creates) a store in dir. An empty dir selects the
// default data directory.
func OpenStore(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = GetDatabaseDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func fragmentKey(data []byte) []byte {
	return []byte(fragmentPrefix + strconv.FormatUint(xxhash.Sum64(data), 16))
}

// Put stores a fragment. It reports false when identical content is
// already stored.
func (s *Store) Put(name string, data []byte) (bool, error) {
	if !json.Valid(data) {
		return false, fmt.Errorf("%s: not valid JSON", name)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return false, err
	}
	value, err := json.Marshal(entry{Name: name, Data: compact.Bytes()})
	if err != nil {
		return false, err
	}

	key := fragmentKey(compact.Bytes())
	added := false
	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, value)
	})

	return added, err
}

// Import copies every fragment of src into the store.
func (s *Store) Import(ctx context.Context, src Source) (ImportStats, error) {
	var stats ImportStats
	err := src.Each(ctx, func(f Fragment) error {
		stats.Seen++
		added, err := s.Put(f.Name, f.Data)
		if err != nil {
			return err
		}
		if added {
			stats.Added++
		} else {
			stats.Duplicate++
			log.Debug().Str("fragment", f.Name).Msg("duplicate fragment skipped")
		}
		return nil
	})
	return stats, err
}

// Each iterates stored fragments in key order.
func (s *Store) Each(ctx context.Context, fn func(Fragment) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(fragmentPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var e entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			if err := fn(Fragment{Name: e.Name, Data: e.Data}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of stored fragments.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(fragmentPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
