// Package iocache keeps results of common name lookups in a Badger v4
// key-value store, so names are looked up at most once across runs.
// The store lives at ~/.cache/gntree/vernacular.
package iocache

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/gntree/pkg/vernacular"
)

// Cache is a durable vernacular.Store. Every Set is written through to
// disk before it returns.
type Cache struct {
	dir string
	db  *badger.DB
	enc gnfmt.Encoder
}

// Open opens the cache at dir, creating the directory if needed.
func Open(dir string) (*Cache, error) {
	err := gnsys.MakeDir(dir)
	if err != nil {
		return nil, OpenError(dir, err)
	}

	opts := badger.DefaultOptions(dir).
		WithSyncWrites(true).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{})
	return open(dir, opts)
}

// OpenInMemory opens a cache that is lost on Close.
func OpenInMemory() (*Cache, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	return open("", opts)
}

func open(dir string, opts badger.Options) (*Cache, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, OpenError(dir, err)
	}
	slog.Debug("Vernacular cache opened", "dir", dir)
	return &Cache{dir: dir, db: db, enc: gnfmt.GNgob{}}, nil
}

// Get returns the stored entry for a key. The boolean is false if the key
// was never stored.
func (c *Cache) Get(key string) (vernacular.Entry, bool, error) {
	var res vernacular.Entry
	if c.db == nil {
		return res, false, NotOpenError()
	}

	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return res, false, ReadError(key, err)
	}
	if val == nil {
		return res, false, nil
	}

	err = c.enc.Decode(val, &res)
	if err != nil {
		return res, false, ReadError(key, err)
	}
	return res, true, nil
}

// Set stores an entry for the key, overwriting the previous one.
func (c *Cache) Set(key string, e vernacular.Entry) error {
	if c.db == nil {
		return NotOpenError()
	}

	val, err := c.enc.Encode(e)
	if err != nil {
		return WriteError(key, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
	if err != nil {
		return WriteError(key, err)
	}
	return nil
}

// Len returns the number of cached names.
func (c *Cache) Len() (int, error) {
	if c.db == nil {
		return 0, NotOpenError()
	}

	var res int
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			res++
		}
		return nil
	})
	if err != nil {
		return 0, ReadError("*", err)
	}
	return res, nil
}

// Close flushes and closes the store. Closing a closed cache is a no-op.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err != nil {
		return fmt.Errorf("cannot close cache %s: %w", c.dir, err)
	}
	return nil
}

// badgerLogger sends Badger warnings and errors to slog.
type badgerLogger struct{}

func (l *badgerLogger) Errorf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(string, ...any) {}

func (l *badgerLogger) Debugf(string, ...any) {}
