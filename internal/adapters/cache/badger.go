package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tcmbrates/internal/domain"

	"github.com/dgraph-io/badger/v3"
	"github.com/sirupsen/logrus"
)

// BadgerTableCache keeps rate tables on local disk so they survive a restart.
type BadgerTableCache struct {
	db *badger.DB
}

// OpenBadgerTableCache opens (or creates) a store in dir. An empty dir keeps it in memory.
func OpenBadgerTableCache(dir string) (*BadgerTableCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &BadgerTableCache{db: db}, nil
}

func (c *BadgerTableCache) Contains(_ context.Context, key string) bool {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		logrus.WithError(err).WithField("key", key).Warn("Badger lookup failed")
	}
	return err == nil
}

func (c *BadgerTableCache) Fetch(_ context.Context, key string) (domain.RateTable, error) {
	var table domain.RateTable
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &table)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.RateTable{}, domain.ErrCacheMiss
	}
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to read %q from badger: %w", key, err)
	}
	return table, nil
}

func (c *BadgerTableCache) Save(_ context.Context, key string, table domain.RateTable, ttl time.Duration) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode rate table: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("failed to store %q in badger: %w", key, err)
	}
	return nil
}

func (c *BadgerTableCache) Close() error { return c.db.Close() }
