package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tcmbrates/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoTableCache keeps rate tables in process memory.
type RistrettoTableCache struct {
	cache *ristretto.Cache
}

func NewRistrettoTableCache(maxItems int64) (*RistrettoTableCache, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
		// cost counts tables, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate table cache failed: %w", err)
	}
	return &RistrettoTableCache{cache: c}, nil
}

func (c *RistrettoTableCache) Contains(_ context.Context, key string) bool {
	_, ok := c.cache.Get(key)
	return ok
}

func (c *RistrettoTableCache) Fetch(_ context.Context, key string) (domain.RateTable, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		return domain.RateTable{}, domain.ErrCacheMiss
	}
	table, ok := v.(domain.RateTable)
	if !ok {
		return domain.RateTable{}, fmt.Errorf("unexpected value of type %T under %q", v, key)
	}
	return table.Clone(), nil
}

func (c *RistrettoTableCache) Save(_ context.Context, key string, table domain.RateTable, ttl time.Duration) error {
	if !c.cache.SetWithTTL(key, table.Clone(), 1, ttl) {
		return errors.New("rate table rejected by cache")
	}
	// Sets are buffered; wait so the next read sees this one.
	c.cache.Wait()
	return nil
}

func (c *RistrettoTableCache) Close() { c.cache.Close() }
