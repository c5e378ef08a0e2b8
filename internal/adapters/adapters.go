package adapters

import (
	"context"
	"time"

	"tcmbrates/internal/domain"
)

// RateFetcher downloads the raw daily rates document from the bank.
type RateFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// RateTableCache stores a rate table under a key with a lifetime.
type RateTableCache interface {
	Contains(ctx context.Context, key string) bool
	Fetch(ctx context.Context, key string) (domain.RateTable, error)
	Save(ctx context.Context, key string, table domain.RateTable, ttl time.Duration) error
}

// SnapshotRepository persists fetched tables so a restart can warm up without the network.
type SnapshotRepository interface {
	Save(ctx context.Context, table domain.RateTable) error
	Latest(ctx context.Context) (domain.RateTable, error)
}
