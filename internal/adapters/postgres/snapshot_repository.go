package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tcmbrates/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository keeps one row per publication date in rate_snapshots.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

func (r *SnapshotRepository) Save(ctx context.Context, table domain.RateTable) error {
	if len(table.Entries) == 0 {
		return fmt.Errorf("refusing to persist empty rate table %q", table.PublicationDate)
	}

	entriesJSON, err := json.Marshal(table.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal rate entries: %w", err)
	}

	const q = `
		insert into rate_snapshots (publication_date, expires_at, entries, fetched_at)
		values ($1, $2, $3::jsonb, now())
		on conflict (publication_date) do update
		set expires_at = excluded.expires_at,
		    entries    = excluded.entries,
		    fetched_at = now();
	`

	if _, err = r.pool.Exec(ctx, q, table.PublicationDate, table.ExpiresAt, json.RawMessage(entriesJSON)); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", table.PublicationDate, err)
	}
	return nil
}

// Latest returns the most recently fetched snapshot, or domain.ErrSnapshotNotFound.
func (r *SnapshotRepository) Latest(ctx context.Context) (domain.RateTable, error) {
	const q = `
		select publication_date, expires_at, entries
		from rate_snapshots
		order by fetched_at desc
		limit 1;
	`

	var (
		table       domain.RateTable
		expiresAt   time.Time
		entriesJSON []byte
	)
	if err := r.pool.QueryRow(ctx, q).Scan(&table.PublicationDate, &expiresAt, &entriesJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RateTable{}, domain.ErrSnapshotNotFound
		}
		return domain.RateTable{}, fmt.Errorf("failed to select latest snapshot: %w", err)
	}

	if err := json.Unmarshal(entriesJSON, &table.Entries); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode entries of snapshot %q: %w", table.PublicationDate, err)
	}
	table.ExpiresAt = expiresAt
	return table, nil
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}
