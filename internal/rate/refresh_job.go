package rate

import (
	"context"
	"errors"
	"fmt"

	"tcmbrates/internal/adapters"
	"tcmbrates/internal/domain"

	"github.com/sirupsen/logrus"
)

// SnapshotProvider is the part of Service the background jobs rely on.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (domain.RateTable, error)
	SetSnapshot(candidate domain.RateTable) bool
}

// RefreshRates makes sure the provider holds a current table and persists it.
// The provider only goes to the bank when its table has expired, so running this often is cheap.
func RefreshRates(ctx context.Context, execID string, provider SnapshotProvider, repo adapters.SnapshotRepository) error {
	table, err := provider.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh rates: %w", err)
	}

	if repo == nil {
		logrus.Debugf("Rates are current (%s), no snapshot store configured; execID: %s", table.PublicationDate, execID)
		return nil
	}

	if err = repo.Save(ctx, table); err != nil {
		return fmt.Errorf("failed to persist snapshot for %s: %w", table.PublicationDate, err)
	}

	logrus.Infof("Snapshot for %s persisted, expires at %s; execID: %s", table.PublicationDate, table.ExpiresAt, execID)
	return nil
}

// WarmStart offers the latest persisted snapshot to the provider. It reports whether the
// snapshot was still current and got adopted.
func WarmStart(ctx context.Context, provider SnapshotProvider, repo adapters.SnapshotRepository) (bool, error) {
	table, err := repo.Latest(ctx)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load latest snapshot: %w", err)
	}
	return provider.SetSnapshot(table), nil
}
