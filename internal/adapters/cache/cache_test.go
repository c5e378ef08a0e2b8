package cache

import (
	"context"
	"testing"
	"time"

	"tcmbrates/internal/adapters"
	"tcmbrates/internal/domain"

	"github.com/stretchr/testify/require"
)

func sampleTable() domain.RateTable {
	return domain.RateTable{
		PublicationDate: "04.03.2024",
		Entries: map[string]domain.RateEntry{
			"USD": {Code: "USD", Name: "ABD DOLARI", ForexBuying: 31.4561, ForexSelling: 31.5128, BanknoteBuying: 31.4341, BanknoteSelling: 31.5601},
			"JPY": {Code: "JPY", Name: "JAPON YENİ", ForexBuying: 0.209188, ForexSelling: 0.210573},
		},
		ExpiresAt: time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC),
	}
}

// assertCacheContract runs the behaviour every table cache must share.
func assertCacheContract(t *testing.T, c adapters.RateTableCache) {
	t.Helper()
	ctx := context.Background()
	const key = "tcmb:rates:test"

	require.False(t, c.Contains(ctx, key))
	_, err := c.Fetch(ctx, key)
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	want := sampleTable()
	require.NoError(t, c.Save(ctx, key, want, time.Hour))

	require.True(t, c.Contains(ctx, key))
	got, err := c.Fetch(ctx, key)
	require.NoError(t, err)
	require.Equal(t, want.PublicationDate, got.PublicationDate)
	require.Equal(t, want.Entries, got.Entries)
	require.True(t, want.ExpiresAt.Equal(got.ExpiresAt))

	// overwriting replaces the stored table
	want.PublicationDate = "05.03.2024"
	require.NoError(t, c.Save(ctx, key, want, time.Hour))
	got, err = c.Fetch(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "05.03.2024", got.PublicationDate)
}

func TestRistrettoTableCache_Contract(t *testing.T) {
	c, err := NewRistrettoTableCache(16)
	require.NoError(t, err)
	defer c.Close()

	assertCacheContract(t, c)
}

func TestRistrettoTableCache_ReturnsCopies(t *testing.T) {
	c, err := NewRistrettoTableCache(16)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	table := sampleTable()
	require.NoError(t, c.Save(ctx, "k", table, time.Hour))
	delete(table.Entries, "USD")

	got, err := c.Fetch(ctx, "k")
	require.NoError(t, err)
	require.Contains(t, got.Entries, "USD")

	got.Entries["EUR"] = domain.RateEntry{}
	again, err := c.Fetch(ctx, "k")
	require.NoError(t, err)
	require.NotContains(t, again.Entries, "EUR")
}

func TestRistrettoTableCache_Expires(t *testing.T) {
	c, err := NewRistrettoTableCache(16)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "k", sampleTable(), 50*time.Millisecond))
	require.True(t, c.Contains(ctx, "k"))

	require.Eventually(t, func() bool { return !c.Contains(ctx, "k") }, 3*time.Second, 20*time.Millisecond)
}

func TestBadgerTableCache_Contract(t *testing.T) {
	c, err := OpenBadgerTableCache("")
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assertCacheContract(t, c)
}

func TestBadgerTableCache_PersistsOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	c, err := OpenBadgerTableCache(dir)
	require.NoError(t, err)
	require.NoError(t, c.Save(ctx, "k", sampleTable(), time.Hour))
	require.NoError(t, c.Close())

	reopened, err := OpenBadgerTableCache(dir)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Fetch(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "04.03.2024", got.PublicationDate)
}

func TestBadgerTableCache_Expires(t *testing.T) {
	c, err := OpenBadgerTableCache("")
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	// badger TTLs have second granularity
	require.NoError(t, c.Save(ctx, "k", sampleTable(), time.Second))
	require.Eventually(t, func() bool { return !c.Contains(ctx, "k") }, 5*time.Second, 100*time.Millisecond)
}
