package rate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tcmbrates/internal/adapters"
	"tcmbrates/internal/domain"
	"tcmbrates/internal/metrics"

	"github.com/sirupsen/logrus"
)

// CacheKey is the only key the service reads and writes in the table cache.
const CacheKey = "tcmb:rates:today"

const (
	directionBuy  = "buy"
	directionSell = "sell"
)

// Service holds the current rate table and reloads it from the cache or the bank once it
// expires. It is safe for concurrent use.
type Service struct {
	fetcher adapters.RateFetcher
	cache   adapters.RateTableCache // optional
	metrics *metrics.Metrics        // optional
	loc     *time.Location
	now     func() time.Time

	mu    sync.RWMutex
	table *domain.RateTable

	loadMu sync.Mutex
}

// NewService creates a service with no table loaded. cache and m may be nil.
func NewService(fetcher adapters.RateFetcher, cache adapters.RateTableCache, loc *time.Location, m *metrics.Metrics) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		metrics: m,
		loc:     loc,
		now:     time.Now,
	}
}

// LookupBuy returns the buying rate of the given kind (ForexBuying or BanknoteBuying).
func (s *Service) LookupBuy(ctx context.Context, code string, kind domain.RateKind) (float64, error) {
	v, err := s.lookup(ctx, code, kind, domain.RateKind.IsBuy)
	s.recordLookup(directionBuy, err)
	return v, err
}

// LookupSell returns the selling rate of the given kind (ForexSelling or BanknoteSelling).
func (s *Service) LookupSell(ctx context.Context, code string, kind domain.RateKind) (float64, error) {
	v, err := s.lookup(ctx, code, kind, domain.RateKind.IsSell)
	s.recordLookup(directionSell, err)
	return v, err
}

// Snapshot returns a copy of the current table, loading it first if needed.
func (s *Service) Snapshot(ctx context.Context) (domain.RateTable, error) {
	table, err := s.ensureLoaded(ctx)
	if err != nil {
		return domain.RateTable{}, err
	}
	return table.Clone(), nil
}

// SetSnapshot replaces the current table with candidate if it has entries and has not
// expired yet. It reports whether the candidate was accepted.
func (s *Service) SetSnapshot(candidate domain.RateTable) bool {
	if !candidate.ValidAt(s.now()) {
		return false
	}
	s.publish(candidate.Clone())
	return true
}

func (s *Service) lookup(ctx context.Context, code string, kind domain.RateKind, allowed func(domain.RateKind) bool) (float64, error) {
	table, err := s.ensureLoaded(ctx)
	if err != nil {
		return 0, err
	}
	if !allowed(kind) {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownRateType, kind)
	}
	entry, ok := table.Entries[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCurrencyCode, code)
	}
	value, ok := entry.Rate(kind)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownRateType, kind)
	}
	return value, nil
}

// current returns the held table if it is still valid.
func (s *Service) current() (*domain.RateTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil || !s.table.ValidAt(s.now()) {
		return nil, false
	}
	return s.table, true
}

func (s *Service) publish(table domain.RateTable) *domain.RateTable {
	held := &table
	s.mu.Lock()
	s.table = held
	s.mu.Unlock()
	s.metrics.TableLoaded(table.ExpiresAt.Unix())
	return held
}

// ensureLoaded returns a valid table, going to the cache and then to the bank when the held
// one is missing or expired. Only one caller loads at a time, the others wait for its result.
func (s *Service) ensureLoaded(ctx context.Context) (*domain.RateTable, error) {
	if table, ok := s.current(); ok {
		return table, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if table, ok := s.current(); ok {
		return table, nil
	}

	if table, ok := s.fromCache(ctx); ok {
		logrus.WithFields(logrus.Fields{"publication_date": table.PublicationDate, "expires_at": table.ExpiresAt}).
			Debug("Rate table adopted from cache")
		return s.publish(table), nil
	}

	table, err := s.fetchAndBuild(ctx)
	if err != nil {
		return nil, err
	}
	held := s.publish(table)
	s.toCache(ctx, table)
	logrus.WithFields(logrus.Fields{
		"publication_date": table.PublicationDate,
		"expires_at":       table.ExpiresAt,
		"currencies":       len(table.Entries),
	}).Info("Rate table fetched from source")
	return held, nil
}

func (s *Service) fromCache(ctx context.Context) (domain.RateTable, bool) {
	if s.cache == nil {
		return domain.RateTable{}, false
	}
	if !s.cache.Contains(ctx, CacheKey) {
		s.metrics.CacheLookup(metrics.CacheMiss)
		return domain.RateTable{}, false
	}
	table, err := s.cache.Fetch(ctx, CacheKey)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.WithError(err).Warn("Failed to read rate table from cache")
		}
		s.metrics.CacheLookup(metrics.CacheMiss)
		return domain.RateTable{}, false
	}
	if !table.ValidAt(s.now()) {
		s.metrics.CacheLookup(metrics.CacheMiss)
		return domain.RateTable{}, false
	}
	s.metrics.CacheLookup(metrics.CacheHit)
	return table, true
}

func (s *Service) toCache(ctx context.Context, table domain.RateTable) {
	if s.cache == nil {
		return
	}
	ttl := cacheTTL(table.ExpiresAt, s.now())
	if err := s.cache.Save(ctx, CacheKey, table.Clone(), ttl); err != nil {
		logrus.WithError(err).WithField("ttl", ttl).Warn("Failed to write rate table to cache")
	}
}

func (s *Service) fetchAndBuild(ctx context.Context) (domain.RateTable, error) {
	body, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.metrics.SourceFetch(metrics.OutcomeError)
		return domain.RateTable{}, fmt.Errorf("%w: %w", domain.ErrConnectionFailed, err)
	}

	table, err := BuildFromXML(body)
	if err != nil {
		s.metrics.SourceFetch(metrics.OutcomeMalformed)
		return domain.RateTable{}, err
	}
	s.metrics.SourceFetch(metrics.OutcomeSuccess)

	now := s.now()
	table.ExpiresAt = ExpiresAt(table.PublicationDate, now, s.loc)
	if !table.ExpiresAt.After(now) {
		// Past today's cutoff with no new table yet: check back shortly.
		table.ExpiresAt = now.Add(MinCacheTTL)
	}
	if !table.ValidAt(now) {
		return domain.RateTable{}, fmt.Errorf("%w: empty rate table", domain.ErrMalformedSourceDocument)
	}
	return table, nil
}

func (s *Service) recordLookup(direction string, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.Lookup(direction, outcome)
}
