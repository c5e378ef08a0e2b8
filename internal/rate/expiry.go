package rate

import (
	"time"

	"tcmbrates/internal/domain"
)

const (
	// MinCacheTTL is used whenever the computed lifetime is not positive.
	MinCacheTTL = 5 * time.Minute

	cutoffHour   = 15
	cutoffMinute = 30
)

// ExpiresAt returns the instant a table published on publicationDate stops being current.
// The bank replaces the table every business day at 15:30 local time: a table dated today
// lives until tomorrow's cutoff, an older one only until today's.
func ExpiresAt(publicationDate string, now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	cutoff := time.Date(local.Year(), local.Month(), local.Day(), cutoffHour, cutoffMinute, 0, 0, loc)
	if publicationDate == local.Format(domain.PublicationDateLayout) {
		return cutoff.AddDate(0, 0, 1)
	}
	return cutoff
}

// cacheTTL is the lifetime left until expiresAt, floored to MinCacheTTL.
func cacheTTL(expiresAt, now time.Time) time.Duration {
	if ttl := expiresAt.Sub(now); ttl > 0 {
		return ttl
	}
	return MinCacheTTL
}
