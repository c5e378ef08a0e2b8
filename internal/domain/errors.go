package domain

import "errors"

var (
	ErrConnectionFailed        = errors.New("connection to rate source failed")
	ErrMalformedSourceDocument = errors.New("malformed source document")
	ErrUnknownCurrencyCode     = errors.New("unknown currency code")
	ErrUnknownRateType         = errors.New("unknown rate type")

	ErrCacheMiss        = errors.New("rate table not cached")
	ErrSnapshotNotFound = errors.New("rate snapshot not found")
)
