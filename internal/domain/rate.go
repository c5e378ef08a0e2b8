package domain

import (
	"fmt"
	"maps"
	"time"
)

// PublicationDateLayout is the dd.mm.yyyy layout the bank uses for the Tarih attribute.
const PublicationDateLayout = "02.01.2006"

// RateKind is one of the four rates published for every currency.
type RateKind int

const (
	ForexBuying RateKind = iota + 1
	ForexSelling
	BanknoteBuying
	BanknoteSelling
)

func (k RateKind) String() string {
	switch k {
	case ForexBuying:
		return "ForexBuying"
	case ForexSelling:
		return "ForexSelling"
	case BanknoteBuying:
		return "BanknoteBuying"
	case BanknoteSelling:
		return "BanknoteSelling"
	default:
		return fmt.Sprintf("RateKind(%d)", int(k))
	}
}

func (k RateKind) IsBuy() bool { return k == ForexBuying || k == BanknoteBuying }

func (k RateKind) IsSell() bool { return k == ForexSelling || k == BanknoteSelling }

// ParseRateKind maps the published field name (e.g. "ForexBuying") to a RateKind.
func ParseRateKind(s string) (RateKind, error) {
	for _, k := range []RateKind{ForexBuying, ForexSelling, BanknoteBuying, BanknoteSelling} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRateType, s)
}

// RateEntry holds one currency's rates normalized to a single unit of that currency.
type RateEntry struct {
	Code            string  `json:"code"`
	Name            string  `json:"name,omitempty"`
	ForexBuying     float64 `json:"forex_buying"`
	ForexSelling    float64 `json:"forex_selling"`
	BanknoteBuying  float64 `json:"banknote_buying"`
	BanknoteSelling float64 `json:"banknote_selling"`
}

// Rate returns the value of the given kind. ok is false for a kind outside the enumeration.
func (e RateEntry) Rate(kind RateKind) (value float64, ok bool) {
	switch kind {
	case ForexBuying:
		return e.ForexBuying, true
	case ForexSelling:
		return e.ForexSelling, true
	case BanknoteBuying:
		return e.BanknoteBuying, true
	case BanknoteSelling:
		return e.BanknoteSelling, true
	}
	return 0, false
}

// RateTable is the snapshot of a single publication day.
type RateTable struct {
	PublicationDate string               `json:"publication_date"`
	Entries         map[string]RateEntry `json:"entries"`
	ExpiresAt       time.Time            `json:"expires_at"`
}

// ValidAt reports whether the table can serve lookups at the given instant.
func (t RateTable) ValidAt(now time.Time) bool {
	return len(t.Entries) > 0 && t.ExpiresAt.After(now)
}

// Clone returns a copy that shares no map with t.
func (t RateTable) Clone() RateTable {
	c := t
	c.Entries = maps.Clone(t.Entries)
	return c
}
