package rate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tcmbrates/internal/domain"
)

// excludedCodes are published by the bank but never surfaced (XDR is an IMF unit of account).
var excludedCodes = map[string]struct{}{
	"XDR": {},
}

func isExcluded(code string) bool {
	_, ok := excludedCodes[code]
	return ok
}

// Build turns a decoded document into a rate table. ExpiresAt is left zero, it is the
// service's call.
func Build(doc Document) (domain.RateTable, error) {
	date := strings.TrimSpace(doc.Date)
	if date == "" {
		return domain.RateTable{}, fmt.Errorf("%w: missing publication date", domain.ErrMalformedSourceDocument)
	}
	if _, err := time.Parse(domain.PublicationDateLayout, date); err != nil {
		return domain.RateTable{}, fmt.Errorf("%w: publication date %q: %v", domain.ErrMalformedSourceDocument, date, err)
	}
	if len(doc.Currencies) == 0 {
		return domain.RateTable{}, fmt.Errorf("%w: no currency records", domain.ErrMalformedSourceDocument)
	}

	entries := make(map[string]domain.RateEntry, len(doc.Currencies))
	for _, rec := range doc.Currencies {
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			return domain.RateTable{}, fmt.Errorf("%w: currency record without code", domain.ErrMalformedSourceDocument)
		}
		if isExcluded(code) {
			continue
		}
		entry, err := buildEntry(code, rec)
		if err != nil {
			return domain.RateTable{}, err
		}
		entries[code] = entry
	}
	if len(entries) == 0 {
		return domain.RateTable{}, fmt.Errorf("%w: no publishable currency records", domain.ErrMalformedSourceDocument)
	}

	return domain.RateTable{
		PublicationDate: date,
		Entries:         entries,
	}, nil
}

// BuildFromXML parses and builds in one step.
func BuildFromXML(body []byte) (domain.RateTable, error) {
	doc, err := ParseDocument(body)
	if err != nil {
		return domain.RateTable{}, err
	}
	return Build(doc)
}

func buildEntry(code string, rec CurrencyRecord) (domain.RateEntry, error) {
	unit, err := strconv.Atoi(strings.TrimSpace(rec.Unit))
	if err != nil || unit <= 0 {
		return domain.RateEntry{}, fmt.Errorf("%w: %s has invalid unit %q", domain.ErrMalformedSourceDocument, code, rec.Unit)
	}
	divisor := float64(unit)

	raw := [4]string{rec.ForexBuying, rec.ForexSelling, rec.BanknoteBuying, rec.BanknoteSelling}
	var values [4]float64
	for i, s := range raw {
		v, err := parseRate(s)
		if err != nil {
			return domain.RateEntry{}, fmt.Errorf("%w: %s rate %q: %v", domain.ErrMalformedSourceDocument, code, s, err)
		}
		values[i] = v / divisor
	}

	return domain.RateEntry{
		Code:            code,
		Name:            strings.TrimSpace(rec.Name),
		ForexBuying:     values[0],
		ForexSelling:    values[1],
		BanknoteBuying:  values[2],
		BanknoteSelling: values[3],
	}, nil
}

// parseRate reads a published value; the bank leaves banknote fields empty for
// currencies it does not trade as cash, those read as zero.
func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative rate")
	}
	return v, nil
}
