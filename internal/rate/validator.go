package rate

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"tcmbrates/internal/domain"
)

var (
	ErrCodeRequired  = errors.New("currency code is required")
	ErrCodeMalformed = errors.New("currency code must be three letters")
)

// CurrencyValidator normalizes request input before it reaches the service.
type CurrencyValidator struct {
	names      map[string]string // read only copy
	knownCodes []string          // read only copy
}

// NormalizeCode trims and upper-cases a code and checks its shape. Whether the bank publishes
// the currency is decided by the current table, not here.
func (v *CurrencyValidator) NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", ErrCodeRequired
	}
	if len(code) != 3 {
		return "", ErrCodeMalformed
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrCodeMalformed
		}
	}
	return code, nil
}

// BuyKind parses the requested buy rate type, defaulting to ForexBuying.
func (v *CurrencyValidator) BuyKind(raw string) (domain.RateKind, error) {
	return parseKind(raw, domain.ForexBuying, domain.RateKind.IsBuy)
}

// SellKind parses the requested sell rate type, defaulting to ForexSelling.
func (v *CurrencyValidator) SellKind(raw string) (domain.RateKind, error) {
	return parseKind(raw, domain.ForexSelling, domain.RateKind.IsSell)
}

func parseKind(raw string, def domain.RateKind, allowed func(domain.RateKind) bool) (domain.RateKind, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	kind, err := domain.ParseRateKind(raw)
	if err != nil {
		return 0, err
	}
	if !allowed(kind) {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownRateType, kind)
	}
	return kind, nil
}

// KnownCodes lists the currencies of the static name table.
func (v *CurrencyValidator) KnownCodes() []string {
	return slices.Clone(v.knownCodes)
}

func (v *CurrencyValidator) Names() map[string]string {
	return maps.Clone(v.names)
}

func NewValidator(names map[string]string) *CurrencyValidator {
	namesCopy := maps.Clone(names)
	codes := slices.Collect(maps.Keys(namesCopy))
	slices.Sort(codes)

	return &CurrencyValidator{
		names:      namesCopy,
		knownCodes: codes,
	}
}
