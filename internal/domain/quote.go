package domain

import (
	"errors"
	"fmt"
	"time"
)

// Quote is a freshly resolved price for a symbol. Quotes are transient: never
// persisted and never cached across alerts or runs.
type Quote struct {
	Symbol string
	Price  float64
	AsOf   time.Time
}

// QuoteFailKind classifies provider failures. The monitoring job branches on
// the kind for logging, so adapters must not collapse it to a generic error.
type QuoteFailKind string

const (
	QuoteRateLimited QuoteFailKind = "rate_limited"
	QuoteForbidden   QuoteFailKind = "forbidden"
	QuoteUnavailable QuoteFailKind = "unavailable"
	QuoteNotFound    QuoteFailKind = "not_found"
	QuoteUnknown     QuoteFailKind = "unknown"
)

type QuoteError struct {
	Symbol string
	Kind   QuoteFailKind
	Status int
	Err    error
}

func (e *QuoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quote %s: %s: %v", e.Symbol, e.Kind, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("quote %s: %s: status %d", e.Symbol, e.Kind, e.Status)
	}
	return fmt.Sprintf("quote %s: %s", e.Symbol, e.Kind)
}

func (e *QuoteError) Unwrap() error {
	return e.Err
}

// QuoteFailKindOf extracts the failure kind from an error chain, defaulting
// to QuoteUnknown.
func QuoteFailKindOf(err error) QuoteFailKind {
	var quoteErr *QuoteError
	if errors.As(err, &quoteErr) {
		return quoteErr.Kind
	}
	return QuoteUnknown
}
