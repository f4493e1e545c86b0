package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	ListByOwner(ctx context.Context, ownerID string) ([]Alert, error)
	// ListAll streams every alert in batches through fn. The sequence is read
	// once per monitoring run and is not restartable mid-run.
	ListAll(ctx context.Context, fn func(alerts []Alert) error) error
	// DeleteByID is idempotent: deleting an absent id returns ErrNotFound.
	DeleteByID(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID, id string) error
}

// UserDirectory resolves an alert owner's email address. Injected so the
// monitoring job can be tested independently of the identity backend.
type UserDirectory interface {
	EmailByID(ctx context.Context, ownerID string) (string, error)
}

type QuoteProvider interface {
	LatestQuote(ctx context.Context, symbol string) (*Quote, error)
}

// Notifier delivers one templated message to one recipient. Acceptance by the
// transport is not a delivery guarantee.
type Notifier interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
	Configured() bool
}
