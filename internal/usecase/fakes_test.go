package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stockwatch/internal/domain"
)

// fakeAlertRepo is an in-memory AlertRepository. Deletes are recorded so
// tests can assert how often an alert was consumed.
type fakeAlertRepo struct {
	mu      sync.Mutex
	alerts  []domain.Alert
	nextID  int
	deleted map[string]int
	listErr error
}

func newFakeAlertRepo(alerts ...domain.Alert) *fakeAlertRepo {
	return &fakeAlertRepo{alerts: alerts, deleted: map[string]int{}}
}

func (r *fakeAlertRepo) Create(ctx context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	alert.ID = fmt.Sprintf("alert-%d", r.nextID)
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *fakeAlertRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Alert
	for _, alert := range r.alerts {
		if alert.OwnerID == ownerID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) ListAll(ctx context.Context, fn func(alerts []domain.Alert) error) error {
	if r.listErr != nil {
		return r.listErr
	}
	r.mu.Lock()
	batch := make([]domain.Alert, len(r.alerts))
	copy(batch, r.alerts)
	r.mu.Unlock()
	if len(batch) == 0 {
		return nil
	}
	return fn(batch)
}

func (r *fakeAlertRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id]++
	for i, alert := range r.alerts {
		if alert.ID == id {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAlertRepo) DeleteByOwner(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, alert := range r.alerts {
		if alert.ID == id && alert.OwnerID == ownerID {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAlertRepo) remaining() []domain.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

func (r *fakeAlertRepo) deleteCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleted[id]
}

// fakeQuoteProvider serves a fixed price per symbol, or a typed failure.
type fakeQuoteProvider struct {
	mu     sync.Mutex
	prices map[string]float64
	fails  map[string]domain.QuoteFailKind
	calls  map[string]int
}

func newFakeQuoteProvider() *fakeQuoteProvider {
	return &fakeQuoteProvider{
		prices: map[string]float64{},
		fails:  map[string]domain.QuoteFailKind{},
		calls:  map[string]int{},
	}
}

func (p *fakeQuoteProvider) LatestQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[symbol]++
	if kind, ok := p.fails[symbol]; ok {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: kind}
	}
	price, ok := p.prices[symbol]
	if !ok {
		return nil, &domain.QuoteError{Symbol: symbol, Kind: domain.QuoteNotFound}
	}
	return &domain.Quote{Symbol: symbol, Price: price}, nil
}

func (p *fakeQuoteProvider) callCount(symbol string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[symbol]
}

// fakeDirectory maps owner ids to email addresses.
type fakeDirectory struct {
	emails map[string]string
}

func (d *fakeDirectory) EmailByID(ctx context.Context, ownerID string) (string, error) {
	email, ok := d.emails[ownerID]
	if !ok {
		return "", errors.New("owner record missing")
	}
	return email, nil
}

type sentMessage struct {
	To      string
	Subject string
}

// fakeNotifier records sends and can be forced to fail every send.
type fakeNotifier struct {
	mu         sync.Mutex
	sent       []sentMessage
	sendErr    error
	configured bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{configured: true}
}

func (n *fakeNotifier) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, sentMessage{To: to, Subject: subject})
	return nil
}

func (n *fakeNotifier) Configured() bool {
	return n.configured
}

func (n *fakeNotifier) sentMessages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMessage, len(n.sent))
	copy(out, n.sent)
	return out
}
