package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockwatch/internal/domain"
)

var ErrSenderNotConfigured = errors.New("notification sender not configured")

const defaultConcurrency = 4

// Monitor is the scheduled batch job: it loads every alert, resolves a fresh
// quote per alert, emails the owner on trigger and retires triggered alerts.
// Every per-alert failure is absorbed locally; one bad alert or provider call
// never aborts the rest of the run.
type Monitor struct {
	alerts      domain.AlertRepository
	directory   domain.UserDirectory
	quotes      domain.QuoteProvider
	notifier    domain.Notifier
	concurrency int
	logger      *zap.Logger
}

func NewMonitor(alerts domain.AlertRepository, directory domain.UserDirectory, quotes domain.QuoteProvider, notifier domain.Notifier, concurrency int, logger *zap.Logger) *Monitor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Monitor{
		alerts:      alerts,
		directory:   directory,
		quotes:      quotes,
		notifier:    notifier,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RunOnce executes a single monitoring run. It returns an error only for run
// preconditions (sender not configured, alert scan failed); per-alert outcomes
// are logged, not returned.
func (m *Monitor) RunOnce(ctx context.Context) error {
	if m.notifier == nil || !m.notifier.Configured() {
		m.logger.Error("monitor run aborted: notification sender not configured")
		return ErrSenderNotConfigured
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.concurrency)

	var total int
	listErr := m.alerts.ListAll(ctx, func(batch []domain.Alert) error {
		for _, alert := range batch {
			alert := alert
			total++
			group.Go(func() error {
				m.processAlert(groupCtx, alert)
				return nil
			})
		}
		return nil
	})

	_ = group.Wait()

	if listErr != nil {
		m.logger.Error("monitor run aborted: alert scan failed", zap.Error(listErr))
		return fmt.Errorf("list alerts: %w", listErr)
	}

	m.logger.Info("monitor run complete", zap.Int("alerts_checked", total))
	return nil
}

// processAlert runs the full pipeline for one alert. It never returns an
// error: a skipped alert stays in the store and is retried next run.
func (m *Monitor) processAlert(ctx context.Context, alert domain.Alert) {
	quote, err := m.quotes.LatestQuote(ctx, alert.Symbol)
	if err != nil {
		m.logger.Warn("quote resolution failed",
			zap.String("alert_id", alert.ID),
			zap.String("symbol", alert.Symbol),
			zap.String("kind", string(domain.QuoteFailKindOf(err))),
			zap.Error(err),
		)
		return
	}

	if !Triggered(quote.Price, alert.Condition, alert.Threshold) {
		return
	}

	email, err := m.directory.EmailByID(ctx, alert.OwnerID)
	if err != nil || email == "" {
		// Alert stays: a resolvable owner record might appear later.
		m.logger.Error("no email on file for alert owner",
			zap.String("alert_id", alert.ID),
			zap.String("owner_id", alert.OwnerID),
			zap.Error(err),
		)
		return
	}

	subject, textBody, htmlBody := buildNotification(alert, quote.Price)
	if err := m.notifier.Send(ctx, email, subject, textBody, htmlBody); err != nil {
		m.logger.Warn("alert notification send failed",
			zap.String("alert_id", alert.ID),
			zap.String("symbol", alert.Symbol),
			zap.Error(err),
		)
	} else {
		m.logger.Info("alert notification sent",
			zap.String("alert_id", alert.ID),
			zap.String("symbol", alert.Symbol),
			zap.Float64("price", quote.Price),
		)
	}

	// Triggering consumes the alert whether or not the send went through:
	// a duplicate email is worse than an occasional missed one.
	if err := m.alerts.DeleteByID(ctx, alert.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			m.logger.Debug("triggered alert already removed", zap.String("alert_id", alert.ID))
			return
		}
		m.logger.Error("failed to delete triggered alert, duplicate notification possible next run",
			zap.String("alert_id", alert.ID),
			zap.Error(err),
		)
	}
}

func buildNotification(alert domain.Alert, price float64) (subject, textBody, htmlBody string) {
	direction := "risen above"
	if alert.Condition == domain.ConditionBelow {
		direction = "dropped below"
	}

	subject = fmt.Sprintf("Price alert: %s %s %.2f", alert.Symbol, direction, alert.Threshold)
	textBody = fmt.Sprintf(
		"%s has %s your threshold of %.2f.\n\nLatest price: %.2f\n\nThis alert has now been removed from your list.",
		alert.Symbol, direction, alert.Threshold, price,
	)
	htmlBody = fmt.Sprintf(
		"<p><strong>%s</strong> has %s your threshold of <strong>%.2f</strong>.</p><p>Latest price: %.2f</p><p>This alert has now been removed from your list.</p>",
		alert.Symbol, direction, alert.Threshold, price,
	)
	return subject, textBody, htmlBody
}
