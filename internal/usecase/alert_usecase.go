package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"stockwatch/internal/domain"
)

var (
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrAlertNotFound    = errors.New("alert not found")
)

// indexPrefix is the market-data marker some feeds put in front of index
// tickers. Stored symbols are provider-agnostic, so it is stripped on create.
const indexPrefix = "I:"

type AlertUsecase struct {
	alerts domain.AlertRepository
}

func NewAlertUsecase(alerts domain.AlertRepository) *AlertUsecase {
	return &AlertUsecase{alerts: alerts}
}

func (u *AlertUsecase) CreateAlert(ctx context.Context, ownerID, ticker string, threshold float64, condition string) (*domain.Alert, error) {
	symbol := NormalizeSymbol(ticker)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}

	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, ErrInvalidThreshold
	}

	parsed, err := domain.ParseCondition(condition)
	if err != nil {
		return nil, ErrInvalidCondition
	}

	alert := &domain.Alert{
		OwnerID:   ownerID,
		Symbol:    symbol,
		Threshold: threshold,
		Condition: parsed,
	}

	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

func (u *AlertUsecase) ListAlerts(ctx context.Context, ownerID string) ([]domain.Alert, error) {
	return u.alerts.ListByOwner(ctx, ownerID)
}

func (u *AlertUsecase) DeleteAlert(ctx context.Context, ownerID, alertID string) error {
	if err := u.alerts.DeleteByOwner(ctx, ownerID, alertID); err != nil {
		if err == domain.ErrNotFound {
			return ErrAlertNotFound
		}
		return err
	}
	return nil
}

// NormalizeSymbol upper-cases a ticker and strips the index marker so stored
// symbols carry no provider-specific shape.
func NormalizeSymbol(ticker string) string {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	return strings.TrimPrefix(symbol, indexPrefix)
}
