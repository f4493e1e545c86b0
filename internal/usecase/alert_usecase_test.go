package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"stockwatch/internal/domain"
)

func TestCreateAlertNormalizesSymbol(t *testing.T) {
	t.Parallel()

	repo := newFakeAlertRepo()
	uc := NewAlertUsecase(repo)

	alert, err := uc.CreateAlert(context.Background(), "u1", " i:spy ", 500, "above")
	require.NoError(t, err)
	require.Equal(t, "SPY", alert.Symbol)
	require.Equal(t, domain.ConditionAbove, alert.Condition)
	require.NotEmpty(t, alert.ID)
}

func TestCreateAlertValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ticker    string
		threshold float64
		condition string
		wantErr   error
	}{
		{"empty_symbol", "   ", 500, "above", ErrInvalidSymbol},
		{"bare_prefix", "I:", 500, "above", ErrInvalidSymbol},
		{"nan_threshold", "SPY", math.NaN(), "above", ErrInvalidThreshold},
		{"inf_threshold", "SPY", math.Inf(1), "below", ErrInvalidThreshold},
		{"bad_condition", "SPY", 500, "between", ErrInvalidCondition},
	}

	uc := NewAlertUsecase(newFakeAlertRepo())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateAlert(context.Background(), "u1", tt.ticker, tt.threshold, tt.condition)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteAlertScopedToOwner(t *testing.T) {
	t.Parallel()

	repo := newFakeAlertRepo(domain.Alert{ID: "a1", OwnerID: "u1", Symbol: "SPY", Threshold: 500, Condition: domain.ConditionAbove})
	uc := NewAlertUsecase(repo)

	// Another user cannot delete it.
	require.ErrorIs(t, uc.DeleteAlert(context.Background(), "u2", "a1"), ErrAlertNotFound)
	require.Len(t, repo.remaining(), 1)

	require.NoError(t, uc.DeleteAlert(context.Background(), "u1", "a1"))
	require.Empty(t, repo.remaining())

	// Second delete of the same id observes not-found.
	require.ErrorIs(t, uc.DeleteAlert(context.Background(), "u1", "a1"), ErrAlertNotFound)
}

func TestNormalizeSymbol(t *testing.T) {
	t.Parallel()

	require.Equal(t, "SPY", NormalizeSymbol("spy"))
	require.Equal(t, "NDX", NormalizeSymbol("I:NDX"))
	require.Equal(t, "NDX", NormalizeSymbol("i:ndx"))
	require.Equal(t, "QQQ", NormalizeSymbol("  QQQ  "))
	require.Equal(t, "", NormalizeSymbol(""))
}
