package usecase

import "stockwatch/internal/domain"

// Triggered reports whether a quoted price crosses the alert threshold in the
// given direction. Comparison is strict on both sides: a price equal to the
// threshold triggers neither condition.
func Triggered(price float64, condition domain.Condition, threshold float64) bool {
	switch condition {
	case domain.ConditionAbove:
		return price > threshold
	case domain.ConditionBelow:
		return price < threshold
	default:
		return false
	}
}
