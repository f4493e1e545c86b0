package domain

import (
	"fmt"
	"strings"
	"time"
)

// Condition is the direction of a price alert. An alert fires only when the
// quoted price strictly crosses the threshold, never on touching it.
type Condition string

const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
)

func ParseCondition(input string) (Condition, error) {
	switch Condition(strings.ToLower(strings.TrimSpace(input))) {
	case ConditionAbove:
		return ConditionAbove, nil
	case ConditionBelow:
		return ConditionBelow, nil
	default:
		return "", fmt.Errorf("unknown condition %q", input)
	}
}

// Alert is a single-shot watch condition. There is no enabled flag: existence
// in the store means active, and the monitoring job removes the alert once it
// fires.
type Alert struct {
	ID        string
	OwnerID   string
	Symbol    string
	Threshold float64
	Condition Condition
	CreatedAt time.Time
}
