package config

import "time"

// Tick budget bounds.
const (
	DefaultTickBudget = 10 * time.Microsecond
	MinTickBudget     = time.Microsecond
	MaxTickBudget     = time.Second
)

// BudgetBounds defines how a requested tick budget is normalised.
type BudgetBounds struct {
	Min     time.Duration // Minimum allowed budget (0 means no minimum)
	Max     time.Duration // Maximum allowed budget (0 means no maximum)
	Default time.Duration // Budget used when the value is unusable
}

// DefaultBudgetBounds returns the bounds applied to configured tick budgets.
func DefaultBudgetBounds() BudgetBounds {
	return BudgetBounds{
		Min:     MinTickBudget,
		Max:     MaxTickBudget,
		Default: DefaultTickBudget,
	}
}

// ValidateBudget normalises a tick budget.
// Returns the default if budget is <= 0 or below min (when min > 0).
// Returns max if budget exceeds max (when max > 0).
func ValidateBudget(budget time.Duration, bounds BudgetBounds) time.Duration {
	if budget <= 0 {
		return bounds.Default
	}
	if bounds.Min > 0 && budget < bounds.Min {
		return bounds.Default
	}
	if bounds.Max > 0 && budget > bounds.Max {
		return bounds.Max
	}
	return budget
}

// ValidateTickBudget applies DefaultBudgetBounds.
func ValidateTickBudget(budget time.Duration) time.Duration {
	return ValidateBudget(budget, DefaultBudgetBounds())
}
