// Package ledger holds the arithmetic that keeps a user's current budget
// consistent with their spending. Functions here only compute; callers
// persist the returned budget in the same database transaction as the
// spending record change that produced it.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// Reserve debits amount from the user's budget and returns the budget that
// would result. It fails with ErrInsufficientBudget instead of going negative.
func Reserve(user *models.User, amount decimal.Decimal) (decimal.Decimal, error) {
	return nonNegative(user.CurrentBudget.Sub(amount))
}

// Adjust moves the user's budget by delta. A positive delta is a refund
// (delete, or a price decrease on edit); a negative delta is a further debit.
func Adjust(user *models.User, delta decimal.Decimal) (decimal.Decimal, error) {
	return nonNegative(user.CurrentBudget.Add(delta))
}

// MaxAmount is the largest value a NUMERIC(14,2) money column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// SetAbsolute parses a replacement budget, rounded to cents. It accepts any
// well-formed decimal in [0, MaxAmount] and is not reconciled against
// spending history.
func SetAbsolute(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, apperrors.ErrInvalidBudget
	}
	budget, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInvalidBudget, err)
	}
	budget = budget.Round(2)
	if budget.IsNegative() || budget.GreaterThan(MaxAmount) {
		return decimal.Zero, apperrors.ErrInvalidBudget
	}
	return budget, nil
}

func nonNegative(budget decimal.Decimal) (decimal.Decimal, error) {
	if budget.IsNegative() {
		return decimal.Zero, apperrors.ErrInsufficientBudget
	}
	if budget.GreaterThan(MaxAmount) {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidBudget, "Budget would exceed the maximum amount")
	}
	return budget, nil
}
