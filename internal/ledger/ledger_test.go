package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

func userWithBudget(v string) *models.User {
	return &models.User{CurrentBudget: decimal.RequireFromString(v)}
}

func TestReserve(t *testing.T) {
	tests := []struct {
		name    string
		budget  string
		amount  string
		want    string
		wantErr *apperrors.AppError
	}{
		{name: "partial", budget: "100", amount: "40", want: "60"},
		{name: "exact_budget_leaves_zero", budget: "25.50", amount: "25.50", want: "0"},
		{name: "fractional", budget: "10", amount: "0.01", want: "9.99"},
		{name: "over_budget", budget: "30", amount: "50", wantErr: apperrors.ErrInsufficientBudget},
		{name: "empty_budget", budget: "0", amount: "0.01", wantErr: apperrors.ErrInsufficientBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reserve(userWithBudget(tt.budget), decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestReserve_does_not_mutate_user(t *testing.T) {
	user := userWithBudget("100")

	_, err := Reserve(user, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, user.CurrentBudget.Equal(decimal.NewFromInt(100)))

	_, err = Reserve(user, decimal.NewFromInt(400))
	require.Error(t, err)
	assert.True(t, user.CurrentBudget.Equal(decimal.NewFromInt(100)))
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name    string
		budget  string
		delta   string
		want    string
		wantErr bool
	}{
		{name: "refund", budget: "60", delta: "40", want: "100"},
		{name: "further_debit", budget: "60", delta: "-30", want: "30"},
		{name: "debit_to_zero", budget: "30", delta: "-30", want: "0"},
		{name: "debit_past_zero", budget: "30", delta: "-30.01", wantErr: true},
		{name: "zero_delta", budget: "12.34", delta: "0", want: "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Adjust(userWithBudget(tt.budget), decimal.RequireFromString(tt.delta))
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrInsufficientBudget)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

// Two historical revisions of the edit operation disagreed on the sign of
// the price delta. Editing a price upward must consume more budget.
// Edits move the budget by -(newPrice - oldPrice). Some earlier revisions of
// the edit path added the delta instead, which refunded budget when a price
// went up; this pins the debiting direction.
func TestAdjust_price_increase_consumes_budget(t *testing.T) {
	user := userWithBudget("60")
	oldPrice := decimal.NewFromInt(40)
	newPrice := decimal.NewFromInt(70)

	got, err := Adjust(user, newPrice.Sub(oldPrice).Neg())
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(30)), "got %s", got)
}

func TestSetAbsolute(t *testing.T) {
	valid := map[string]string{
		"integer":          "250",
		"decimal":          "99.95",
		"zero":             "0",
		"padded":           "  15  ",
		"exponent":         "1e3",
		"leading_zeroes":   "007.5",
		"negative_zero":    "-0",
		"many_fractionals": "1.23456",
		"maximum":          "999999999999.99",
	}
	for name, raw := range valid {
		t.Run(name, func(t *testing.T) {
			got, err := SetAbsolute(raw)
			require.NoError(t, err)
			assert.False(t, got.IsNegative())
		})
	}

	invalid := map[string]string{
		"empty":     "",
		"blank":     "   ",
		"negative":  "-1",
		"text":      "lots",
		"mixed":     "12abc",
		"two_point": "1.2.3",
		"too_large": "1e20",
		"above_max": "1000000000000",
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := SetAbsolute(raw)
			require.ErrorIs(t, err, apperrors.ErrInvalidBudget)
		})
	}
}

func TestSetAbsolute_rounds_to_cents(t *testing.T) {
	tests := map[string]string{
		"10.005":  "10.01",
		"10.004":  "10",
		"1.23456": "1.23",
		"-0.001":  "0",
		"99.95":   "99.95",
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			got, err := SetAbsolute(raw)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(want)), "got %s", got)
		})
	}
}

func TestAdjust_refund_past_maximum(t *testing.T) {
	user := userWithBudget("999999999999.99")

	_, err := Adjust(user, decimal.NewFromInt(1))
	require.ErrorIs(t, err, apperrors.ErrInvalidBudget)
}
