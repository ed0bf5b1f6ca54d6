package domain

import (
	"errors"
	"fmt"
	"math"
)

// Money is an amount in minor units (cents for USD).
type Money struct {
	Amount   int64
	Currency string
}

func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errors.New("amount cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency is required")
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// MoneyFromDollars converts a decimal dollar amount to minor units.
// The conversion rounds to the nearest cent so amounts already expressed
// to two decimals survive the float representation exactly (53.99 -> 5399).
func MoneyFromDollars(dollars float64, currency string) (Money, error) {
	if math.IsNaN(dollars) || math.IsInf(dollars, 0) {
		return Money{}, fmt.Errorf("invalid amount: %v", dollars)
	}
	return NewMoney(DollarsToCents(dollars), currency)
}

// DollarsToCents is round(dollars * 100).
func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func (m Money) Dollars() float64 {
	return float64(m.Amount) / 100
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Dollars(), m.Currency)
}
