package domain

import "github.com/shopspring/decimal"

// Rupees builds a decimal amount from a whole rupee value.
func Rupees(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
