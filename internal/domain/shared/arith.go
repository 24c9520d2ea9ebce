package shared

import "github.com/shopspring/decimal"

// CheckedAdd returns a+b, or false when the sum exceeds MaxValue
func CheckedAdd(a, b decimal.Decimal) (decimal.Decimal, bool) {
	sum := a.Add(b)
	if sum.GreaterThan(MaxValue) {
		return a, false
	}
	return sum, true
}

// CheckedSub returns a-b, or false when the difference would be negative
func CheckedSub(a, b decimal.Decimal) (decimal.Decimal, bool) {
	if a.LessThan(b) {
		return a, false
	}
	return a.Sub(b), true
}

// SaturatingAdd returns a+b clamped to MaxValue
func SaturatingAdd(a, b decimal.Decimal) decimal.Decimal {
	sum, ok := CheckedAdd(a, b)
	if !ok {
		return MaxValue
	}
	return sum
}
