package shared

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits carried by every monetary value
const AmountScale = 4

// maxAmountLength bounds the textual form of an amount; MaxValue needs 30 characters
const maxAmountLength = 64

// plainDecimal accepts an optional sign, digits and an optional fraction.
// Exponents are rejected so parsing never expands a huge power of ten.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// MaxValue is the largest representable monetary value: a 96-bit mantissa at scale 4.
var MaxValue = decimal.RequireFromString("7922816251426433759354395.0335")

// Amount is a strictly positive monetary quantity with 4 fractional digits.
// The zero value is not a valid Amount; use NewAmount or ParseAmount.
type Amount struct {
	value decimal.Decimal
}

// NewAmount validates d and rounds it to AmountScale fractional digits
func NewAmount(d decimal.Decimal) (Amount, error) {
	rounded := d.Round(AmountScale)
	if !rounded.IsPositive() {
		return Amount{}, ErrNonPositiveAmount
	}
	if rounded.GreaterThan(MaxValue) {
		return Amount{}, ErrAmountOutOfRange
	}
	return Amount{value: rounded}, nil
}

// MustAmount is NewAmount for literals known to be valid; it panics otherwise
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAmount parses a plain decimal string such as "1.5" or "0.0001".
// Scientific notation and inputs longer than 64 characters are rejected.
func ParseAmount(s string) (Amount, error) {
	text := strings.TrimSpace(s)
	if len(text) > maxAmountLength {
		return Amount{}, fmt.Errorf("%w: %d characters", ErrMalformedAmount, len(text))
	}
	if !plainDecimal.MatchString(text) {
		return Amount{}, fmt.Errorf("%w: %q", ErrMalformedAmount, text)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	amount, err := NewAmount(d)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", err, text)
	}
	return amount, nil
}

// Decimal returns the underlying value
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// String formats the amount with exactly 4 fractional digits
func (a Amount) String() string {
	return FormatValue(a.value)
}

// FormatValue formats any balance with exactly 4 fractional digits
func FormatValue(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
