package shared

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{"Integer", "10", "10.0000", nil},
		{"FourDigits", "12.3456", "12.3456", nil},
		{"TrimmedSpace", "  1.5 ", "1.5000", nil},
		{"RoundsExtraDigits", "0.00015", "0.0002", nil},
		{"SmallestUnit", "0.0001", "0.0001", nil},
		{"Zero", "0", "", ErrNonPositiveAmount},
		{"Negative", "-1.0", "", ErrNonPositiveAmount},
		{"RoundsToZero", "0.00001", "", ErrNonPositiveAmount},
		{"AboveMax", "7922816251426433759354395.0336", "", ErrAmountOutOfRange},
		{"NotANumber", "abc", "", nil},
		{"LeadingDot", ".5", "0.5000", nil},
		{"Exponent", "1e3", "", ErrMalformedAmount},
		{"UpperExponent", "1E5", "", ErrMalformedAmount},
		{"HugeExponent", "1e20000000", "", ErrMalformedAmount},
		{"NegativeExponent", "5e-2", "", ErrMalformedAmount},
		{"Hex", "0x10", "", ErrMalformedAmount},
		{"TooLong", "0." + strings.Repeat("0", 70) + "1", "", ErrMalformedAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseAmount(tc.input)
			if tc.expected == "" {
				require.Error(t, err)
				if tc.err != nil {
					assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, amount.String())
		})
	}
}

func TestParseAmount_RejectsExponentsQuickly(t *testing.T) {
	inputs := []string{"1e100000", "1e20000000", "9E999999999"}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, input := range inputs {
			_, err := ParseAmount(input)
			if assert.ErrorIs(t, err, ErrMalformedAmount, input) {
				assert.Less(t, len(err.Error()), 128, "error text must not expand the exponent")
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ParseAmount did not return for exponent inputs")
	}
}

func TestParseAmount_ErrorQuotesInput(t *testing.T) {
	_, err := ParseAmount("-2.5")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
	assert.Contains(t, err.Error(), `"-2.5"`)
}

func TestNewAmount_AcceptsMaxValue(t *testing.T) {
	amount, err := NewAmount(MaxValue)
	require.NoError(t, err)
	assert.True(t, amount.Decimal().Equal(MaxValue))
}

func TestMustAmount_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustAmount("-3") })
	assert.NotPanics(t, func() { MustAmount("3") })
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0.0000", FormatValue(decimal.Zero))
	assert.Equal(t, "6.0000", FormatValue(decimal.NewFromInt(6)))
	assert.Equal(t, "7922816251426433759354395.0335", FormatValue(MaxValue))
}

func TestCheckedAdd(t *testing.T) {
	sum, ok := CheckedAdd(decimal.NewFromInt(1), decimal.NewFromInt(2))
	assert.True(t, ok)
	assert.True(t, sum.Equal(decimal.NewFromInt(3)))

	sum, ok = CheckedAdd(MaxValue, decimal.Zero)
	assert.True(t, ok)
	assert.True(t, sum.Equal(MaxValue))

	one := decimal.NewFromInt(1)
	sum, ok = CheckedAdd(MaxValue, one)
	assert.False(t, ok)
	assert.True(t, sum.Equal(MaxValue), "left operand is returned unchanged on overflow")
}

func TestCheckedSub(t *testing.T) {
	diff, ok := CheckedSub(decimal.NewFromInt(10), decimal.NewFromInt(10))
	assert.True(t, ok)
	assert.True(t, diff.IsZero())

	diff, ok = CheckedSub(decimal.NewFromInt(4), decimal.NewFromInt(10))
	assert.False(t, ok)
	assert.True(t, diff.Equal(decimal.NewFromInt(4)))
}

func TestSaturatingAdd(t *testing.T) {
	assert.True(t, SaturatingAdd(decimal.NewFromInt(2), decimal.NewFromInt(3)).Equal(decimal.NewFromInt(5)))
	assert.True(t, SaturatingAdd(MaxValue, MaxValue).Equal(MaxValue))
}
