package decimal_test

import (
	"testing"

	shopspring "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgrassler/XML-Invoice-Parser/internal/decimal"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"10", "10.00"},
		{"10.0", "10.00"},
		{"10.00", "10.00"},
		{" 23.80 ", "23.80"},
		{"0", "0.00"},
		{"-5.5", "-5.50"},
		{"", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, decimal.NormalizeAmount(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2", "2"},
		{"2.0", "2"},
		{"2.50", "2.5"},
		{"19", "19"},
		{"", ""},
		{"n/a", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, decimal.NormalizeNumber(tt.input), "input %q", tt.input)
	}
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "20.00", decimal.LineTotal("2", "10.00"))
	assert.Equal(t, "12.38", decimal.LineTotal("2.5", "4.95"))
	assert.Equal(t, "", decimal.LineTotal("", "10.00"))
	assert.Equal(t, "", decimal.LineTotal("2", "x"))
}

func TestFromString(t *testing.T) {
	d, err := decimal.FromString(" 42.5 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(shopspring.NewFromFloat(42.5)))

	_, err = decimal.FromString("not a number")
	assert.Error(t, err)
}

func TestMustFromString_Panics(t *testing.T) {
	assert.Panics(t, func() {
		decimal.MustFromString("nope")
	})
}

func TestSum(t *testing.T) {
	values := []shopspring.Decimal{
		shopspring.NewFromInt(10),
		shopspring.NewFromInt(20),
		shopspring.NewFromFloat(0.5),
	}
	assert.True(t, decimal.Sum(values).Equal(shopspring.NewFromFloat(30.5)))
	assert.True(t, decimal.Sum(nil).IsZero())
}
