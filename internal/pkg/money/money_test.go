//go:build unit

package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"promo-engine/internal/pkg/money"
)

func TestRound(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "rounds half up", input: "10.005", expected: "10.01"},
		{name: "rounds down below half", input: "10.004", expected: "10.00"},
		{name: "keeps two decimals", input: "10.10", expected: "10.10"},
		{name: "negative rounds away from zero at half", input: "-10.005", expected: "-10.01"},
		{name: "integer unchanged", input: "7", expected: "7"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := money.Round(money.MustFromString(tc.input))
			want := money.MustFromString(tc.expected)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestPercent(t *testing.T) {
	testCases := []struct {
		name     string
		base     string
		pct      string
		expected string
	}{
		{name: "10 percent of 100", base: "100.00", pct: "10", expected: "10.00"},
		{name: "rounds result half up", base: "33.33", pct: "15", expected: "5.00"},
		{name: "fractional percentage", base: "200.00", pct: "12.5", expected: "25.00"},
		{name: "zero percent", base: "50.00", pct: "0", expected: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := money.Percent(money.MustFromString(tc.base), money.MustFromString(tc.pct))
			want := money.MustFromString(tc.expected)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestMin(t *testing.T) {
	a := money.MustFromString("3.50")
	b := money.MustFromString("3.51")
	assert.True(t, money.Min(a, b).Equal(a))
	assert.True(t, money.Min(b, a).Equal(a))
	assert.True(t, money.Min(a, a).Equal(a))
}

func TestFloorZero(t *testing.T) {
	assert.True(t, money.FloorZero(money.MustFromString("-0.01")).Equal(decimal.Zero))
	assert.True(t, money.FloorZero(decimal.Zero).Equal(decimal.Zero))
	positive := money.MustFromString("1.23")
	assert.True(t, money.FloorZero(positive).Equal(positive))
}
