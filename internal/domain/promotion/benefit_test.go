//go:build unit

package promotion_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"promo-engine/internal/domain/promotion"
	"promo-engine/tests/common/builder"
)

func TestCampaign_DiscountForAmount(t *testing.T) {
	testCases := []struct {
		name     string
		benefit  promotion.BenefitType
		value    string
		base     string
		expected string
	}{
		{name: "percentage off", benefit: promotion.BenefitPercentageOff, value: "10", base: "100.00", expected: "10.00"},
		{name: "percentage rounds half up", benefit: promotion.BenefitPercentageOff, value: "15", base: "33.33", expected: "5.00"},
		{name: "tiered spend behaves as percentage", benefit: promotion.BenefitTieredSpend, value: "20", base: "250.00", expected: "50.00"},
		{name: "fixed amount off", benefit: promotion.BenefitFixedAmountOff, value: "25", base: "100.00", expected: "25.00"},
		{name: "fixed amount capped at base", benefit: promotion.BenefitFixedAmountOff, value: "150", base: "100.00", expected: "100.00"},
		{name: "bundle behaves as fixed amount", benefit: promotion.BenefitBundleDiscount, value: "30", base: "80.00", expected: "30.00"},
		{name: "free shipping zeroes the base", benefit: promotion.BenefitFreeShipping, value: "0", base: "12.50", expected: "12.50"},
		{name: "zero base yields zero", benefit: promotion.BenefitPercentageOff, value: "10", base: "0", expected: "0"},
		{name: "buy x get y has no amount form", benefit: promotion.BenefitBuyXGetY, value: "0", base: "100.00", expected: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := builder.NewCampaignBuilder().
				With(func(b *builder.CampaignBuilder) {
					b.BenefitType = tc.benefit
					b.BenefitValue = decimal.RequireFromString(tc.value)
				}).
				BuildDomain()

			got := c.DiscountForAmount(decimal.RequireFromString(tc.base))
			want := decimal.RequireFromString(tc.expected)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestCampaign_DiscountForLine_BuyXGetY(t *testing.T) {
	buyTwoGetOne := func() promotion.Campaign {
		return builder.NewCampaignBuilder().
			With(func(b *builder.CampaignBuilder) {
				b.Level = promotion.LevelLineItem
				b.BenefitType = promotion.BenefitBuyXGetY
			}).
			WithBuyGet(2, 1).
			BuildDomain()
	}

	testCases := []struct {
		name      string
		unitPrice string
		quantity  int32
		remaining string
		expected  string
	}{
		{name: "below group size earns nothing", unitPrice: "10.00", quantity: 2, remaining: "20.00", expected: "0"},
		{name: "one full group earns one free unit", unitPrice: "10.00", quantity: 3, remaining: "30.00", expected: "10.00"},
		{name: "partial second group earns nothing extra", unitPrice: "10.00", quantity: 5, remaining: "50.00", expected: "10.00"},
		{name: "two full groups earn two free units", unitPrice: "10.00", quantity: 6, remaining: "60.00", expected: "20.00"},
		{name: "capped at the line remaining", unitPrice: "10.00", quantity: 6, remaining: "15.00", expected: "15.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := buyTwoGetOne()
			got := c.DiscountForLine(
				decimal.RequireFromString(tc.remaining),
				decimal.RequireFromString(tc.unitPrice),
				tc.quantity,
			)
			want := decimal.RequireFromString(tc.expected)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestCampaign_DiscountForLine_NonBuyXGetY(t *testing.T) {
	c := builder.NewCampaignBuilder().
		With(func(b *builder.CampaignBuilder) {
			b.Level = promotion.LevelLineItem
			b.BenefitType = promotion.BenefitPercentageOff
			b.BenefitValue = decimal.NewFromInt(50)
		}).
		BuildDomain()

	got := c.DiscountForLine(decimal.RequireFromString("40.00"), decimal.RequireFromString("20.00"), 2)
	assert.True(t, got.Equal(decimal.RequireFromString("20.00")), "got %s", got)
}
