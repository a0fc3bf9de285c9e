package promotion

import (
	"github.com/shopspring/decimal"

	"promo-engine/internal/pkg/money"
)

// DiscountForAmount computes the raw, pre-cap discount a campaign grants
// against a base amount (a remaining cart bucket or shipping amount). The
// result is rounded to 2 decimals and never exceeds base.
//
// BUY_X_GET_Y is quantity-driven and has no amount-level form; callers route
// it through DiscountForLine instead. FREE_SHIPPING zeroes the whole base.
func (c *Campaign) DiscountForAmount(base decimal.Decimal) decimal.Decimal {
	if base.IsNegative() || base.IsZero() {
		return decimal.Zero
	}

	var d decimal.Decimal
	switch c.BenefitType {
	case BenefitPercentageOff, BenefitTieredSpend:
		d = money.Percent(base, c.BenefitValue)
	case BenefitFixedAmountOff, BenefitBundleDiscount:
		d = money.Round(c.BenefitValue)
	case BenefitFreeShipping:
		d = base
	default:
		return decimal.Zero
	}

	return money.Min(d, base)
}

// DiscountForLine computes the raw, pre-cap discount for a single cart line,
// given the line's remaining (post-previous-discount) total, its unit price
// and quantity.
func (c *Campaign) DiscountForLine(remaining, unitPrice decimal.Decimal, quantity int32) decimal.Decimal {
	if c.BenefitType != BenefitBuyXGetY {
		return c.DiscountForAmount(remaining)
	}
	if c.BuyQuantity == nil || c.GetQuantity == nil {
		return decimal.Zero
	}

	// Every full group of buy+get units earns get free units, valued at the
	// unit price.
	group := *c.BuyQuantity + *c.GetQuantity
	if group <= 0 || quantity < group {
		return decimal.Zero
	}
	freeUnits := (quantity / group) * *c.GetQuantity
	d := money.Round(unitPrice.Mul(decimal.NewFromInt32(freeUnits)))
	return money.Min(d, remaining)
}
