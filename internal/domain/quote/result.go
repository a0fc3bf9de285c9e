package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/promotion"
)

// Rejection reasons are part of the contract: they must be reproducible from
// the same inputs.
const (
	ReasonNotActive        = "campaign not active or not approved"
	ReasonOutsideWindow    = "outside activity window"
	ReasonRequiresCoupon   = "requires explicit coupon code"
	ReasonExclusiveApplied = "skipped: exclusive promotion already applied"
	ReasonNotStackable     = "not stackable"
	ReasonMinimumOrder     = "minimum order amount not met"
	ReasonNoMatchingLines  = "no matching lines"
	ReasonNotImplemented   = "not implemented"
	ReasonBundleIncomplete = "bundle incomplete"
	ReasonZeroDiscount     = "discount resolves to zero"
)

type AppliedPromotion struct {
	PromotionID    uuid.UUID
	Name           string
	Level          promotion.ApplicationLevel
	BenefitType    promotion.BenefitType
	Priority       int32
	Exclusive      bool
	DiscountAmount decimal.Decimal
}

type RejectedPromotion struct {
	PromotionID uuid.UUID
	Name        string
	Reason      string
}

type LineResult struct {
	ProductID      string
	Quantity       int32
	UnitPrice      decimal.Decimal
	LineSubtotal   decimal.Decimal
	DiscountAmount decimal.Decimal
	LineTotal      decimal.Decimal
}

// Result is ephemeral: computed per request, never persisted.
type Result struct {
	Subtotal              decimal.Decimal
	LineDiscountTotal     decimal.Decimal
	CartDiscountTotal     decimal.Decimal
	ShippingAmount        decimal.Decimal
	ShippingDiscountTotal decimal.Decimal
	TotalDiscount         decimal.Decimal
	GrandTotal            decimal.Decimal

	Lines              []LineResult
	AppliedPromotions  []AppliedPromotion
	RejectedPromotions []RejectedPromotion

	PricedAt time.Time
}

// DiscountFor returns the applied discount contributed by one campaign, or
// zero when it did not apply.
func (r *Result) DiscountFor(promotionID uuid.UUID) decimal.Decimal {
	for _, a := range r.AppliedPromotions {
		if a.PromotionID == promotionID {
			return a.DiscountAmount
		}
	}
	return decimal.Zero
}
