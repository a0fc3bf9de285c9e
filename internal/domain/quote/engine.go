package quote

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/promotion"
	"promo-engine/internal/pkg/money"
)

// Engine computes quotes. Pure: a function of the candidate catalog, the
// request and the pricing instant; it never mutates campaign or coupon state
// and holds no state of its own, so a single instance is safe for any degree
// of concurrency.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

type candidate struct {
	campaign *promotion.Campaign
	explicit bool
}

// Quote applies eligible campaigns to the request. explicitCampaignID names
// the campaign linked to an explicitly supplied coupon code; it joins the
// candidate set even when not auto-apply and sorts ahead of implicit
// candidates at equal priority.
func (e *Engine) Quote(campaigns []promotion.Campaign, explicitCampaignID *uuid.UUID, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pricedAt := req.PricedAt
	if pricedAt.IsZero() {
		pricedAt = time.Now()
	}

	st := newQuoteState(req)

	candidates := make([]candidate, 0, len(campaigns))
	for i := range campaigns {
		c := &campaigns[i]
		candidates = append(candidates, candidate{
			campaign: c,
			explicit: explicitCampaignID != nil && *explicitCampaignID == c.ID,
		})
	}
	orderCandidates(candidates)

	var (
		applied             []AppliedPromotion
		rejected            []RejectedPromotion
		exclusiveApplied    bool
		nonStackableApplied bool
	)
	reject := func(c *promotion.Campaign, reason string) {
		rejected = append(rejected, RejectedPromotion{PromotionID: c.ID, Name: c.Name, Reason: reason})
	}

	for _, cand := range candidates {
		c := cand.campaign

		// Candidates arrive pre-filtered from the catalog reader; the
		// explicit coupon campaign bypasses that filter, so re-check here.
		if !c.IsLifecycleActive() || !c.IsApprovalEligible() {
			reject(c, ReasonNotActive)
			continue
		}
		if !c.WithinWindow(pricedAt) {
			reject(c, ReasonOutsideWindow)
			continue
		}
		if exclusiveApplied {
			reject(c, ReasonExclusiveApplied)
			continue
		}
		if !c.AutoApply && !cand.explicit {
			reject(c, ReasonRequiresCoupon)
			continue
		}
		if len(applied) > 0 && (nonStackableApplied || !c.Stackable) {
			reject(c, ReasonNotStackable)
			continue
		}
		if c.MinimumOrderAmount != nil && st.subtotal.LessThan(*c.MinimumOrderAmount) {
			reject(c, ReasonMinimumOrder)
			continue
		}

		var (
			amount decimal.Decimal
			reason string
		)
		switch c.Level {
		case promotion.LevelLineItem:
			amount, reason = st.applyLineLevel(c)
		case promotion.LevelCart:
			amount, reason = st.applyCartLevel(c)
		case promotion.LevelShipping:
			amount, reason = st.applyShippingLevel(c)
		default:
			reason = ReasonNotImplemented
		}
		if reason != "" {
			reject(c, reason)
			continue
		}

		applied = append(applied, AppliedPromotion{
			PromotionID:    c.ID,
			Name:           c.Name,
			Level:          c.Level,
			BenefitType:    c.BenefitType,
			Priority:       c.Priority,
			Exclusive:      c.Exclusive,
			DiscountAmount: amount,
		})
		if c.Exclusive {
			exclusiveApplied = true
		}
		if !c.Stackable {
			nonStackableApplied = true
		}
	}

	return st.buildResult(req, pricedAt, applied, rejected), nil
}

// Total order: exclusive first, then lower priority, then explicit coupons,
// then older campaigns, then id. Deterministic for identical inputs.
func orderCandidates(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.campaign.Exclusive != b.campaign.Exclusive {
			return a.campaign.Exclusive
		}
		if a.campaign.Priority != b.campaign.Priority {
			return a.campaign.Priority < b.campaign.Priority
		}
		if a.explicit != b.explicit {
			return a.explicit
		}
		if !a.campaign.CreatedAt.Equal(b.campaign.CreatedAt) {
			return a.campaign.CreatedAt.Before(b.campaign.CreatedAt)
		}
		return a.campaign.ID.String() < b.campaign.ID.String()
	})
}

// quoteState tracks the mutable remainders while campaigns are applied.
type quoteState struct {
	lines             []Line
	lineSubtotals     []decimal.Decimal
	remaining         []decimal.Decimal
	subtotal          decimal.Decimal
	shippingAmount    decimal.Decimal
	remainingShipping decimal.Decimal

	lineDiscountTotal     decimal.Decimal
	cartDiscountTotal     decimal.Decimal
	shippingDiscountTotal decimal.Decimal
}

func newQuoteState(req Request) *quoteState {
	st := &quoteState{
		lines:             req.Lines,
		lineSubtotals:     make([]decimal.Decimal, len(req.Lines)),
		remaining:         make([]decimal.Decimal, len(req.Lines)),
		shippingAmount:    money.Round(req.ShippingAmount),
		remainingShipping: money.Round(req.ShippingAmount),
	}
	subtotal := decimal.Zero
	for i, l := range req.Lines {
		sub := money.Round(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)))
		st.lineSubtotals[i] = sub
		st.remaining[i] = sub
		subtotal = subtotal.Add(sub)
	}
	st.subtotal = money.Round(subtotal)
	return st
}

func (st *quoteState) matchingLines(c *promotion.Campaign) []int {
	var idx []int
	for i, l := range st.lines {
		if c.MatchesTarget(l.VendorID, l.ProductID, l.CategoryIDs) {
			idx = append(idx, i)
		}
	}
	return idx
}

// bundleComplete reports whether every targeted product id is in the cart.
func (st *quoteState) bundleComplete(c *promotion.Campaign) bool {
	for _, target := range c.TargetIDs {
		found := false
		for _, l := range st.lines {
			if l.ProductID == target {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(c.TargetIDs) > 0
}

// applyLineLevel computes per-line discounts against each matched line's
// remaining total, caps the sum, and distributes the capped sum back
// proportionally.
func (st *quoteState) applyLineLevel(c *promotion.Campaign) (decimal.Decimal, string) {
	idx := st.matchingLines(c)
	if len(idx) == 0 {
		return decimal.Zero, ReasonNoMatchingLines
	}
	if c.BenefitType == promotion.BenefitBundleDiscount && !st.bundleComplete(c) {
		return decimal.Zero, ReasonBundleIncomplete
	}

	raws := make([]decimal.Decimal, len(idx))
	sum := decimal.Zero
	for k, i := range idx {
		l := st.lines[i]
		raws[k] = c.DiscountForLine(st.remaining[i], l.UnitPrice, l.Quantity)
		sum = sum.Add(raws[k])
	}
	if sum.IsZero() {
		return decimal.Zero, ReasonZeroDiscount
	}

	target := sum
	if c.MaximumDiscountAmount != nil {
		target = money.Min(target, money.Round(*c.MaximumDiscountAmount))
	}

	applied := st.distribute(target, raws, idx)
	if applied.IsZero() {
		return decimal.Zero, ReasonZeroDiscount
	}
	st.lineDiscountTotal = st.lineDiscountTotal.Add(applied)
	return applied, ""
}

// applyCartLevel discounts the sum of remaining totals of scope-matching
// lines and spreads the result across them so later campaigns see reduced
// remainders.
func (st *quoteState) applyCartLevel(c *promotion.Campaign) (decimal.Decimal, string) {
	// Unit-count benefits are line-scoped; there is no cart-level form.
	if c.BenefitType == promotion.BenefitBuyXGetY {
		return decimal.Zero, ReasonNotImplemented
	}
	if c.BenefitType == promotion.BenefitBundleDiscount && !st.bundleComplete(c) {
		return decimal.Zero, ReasonBundleIncomplete
	}
	idx := st.matchingLines(c)
	if len(idx) == 0 {
		return decimal.Zero, ReasonNoMatchingLines
	}

	base := decimal.Zero
	for _, i := range idx {
		base = base.Add(st.remaining[i])
	}
	d := c.DiscountForAmount(base)
	if c.MaximumDiscountAmount != nil {
		d = money.Min(d, money.Round(*c.MaximumDiscountAmount))
	}
	d = money.Min(d, base)
	if d.IsZero() {
		return decimal.Zero, ReasonZeroDiscount
	}

	weights := make([]decimal.Decimal, len(idx))
	for k, i := range idx {
		weights[k] = st.remaining[i]
	}
	applied := st.distribute(d, weights, idx)
	if applied.IsZero() {
		return decimal.Zero, ReasonZeroDiscount
	}
	st.cartDiscountTotal = st.cartDiscountTotal.Add(applied)
	return applied, ""
}

func (st *quoteState) applyShippingLevel(c *promotion.Campaign) (decimal.Decimal, string) {
	if c.ScopeType != promotion.ScopeOrder {
		return decimal.Zero, ReasonNotImplemented
	}
	if c.BenefitType == promotion.BenefitBuyXGetY {
		return decimal.Zero, ReasonNotImplemented
	}

	d := c.DiscountForAmount(st.remainingShipping)
	if c.MaximumDiscountAmount != nil {
		d = money.Min(d, money.Round(*c.MaximumDiscountAmount))
	}
	d = money.Min(d, st.remainingShipping)
	if d.IsZero() {
		return decimal.Zero, ReasonZeroDiscount
	}
	st.remainingShipping = st.remainingShipping.Sub(d)
	st.shippingDiscountTotal = st.shippingDiscountTotal.Add(d)
	return d, ""
}

// distribute allocates total across the given lines proportionally to
// weights, re-rounding each share and never driving a remaining total below
// zero. The last line absorbs the rounding drift. Returns the amount
// actually applied.
func (st *quoteState) distribute(total decimal.Decimal, weights []decimal.Decimal, idx []int) decimal.Decimal {
	weightSum := decimal.Zero
	for _, w := range weights {
		weightSum = weightSum.Add(w)
	}
	if weightSum.IsZero() {
		return decimal.Zero
	}

	applied := decimal.Zero
	for k, i := range idx {
		var share decimal.Decimal
		if k == len(idx)-1 {
			share = total.Sub(applied)
		} else {
			share = money.Round(total.Mul(weights[k]).Div(weightSum))
		}
		share = money.FloorZero(money.Min(share, st.remaining[i]))
		st.remaining[i] = st.remaining[i].Sub(share)
		applied = applied.Add(share)
	}
	return applied
}

func (st *quoteState) buildResult(req Request, pricedAt time.Time, applied []AppliedPromotion, rejected []RejectedPromotion) *Result {
	lines := make([]LineResult, len(st.lines))
	for i, l := range st.lines {
		lines[i] = LineResult{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			LineSubtotal:   st.lineSubtotals[i],
			DiscountAmount: st.lineSubtotals[i].Sub(st.remaining[i]),
			LineTotal:      st.remaining[i],
		}
	}

	totalDiscount := st.lineDiscountTotal.Add(st.cartDiscountTotal).Add(st.shippingDiscountTotal)
	grand := st.subtotal.
		Sub(st.lineDiscountTotal).
		Sub(st.cartDiscountTotal).
		Add(st.shippingAmount).
		Sub(st.shippingDiscountTotal)

	return &Result{
		Subtotal:              st.subtotal,
		LineDiscountTotal:     money.Round(st.lineDiscountTotal),
		CartDiscountTotal:     money.Round(st.cartDiscountTotal),
		ShippingAmount:        st.shippingAmount,
		ShippingDiscountTotal: money.Round(st.shippingDiscountTotal),
		TotalDiscount:         money.Round(totalDiscount),
		GrandTotal:            money.FloorZero(money.Round(grand)),
		Lines:                 lines,
		AppliedPromotions:     applied,
		RejectedPromotions:    rejected,
		PricedAt:              pricedAt,
	}
}
