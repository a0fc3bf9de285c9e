package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/quote"
)

type AppliedPromotionResponse struct {
	PromotionID    uuid.UUID       `json:"promotion_id"`
	Name           string          `json:"name"`
	Level          string          `json:"level"`
	BenefitType    string          `json:"benefit_type"`
	Priority       int32           `json:"priority"`
	Exclusive      bool            `json:"exclusive"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

type RejectedPromotionResponse struct {
	PromotionID uuid.UUID `json:"promotion_id"`
	Name        string    `json:"name"`
	Reason      string    `json:"reason"`
}

type QuoteLineResponse struct {
	ProductID      string          `json:"product_id"`
	Quantity       int32           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LineSubtotal   decimal.Decimal `json:"line_subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

type QuoteResponse struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	LineDiscountTotal     decimal.Decimal `json:"line_discount_total"`
	CartDiscountTotal     decimal.Decimal `json:"cart_discount_total"`
	ShippingAmount        decimal.Decimal `json:"shipping_amount"`
	ShippingDiscountTotal decimal.Decimal `json:"shipping_discount_total"`
	TotalDiscount         decimal.Decimal `json:"total_discount"`
	GrandTotal            decimal.Decimal `json:"grand_total"`

	Lines              []QuoteLineResponse         `json:"lines"`
	AppliedPromotions  []AppliedPromotionResponse  `json:"applied_promotions"`
	RejectedPromotions []RejectedPromotionResponse `json:"rejected_promotions"`

	PricedAt time.Time `json:"priced_at"`
}

func FromQuoteResult(r *quote.Result) *QuoteResponse {
	resp := &QuoteResponse{
		Subtotal:              r.Subtotal,
		LineDiscountTotal:     r.LineDiscountTotal,
		CartDiscountTotal:     r.CartDiscountTotal,
		ShippingAmount:        r.ShippingAmount,
		ShippingDiscountTotal: r.ShippingDiscountTotal,
		TotalDiscount:         r.TotalDiscount,
		GrandTotal:            r.GrandTotal,
		Lines:                 make([]QuoteLineResponse, len(r.Lines)),
		AppliedPromotions:     make([]AppliedPromotionResponse, len(r.AppliedPromotions)),
		RejectedPromotions:    make([]RejectedPromotionResponse, len(r.RejectedPromotions)),
		PricedAt:              r.PricedAt,
	}
	for i, l := range r.Lines {
		resp.Lines[i] = QuoteLineResponse{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			LineSubtotal:   l.LineSubtotal,
			DiscountAmount: l.DiscountAmount,
			LineTotal:      l.LineTotal,
		}
	}
	for i, a := range r.AppliedPromotions {
		resp.AppliedPromotions[i] = AppliedPromotionResponse{
			PromotionID:    a.PromotionID,
			Name:           a.Name,
			Level:          string(a.Level),
			BenefitType:    string(a.BenefitType),
			Priority:       a.Priority,
			Exclusive:      a.Exclusive,
			DiscountAmount: a.DiscountAmount,
		}
	}
	for i, rj := range r.RejectedPromotions {
		resp.RejectedPromotions[i] = RejectedPromotionResponse{
			PromotionID: rj.PromotionID,
			Name:        rj.Name,
			Reason:      rj.Reason,
		}
	}
	return resp
}
