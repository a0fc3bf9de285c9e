package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReserveRequest is a quote request whose coupon must be held. The optional
// Idempotency-Key header becomes the reservation's request key.
type ReserveRequest struct {
	Lines          []QuoteLine     `json:"lines" binding:"required,min=1,dive"`
	ShippingAmount decimal.Decimal `json:"shipping_amount"`
	CustomerID     *uuid.UUID      `json:"customer_id"`
	CouponCode     string          `json:"coupon_code" binding:"required"`
	CountryCode    *string         `json:"country_code"`
}

func (r *ReserveRequest) AsQuoteRequest() *QuoteRequest {
	return &QuoteRequest{
		Lines:          r.Lines,
		ShippingAmount: r.ShippingAmount,
		CustomerID:     r.CustomerID,
		CouponCode:     &r.CouponCode,
		CountryCode:    r.CountryCode,
	}
}

type CommitReservationRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type ReleaseReservationRequest struct {
	Reason string `json:"reason"`
}
