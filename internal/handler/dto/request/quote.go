package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/quote"
)

type QuoteLine struct {
	ProductID   string          `json:"product_id" binding:"required"`
	VendorID    string          `json:"vendor_id"`
	CategoryIDs []string        `json:"category_ids"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int32           `json:"quantity" binding:"required,gt=0"`
}

type QuoteRequest struct {
	Lines          []QuoteLine     `json:"lines" binding:"required,min=1,dive"`
	ShippingAmount decimal.Decimal `json:"shipping_amount"`
	CustomerID     *uuid.UUID      `json:"customer_id"`
	CouponCode     *string         `json:"coupon_code"`
	CountryCode    *string         `json:"country_code"`
}

func (r *QuoteRequest) ToDomain() quote.Request {
	lines := make([]quote.Line, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = quote.Line{
			ProductID:   l.ProductID,
			VendorID:    l.VendorID,
			CategoryIDs: l.CategoryIDs,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		}
	}
	return quote.Request{
		Lines:          lines,
		ShippingAmount: r.ShippingAmount,
		CustomerID:     r.CustomerID,
		CouponCode:     r.CouponCode,
		CountryCode:    r.CountryCode,
	}
}
