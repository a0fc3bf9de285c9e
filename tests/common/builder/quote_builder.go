//go:build unit || e2e

package builder

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/quote"
	reqdto "promo-engine/internal/handler/dto/request"
)

// QuoteRequestBuilder defaults to a single 2 x 50.00 line with 10.00 shipping.
type QuoteRequestBuilder struct {
	Lines          []reqdto.QuoteLine
	ShippingAmount decimal.Decimal
	CustomerID     *uuid.UUID
	CouponCode     *string
	CountryCode    *string
}

func NewQuoteRequestBuilder() *QuoteRequestBuilder {
	return &QuoteRequestBuilder{
		Lines: []reqdto.QuoteLine{
			{
				ProductID: "prod-1",
				VendorID:  "vendor-1",
				UnitPrice: decimal.RequireFromString("50.00"),
				Quantity:  2,
			},
		},
		ShippingAmount: decimal.RequireFromString("10.00"),
	}
}

func (b *QuoteRequestBuilder) With(mutate func(*QuoteRequestBuilder)) *QuoteRequestBuilder {
	mutate(b)
	return b
}

func (b *QuoteRequestBuilder) WithLine(productID, vendorID, unitPrice string, quantity int32) *QuoteRequestBuilder {
	b.Lines = append(b.Lines, reqdto.QuoteLine{
		ProductID: productID,
		VendorID:  vendorID,
		UnitPrice: decimal.RequireFromString(unitPrice),
		Quantity:  quantity,
	})
	return b
}

func (b *QuoteRequestBuilder) WithCoupon(code string) *QuoteRequestBuilder {
	b.CouponCode = &code
	return b
}

func (b *QuoteRequestBuilder) WithCustomer(customerID uuid.UUID) *QuoteRequestBuilder {
	b.CustomerID = &customerID
	return b
}

func (b *QuoteRequestBuilder) BuildRequestDTO() reqdto.QuoteRequest {
	return reqdto.QuoteRequest{
		Lines:          b.Lines,
		ShippingAmount: b.ShippingAmount,
		CustomerID:     b.CustomerID,
		CouponCode:     b.CouponCode,
		CountryCode:    b.CountryCode,
	}
}

func (b *QuoteRequestBuilder) BuildReserveRequestDTO() reqdto.ReserveRequest {
	var code string
	if b.CouponCode != nil {
		code = *b.CouponCode
	}
	return reqdto.ReserveRequest{
		Lines:          b.Lines,
		ShippingAmount: b.ShippingAmount,
		CustomerID:     b.CustomerID,
		CouponCode:     code,
		CountryCode:    b.CountryCode,
	}
}

func (b *QuoteRequestBuilder) BuildDomain() quote.Request {
	req := b.BuildRequestDTO()
	return req.ToDomain()
}
