package quote

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyLines       = errors.New("at least one cart line is required")
	ErrInvalidQuantity  = errors.New("quantity must be greater than 0")
	ErrNegativeAmount   = errors.New("amounts cannot be negative")
	ErrMissingProductID = errors.New("product id is required")
)

type Line struct {
	ProductID   string
	VendorID    string
	CategoryIDs []string
	UnitPrice   decimal.Decimal
	Quantity    int32
}

type Request struct {
	Lines          []Line
	ShippingAmount decimal.Decimal
	CustomerID     *uuid.UUID
	CouponCode     *string
	CountryCode    *string

	// PricedAt pins the wall clock for the whole computation; zero means
	// "now". Injectable so quotes are reproducible.
	PricedAt time.Time
}

func (r *Request) Validate() error {
	if len(r.Lines) == 0 {
		return ErrEmptyLines
	}
	if r.ShippingAmount.IsNegative() {
		return ErrNegativeAmount
	}
	for _, l := range r.Lines {
		if l.ProductID == "" {
			return ErrMissingProductID
		}
		if l.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if l.UnitPrice.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}
