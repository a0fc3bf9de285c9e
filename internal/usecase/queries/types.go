package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/pkg/errs"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID             uuid.UUID          `json:"id"`
	PromotionID    uuid.UUID          `json:"promotion_id"`
	CouponID       uuid.UUID          `json:"coupon_id"`
	CustomerID     *uuid.UUID         `json:"customer_id,omitempty"`
	OrderID        *string            `json:"order_id,omitempty"`
	RequestKey     *string            `json:"request_key,omitempty"`
	Status         reservation.Status `json:"status"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	QuotedSubtotal decimal.Decimal    `json:"quoted_subtotal"`
	QuotedTotal    decimal.Decimal    `json:"quoted_total"`
	ReleaseReason  *string            `json:"release_reason,omitempty"`
	ReservedAt     time.Time          `json:"reserved_at"`
	ExpiresAt      time.Time          `json:"expires_at"`
	CommittedAt    *time.Time         `json:"committed_at,omitempty"`
	ReleasedAt     *time.Time         `json:"released_at,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewReservationView maps an entity onto the read model via its accessor
// methods.
func NewReservationView(rv *reservation.Reservation) (*ReservationView, error) {
	var view ReservationView
	if err := copier.Copy(&view, rv); err != nil {
		return nil, errs.Wrap(err, "failed to build reservation view")
	}
	return &view, nil
}
