package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/pkg/money"
)

var (
	ErrNotReserved         = errors.New("reservation is not in RESERVED state")
	ErrAlreadyTerminal     = errors.New("reservation is already released or expired")
	ErrOrderMismatch       = errors.New("reservation already committed for a different order")
	ErrNonPositiveDiscount = errors.New("reserved discount must be positive")
	ErrExpiredReservation  = errors.New("reservation hold has expired")
)

// Reservation is a budget hold taken against a campaign for one quoted
// coupon application. It moves RESERVED → COMMITTED | RELEASED | EXPIRED,
// with COMMITTED → RELEASED as the refund path; RELEASED and EXPIRED are
// terminal.
type Reservation struct {
	id          uuid.UUID
	promotionID uuid.UUID
	couponID    uuid.UUID
	customerID  *uuid.UUID
	orderID     *string
	requestKey  *string

	status         Status
	discountAmount decimal.Decimal
	quotedSubtotal decimal.Decimal
	quotedTotal    decimal.Decimal

	releaseReason *string

	reservedAt  time.Time
	expiresAt   time.Time
	committedAt *time.Time
	releasedAt  *time.Time
	updatedAt   time.Time
}

// New creates a RESERVED hold. ttl must already be clamped by the caller.
func New(
	promotionID, couponID uuid.UUID,
	customerID *uuid.UUID,
	requestKey *string,
	discountAmount, quotedSubtotal, quotedTotal decimal.Decimal,
	ttl time.Duration,
	now time.Time,
) (*Reservation, error) {
	discountAmount = money.Round(discountAmount)
	if !discountAmount.IsPositive() {
		return nil, ErrNonPositiveDiscount
	}
	return &Reservation{
		id:             uuid.New(),
		promotionID:    promotionID,
		couponID:       couponID,
		customerID:     customerID,
		requestKey:     requestKey,
		status:         StatusReserved,
		discountAmount: discountAmount,
		quotedSubtotal: money.Round(quotedSubtotal),
		quotedTotal:    money.Round(quotedTotal),
		reservedAt:     now,
		expiresAt:      now.Add(ttl),
		updatedAt:      now,
	}, nil
}

func Reconstruct(
	id, promotionID, couponID uuid.UUID,
	customerID *uuid.UUID,
	orderID, requestKey *string,
	status Status,
	discountAmount, quotedSubtotal, quotedTotal decimal.Decimal,
	releaseReason *string,
	reservedAt, expiresAt time.Time,
	committedAt, releasedAt *time.Time,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:             id,
		promotionID:    promotionID,
		couponID:       couponID,
		customerID:     customerID,
		orderID:        orderID,
		requestKey:     requestKey,
		status:         status,
		discountAmount: discountAmount,
		quotedSubtotal: quotedSubtotal,
		quotedTotal:    quotedTotal,
		releaseReason:  releaseReason,
		reservedAt:     reservedAt,
		expiresAt:      expiresAt,
		committedAt:    committedAt,
		releasedAt:     releasedAt,
		updatedAt:      updatedAt,
	}
}

// Expired reports whether a RESERVED hold has outlived its TTL. Only
// RESERVED holds expire; committed discounts never lapse on their own.
func (r *Reservation) Expired(now time.Time) bool {
	return r.status == StatusReserved && now.After(r.expiresAt)
}

// Commit finalizes the hold for an order. Committing an already committed
// reservation succeeds only for the same order id.
func (r *Reservation) Commit(orderID string, now time.Time) error {
	switch r.status {
	case StatusCommitted:
		if r.orderID != nil && *r.orderID == orderID {
			return nil
		}
		return ErrOrderMismatch
	case StatusReleased, StatusExpired:
		return ErrAlreadyTerminal
	case StatusReserved:
		if r.Expired(now) {
			return ErrExpiredReservation
		}
		r.status = StatusCommitted
		r.orderID = &orderID
		r.committedAt = &now
		r.updatedAt = now
		return nil
	default:
		return ErrNotReserved
	}
}

// Release returns the hold (or a committed discount) to the budget. Releasing
// a RELEASED or EXPIRED reservation is a no-op handled by the caller.
func (r *Reservation) Release(reason string, now time.Time) error {
	if r.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	r.status = StatusReleased
	if reason != "" {
		r.releaseReason = &reason
	}
	r.releasedAt = &now
	r.updatedAt = now
	return nil
}

// MarkExpired transitions a lapsed RESERVED hold to EXPIRED.
func (r *Reservation) MarkExpired(now time.Time) error {
	if r.status != StatusReserved {
		return ErrNotReserved
	}
	r.status = StatusExpired
	r.releasedAt = &now
	r.updatedAt = now
	return nil
}

// MatchesRequest reports whether a replayed reservation request carries the
// same customer and coupon as the stored hold, for idempotency-key replay.
func (r *Reservation) MatchesRequest(couponID uuid.UUID, customerID *uuid.UUID) bool {
	if r.couponID != couponID {
		return false
	}
	if (r.customerID == nil) != (customerID == nil) {
		return false
	}
	if r.customerID != nil && *r.customerID != *customerID {
		return false
	}
	return true
}

func (r *Reservation) ID() uuid.UUID                   { return r.id }
func (r *Reservation) PromotionID() uuid.UUID          { return r.promotionID }
func (r *Reservation) CouponID() uuid.UUID             { return r.couponID }
func (r *Reservation) CustomerID() *uuid.UUID          { return r.customerID }
func (r *Reservation) OrderID() *string                { return r.orderID }
func (r *Reservation) RequestKey() *string             { return r.requestKey }
func (r *Reservation) Status() Status                  { return r.status }
func (r *Reservation) DiscountAmount() decimal.Decimal { return r.discountAmount }
func (r *Reservation) QuotedSubtotal() decimal.Decimal { return r.quotedSubtotal }
func (r *Reservation) QuotedTotal() decimal.Decimal    { return r.quotedTotal }
func (r *Reservation) ReleaseReason() *string          { return r.releaseReason }
func (r *Reservation) ReservedAt() time.Time           { return r.reservedAt }
func (r *Reservation) ExpiresAt() time.Time            { return r.expiresAt }
func (r *Reservation) CommittedAt() *time.Time         { return r.committedAt }
func (r *Reservation) ReleasedAt() *time.Time          { return r.releasedAt }
func (r *Reservation) UpdatedAt() time.Time            { return r.updatedAt }
